// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package imagedl

import (
	"encoding/json"
	"fmt"

	"github.com/rusq/fsadapter"
)

// MetadataFile is the name of the metadata file in the channel directory.
const MetadataFile = "metadata.json"

// dateFormat is the format of the run date, ISO 8601 with milliseconds.
const dateFormat = "2006-01-02T15:04:05.000Z07:00"

// Metadata describes a download run.
type Metadata struct {
	Channel      ChannelInfo  `json:"channel"`
	DownloadInfo DownloadInfo `json:"downloadInfo"`
	Images       []Outcome    `json:"images"`
}

// ChannelInfo describes the channel.
type ChannelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

// DownloadInfo contains the run counters.
type DownloadInfo struct {
	Date              string `json:"date"`
	MessagesScanned   int    `json:"messagesScanned"`
	TotalFound        int    `json:"totalFound"`
	Downloaded        int    `json:"downloaded"`
	Skipped           int    `json:"skipped"`
	OutputDir         string `json:"outputDir"`
	ImageLimitApplied *int   `json:"image_limit_applied"`
}

// Outcome describes a downloaded image.
type Outcome struct {
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	Size      int    `json:"size"`
	MessageID string `json:"messageId"`
	Author    string `json:"author"`
	// Timestamp is the message creation time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// writeMetadata writes the metadata file, overwriting an existing one.
func writeMetadata(fsa fsadapter.FS, md *Metadata) error {
	if md.Images == nil {
		md.Images = []Outcome{}
	}
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling metadata: %w", err)
	}
	if err := fsa.WriteFile(MetadataFile, data, 0o644); err != nil {
		return fmt.Errorf("failed writing metadata: %w", err)
	}
	return nil
}
