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

import "fmt"

// NoLimit is reported in place of the image limit when no limit was set.
const NoLimit = "No limit"

// Response is the tool call response.
type Response struct {
	Success          bool   `json:"success"`
	Channel          string `json:"channel"`
	MessagesScanned  int    `json:"messages_scanned"`
	TotalImagesFound int    `json:"total_images_found"`
	Downloaded       int    `json:"downloaded"`
	Skipped          int    `json:"skipped,omitempty"`
	OutputDir        string `json:"outputDir"`
	// ImageLimitApplied is the image limit, or NoLimit.
	ImageLimitApplied any       `json:"image_limit_applied"`
	Summary           string    `json:"summary"`
	Metadata          *Metadata `json:"metadata"`
}

// Report converts the result into the tool call response.
func Report(res *Result) Response {
	info := res.Metadata.DownloadInfo
	var limit any = NoLimit
	if info.ImageLimitApplied != nil {
		limit = *info.ImageLimitApplied
	}
	return Response{
		Success:           true,
		Channel:           res.Channel.Name(),
		MessagesScanned:   res.MessagesScanned,
		TotalImagesFound:  info.TotalFound,
		Downloaded:        info.Downloaded,
		Skipped:           info.Skipped,
		OutputDir:         info.OutputDir,
		ImageLimitApplied: limit,
		Summary:           summary(info.Downloaded, info.Skipped),
		Metadata:          res.Metadata,
	}
}

func summary(downloaded, skipped int) string {
	if skipped > 0 {
		return fmt.Sprintf("Downloaded %d images, skipped %d due to image_limit", downloaded, skipped)
	}
	return fmt.Sprintf("Downloaded all %d images found", downloaded)
}
