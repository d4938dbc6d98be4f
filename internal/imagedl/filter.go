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
	"slices"

	"github.com/rusq/discord-mcp/types"
)

// imageExtensions are the recognised image file extensions.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

// Candidate is an image attachment with the message it was posted in.
type Candidate struct {
	Attachment types.Attachment
	Message    types.Message
}

// IsImage returns true if the attachment has a recognised image extension.
func IsImage(a types.Attachment) bool {
	ext := a.Ext()
	return ext != "" && slices.Contains(imageExtensions, ext)
}

// FilterImages returns the image attachments in the order of messages, and
// the order of attachments within each message.
func FilterImages(msgs types.Messages) []Candidate {
	var cc []Candidate
	for _, m := range msgs {
		for _, a := range m.Attachments {
			if !IsImage(a) {
				continue
			}
			cc = append(cc, Candidate{Attachment: a, Message: m})
		}
	}
	return cc
}
