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

package types

import (
	"path"
	"strings"
	"time"
)

// Message is a channel message with its attachments.
type Message struct {
	ID          string
	Author      string
	Timestamp   time.Time
	Attachments []Attachment
}

// Attachment is a file attached to a message.
type Attachment struct {
	Name string
	URL  string
	Size int
}

// Ext returns the lower-cased extension of the attachment name, including
// the leading dot.  It returns an empty string if the name has no extension.
func (a Attachment) Ext() string {
	return strings.ToLower(path.Ext(a.Name))
}

// Messages is a slice of messages, newest first.
type Messages []Message

// Oldest returns the ID of the oldest message in the slice, or an empty
// string if the slice is empty.
func (mm Messages) Oldest() string {
	if len(mm) == 0 {
		return ""
	}
	return mm[len(mm)-1].ID
}
