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
	"strings"

	"github.com/rusq/discord-mcp/types"
)

// Filename returns the file name for the candidate.  With includeMeta, the
// name is "{date}_{author}_{messageID}_{name}", where date is the UTC date
// of the message.  Otherwise it is the attachment name, or
// "unknown_{messageID}" if the attachment has no name.
func Filename(c Candidate, includeMeta bool) string {
	if includeMeta {
		return sanitize(c.Message.Timestamp.UTC().Format("2006-01-02") + "_" +
			c.Message.Author + "_" +
			c.Message.ID + "_" +
			c.Attachment.Name)
	}
	if c.Attachment.Name == "" {
		return "unknown_" + c.Message.ID
	}
	return sanitize(c.Attachment.Name)
}

// ChannelDirName returns the name of the channel directory.
func ChannelDirName(ch types.Channel) string {
	return sanitize(ch.Name() + "_" + ch.ID())
}

var pathReplacer = strings.NewReplacer("/", "_", `\`, "_")

// sanitize makes sure that the name can not escape the directory.
func sanitize(name string) string {
	name = pathReplacer.Replace(name)
	if name == "." || name == ".." {
		return "_"
	}
	return name
}
