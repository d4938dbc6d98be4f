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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rusq/discord-mcp/types"
)

func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPEG", true},
		{"b.Png", true},
		{"c.gif", true},
		{"d.webp", true},
		{"e.svg", true},
		{"f.pdf", false},
		{"g.mp4", false},
		{"noext", false},
		{"", false},
		{"archive.png.zip", false},
		{".png", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsImage(types.Attachment{Name: tt.name}))
		})
	}
}

func TestFilterImages(t *testing.T) {
	msgs := types.Messages{
		{ID: "3", Attachments: []types.Attachment{{Name: "a.jpg"}, {Name: "b.pdf"}, {Name: "c.PNG"}}},
		{ID: "2"},
		{ID: "1", Attachments: []types.Attachment{{Name: "d"}, {Name: "e.webp"}}},
	}
	got := FilterImages(msgs)
	var names, ids []string
	for _, c := range got {
		names = append(names, c.Attachment.Name)
		ids = append(ids, c.Message.ID)
	}
	assert.Equal(t, []string{"a.jpg", "c.PNG", "e.webp"}, names)
	assert.Equal(t, []string{"3", "3", "1"}, ids)

	assert.Empty(t, FilterImages(nil))
}
