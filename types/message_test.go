package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachment_Ext(t *testing.T) {
	tests := []struct {
		name string
		att  Attachment
		want string
	}{
		{"lower", Attachment{Name: "cat.png"}, ".png"},
		{"upper", Attachment{Name: "CAT.JPEG"}, ".jpeg"},
		{"mixed", Attachment{Name: "Photo.WebP"}, ".webp"},
		{"no extension", Attachment{Name: "README"}, ""},
		{"empty name", Attachment{}, ""},
		{"dots in name", Attachment{Name: "a.b.c.gif"}, ".gif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.att.Ext())
		})
	}
}

func TestMessages_Oldest(t *testing.T) {
	assert.Equal(t, "", Messages(nil).Oldest())
	assert.Equal(t, "1", Messages{{ID: "3"}, {ID: "2"}, {ID: "1"}}.Oldest())
}

func TestChannel_variants(t *testing.T) {
	ref := ChannelRef{ChannelID: "C1", ChannelName: "general", ChannelType: 0, Text: true}
	var chans = []Channel{
		GuildChannel{ChannelRef: ref, GuildID: "G1"},
		DirectChannel{ChannelRef: ref},
		UnknownChannel{ChannelRef: ref},
	}
	for _, ch := range chans {
		assert.Equal(t, "C1", ch.ID())
		assert.Equal(t, "general", ch.Name())
		assert.True(t, ch.TextBased())
	}
}
