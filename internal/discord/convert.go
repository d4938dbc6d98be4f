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

package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/rusq/discord-mcp/types"
)

// toChannel converts the discordgo channel to one of the types.Channel
// variants.
func toChannel(ch *discordgo.Channel) types.Channel {
	ref := types.ChannelRef{
		ChannelID:   ch.ID,
		ChannelName: channelName(ch),
		ChannelType: int(ch.Type),
		Text:        isTextBased(ch.Type),
	}
	switch {
	case ch.Type == discordgo.ChannelTypeDM || ch.Type == discordgo.ChannelTypeGroupDM:
		return types.DirectChannel{ChannelRef: ref}
	case ch.GuildID != "":
		return types.GuildChannel{ChannelRef: ref, GuildID: ch.GuildID}
	default:
		return types.UnknownChannel{ChannelRef: ref}
	}
}

// channelName returns the channel name.  Direct message channels have no
// name, the username of the first recipient is used instead.
func channelName(ch *discordgo.Channel) string {
	if ch.Name != "" {
		return ch.Name
	}
	for _, u := range ch.Recipients {
		if u != nil && u.Username != "" {
			return u.Username
		}
	}
	return ""
}

// isTextBased returns true for channel types that have a message history.
func isTextBased(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeDM,
		discordgo.ChannelTypeGroupDM,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildVoice,
		discordgo.ChannelTypeGuildStageVoice:
		return true
	}
	return false
}

func toMessages(mm []*discordgo.Message) types.Messages {
	out := make(types.Messages, 0, len(mm))
	for _, m := range mm {
		if m == nil {
			continue
		}
		out = append(out, toMessage(m))
	}
	return out
}

func toMessage(m *discordgo.Message) types.Message {
	msg := types.Message{
		ID:        m.ID,
		Timestamp: m.Timestamp,
	}
	if m.Author != nil {
		msg.Author = m.Author.Username
	}
	if len(m.Attachments) > 0 {
		msg.Attachments = make([]types.Attachment, 0, len(m.Attachments))
		for _, a := range m.Attachments {
			if a == nil {
				continue
			}
			msg.Attachments = append(msg.Attachments, types.Attachment{
				Name: a.Filename,
				URL:  a.URL,
				Size: a.Size,
			})
		}
	}
	return msg
}
