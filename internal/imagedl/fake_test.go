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
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rusq/discord-mcp/types"
)

// fakePlatform is an in-memory channel.  Messages are stored newest first.
type fakePlatform struct {
	ch      types.Channel
	msgs    types.Messages
	canRead bool

	chanErr  error
	permErr  error
	msgErr   error
	requests []msgRequest
}

type msgRequest struct {
	limit  int
	before string
}

func (f *fakePlatform) Channel(_ context.Context, channelID string) (types.Channel, error) {
	if f.chanErr != nil {
		return nil, f.chanErr
	}
	if f.ch == nil || f.ch.ID() != channelID {
		return nil, fmt.Errorf("channel %s: %w", channelID, types.ErrNotFound)
	}
	return f.ch, nil
}

func (f *fakePlatform) CanRead(context.Context, types.GuildChannel) (bool, error) {
	return f.canRead, f.permErr
}

func (f *fakePlatform) Messages(_ context.Context, _ string, limit int, before string) (types.Messages, error) {
	f.requests = append(f.requests, msgRequest{limit: limit, before: before})
	if f.msgErr != nil {
		return nil, f.msgErr
	}
	start := 0
	if before != "" {
		idx := slices.IndexFunc(f.msgs, func(m types.Message) bool { return m.ID == before })
		if idx < 0 {
			return nil, nil
		}
		start = idx + 1
	}
	end := min(start+limit, len(f.msgs))
	if start >= end {
		return nil, nil
	}
	return slices.Clone(f.msgs[start:end]), nil
}

var testTime = time.Date(2024, 5, 17, 22, 30, 0, 0, time.UTC)

// genMessages generates n messages, newest first, each having the
// attachments produced by attFn.
func genMessages(n int, attFn func(i int) []types.Attachment) types.Messages {
	mm := make(types.Messages, n)
	for i := range n {
		id := fmt.Sprintf("M%04d", n-i)
		var att []types.Attachment
		if attFn != nil {
			att = attFn(i)
		}
		mm[i] = types.Message{
			ID:          id,
			Author:      "alice",
			Timestamp:   testTime.Add(-time.Duration(i) * time.Hour),
			Attachments: att,
		}
	}
	return mm
}

func guildChannel(id, name string) types.GuildChannel {
	return types.GuildChannel{
		ChannelRef: types.ChannelRef{ChannelID: id, ChannelName: name, ChannelType: 0, Text: true},
		GuildID:    "G1",
	}
}
