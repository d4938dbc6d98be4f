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

// Package types contains the platform-neutral representation of channels and
// messages that the image downloader operates on.
package types

// Channel is a resolved chat channel.  It is a closed set: GuildChannel,
// DirectChannel and UnknownChannel are the only implementations.
type Channel interface {
	// ID returns the channel ID.
	ID() string
	// Name returns the display name of the channel.
	Name() string
	// Type returns the numeric channel type as reported by the platform.
	Type() int
	// TextBased returns true if the channel carries messages.
	TextBased() bool

	channel()
}

// ChannelRef is the data common to all channel kinds.
type ChannelRef struct {
	ChannelID   string
	ChannelName string
	ChannelType int
	Text        bool
}

func (c ChannelRef) ID() string      { return c.ChannelID }
func (c ChannelRef) Name() string    { return c.ChannelName }
func (c ChannelRef) Type() int       { return c.ChannelType }
func (c ChannelRef) TextBased() bool { return c.Text }
func (ChannelRef) channel()          {}

// GuildChannel is a channel that belongs to a guild (server).  Only guild
// channels have per-member permissions.
type GuildChannel struct {
	ChannelRef
	GuildID string
}

// DirectChannel is a direct or group direct message channel.
type DirectChannel struct {
	ChannelRef
}

// UnknownChannel is any channel kind that is neither a guild nor a direct
// message channel.
type UnknownChannel struct {
	ChannelRef
}

var (
	_ Channel = GuildChannel{}
	_ Channel = DirectChannel{}
	_ Channel = UnknownChannel{}
)
