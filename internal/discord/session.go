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
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// intents are the gateway intents required to read the channel messages.
const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// ErrNoToken is returned by Open when the token is empty.
var ErrNoToken = errors.New("discord token is required")

// Open creates a new discordgo session for the bot token, registers the
// Ready handler on r and opens the gateway connection.  The caller must
// close the returned session.  The session becomes usable once r is ready.
func Open(token string, r *Readiness, lg *slog.Logger) (*discordgo.Session, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if lg == nil {
		lg = slog.Default()
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	s.Identify.Intents = intents
	s.AddHandler(r.onReady(lg))
	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("discord connect: %w", err)
	}
	return s, nil
}
