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

// Package discord adapts a discordgo session to the capabilities needed by
// the image downloader: channel lookup, permission checks and message
// listing.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/trace"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/rusq/discord-mcp/internal/network"
	"github.com/rusq/discord-mcp/types"
)

// MaxBatch is the maximum number of messages returned by one
// ChannelMessages call.
const MaxBatch = 100

// readPerms is the set of permissions required to read the channel history.
const readPerms = discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory

//go:generate mockgen -destination=mock_discord/mock_discord.go . Session

// Session is the subset of *discordgo.Session methods used by the Client.
type Session interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

// Client is the Discord platform client.
type Client struct {
	s       Session
	ready   *Readiness
	limiter *rate.Limiter
	retries int
	lg      *slog.Logger
}

// Option is the function signature for the option functions.
type Option func(*Client)

// WithLogger sets the logger.  Nil logger is ignored.
func WithLogger(lg *slog.Logger) Option {
	return func(c *Client) {
		if lg != nil {
			c.lg = lg
		}
	}
}

// WithLimiter sets the limiter for the REST calls.  Nil limiter is ignored.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

// WithRetries sets the number of attempts for the REST calls.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// New creates a new Client on top of the session s.  The ready handle
// provides the bot user ID used in permission checks.
func New(s Session, ready *Readiness, opts ...Option) *Client {
	if s == nil {
		panic("programming error:  session is nil")
	}
	c := &Client{
		s:       s,
		ready:   ready,
		limiter: network.NewLimiter(network.DefaultRate, 1),
		retries: 3,
		lg:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Channel resolves the channel by its ID.  It returns an error wrapping
// types.ErrNotFound if the channel does not exist, or types.ErrNoAccess if
// the bot is not allowed to see it.
func (c *Client) Channel(ctx context.Context, channelID string) (types.Channel, error) {
	ctx, task := trace.NewTask(ctx, "Channel")
	defer task.End()

	var ch *discordgo.Channel
	if err := network.WithRetry(ctx, c.limiter, c.retries, func() error {
		var err error
		ch, err = c.s.Channel(channelID, discordgo.WithContext(ctx))
		return err
	}); err != nil {
		return nil, fmt.Errorf("channel %s: %w", channelID, mapError(err))
	}
	if ch == nil {
		return nil, fmt.Errorf("channel %s: %w", channelID, types.ErrNotFound)
	}
	return toChannel(ch), nil
}

// CanRead returns true if the bot user has both the View Channel and Read
// Message History permissions in the guild channel.
func (c *Client) CanRead(ctx context.Context, ch types.GuildChannel) (bool, error) {
	userID := c.ready.UserID()
	if userID == "" {
		return false, ErrNotReady
	}
	var perms int64
	if err := network.WithRetry(ctx, c.limiter, c.retries, func() error {
		var err error
		perms, err = c.s.UserChannelPermissions(userID, ch.ID(), discordgo.WithContext(ctx))
		return err
	}); err != nil {
		return false, fmt.Errorf("permissions for %s: %w", ch.ID(), mapError(err))
	}
	c.lg.DebugContext(ctx, "channel permissions", "channel_id", ch.ID(), "permissions", perms)
	return perms&readPerms == readPerms, nil
}

// Messages returns up to limit messages older than the message with ID
// before, newest first.  If before is empty, the latest messages are
// returned.  The limit is capped at MaxBatch.
func (c *Client) Messages(ctx context.Context, channelID string, limit int, before string) (types.Messages, error) {
	limit = min(limit, MaxBatch)
	var mm []*discordgo.Message
	if err := network.WithRetry(ctx, c.limiter, c.retries, func() error {
		var err error
		trace.WithRegion(ctx, "ChannelMessages", func() {
			mm, err = c.s.ChannelMessages(channelID, limit, before, "", "", discordgo.WithContext(ctx))
		})
		return err
	}); err != nil {
		return nil, fmt.Errorf("messages %s: %w", channelID, mapError(err))
	}
	return toMessages(mm), nil
}

// mapError maps the discord REST errors to the platform errors.
func mapError(err error) error {
	var re *discordgo.RESTError
	if !errors.As(err, &re) {
		return err
	}
	if re.Message != nil {
		switch re.Message.Code {
		case discordgo.ErrCodeMissingAccess:
			return fmt.Errorf("%w: %s", types.ErrNoAccess, re.Message.Message)
		case discordgo.ErrCodeUnknownChannel:
			return fmt.Errorf("%w: %s", types.ErrNotFound, re.Message.Message)
		}
	}
	if re.Response != nil && re.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", types.ErrNotFound, err)
	}
	return err
}
