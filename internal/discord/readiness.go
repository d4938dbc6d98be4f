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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ErrNotReady is returned when the session has not received the Ready event.
var ErrNotReady = errors.New("Discord client not ready")

// Readiness tracks whether the Discord session is logged in and ready to
// serve requests.  The zero value is not usable, use NewReadiness.
type Readiness struct {
	mu     sync.RWMutex
	userID string
	tag    string

	once sync.Once
	done chan struct{}
}

// NewReadiness returns a Readiness in the "not ready" state.
func NewReadiness() *Readiness {
	return &Readiness{done: make(chan struct{})}
}

// MarkReady records the bot user and switches to the "ready" state.
// Subsequent calls update the user, but the state remains "ready".
func (r *Readiness) MarkReady(userID, tag string) {
	r.mu.Lock()
	r.userID = userID
	r.tag = tag
	r.mu.Unlock()
	r.once.Do(func() { close(r.done) })
}

// Ready returns true once MarkReady has been called.
func (r *Readiness) Ready() bool {
	if r == nil {
		return false
	}
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// UserID returns the bot user ID, or an empty string if not ready.
func (r *Readiness) UserID() string {
	if r == nil {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.userID
}

// Tag returns the bot user tag, or an empty string if not ready.
func (r *Readiness) Tag() string {
	if r == nil {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tag
}

// Wait blocks until the session is ready, ctx is cancelled, or timeout
// elapses.  Zero timeout waits indefinitely.
func (r *Readiness) Wait(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for discord session: %w", context.Cause(ctx))
	}
}

// onReady is the discordgo Ready event handler.
func (r *Readiness) onReady(lg *slog.Logger) func(*discordgo.Session, *discordgo.Ready) {
	return func(_ *discordgo.Session, ev *discordgo.Ready) {
		if ev == nil || ev.User == nil {
			return
		}
		r.MarkReady(ev.User.ID, ev.User.String())
		lg.Info("Discord bot logged in", "user", r.Tag())
	}
}
