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
	"errors"
	"runtime/trace"

	"github.com/rusq/discord-mcp/types"
)

// BatchSize is the maximum number of messages requested at once.
const BatchSize = 100

// ErrInvalidLimit is returned when the message limit is not positive.
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// FetchMessages fetches up to n messages from the channel, newest first.  It
// requests the messages in batches of at most BatchSize, each batch older
// than the oldest message of the previous one, and stops when n messages are
// collected or the channel has no more messages.
func FetchMessages(ctx context.Context, ml MessageLister, channelID string, n int) (types.Messages, error) {
	ctx, task := trace.NewTask(ctx, "FetchMessages")
	defer task.End()

	if n <= 0 {
		return nil, ErrInvalidLimit
	}
	var (
		msgs   = make(types.Messages, 0, min(n, BatchSize))
		cursor string
	)
	for len(msgs) < n {
		want := min(BatchSize, n-len(msgs))
		batch, err := ml.Messages(ctx, channelID, want, cursor)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		if len(batch) > want {
			batch = batch[:want]
		}
		trace.Logf(ctx, "info", "batch: %d messages, before: %q", len(batch), cursor)
		msgs = append(msgs, batch...)
		cursor = batch.Oldest()
	}
	return msgs, nil
}
