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

package network

import (
	"time"

	"golang.org/x/time/rate"
)

// Discord allows 50 requests per second per bot globally.  Per-route buckets
// are tracked by the discordgo session.
const (
	GlobalRate  = 50
	DefaultRate = 10
)

// NewLimiter returns a limiter allowing perSecond requests per second with
// the given burst.  A zero perSecond uses DefaultRate, values above
// GlobalRate are capped.
func NewLimiter(perSecond int, burst uint) *rate.Limiter {
	if perSecond <= 0 {
		perSecond = DefaultRate
	}
	perSecond = min(perSecond, GlobalRate)
	if burst == 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(every(perSecond)), int(burst))
}

func every(perSecond int) time.Duration {
	return time.Second / time.Duration(perSecond)
}
