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

package types

import "errors"

// Errors returned by platform clients.
var (
	// ErrNotFound is returned when the channel does not exist or is not
	// visible to the bot.
	ErrNotFound = errors.New("not found")
	// ErrNoAccess is returned when the platform refuses access to the
	// channel.
	ErrNoAccess = errors.New("bot has no access to the channel")
)
