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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMessages(t *testing.T) {
	tests := []struct {
		name         string
		total        int
		n            int
		wantLen      int
		wantRequests []msgRequest
	}{
		{
			name:         "fewer messages than requested",
			total:        3,
			n:            10,
			wantLen:      3,
			wantRequests: []msgRequest{{10, ""}, {7, "M0001"}},
		},
		{
			name:         "exact single batch",
			total:        150,
			n:            100,
			wantLen:      100,
			wantRequests: []msgRequest{{100, ""}},
		},
		{
			name:         "multiple batches",
			total:        500,
			n:            250,
			wantLen:      250,
			wantRequests: []msgRequest{{100, ""}, {100, "M0401"}, {50, "M0301"}},
		},
		{
			name:         "channel exhausted on a batch boundary",
			total:        200,
			n:            300,
			wantLen:      200,
			wantRequests: []msgRequest{{100, ""}, {100, "M0101"}, {100, "M0001"}},
		},
		{
			name:         "empty channel",
			total:        0,
			n:            100,
			wantLen:      0,
			wantRequests: []msgRequest{{100, ""}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakePlatform{msgs: genMessages(tt.total, nil)}
			got, err := FetchMessages(t.Context(), fp, "C1", tt.n)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantRequests, fp.requests)
			// newest first, no duplicates.
			seen := make(map[string]bool, len(got))
			for i, m := range got {
				assert.False(t, seen[m.ID], "duplicate message %s", m.ID)
				seen[m.ID] = true
				if i > 0 {
					assert.Less(t, m.ID, got[i-1].ID)
				}
			}
		})
	}
}

func TestFetchMessages_neverExceedsLimit(t *testing.T) {
	for n := 1; n <= 301; n += 25 {
		fp := &fakePlatform{msgs: genMessages(275, nil)}
		got, err := FetchMessages(t.Context(), fp, "C1", n)
		require.NoError(t, err)
		assert.Equal(t, min(n, 275), len(got), "n=%d", n)
	}
}

func TestFetchMessages_invalidLimit(t *testing.T) {
	fp := &fakePlatform{}
	for _, n := range []int{0, -1} {
		_, err := FetchMessages(t.Context(), fp, "C1", n)
		assert.ErrorIs(t, err, ErrInvalidLimit)
	}
	assert.Empty(t, fp.requests)
}

func TestFetchMessages_error(t *testing.T) {
	errBoom := errors.New("boom")
	fp := &fakePlatform{msgErr: errBoom}
	_, err := FetchMessages(t.Context(), fp, "C1", 10)
	assert.ErrorIs(t, err, errBoom)
}
