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
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime/trace"

	"github.com/rusq/fsadapter"

	"github.com/rusq/discord-mcp/internal/osext"
)

// TransferError is returned by the Fetcher when the file can not be
// downloaded.
type TransferError struct {
	URL string
	// StatusCode is the HTTP status code, it is zero if the request did not
	// get a response, or failed while streaming the body.
	StatusCode int
	Err        error
}

func (e *TransferError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d [src=%s]", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("transfer failed [src=%s]: %s", e.URL, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// Fetcher downloads files over HTTP(S).
type Fetcher struct {
	cl *http.Client
}

// NewFetcher returns a Fetcher that uses the client cl, or
// http.DefaultClient if cl is nil.
func NewFetcher(cl *http.Client) *Fetcher {
	if cl == nil {
		cl = http.DefaultClient
	}
	return &Fetcher{cl: cl}
}

// Fetch downloads the file from uri and saves it as name in fsa.  The body is
// streamed to a temporary file first and copied into fsa only if the
// download completed, so that a failed transfer never leaves a partial file
// in the destination.  It returns the number of bytes written.  Any failure
// is returned as *TransferError, there are no retries.
func (f *Fetcher) Fetch(ctx context.Context, uri string, fsa fsadapter.FS, name string) (int64, error) {
	region := trace.StartRegion(ctx, "Fetch")
	defer region.End()

	terr := func(code int, err error) error {
		return &TransferError{URL: uri, StatusCode: code, Err: err}
	}

	u, err := url.Parse(uri)
	if err != nil {
		return 0, terr(0, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return 0, terr(0, fmt.Errorf("unsupported scheme %q", u.Scheme))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return 0, terr(0, err)
	}
	resp, err := f.cl.Do(req)
	if err != nil {
		return 0, terr(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, terr(resp.StatusCode, fmt.Errorf("invalid server status code: %d (%s)", resp.StatusCode, resp.Status))
	}

	tf, err := os.CreateTemp("", "imagedl-*")
	if err != nil {
		return 0, terr(0, err)
	}
	defer os.Remove(tf.Name()) // in case the move did not happen.

	_, err = io.Copy(tf, resp.Body)
	if cerr := tf.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, terr(0, err)
	}

	n, err := osext.MoveFile(tf.Name(), fsa, name)
	if err != nil {
		return 0, terr(0, err)
	}
	return n, nil
}
