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

package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rusq/discord-mcp/internal/discord"
	"github.com/rusq/discord-mcp/internal/discord/mock_discord"
	"github.com/rusq/discord-mcp/internal/imagedl"
	"github.com/rusq/discord-mcp/internal/mcp"
)

// clearEnv unsets the environment variables that provide flag defaults,
// they are restored when the test ends.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{discordTokenEnv, "MCP_TRANSPORT", "MCP_LISTEN", "OUTPUT_DIR", "LOG_FILE", "JSON_LOG", "TRACE_FILE", "DEBUG"} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(t.Output(), nil))
}

func Test_parseCmdLine(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		want    params
		wantErr error
	}{
		{
			name: "defaults",
			args: []string{"-token", "x"},
			want: params{
				token:        "x",
				transport:    mcp.TransportStdio,
				listenAddr:   defListenAddr,
				outputDir:    imagedl.DefOutputDir,
				readyTimeout: defReadyTimeout,
			},
		},
		{
			name: "token from environment",
			env:  map[string]string{discordTokenEnv: "from-env"},
			args: []string{"-transport", "http", "-listen", ":9000", "-output-dir", "/data", "-v"},
			want: params{
				token:        "from-env",
				transport:    mcp.TransportHTTP,
				listenAddr:   ":9000",
				outputDir:    "/data",
				readyTimeout: defReadyTimeout,
				verbose:      true,
			},
		},
		{
			name:    "missing token",
			args:    []string{},
			wantErr: errNoToken,
		},
		{
			name:    "invalid transport",
			args:    []string{"-token", "x", "-transport", "carrier-pigeon"},
			wantErr: errTransport,
		},
		{
			name: "version does not require token",
			args: []string{"-V"},
			want: params{
				transport:    mcp.TransportStdio,
				listenAddr:   defListenAddr,
				outputDir:    imagedl.DefOutputDir,
				readyTimeout: defReadyTimeout,
				printVersion: true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := parseCmdLine(tt.args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_params_validate(t *testing.T) {
	p := params{token: "x", transport: mcp.TransportHTTP, readyTimeout: 0}
	assert.Error(t, p.validate())
	p.readyTimeout = time.Second
	assert.NoError(t, p.validate())
}

type fakeDownloader struct {
	req imagedl.Request
}

func (f *fakeDownloader) Download(_ context.Context, req imagedl.Request) (*imagedl.Result, error) {
	f.req = req
	return &imagedl.Result{}, nil
}

func Test_defaultDirDownloader(t *testing.T) {
	tests := []struct {
		name   string
		dir    string
		reqDir string
		want   string
	}{
		{"unset in request", "/data", "", "/data"},
		{"explicit default in request", "/data", imagedl.DefOutputDir, imagedl.DefOutputDir},
		{"explicit in request", "/data", "/other", "/other"},
		{"no configured dir", "", "/other", "/other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd := &fakeDownloader{}
			d := &defaultDirDownloader{dl: fd, dir: tt.dir}
			_, err := d.Download(t.Context(), imagedl.Request{ChannelID: "C1", OutputDir: tt.reqDir})
			require.NoError(t, err)
			assert.Equal(t, tt.want, fd.req.OutputDir)
		})
	}
}

func Test_newServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mock_discord.NewMockSession(ctrl)
	srv := newServer(ms, discord.NewReadiness(), testLogger(t), params{outputDir: t.TempDir()})
	assert.NotNil(t, srv)
}

func Test_initTrace(t *testing.T) {
	t.Run("initialises trace file", func(t *testing.T) {
		testTraceFile := filepath.Join(t.TempDir(), "trace.out")
		stop := initTrace(testLogger(t), testTraceFile)
		t.Cleanup(stop)
		assert.FileExists(t, testTraceFile)
	})
	t.Run("no file", func(t *testing.T) {
		stop := initTrace(testLogger(t), "")
		assert.NotPanics(t, stop)
	})
}

func Test_initLog(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "log.txt")
	lg, closeFn, err := initLog(logFile, true, true)
	require.NoError(t, err)
	t.Cleanup(closeFn)
	lg.Debug("hello")
	assert.FileExists(t, logFile)

	_, _, err = initLog(filepath.Join(t.TempDir(), "no", "such", "dir", "log.txt"), false, false)
	assert.Error(t, err)
}
