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
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/rusq/tracer"
)

// initLog initialises the logging.  Log messages are written to STDERR, as
// STDOUT is used by the stdio transport.  If the filename is not empty, the
// file will be opened, and the logger output will be switched to that file.
// Returns the initialised logger, the close function and an error, if any.
// The close function must be called before the program exits, it will close
// the log file, if it is open.
func initLog(filename string, jsonHandler bool, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if filename != "" {
		lf, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o666)
		if err != nil {
			return slog.Default(), closeFn, fmt.Errorf("failed to create the log file: %w", err)
		}
		log.SetOutput(lf) // redirect the standard log to the file just in case, panics will be logged there.
		w = lf
		closeFn = func() {
			if err := lf.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close the log file: %s\n", err)
			}
		}
	}

	lg := slog.New(newHandler(w, jsonHandler, opts))
	slog.SetDefault(lg)
	if filename != "" {
		lg.Debug("log messages will be written to file", "filename", filename)
	}
	return lg, closeFn, nil
}

func newHandler(w io.Writer, jsonHandler bool, opts *slog.HandlerOptions) slog.Handler {
	if jsonHandler {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// initTrace initialises the tracing.  If the filename is not empty, the file
// will be opened, trace will write to that file.  Returns the stop function
// that must be called in the deferred call.
func initTrace(lg *slog.Logger, filename string) (stop func()) {
	stop = func() {}
	if filename == "" {
		return
	}

	lg.Info("trace will be written to", "filename", filename)

	trc := tracer.New(filename)
	if err := trc.Start(); err != nil {
		lg.Warn("failed to start the trace", "filename", filename, "error", err)
		return
	}

	stop = func() {
		if err := trc.End(); err != nil {
			lg.Warn("failed to write the trace file", "filename", filename, "error", err)
		}
	}
	return
}
