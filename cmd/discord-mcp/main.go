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

// Command discord-mcp is the MCP server that downloads images from Discord
// channels.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"

	"github.com/rusq/discord-mcp/internal/discord"
	"github.com/rusq/discord-mcp/internal/imagedl"
	"github.com/rusq/discord-mcp/internal/mcp"
	"github.com/rusq/discord-mcp/internal/network"
	"github.com/rusq/discord-mcp/internal/osext"
)

const discordTokenEnv = "DISCORD_TOKEN"

const (
	defListenAddr   = "127.0.0.1:8483"
	defReadyTimeout = 30 * time.Second
	defRate         = network.DefaultRate // requests per second
	defBurst        = 1
)

var build = "dev"

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

// params is the command line parameters
type params struct {
	token        string
	transport    mcp.Transport
	listenAddr   string
	outputDir    string
	readyTimeout time.Duration

	logFile      string // log file
	jsonLog      bool
	traceFile    string // trace file
	printVersion bool
	verbose      bool
}

func main() {
	loadSecrets(secrets)

	p, err := parseCmdLine(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if p.printVersion {
		fmt.Println(build)
		return
	}

	lg, closeLog, err := initLog(p.logFile, p.jsonLog, p.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, lg, p)
	stop()
	if err != nil {
		lg.Error("fatal", "error", err)
		closeLog()
		os.Exit(1)
	}
	closeLog()
}

// run starts the Discord session and serves the MCP server until ctx is
// cancelled.
func run(ctx context.Context, lg *slog.Logger, p params) error {
	stopTrace := initTrace(lg, p.traceFile)
	defer stopTrace()

	network.SetLogger(lg)

	ready := discord.NewReadiness()
	sess, err := discord.Open(p.token, ready, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			lg.Warn("failed to close the discord session", "error", err)
		}
	}()

	if err := ready.Wait(ctx, p.readyTimeout); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		// tool calls are rejected until the client is ready.
		lg.Warn("Discord client is not ready yet", "error", err, "timeout", p.readyTimeout)
	} else {
		lg.Info("Discord client ready", "bot", ready.Tag())
	}

	srv := newServer(sess, ready, lg, p)
	switch p.transport {
	case mcp.TransportHTTP:
		return srv.ServeHTTP(ctx, p.listenAddr)
	default:
		if osext.IsTerminal(os.Stdin) {
			lg.Warn("STDIN is a terminal, the stdio transport expects an MCP client, use -transport=http to serve over the network")
		}
		return srv.ServeStdio(ctx)
	}
}

// newServer wires the MCP server to the Discord session.
func newServer(sess discord.Session, ready *discord.Readiness, lg *slog.Logger, p params) *mcp.Server {
	cl := discord.New(sess, ready,
		discord.WithLogger(lg),
		discord.WithLimiter(network.NewLimiter(defRate, defBurst)),
	)
	dl := &defaultDirDownloader{
		dl:  imagedl.New(cl, imagedl.WithLogger(lg)),
		dir: p.outputDir,
	}
	return mcp.New(dl, mcp.WithLogger(lg), mcp.WithReadiness(ready))
}

// defaultDirDownloader sets the output directory configured on the command
// line for the tool calls that do not specify one.
type defaultDirDownloader struct {
	dl  mcp.Downloader
	dir string
}

func (d *defaultDirDownloader) Download(ctx context.Context, req imagedl.Request) (*imagedl.Result, error) {
	if d.dir != "" && req.OutputDir == "" {
		req.OutputDir = d.dir
	}
	return d.dl.Download(ctx, req)
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// parseCmdLine parses the command line arguments.
func parseCmdLine(args []string) (params, error) {
	fs := flag.NewFlagSet("discord-mcp", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			fs.Output(),
			"discord-mcp, %s\n"+
				"MCP server that downloads the images posted in Discord channels.\n\n"+
				"Usage:  %s [flags]\n\n",
			build, filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}

	var (
		p         params
		transport string
	)
	fs.StringVar(&p.token, "token", osenv.Secret(discordTokenEnv, ""), "Discord bot `token` (environment: "+discordTokenEnv+")")
	fs.StringVar(&transport, "transport", osenv.Value("MCP_TRANSPORT", string(mcp.TransportStdio)), "MCP transport: \"stdio\" or \"http\"")
	fs.StringVar(&p.listenAddr, "listen", osenv.Value("MCP_LISTEN", defListenAddr), "`address` to listen on when -transport=http")
	fs.StringVar(&p.outputDir, "output-dir", osenv.Value("OUTPUT_DIR", imagedl.DefOutputDir), "default output `directory`, used when the tool call does not specify one")
	fs.DurationVar(&p.readyTimeout, "ready-timeout", defReadyTimeout, "how long to wait for the Discord client to become ready")

	fs.StringVar(&p.logFile, "log", osenv.Value("LOG_FILE", ""), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&p.jsonLog, "log-json", osenv.Value("JSON_LOG", false), "log in JSON format")
	fs.StringVar(&p.traceFile, "trace", osenv.Value("TRACE_FILE", ""), "trace `file` (optional)")
	fs.BoolVar(&p.printVersion, "V", false, "print version and exit")
	fs.BoolVar(&p.verbose, "v", osenv.Value("DEBUG", false), "verbose messages")

	os.Unsetenv(discordTokenEnv)

	if err := fs.Parse(args); err != nil {
		return p, err
	}
	p.transport = mcp.Transport(transport)

	return p, p.validate()
}

var (
	errNoToken   = errors.New("Discord token is required, set " + discordTokenEnv + " or use -token")
	errTransport = errors.New("invalid transport")
)

func (p *params) validate() error {
	if p.printVersion {
		return nil
	}
	if p.token == "" {
		return errNoToken
	}
	switch p.transport {
	case mcp.TransportStdio, mcp.TransportHTTP:
	default:
		return fmt.Errorf("%w: %q", errTransport, p.transport)
	}
	if p.readyTimeout <= 0 {
		return errors.New("ready-timeout must be positive")
	}
	return nil
}
