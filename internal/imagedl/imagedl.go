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

// Package imagedl downloads the images posted in a chat channel.
//
// The pipeline is sequential:  the channel is resolved and checked for read
// access, messages are fetched page by page, image attachments are
// extracted, optionally capped, and downloaded one by one into
//
//	{output_dir}/{channel_name}_{channel_id}/
//
// A failed download does not fail the run, the image is left out of the
// results.  Once all images are processed, the metadata.json file describing
// the run is written next to the images.
package imagedl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/trace"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rusq/fsadapter"

	"github.com/rusq/discord-mcp/internal/osext"
	"github.com/rusq/discord-mcp/types"
)

const (
	// DefMessageLimit is the default number of messages to scan.
	DefMessageLimit = 100
	// DefOutputDir is the default output directory.
	DefOutputDir = "./downloads"
)

var (
	// ErrUnsupportedChannel is returned when the channel has no message
	// history.
	ErrUnsupportedChannel = errors.New("not a text channel")
	// ErrPermission is returned when the bot lacks View Channel or Read
	// Message History permissions in a guild channel.
	ErrPermission = errors.New("insufficient permissions")
)

// MessageLister lists channel messages older than the message with ID
// before, newest first.  Empty before means "latest".
type MessageLister interface {
	Messages(ctx context.Context, channelID string, limit int, before string) (types.Messages, error)
}

// Platform is the chat platform capability provider.
type Platform interface {
	MessageLister
	// Channel resolves the channel.  It must return an error wrapping
	// types.ErrNotFound if the channel does not exist.
	Channel(ctx context.Context, channelID string) (types.Channel, error)
	// CanRead reports whether the bot may read the history of the guild
	// channel.
	CanRead(ctx context.Context, ch types.GuildChannel) (bool, error)
}

// Transferer downloads the file at url and saves it as name in fsa.
type Transferer interface {
	Fetch(ctx context.Context, url string, fsa fsadapter.FS, name string) (int64, error)
}

// Downloader is the channel image downloader.
type Downloader struct {
	p   Platform
	t   Transferer
	lg  *slog.Logger
	now func() time.Time
}

// Option is the function signature for the option functions.
type Option func(*Downloader)

// WithLogger sets the logger.  Nil logger is ignored.
func WithLogger(lg *slog.Logger) Option {
	return func(d *Downloader) {
		if lg != nil {
			d.lg = lg
		}
	}
}

// WithTransferer replaces the default HTTP Fetcher.
func WithTransferer(t Transferer) Option {
	return func(d *Downloader) {
		if t != nil {
			d.t = t
		}
	}
}

// New creates a new Downloader for the platform p.
func New(p Platform, opts ...Option) *Downloader {
	if p == nil {
		panic("programming error:  platform is nil")
	}
	d := &Downloader{
		p:   p,
		t:   NewFetcher(nil),
		lg:  slog.Default(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Request is the download request.
type Request struct {
	ChannelID string
	// OutputDir is the base directory, the channel directory is created
	// inside it.
	OutputDir string
	// MessageLimit is the number of messages to scan.
	MessageLimit int
	// ImageLimit caps the number of images downloaded, 0 means no cap.
	ImageLimit int
	// IncludeMetadata adds the date, author and message ID to the file
	// names.
	IncludeMetadata bool
}

func (r *Request) validate() error {
	if r.ChannelID == "" {
		return errors.New("channel_id is required")
	}
	if r.OutputDir == "" {
		r.OutputDir = DefOutputDir
	}
	if r.MessageLimit <= 0 {
		return ErrInvalidLimit
	}
	if r.ImageLimit < 0 {
		return errors.New("image_limit must be a positive integer")
	}
	return nil
}

// Result is the outcome of a download run.
type Result struct {
	Channel         types.Channel
	MessagesScanned int
	Metadata        *Metadata
}

// Download downloads the images from the channel described by the request.
// Resolution and permission errors abort the run.  Errors of individual
// downloads are logged and the image is omitted from the results.
func (d *Downloader) Download(ctx context.Context, req Request) (*Result, error) {
	ctx, task := trace.NewTask(ctx, "Download")
	defer task.End()

	if err := req.validate(); err != nil {
		return nil, err
	}
	lg := d.lg.With("channel_id", req.ChannelID)

	ch, err := d.resolve(ctx, req.ChannelID)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(req.OutputDir, ChannelDirName(ch))
	if err := osext.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lg.DebugContext(ctx, "output directory", "dir", dir)

	msgs, err := FetchMessages(ctx, d.p, ch.ID(), req.MessageLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	found := FilterImages(msgs)
	process, skipped := applyLimit(found, req.ImageLimit)
	lg.InfoContext(ctx, "scan complete", "messages", len(msgs), "images", len(found), "to_download", len(process))

	fsa := fsadapter.NewDirectory(dir)
	outcomes, errs := collect(process, func(c Candidate) (Outcome, error) {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		return d.save(ctx, lg, fsa, c, req.IncludeMetadata)
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("download cancelled: %w", err)
	}
	for _, err := range errs {
		lg.WarnContext(ctx, "failed to download", "error", err)
	}

	md := &Metadata{
		Channel: ChannelInfo{
			ID:   ch.ID(),
			Name: ch.Name(),
			Type: ch.Type(),
		},
		DownloadInfo: DownloadInfo{
			Date:            d.now().UTC().Format(dateFormat),
			MessagesScanned: len(msgs),
			TotalFound:      len(found),
			Downloaded:      len(outcomes),
			Skipped:         skipped,
			OutputDir:       dir,
		},
		Images: outcomes,
	}
	if req.ImageLimit > 0 {
		limit := req.ImageLimit
		md.DownloadInfo.ImageLimitApplied = &limit
	}
	if err := writeMetadata(fsa, md); err != nil {
		return nil, err
	}
	lg.InfoContext(ctx, "download complete", "downloaded", len(outcomes), "failed", len(errs), "skipped", skipped)

	return &Result{
		Channel:         ch,
		MessagesScanned: len(msgs),
		Metadata:        md,
	}, nil
}

// resolve resolves the channel and checks that it can be read.
func (d *Downloader) resolve(ctx context.Context, channelID string) (types.Channel, error) {
	ch, err := d.p.Channel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !ch.TextBased() {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrUnsupportedChannel)
	}
	switch c := ch.(type) {
	case types.GuildChannel:
		ok, err := d.p.CanRead(ctx, c)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w to read channel %s", ErrPermission, channelID)
		}
	case types.DirectChannel, types.UnknownChannel:
		// no per-member permissions.
	}
	return ch, nil
}

// save downloads a single candidate.
func (d *Downloader) save(ctx context.Context, lg *slog.Logger, fsa fsadapter.FS, c Candidate, includeMeta bool) (Outcome, error) {
	name := Filename(c, includeMeta)
	n, err := d.t.Fetch(ctx, c.Attachment.URL, fsa, name)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", c.Attachment.Name, err)
	}
	lg.DebugContext(ctx, "saved", "filename", name, "size", humanize.Bytes(uint64(n)))
	return Outcome{
		Filename:  name,
		URL:       c.Attachment.URL,
		Size:      c.Attachment.Size,
		MessageID: c.Message.ID,
		Author:    c.Message.Author,
		Timestamp: c.Message.Timestamp.UnixMilli(),
	}, nil
}

// applyLimit returns the first limit candidates and the number of skipped
// ones.  Zero limit returns all candidates.
func applyLimit(cc []Candidate, limit int) ([]Candidate, int) {
	if limit <= 0 || limit >= len(cc) {
		return cc, 0
	}
	return cc[:limit], len(cc) - limit
}

// collect calls fn for each item in order, and returns the successful
// results and the errors, each in the order of occurrence.
func collect[T, R any](items []T, fn func(T) (R, error)) ([]R, []error) {
	var (
		results = make([]R, 0, len(items))
		errs    []error
	)
	for _, it := range items {
		r, err := fn(it)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, r)
	}
	return results, errs
}
