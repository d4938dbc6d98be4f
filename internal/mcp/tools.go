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

package mcp

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/discord-mcp/internal/imagedl"
	"github.com/rusq/discord-mcp/types"
)

const toolDownloadChannelImages = "download_channel_images"

var (
	errInvalidArg = errors.New("invalid argument")
	// errBotNoAccess replaces the generic platform error when the bot is
	// not allowed into the channel.
	errBotNoAccess = errors.New("Bot has no access to the channel")
)

// ─── download_channel_images ──────────────────────────────────────────────────

func (s *Server) toolDownloadChannelImages() mcpsrv.ServerTool {
	tool := mcplib.NewTool(toolDownloadChannelImages,
		mcplib.WithDescription(`Download the images posted in a Discord channel.

Scans up to message_limit of the latest messages in the channel and saves
every image attachment (jpg, jpeg, png, gif, webp, svg) into
{output_dir}/{channel_name}_{channel_id}/ on the server host.  A
metadata.json file describing the run is written into the same directory.

Images that fail to download are skipped, the run still succeeds.`),
		mcplib.WithString("channel_id",
			mcplib.Description("Discord channel ID."),
			mcplib.Required(),
		),
		mcplib.WithString("output_dir",
			mcplib.Description("Directory to save the images into.  If not set, the server default is used ("+imagedl.DefOutputDir+" unless configured otherwise)."),
		),
		mcplib.WithNumber("message_limit",
			mcplib.Description("Number of the latest messages to scan."),
			mcplib.Min(1),
			mcplib.DefaultNumber(imagedl.DefMessageLimit),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Alias of message_limit."),
			mcplib.Min(1),
		),
		mcplib.WithNumber("image_limit",
			mcplib.Description("Maximum number of images to download.  Images beyond the limit are reported as skipped.  Unlimited if not set."),
			mcplib.Min(1),
		),
		mcplib.WithBoolean("include_metadata",
			mcplib.Description("Prefix the file names with the message date, author and message ID."),
			mcplib.DefaultBool(true),
		),
		mcplib.WithDestructiveHintAnnotation(false),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDownloadChannelImages}
}

func (s *Server) handleDownloadChannelImages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	dreq, err := downloadRequest(req)
	if err != nil {
		return nil, failed(err)
	}
	lg := s.loggerFrom(ctx)
	lg.InfoContext(ctx, "mcp: download_channel_images",
		"channel_id", dreq.ChannelID,
		"output_dir", dreq.OutputDir,
		"message_limit", dreq.MessageLimit,
		"image_limit", dreq.ImageLimit,
		"include_metadata", dreq.IncludeMetadata,
	)

	res, err := s.dl.Download(ctx, dreq)
	if err != nil {
		return nil, failed(err)
	}

	result, err := resultJSON(imagedl.Report(res))
	if err != nil {
		return nil, failed(fmt.Errorf("serialise: %w", err))
	}
	return result, nil
}

// downloadRequest parses the tool arguments.
func downloadRequest(req mcplib.CallToolRequest) (imagedl.Request, error) {
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return imagedl.Request{}, fmt.Errorf("%w: channel_id is required", errInvalidArg)
	}
	// empty output_dir is left for the downloader to default.
	outputDir, _ := stringArg(req, "output_dir")

	msgLimit := imagedl.DefMessageLimit
	// message_limit takes precedence over its alias.
	for _, name := range []string{"limit", "message_limit"} {
		n, ok, err := positiveIntArg(req, name)
		if err != nil {
			return imagedl.Request{}, err
		}
		if ok {
			msgLimit = n
		}
	}
	imgLimit, _, err := positiveIntArg(req, "image_limit")
	if err != nil {
		return imagedl.Request{}, err
	}

	return imagedl.Request{
		ChannelID:       channelID,
		OutputDir:       outputDir,
		MessageLimit:    msgLimit,
		ImageLimit:      imgLimit,
		IncludeMetadata: boolArg(req, "include_metadata", true),
	}, nil
}

// positiveIntArg returns the value of the positive integer argument name.
func positiveIntArg(req mcplib.CallToolRequest, name string) (int, bool, error) {
	n, ok, err := intArg(req, name)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", errInvalidArg, err)
	}
	if ok && n <= 0 {
		return 0, false, fmt.Errorf("%w: %s must be a positive integer", errInvalidArg, name)
	}
	return n, ok, nil
}

// failed wraps the error returned to the client.
func failed(err error) error {
	if errors.Is(err, types.ErrNoAccess) {
		err = errBotNoAccess
	}
	return fmt.Errorf("Failed to download images: %w", err)
}
