package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/p5embed/internal/api"
	"github.com/ziadkadry99/p5embed/internal/embed"
	"github.com/ziadkadry99/p5embed/internal/preview"
	"github.com/ziadkadry99/p5embed/internal/sketch"
	"github.com/ziadkadry99/p5embed/internal/store"
)

const defaultListLimit = 20

// handleCreateSketch stores a new sketch.
func (s *Server) handleCreateSketch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	js, err := request.RequireString("js")
	if err != nil || strings.TrimSpace(js) == "" {
		return mcp.NewToolResultError("missing required parameter: js"), nil
	}

	doc := sketch.Document{
		JS:     js,
		HTML:   request.GetString("html", ""),
		CSS:    request.GetString("css", ""),
		Title:  request.GetString("title", ""),
		Author: request.GetString("author", ""),
	}.WithDefaults()

	saved, err := s.store.Create(ctx, doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create sketch: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Created sketch %q (id %s)\nEmbed URL: %s\nView URL: %s",
		saved.Title, saved.ID,
		s.cfg.PublicURL(api.EmbedPath(saved.ID)),
		s.cfg.PublicURL(api.ViewPath(saved.ID)),
	)), nil
}

// handleGetSketch returns a stored sketch as indented JSON.
func (s *Server) handleGetSketch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	sk, err := s.lookup(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(sk, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode sketch: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleListSketches lists stored sketches, newest first.
func (s *Server) handleListSketches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lister, ok := s.store.(store.Lister)
	if !ok {
		return mcp.NewToolResultError("the configured store cannot list sketches"), nil
	}

	limit := request.GetInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	sketches, err := lister.List(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sketches: %v", err)), nil
	}
	if len(sketches) == 0 {
		return mcp.NewToolResultText("No sketches stored yet. Use create_sketch to add one."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d sketch(es):\n", len(sketches))
	for _, sk := range sketches {
		fmt.Fprintf(&sb, "- %s: %q by %s (%s)\n", sk.ID, sk.Title, sk.Author, sk.Created.Format("2006-01-02 15:04"))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleEmbedCode builds the iframe snippet for a stored sketch.
func (s *Server) handleEmbedCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	sk, err := s.lookup(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := embed.DefaultOptions()
	opts.Width = request.GetString("width", opts.Width)
	opts.Height = request.GetString("height", opts.Height)
	opts.ShowCode = request.GetBool("show_code", opts.ShowCode)
	opts.Responsive = request.GetBool("responsive", opts.Responsive)
	opts.Autoplay = request.GetBool("autoplay", opts.Autoplay)

	src := s.cfg.PublicURL(api.EmbedPath(sk.ID))
	if opts.ShowCode {
		src += "?showCode=true"
	}
	return mcp.NewToolResultText(embed.Snippet(sk.Document(), src, opts)), nil
}

// handleRenderPreview renders sources into the preview document.
func (s *Server) handleRenderPreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	js, err := request.RequireString("js")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: js"), nil
	}

	doc := sketch.Document{
		JS:   js,
		HTML: request.GetString("html", ""),
		CSS:  request.GetString("css", ""),
	}.WithDefaults()

	return mcp.NewToolResultText(preview.Render(doc, s.cfg.P5URL)), nil
}

func (s *Server) lookup(ctx context.Context, id string) (*store.Sketch, error) {
	sk, err := s.store.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("no sketch with id %q", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sketch: %w", err)
	}
	return sk, nil
}
