package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/render"
	"github.com/matzehuels/planarity/pkg/render/nodelink"
)

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, data []byte, path string) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// writeDrawing renders g with graphviz and writes it to path. The
// extension selects SVG, PNG or PDF.
func writeDrawing(ctx context.Context, g *graph.Graph, opts nodelink.Options, path string) error {
	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, opts))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return writeImage(ctx, svg, path)
}

// writeImage converts svg to the format named by the extension of path.
func writeImage(ctx context.Context, svg []byte, path string) error {
	var (
		data = svg
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg", "":
	case ".png":
		data, err = render.ToPNG(ctx, svg, 2)
	case ".pdf":
		data, err = render.ToPDF(ctx, svg)
	default:
		return fmt.Errorf("unsupported image format %q (want .svg, .png or .pdf)", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
