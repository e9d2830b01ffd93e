package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/planarity/pkg/errors"
)

// rsvgConvert is the converter binary; tests replace it.
var rsvgConvert = "rsvg-convert"

// ToPDF converts SVG bytes to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG at the given zoom. A scale of zero or
// less means 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

// Available reports whether PDF and PNG conversion can run.
func Available() bool {
	_, err := exec.LookPath(rsvgConvert)
	return err == nil
}

func convert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if len(svg) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "empty svg")
	}
	if !Available() {
		return nil, perrors.New(perrors.ErrCodeUnsupported,
			"%s export needs %s (brew install librsvg, apt install librsvg2-bin)", format, rsvgConvert)
	}

	cmd := exec.CommandContext(ctx, rsvgConvert, append([]string{"-f", format}, extraArgs...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "%s: %s", rsvgConvert, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
