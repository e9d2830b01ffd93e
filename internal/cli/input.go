package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
	pio "github.com/matzehuels/planarity/pkg/io"
)

// Input formats accepted by --format.
const (
	formatAuto       = "auto"
	formatJSON       = "json"
	formatPlanarizer = "planarizer"
	formatEdgeList   = "edgelist"
)

var inputFormats = []string{formatAuto, formatJSON, formatPlanarizer, formatEdgeList}

// input is a graph read from a file or stdin.
type input struct {
	Graph *graph.Graph
	// VirtualStart is set by planarizer files that name one.
	VirtualStart int64
	Name         string
	Format       string
}

// readInput reads path, or stdin when path is "-". The auto format looks
// at the extension first and at the content second.
func readInput(path, format string, stdin io.Reader) (*input, error) {
	var (
		data []byte
		err  error
		name = path
	)
	if path == "-" {
		name = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	if format == "" || format == formatAuto {
		format = detectFormat(path, data)
	}
	in := &input{Name: name, Format: format}
	switch format {
	case formatJSON:
		in.Graph, err = pio.ReadJSON(bytes.NewReader(data))
	case formatEdgeList:
		in.Graph, err = pio.ReadEdgeList(bytes.NewReader(data))
	case formatPlanarizer:
		var p *pio.PlanarizerInput
		if p, err = pio.ReadPlanarizerInput(bytes.NewReader(data), name); err == nil {
			in.Graph, in.VirtualStart = p.Graph, p.VirtualStart
		}
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidInput,
			"unknown format %q (want one of %s)", format, strings.Join(inputFormats, ", "))
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

// detectFormat guesses the format of data read from path.
func detectFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON
	case ".el", ".edges":
		return formatEdgeList
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "{"):
			return formatJSON
		case strings.HasPrefix(line, "#"),
			strings.HasPrefix(line, "NODES"),
			strings.HasPrefix(line, "EDGES"),
			strings.HasPrefix(line, "VIRTUAL"):
			return formatPlanarizer
		}
		return formatEdgeList
	}
	return formatEdgeList
}
