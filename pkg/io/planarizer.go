package io

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/planarize"
)

const (
	headerNodes   = "NODES"
	headerEdges   = "EDGES"
	headerVirtual = "VIRTUAL NODE START"
)

var planarizerLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Header", Pattern: `NODES|EDGES|VIRTUAL[ \t]+NODE[ \t]+START`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

type planarizerFile struct {
	Sections []*section `parser:"EOL* @@*"`
}

type section struct {
	Pos    lexer.Position
	Header string  `parser:"@Header EOL+"`
	Lines  []*line `parser:"@@*"`
}

type line struct {
	Pos    lexer.Position
	Values []int64 `parser:"@Int+ EOL+"`
}

var parsePlanarizer = participle.MustBuild[planarizerFile](
	participle.Lexer(planarizerLexer),
	participle.Elide("Comment", "Whitespace"),
)

// PlanarizerInput is a parsed planarizer input file.
type PlanarizerInput struct {
	Graph *graph.Graph
	// VirtualStart is the requested first virtual node number, or 0.
	VirtualStart int64
}

// ReadPlanarizerInput parses the planarizer text format from r. name is used
// in error positions only.
func ReadPlanarizerInput(r io.Reader, name string) (*PlanarizerInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	ast, err := parsePlanarizer.ParseBytes(name, data)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			pos := perr.Position()
			return nil, perrors.Wrap(perrors.ErrCodeParse, err, "%s at line %d", name, pos.Line)
		}
		return nil, perrors.Wrap(perrors.ErrCodeParse, err, "%s", name)
	}
	return ast.build(name)
}

// ImportPlanarizerInput reads a planarizer input file at path.
func ImportPlanarizerInput(path string) (*PlanarizerInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPlanarizerInput(f, path)
}

func (f *planarizerFile) build(name string) (*PlanarizerInput, error) {
	in := &PlanarizerInput{Graph: graph.New()}
	fail := func(l *line, format string, args ...any) error {
		return perrors.New(perrors.ErrCodeParse, "%s at line %d: %s", name, l.Pos.Line, fmt.Sprintf(format, args...))
	}
	// Edges may come before the nodes they name.
	var edges []*line
	for _, s := range f.Sections {
		switch strings.Join(strings.Fields(s.Header), " ") {
		case headerNodes:
			for _, l := range s.Lines {
				if len(l.Values) != 1 {
					return nil, fail(l, "invalid node")
				}
				if _, err := in.Graph.AddNode(l.Values[0]); err != nil {
					return nil, fail(l, "%v", err)
				}
			}
		case headerEdges:
			for _, l := range s.Lines {
				if len(l.Values) != 2 {
					return nil, fail(l, "invalid edge")
				}
				edges = append(edges, l)
			}
		case headerVirtual:
			for _, l := range s.Lines {
				if len(l.Values) != 1 {
					return nil, fail(l, "invalid virtual node start")
				}
				in.VirtualStart = l.Values[0]
			}
		}
	}
	for _, l := range edges {
		if _, err := in.Graph.AddEdgeByLabel(l.Values[0], l.Values[1]); err != nil {
			return nil, fail(l, "%v", err)
		}
	}
	return in, nil
}

// WritePlanarized writes res in the planarizer output format. Virtual nodes
// are numbered from the larger of virtualStart and one above the largest
// input node, in creation order, regardless of the labels res carries.
func WritePlanarized(w io.Writer, res *planarize.Result, virtualStart int64) error {
	g := res.Graph
	number := make([]int64, g.NumNodes())
	next := virtualStart
	for _, n := range g.Nodes() {
		if !g.IsVirtual(n) {
			number[n] = g.Label(n)
			next = max(next, number[n]+1)
		}
	}
	for _, n := range res.Virtual {
		number[n] = next
		next++
	}

	var b strings.Builder
	if g.NumNodes() > 0 {
		b.WriteString(headerNodes + "\n")
	}
	for _, n := range g.Nodes() {
		if g.IsVirtual(n) {
			continue
		}
		b.WriteString(strconv.FormatInt(number[n], 10) + "\n")
	}
	if len(res.Virtual) > 0 {
		b.WriteString("VIRTUAL_NODES\n")
	}
	for _, n := range res.Virtual {
		b.WriteString(strconv.FormatInt(number[n], 10) + "\n")
	}
	if len(res.Chains) > 0 {
		b.WriteString(headerEdges + "\n")
	}
	for _, chain := range res.Chains {
		for i, n := range chain {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatInt(number[n], 10))
		}
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportPlanarized writes res to a file at path.
func ExportPlanarized(res *planarize.Result, path string, virtualStart int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePlanarized(f, res, virtualStart)
}
