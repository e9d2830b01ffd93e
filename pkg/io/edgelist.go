package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
)

// ReadEdgeList reads the experiment format: a "<nodes> <edges>" header and
// one "i j" line per edge, nodes numbered from 1. Blank lines are skipped.
// Node i of the file is labeled i in the returned graph.
func ReadEdgeList(r io.Reader) (*graph.Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	next := func() ([]string, bool) {
		for sc.Scan() {
			lineNo++
			if f := strings.Fields(sc.Text()); len(f) > 0 {
				return f, true
			}
		}
		return nil, false
	}

	head, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "missing header")
	}
	nums, err := parseInts(head, 2)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "line %d: header", lineNo)
	}
	numNodes, numEdges := nums[0], nums[1]
	if numNodes < 0 || numEdges < 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "line %d: negative count", lineNo)
	}

	g := graph.New()
	for i := int64(1); i <= numNodes; i++ {
		if _, err := g.AddNode(i); err != nil {
			return nil, err
		}
	}
	found := int64(0)
	for {
		f, ok := next()
		if !ok {
			break
		}
		ends, err := parseInts(f, 2)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "line %d", lineNo)
		}
		if _, err := g.AddEdgeByLabel(ends[0], ends[1]); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidGraph, err, "line %d", lineNo)
		}
		found++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if found != numEdges {
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "header declares %d edges, found %d", numEdges, found)
	}
	return g, nil
}

// ImportEdgeList reads an edge list file at path.
func ImportEdgeList(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadEdgeList(f)
}

// WriteEdgeList writes g in the experiment format. Nodes are renumbered 1
// to n in handle order; labels are not preserved.
func WriteEdgeList(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", g.NumNodes(), g.NumEdges())
	for _, e := range g.Edges() {
		u, v := g.Ends(e)
		fmt.Fprintf(bw, "%d %d\n", u+1, v+1)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func parseInts(fields []string, want int) ([]int64, error) {
	if len(fields) != want {
		return nil, fmt.Errorf("want %d numbers, got %d", want, len(fields))
	}
	out := make([]int64, want)
	for i, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
