package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	perrors "github.com/matzehuels/planarity/pkg/errors"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		data string
		want string
	}{
		{"g.json", "", formatJSON},
		{"g.EL", "", formatEdgeList},
		{"g.edges", "", formatEdgeList},
		{"g.txt", "\n\n  {\"nodes\":[]}", formatJSON},
		{"g.txt", "# comment\nNODES\n1\n", formatPlanarizer},
		{"g.txt", "EDGES\n1 2\n", formatPlanarizer},
		{"g.txt", "VIRTUAL NODE START\n9\n", formatPlanarizer},
		{"g.txt", "3 3\n1 2\n", formatEdgeList},
		{"-", "", formatEdgeList},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.want, func(t *testing.T) {
			if got := detectFormat(tt.path, []byte(tt.data)); got != tt.want {
				t.Errorf("detectFormat(%q, %q) = %q, want %q", tt.path, tt.data, got, tt.want)
			}
		})
	}
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "k5.txt")
	if err := os.WriteFile(path, []byte(k5Planarizer), 0o644); err != nil {
		t.Fatal(err)
	}

	in, err := readInput(path, formatAuto, nil)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if in.Format != formatPlanarizer || in.VirtualStart != 100 {
		t.Errorf("format %q virtual start %d", in.Format, in.VirtualStart)
	}
	if in.Graph.NumNodes() != 5 || in.Graph.NumEdges() != 10 {
		t.Errorf("graph has %d nodes and %d edges", in.Graph.NumNodes(), in.Graph.NumEdges())
	}

	in, err = readInput("-", "", strings.NewReader(k4EdgeList))
	if err != nil {
		t.Fatalf("readInput stdin: %v", err)
	}
	if in.Name != "stdin" || in.Format != formatEdgeList || in.Graph.NumEdges() != 6 {
		t.Errorf("stdin input = %+v", in)
	}
}

func TestReadInputErrors(t *testing.T) {
	if _, err := readInput("-", "graphml", strings.NewReader("")); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("unknown format: %v", err)
	}
	if _, err := readInput(filepath.Join(t.TempDir(), "nope.json"), formatAuto, nil); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := readInput("-", formatEdgeList, strings.NewReader("3 2\n1 2\n")); !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("short edge list: %v", err)
	}
}
