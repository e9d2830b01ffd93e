package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/planarity/pkg/graph"
)

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []graph.EdgeID
		wantErr bool
	}{
		{
			name:  "two indices",
			input: "0,1",
			want:  []graph.EdgeID{0, 1},
		},
		{
			name:  "three indices",
			input: "0,1,2",
			want:  []graph.EdgeID{0, 1, 2},
		},
		{
			name:  "with spaces",
			input: "3, 1, 2",
			want:  []graph.EdgeID{3, 1, 2},
		},
		{
			name:    "single index",
			input:   "0",
			wantErr: true,
		},
		{
			name:    "invalid index",
			input:   "0,a",
			wantErr: true,
		},
		{
			name:    "out of range",
			input:   "0,4",
			wantErr: true,
		},
		{
			name:    "negative",
			input:   "-1,0",
			wantErr: true,
		},
		{
			name:    "repeated",
			input:   "1,1",
			wantErr: true,
		},
		{
			name:    "just comma",
			input:   ",",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseConstraint(tt.input, 4)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseConstraint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			if len(got) != len(tt.want) {
				t.Errorf("parseConstraint(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseConstraint(%q)[%d] = %d, want %d", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestPQTreeCommandDOT(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "pqtree", "--dot", "--labels", "A,B,C,D", "0,1", "1,2")
	if err != nil {
		t.Fatalf("pqtree: %v", err)
	}
	if !strings.HasPrefix(out, "digraph") {
		t.Errorf("expected DOT output, got %q", out)
	}
	for _, l := range []string{"A", "B", "C", "D"} {
		if !strings.Contains(out, l) {
			t.Errorf("DOT output misses leaf %s", l)
		}
	}
}

func TestPQTreeCommandInfeasible(t *testing.T) {
	isolate(t)
	// Pairs around a cycle of four leaves plus a chord cannot all hold.
	_, err := runCLI(t, "pqtree", "--dot", "0,1", "1,2", "2,3", "0,2")
	if err == nil {
		t.Fatal("expected the last constraint to fail")
	}
	if !strings.Contains(err.Error(), `"0,2"`) {
		t.Errorf("error should name the failing constraint: %v", err)
	}
}
