package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/planarity/internal/experiment"
)

func TestExperimentModel(t *testing.T) {
	cancelled := false
	var m tea.Model = NewExperimentModel("wheel.el", 10, func() { cancelled = true })

	m, _ = m.Update(experimentProgressMsg{done: 5, total: 10})
	view := m.View()
	if !strings.Contains(view, "5/10 pairs") || !strings.Contains(view, "wheel.el") {
		t.Errorf("progress view = %q", view)
	}
	if strings.Count(view, "█") != progressWidth/2 {
		t.Errorf("bar should be half full: %q", view)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !cancelled {
		t.Error("ctrl+c should cancel the run")
	}

	m, cmd := m.Update(experimentDoneMsg{result: experiment.Result{Nodes: 7, Edges: 12, Attempts: 10}})
	if cmd == nil {
		t.Error("done should quit")
	}
	em := m.(ExperimentModel)
	if em.Result == nil || em.Result.Attempts != 10 || em.Done != 10 {
		t.Errorf("final model = %+v", em)
	}
	if m.View() != "" {
		t.Error("finished model should render nothing")
	}
}

func TestExperimentModelError(t *testing.T) {
	var m tea.Model = NewExperimentModel("big.el", 3, nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m, _ = m.Update(experimentDoneMsg{err: errors.New("verdicts disagree")})
	if em := m.(ExperimentModel); em.Err == nil || em.Result != nil {
		t.Errorf("model = %+v", em)
	}
}

func TestExperimentTable(t *testing.T) {
	out := experimentTable("k4.el", experiment.Result{Nodes: 4, Edges: 6, Attempts: 12, NonPlanar: 2, Elapsed: 1500 * time.Microsecond})
	for _, want := range []string{"k4.el", "Non-planar", "12", "10", "2ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("table misses %q:\n%s", want, out)
		}
	}
}
