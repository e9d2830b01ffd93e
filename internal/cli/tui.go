package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/planarity/internal/experiment"
)

const progressWidth = 32

var (
	progressFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	progressEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ExperimentModel - Live progress of an experiment run
// =============================================================================

// experimentProgressMsg reports pairs finished so far.
type experimentProgressMsg struct{ done, total int }

// experimentDoneMsg ends the run.
type experimentDoneMsg struct {
	result experiment.Result
	err    error
}

// ExperimentModel is the bubbletea model that draws a progress bar while
// an experiment runs.
type ExperimentModel struct {
	Name   string
	Done   int
	Total  int
	Start  time.Time
	Result *experiment.Result
	Err    error

	cancel context.CancelFunc
}

// NewExperimentModel creates a progress model for total pairs. cancel is
// called when the user interrupts the run.
func NewExperimentModel(name string, total int, cancel context.CancelFunc) ExperimentModel {
	return ExperimentModel{Name: name, Total: total, Start: time.Now(), cancel: cancel}
}

func (m ExperimentModel) Init() tea.Cmd {
	return nil
}

func (m ExperimentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.cancel != nil {
			m.cancel()
		}
	case experimentProgressMsg:
		m.Done, m.Total = msg.done, msg.total
	case experimentDoneMsg:
		if msg.err != nil {
			m.Err = msg.err
		} else {
			r := msg.result
			m.Result = &r
			m.Done = m.Total
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m ExperimentModel) View() string {
	if m.Result != nil || m.Err != nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Cross-checking " + m.Name))
	b.WriteString("\n")

	filled := 0
	if m.Total > 0 {
		filled = m.Done * progressWidth / m.Total
	}
	b.WriteString(progressFullStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(progressEmptyStyle.Render(strings.Repeat("░", progressWidth-filled)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d pairs  %s",
		m.Done, m.Total, time.Since(m.Start).Round(100*time.Millisecond))))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Result Table
// =============================================================================

// experimentTable renders a finished run as a bordered table.
func experimentTable(name string, r experiment.Result) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	planar := r.Attempts - r.NonPlanar

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Graph", "Nodes", "Edges", "Pairs", "Planar", "Non-planar", "Elapsed").
		Row(name,
			fmt.Sprint(r.Nodes),
			fmt.Sprint(r.Edges),
			fmt.Sprint(r.Attempts),
			fmt.Sprint(planar),
			fmt.Sprint(r.NonPlanar),
			r.Elapsed.Round(time.Millisecond).String()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case col == 4 && planar > 0:
				return base.Foreground(colorGreen)
			case col == 5 && r.NonPlanar > 0:
				return base.Foreground(colorRed)
			case col == 0:
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorGray)
		})
	return t.Render()
}
