package cli

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows a progress indicator on statusOut while a command works.
// It stops when its context is cancelled.
type Spinner struct {
	ctx     context.Context
	program *tea.Program
	stopped chan struct{}
	started atomic.Bool
	once    sync.Once
}

type spinnerTick struct{}

type spinnerStop struct{}

type spinnerModel struct {
	message string
	frame   int
	done    bool
}

func (m spinnerModel) Init() tea.Cmd { return spinnerTickCmd() }

func spinnerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg { return spinnerTick{} })
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case spinnerTick:
		m.frame++
		return m, spinnerTickCmd()
	case spinnerStop:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	frame := spinnerFrames[m.frame%len(spinnerFrames)]
	return styleIconSpinner.Render(frame) + " " + StyleDim.Render(m.message)
}

// newSpinner creates a new spinner with the given message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that will stop when the context is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		ctx: ctx,
		program: tea.NewProgram(spinnerModel{message: message},
			tea.WithContext(ctx),
			tea.WithInput(nil),
			tea.WithOutput(statusOut),
			tea.WithoutSignalHandler(),
		),
		stopped: make(chan struct{}),
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(s.stopped)
		_, _ = s.program.Run()
	}()
}

// Stop stops the spinner and clears its line. Stop may be called more
// than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		if !s.started.Load() {
			return
		}
		s.program.Send(spinnerStop{})
		<-s.stopped
	})
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled returns true if the spinner's context was cancelled.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
