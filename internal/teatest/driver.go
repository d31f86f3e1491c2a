// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is executed and fed back
// until the model goes quiet, so tests never start a tea.Program or spawn
// long-lived goroutines.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may execute.
const MaxDrainDepth = 100

// cmdTimeout caps a single Cmd. Planner calls against an in-memory database
// finish well inside it; timer-driven Cmds such as cursor blinks do not and
// are dropped.
const cmdTimeout = 250 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced. The runtime
	// normally swallows it, so the driver records it itself.
	Quitting bool
}

// Option configures the Driver during construction.
type Option func(*Driver)

// New wraps model. Call DrainInit to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg and drains whatever it triggers. Messages sent after
// the model quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) PressTab()   { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyTab}) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlC}) }
func (d *Driver) PressUp()    { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyUp}) }
func (d *Driver) PressDown()  { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyDown}) }
func (d *Driver) PressLeft()  { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyLeft}) }
func (d *Driver) PressRight() { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyRight}) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runCmd(cmd)
	if msg == nil || isBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(m)
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(m)
		d.drain(next, depth+1)
	}
}

// runCmd executes cmd, giving up after cmdTimeout.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported blink messages of bubbles/cursor.
func isBlink(msg tea.Msg) bool {
	name := strings.ToLower(fmt.Sprintf("%T", msg))
	return strings.Contains(name, "blink")
}
