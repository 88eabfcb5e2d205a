package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/orbitreel/internal/render"
	"github.com/san-kum/orbitreel/internal/trajectory"
)

func lineTable(n int) *trajectory.Table {
	t := &trajectory.Table{Times: make([]float64, n)}
	b := trajectory.Body{X: make([]float64, n), Y: make([]float64, n)}
	for j := 0; j < n; j++ {
		t.Times[j] = float64(j)
		b.X[j] = -4 + 8*float64(j)/float64(n)
	}
	t.Bodies = []trajectory.Body{b}
	return t
}

func newTestModel(frames int) Model {
	return NewModel(lineTable(10), frames, render.DefaultViewport(), render.DefaultPalette(),
		Options{Title: "test", Interval: time.Millisecond, Cols: 20, Rows: 10})
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	if key == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func tick(m Model) Model {
	next, _ := m.Update(TickMsg(time.Now()))
	return next.(Model)
}

func TestPlaybackStopsAtEnd(t *testing.T) {
	m := newTestModel(3)
	for i := 0; i < 5; i++ {
		m = tick(m)
	}
	if m.Frame() != 2 {
		t.Errorf("expected last frame 2, got %d", m.Frame())
	}
	if m.Running() {
		t.Error("expected playback to stop at the end")
	}
}

func TestPauseAndStep(t *testing.T) {
	m := newTestModel(5)
	m = press(m, " ")
	if m.Running() {
		t.Fatal("expected space to pause")
	}
	m = tick(m)
	if m.Frame() != 0 {
		t.Errorf("expected paused model to hold frame 0, got %d", m.Frame())
	}

	m = press(m, "]")
	m = press(m, "]")
	if m.Frame() != 2 {
		t.Errorf("expected frame 2, got %d", m.Frame())
	}
	m = press(m, "[")
	m = press(m, "[")
	m = press(m, "[")
	if m.Frame() != 0 {
		t.Errorf("expected step back to clamp at 0, got %d", m.Frame())
	}
}

func TestRestart(t *testing.T) {
	m := newTestModel(5)
	m = tick(tick(m))
	m = press(m, " ")
	m = press(m, "r")
	if m.Frame() != 0 || !m.Running() {
		t.Errorf("expected restart to play from 0, got frame %d running %v", m.Frame(), m.Running())
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(5)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message")
	}
}

func TestFramesClampedToTable(t *testing.T) {
	m := newTestModel(50)
	for i := 0; i < 60; i++ {
		m = tick(m)
	}
	if m.Frame() != 9 {
		t.Errorf("expected last frame 9, got %d", m.Frame())
	}
}

func TestViewShowsTrail(t *testing.T) {
	m := newTestModel(10)
	m = tick(tick(tick(m)))

	v := m.View()
	if !strings.Contains(v, "frame") || !strings.Contains(v, "4/10") {
		t.Errorf("expected frame counter in view, got %q", v)
	}
	if !strings.ContainsFunc(v, func(r rune) bool { return r > blank && r <= 0x28ff }) {
		t.Error("expected braille dots in view")
	}
}
