package app

import "wireworld/internal/engine"

// Mode tracks what the user asked for (play, turbo) and derives the engine
// commands needed to reach it.
type Mode struct {
	Playing bool
	Turbo   bool

	engineTurbo bool
}

// Sync returns the command that brings the engine's turbo state in line with
// the requested mode, if any. Turbo runs only while playing.
func (m *Mode) Sync() (engine.Command, bool) {
	want := m.Playing && m.Turbo
	if want == m.engineTurbo {
		return engine.Command{}, false
	}
	m.engineTurbo = want
	if want {
		return engine.StartTurbo(), true
	}
	return engine.StopTurbo(), true
}

// Paced reports whether generations should be issued one at a time.
func (m *Mode) Paced() bool { return m.Playing && !m.Turbo }

// Status describes the mode for the HUD.
func (m *Mode) Status() string {
	switch {
	case m.Playing && m.Turbo:
		return "TURBO"
	case m.Playing:
		return "PLAYING"
	}
	return "PAUSED"
}
