package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg carries a deferred callback back into the Update loop.
type frameMsg struct {
	run func()
}

// FrameScheduler implements interact.FrameScheduler on top of tea.Tick.
// Requests are queued as commands and drained by the model after each
// Update, so callbacks always run on the bubbletea event loop.
type FrameScheduler struct {
	interval time.Duration
	queued   []tea.Cmd
}

// NewFrameScheduler creates a scheduler that fires after interval.
func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	return &FrameScheduler{interval: interval}
}

func (s *FrameScheduler) RequestFrame(fn func()) {
	s.queued = append(s.queued, tea.Tick(s.interval, func(time.Time) tea.Msg {
		return frameMsg{run: fn}
	}))
}

// Drain returns and forgets the queued frame commands.
func (s *FrameScheduler) Drain() []tea.Cmd {
	cmds := s.queued
	s.queued = nil
	return cmds
}
