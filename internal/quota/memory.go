package quota

import (
	"github.com/schollz/progressbar/v3"

	"github.com/hfranklin/reddit-archiver/internal/sync_"
)

type counts struct {
	attempts  int
	successes int
}

// Memory is an in-process Counter, optionally driving a progress bar that
// tracks successful downloads against the configured maximum.
type Memory struct {
	state *sync_.Mutexed[counts]
	bar   *progressbar.ProgressBar
}

func NewMemory() *Memory {
	return &Memory{state: sync_.NewMutexed(counts{})}
}

// NewMemoryBar is like NewMemory, but also renders a progress bar with max as
// its upper bound.
func NewMemoryBar(max int) *Memory {
	m := NewMemory()
	m.bar = progressbar.Default(int64(max), "downloading")
	return m
}

func (m *Memory) Count() int {
	return m.state.Get().successes
}

// Attempts returns how many attempts have been recorded, successful or not.
func (m *Memory) Attempts() int {
	return m.state.Get().attempts
}

func (m *Memory) RecordAttempt(succeeded bool) {
	_ = m.state.Locked(func(c *counts) error {
		c.attempts++
		if succeeded {
			c.successes++
			if m.bar != nil {
				_ = m.bar.Add(1)
			}
		}
		return nil
	})
}
