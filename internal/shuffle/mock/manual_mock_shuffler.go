package mockshuffle

import "sync"

// ManualMockShuffler implements shuffle.Shuffler for testing. Shuffle leaves
// order untouched and Pick returns predetermined indexes.
type ManualMockShuffler struct {
	mu        sync.Mutex
	picks     []int
	pickIndex int
}

// NewManualMockShuffler creates a new mock shuffler
func NewManualMockShuffler() *ManualMockShuffler {
	return &ManualMockShuffler{}
}

// SetPicks sets the results returned by successive Pick calls
func (m *ManualMockShuffler) SetPicks(picks []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.picks = picks
	m.pickIndex = 0
}

// Shuffle keeps the current order so tests stay deterministic
func (m *ManualMockShuffler) Shuffle(n int, swap func(i, j int)) {}

// Pick returns the next predetermined index, or 0 when exhausted
func (m *ManualMockShuffler) Pick(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pickIndex >= len(m.picks) {
		return 0
	}
	pick := m.picks[m.pickIndex]
	m.pickIndex++
	if n > 0 {
		pick %= n
	}
	return pick
}
