package shuffle

import (
	"math/rand"
	"sync"
	"time"
)

// randomShuffler implements Shuffler using math/rand
type randomShuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomShuffler creates a Shuffler seeded from the current time
func NewRandomShuffler() Shuffler {
	return &randomShuffler{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *randomShuffler) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}

func (s *randomShuffler) Pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}
