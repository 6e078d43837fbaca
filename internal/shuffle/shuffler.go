package shuffle

//go:generate mockgen -destination=mock/mock_shuffler.go -package=mockshuffle -source=shuffler.go

// Shuffler provides the randomness used for deck shuffles and free-creature
// rolls. This allows us to inject deterministic implementations for testing.
type Shuffler interface {
	// Shuffle randomizes n elements via the swap callback
	Shuffle(n int, swap func(i, j int))

	// Pick returns a uniform index in [0, n)
	Pick(n int) int
}
