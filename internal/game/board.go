package game

import "math/rand"

// NewPool samples PoolSize distinct numbers from [1, MaxNumber] without
// replacement. The rng is supplied by the caller so rooms can be seeded
// deterministically in tests.
func NewPool(rng *rand.Rand) Pool {
	perm := rng.Perm(MaxNumber)
	pool := make(Pool, PoolSize)
	for i := range pool {
		pool[i] = perm[i] + 1
	}
	return pool
}

// NewBoard reshapes a fresh, independent permutation of the pool into 5
// rows of 5. Two boards built from the same pool hold the same numbers in
// different arrangements.
func NewBoard(pool Pool, rng *rand.Rand) Board {
	shuffled := make([]int, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var b Board
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			b[r][c] = shuffled[r*BoardSize+c]
		}
	}
	return b
}
