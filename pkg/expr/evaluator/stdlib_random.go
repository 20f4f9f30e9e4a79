package evaluator

import "math/rand"

// seededSource is the context's reproducible random generator together with
// the seed it was created from. Calling rand with the same nonzero seed
// continues the sequence; a different seed restarts it.
type seededSource struct {
	seed int64
	rng  *rand.Rand
}

// registerRandomFunctions installs rand and sgrand.
//
// rand(0) draws from the process-wide thread-safe source and is not
// reproducible. rand(x) with nonzero x draws from the context's seeded
// generator, seeding it with x first unless it is already seeded with x.
// sgrand(seed) reseeds the context generator and returns the previous seed,
// or 0 when none was set.
func (c *Context) registerRandomFunctions() {
	c.RegisterFunction(NewFunction("rand", 1, func(args []float64) (float64, error) {
		// Only an exact zero selects the unseeded source. The seed is
		// truncated after the test, so a fractional seed like 0.5 still
		// takes the reproducible path.
		if args[0] == 0.0 {
			return rand.Float64(), nil
		}
		return c.seededFloat(toInt64(args[0])), nil
	}))

	c.RegisterFunction(NewFunction("sgrand", 1, func(args []float64) (float64, error) {
		return float64(c.reseed(toInt64(args[0]))), nil
	}))
}

// seededFloat draws the next value from the context generator, reseeding it
// first when the requested seed differs from the current one.
func (c *Context) seededFloat(seed int64) float64 {
	c.seedMu.Lock()
	defer c.seedMu.Unlock()
	if c.seeded == nil || c.seeded.seed != seed {
		c.seeded = &seededSource{seed: seed, rng: rand.New(rand.NewSource(seed))}
	}
	return c.seeded.rng.Float64()
}

// reseed replaces the context generator and returns the previous seed, or 0
// when the generator had never been seeded.
func (c *Context) reseed(seed int64) int64 {
	c.seedMu.Lock()
	defer c.seedMu.Unlock()
	var previous int64
	if c.seeded != nil {
		previous = c.seeded.seed
	}
	c.seeded = &seededSource{seed: seed, rng: rand.New(rand.NewSource(seed))}
	return previous
}
