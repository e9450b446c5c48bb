package recipe

import "math/rand/v2"

// Picker owns the recipe pool and the currently selected index. While the
// pool is non-empty the index is always in [0, len(pool)).
type Picker struct {
	pool []Recipe
	idx  int
	intn func(n int) int
}

// NewPicker returns a Picker backed by math/rand.
func NewPicker() Picker {
	return NewPickerWithRand(rand.IntN)
}

// NewPickerWithRand injects the uniform random source. intn must return a
// value in [0, n) for n > 0.
func NewPickerWithRand(intn func(n int) int) Picker {
	return Picker{intn: intn}
}

// SetPool replaces the pool and randomizes the selection as one step.
func (p *Picker) SetPool(pool []Recipe) {
	p.pool = pool
	p.idx = 0
	if len(pool) > 0 {
		p.idx = p.intn(len(pool))
	}
}

// Shuffle draws a new random index from the existing pool. A draw landing
// on the current index advances one position modulo the pool length, so a
// pool of two or more never shows the same recipe twice in a row. No-op on
// pools of fewer than two recipes.
func (p *Picker) Shuffle() {
	if len(p.pool) < 2 {
		return
	}
	n := p.intn(len(p.pool))
	if n == p.idx {
		n = (n + 1) % len(p.pool)
	}
	p.idx = n
}

// Current returns the selected recipe, or false when the pool is empty.
func (p *Picker) Current() (Recipe, bool) {
	if len(p.pool) == 0 {
		return Recipe{}, false
	}
	return p.pool[p.idx], true
}

// Len returns the pool size.
func (p *Picker) Len() int { return len(p.pool) }

// Index returns the selected index. Meaningless when the pool is empty.
func (p *Picker) Index() int { return p.idx }

// Clear drops the pool and resets the selection.
func (p *Picker) Clear() {
	p.pool = nil
	p.idx = 0
}
