package drill

import "time"

// TinyRNG is a 64-bit linear congruential generator. It only varies the order
// of a session and must not be used where unpredictability matters.
type TinyRNG struct {
	state uint64
}

const (
	lcgMultiplier uint64 = 6364136223846793005
	lcgIncrement  uint64 = 1442695040888963407
)

func NewTinyRNG(seed uint64) *TinyRNG {
	return &TinyRNG{state: seed}
}

// WallClockSeed seeds from the current time in nanoseconds.
func WallClockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

func (r *TinyRNG) NextUint32() uint32 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return uint32(r.state >> 32)
}

// Below returns a value in [0, n). It is not corrected for modulo bias.
func (r *TinyRNG) Below(n uint32) uint32 {
	return r.NextUint32() % n
}

// Shuffle swaps every position with a uniformly drawn one.
func Shuffle[T any](items []T, rng *TinyRNG) {
	n := uint32(len(items))
	for i := uint32(0); i < n; i++ {
		j := rng.Below(n)
		items[i], items[j] = items[j], items[i]
	}
}
