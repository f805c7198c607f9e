// Package oracle decides, per global cell, whether a mine is present.
//
// All functions are pure. The mixing order is fixed and must never change,
// otherwise worlds generated from the same seed stop being reproducible:
//
//	h = mix(seed)
//	h = mix(h ^ x*kx)
//	h = mix(h ^ y*ky)
//
// x is folded in before y. Coordinates are widened through int64 so 32-bit
// and 64-bit builds agree.
package oracle

const (
	kx   uint64 = 0x9e3779b97f4a7c15
	ky   uint64 = 0xc2b2ae3d27d4eb4f
	ksal uint64 = 0x165667b19e3779f9

	// 2^-53
	unit = 1.0 / (1 << 53)
)

// mix is the SplitMix64 finalizer.
func mix(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func CellHash(seed int64, x, y int) uint64 {
	h := mix(uint64(seed))
	h = mix(h ^ uint64(int64(x))*kx)
	h = mix(h ^ uint64(int64(y))*ky)
	return h
}

// toUnit keeps the top 53 bits, enough to fill a float64 mantissa.
func toUnit(h uint64) float64 {
	return float64(h>>11) * unit
}

// CellNoise returns a value in [0, 1).
func CellNoise(seed int64, x, y int) float64 {
	return toUnit(CellHash(seed, x, y))
}

// CellNoiseWithSalt is a channel independent from CellNoise, for features
// that must not correlate with mine placement.
func CellNoiseWithSalt(seed int64, x, y int, salt uint64) float64 {
	return toUnit(mix(CellHash(seed, x, y) ^ mix(salt^ksal)))
}

func IsMine(seed int64, x, y int, density float64) bool {
	return CellNoise(seed, x, y) < density
}

// CellValueInRange remaps CellNoise into [lo, hi).
func CellValueInRange(seed int64, x, y int, lo, hi float64) float64 {
	return lo + (hi-lo)*CellNoise(seed, x, y)
}
