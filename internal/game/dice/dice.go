// Package dice provides the randomness abstraction and the integer dice
// primitives (uniform range, sum of dice, one-in-N) used by the melee engine.
//
// Every primitive consumes draws from a Source in a fixed order. The order and
// count of draws per exchange is observable: swapping the Source for a scripted
// one replays an exchange exactly.
package dice

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use unless documented otherwise.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Range returns a uniform integer in [lo, hi] drawn from src. Bounds given in
// reverse order are swapped. Exactly one draw is consumed.
//
// Precondition: src must be non-nil.
// Postcondition: min(lo,hi) <= result <= max(lo,hi).
func Range(src Source, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Sum rolls number dice of the given sides and returns their total.
// A non-positive number or sides yields 0 without consuming draws.
//
// Postcondition: result == 0 when number <= 0 or sides <= 0;
// otherwise number <= result <= number*sides.
func Sum(src Source, number, sides int) int {
	if number <= 0 || sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < number; i++ {
		total += Range(src, 1, sides)
	}
	return total
}

// OneIn reports true with probability 1/chance. A chance of 1 or less is
// always true and consumes no draw.
func OneIn(src Source, chance int) bool {
	if chance <= 1 {
		return true
	}
	return Range(src, 0, chance-1) == 0
}
