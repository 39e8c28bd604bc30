package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// Every primitive is logged at debug level with its bounds and result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src must be non-nil. A nil logger is replaced with zap.NewNop().
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the underlying randomness provider.
func (r *Roller) Source() Source { return r.src }

// Rng returns a uniform integer in [lo, hi] (bounds swapped when reversed).
//
// Postcondition: exactly one draw is consumed.
func (r *Roller) Rng(lo, hi int) int {
	v := Range(r.src, lo, hi)
	if ce := r.logger.Check(zap.DebugLevel, "rng"); ce != nil {
		ce.Write(zap.Int("lo", lo), zap.Int("hi", hi), zap.Int("result", v))
	}
	return v
}

// Dice returns the sum of number rolls of a sides-faced die.
//
// Postcondition: returns 0 without drawing when number <= 0 or sides <= 0.
func (r *Roller) Dice(number, sides int) int {
	v := Sum(r.src, number, sides)
	if ce := r.logger.Check(zap.DebugLevel, "dice"); ce != nil {
		ce.Write(zap.Int("number", number), zap.Int("sides", sides), zap.Int("total", v))
	}
	return v
}

// OneIn reports true with probability 1/chance; chance <= 1 is always true
// and consumes no draw.
func (r *Roller) OneIn(chance int) bool {
	v := OneIn(r.src, chance)
	if ce := r.logger.Check(zap.DebugLevel, "one_in"); ce != nil {
		ce.Write(zap.Int("chance", chance), zap.Bool("result", v))
	}
	return v
}

// Percent returns a uniform integer in [0, 99].
func (r *Roller) Percent() int {
	return r.Rng(0, 99)
}
