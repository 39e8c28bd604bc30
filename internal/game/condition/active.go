package condition

import "sort"

// ActiveStatus tracks one applied status on a combatant.
type ActiveStatus struct {
	Def       *StatusDef
	Duration  int
	Intensity int
}

// ActiveSet tracks all statuses currently applied to one combatant.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	reg      *Registry
	statuses map[string]*ActiveStatus
}

// NewActiveSet creates an empty ActiveSet resolving ids against reg.
// A nil reg uses DefaultRegistry.
func NewActiveSet(reg *Registry) *ActiveSet {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &ActiveSet{reg: reg, statuses: make(map[string]*ActiveStatus)}
}

// Add applies a status. Re-applying an active status extends its duration by
// duration and raises its intensity by intensity.
//
// The intensity ceiling is limit when limit > 0, otherwise the definition's
// MaxIntensity when that is > 0, otherwise unbounded.
//
// Postcondition: Has(id) is true.
func (s *ActiveSet) Add(id string, duration, intensity, limit int) {
	def := s.reg.Resolve(id)
	if limit <= 0 {
		limit = def.MaxIntensity
	}
	st, ok := s.statuses[id]
	if !ok {
		st = &ActiveStatus{Def: def}
		s.statuses[id] = st
	}
	st.Duration += duration
	st.Intensity += intensity
	if limit > 0 && st.Intensity > limit {
		st.Intensity = limit
	}
}

// Remove deletes the status with the given ID from the set.
// If the status is not present, Remove is a no-op.
//
// Postcondition: Has(id) is false.
func (s *ActiveSet) Remove(id string) {
	delete(s.statuses, id)
}

// Has reports whether the status with id is currently active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.statuses[id]
	return ok
}

// Intensity returns the intensity of status id, or 0 if not present.
func (s *ActiveSet) Intensity(id string) int {
	if st, ok := s.statuses[id]; ok {
		return st.Intensity
	}
	return 0
}

// Level returns the remaining duration of status id, or 0 if not present.
func (s *ActiveSet) Level(id string) int {
	if st, ok := s.statuses[id]; ok {
		return st.Duration
	}
	return 0
}

// Tick decrements the duration of every turn-limited status by 1 and removes
// those that reach 0. Permanent statuses are not affected.
//
// Postcondition: For every id in the returned slice, Has(id) is false. The
// slice is sorted.
func (s *ActiveSet) Tick() []string {
	var expired []string
	for id, st := range s.statuses {
		if st.Def.DurationType == DurationPermanent {
			continue
		}
		st.Duration--
		if st.Duration <= 0 {
			expired = append(expired, id)
			delete(s.statuses, id)
		}
	}
	sort.Strings(expired)
	return expired
}

// All returns copies of the active statuses sorted by ID.
func (s *ActiveSet) All() []ActiveStatus {
	out := make([]ActiveStatus, 0, len(s.statuses))
	for _, st := range s.statuses {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Def.ID < out[j].Def.ID })
	return out
}
