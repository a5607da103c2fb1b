package domain

// Interval is a half-open range of minutes since midnight [Start, End)
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
// Touching intervals (one ends where the other starts) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// ConflictScopeKind is the resource a slot is reserved on
type ConflictScopeKind string

const (
	ScopeVendor     ConflictScopeKind = "vendor"
	ScopeSpecialist ConflictScopeKind = "specialist"
)

// ConflictScope identifies the vendor or specialist whose slots are checked
type ConflictScope struct {
	Kind ConflictScopeKind
	ID   string
}

// VendorScope builds a vendor conflict scope
func VendorScope(vendorID string) ConflictScope {
	return ConflictScope{Kind: ScopeVendor, ID: vendorID}
}

// SpecialistScope builds a specialist conflict scope
func SpecialistScope(specialistID string) ConflictScope {
	return ConflictScope{Kind: ScopeSpecialist, ID: specialistID}
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// FreeSlots walks the day in steps of duration starting at max(open, from)
// and returns every candidate [s, s+duration) that fits before close and
// does not overlap a busy interval.
func FreeSlots(open, close, from, duration int, busy []Interval) []Interval {
	slots := make([]Interval, 0)
	if duration <= 0 {
		return slots
	}

	start := open
	if from > start {
		start = from
	}

	for s := start; s+duration <= close; s += duration {
		candidate := Interval{Start: s, End: s + duration}
		if !overlapsAny(candidate, busy) {
			slots = append(slots, candidate)
		}
	}
	return slots
}

// FirstFreeSlot returns the earliest free slot, see FreeSlots
func FirstFreeSlot(open, close, from, duration int, busy []Interval) (Interval, bool) {
	if duration <= 0 {
		return Interval{}, false
	}

	start := open
	if from > start {
		start = from
	}

	for s := start; s+duration <= close; s += duration {
		candidate := Interval{Start: s, End: s + duration}
		if !overlapsAny(candidate, busy) {
			return candidate, true
		}
	}
	return Interval{}, false
}
