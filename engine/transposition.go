package engine

// Bound classifies a stored score.
type Bound int8

const (
	// ExactFlag: the score is the true value at the stored depth.
	ExactFlag Bound = iota
	// LowerFlag: the search failed high, the true value is at least Score.
	LowerFlag
	// UpperFlag: the search failed low, the true value is at most Score.
	UpperFlag
)

func (f Bound) String() string {
	switch f {
	case ExactFlag:
		return "exact"
	case LowerFlag:
		return "lower"
	case UpperFlag:
		return "upper"
	}
	return "unknown"
}

type TTEntry struct {
	Score int
	Depth int
	Flag  Bound
}

// TransTable maps Zobrist keys to search results. It grows without bound for
// the lifetime of the owning session; Clear is the only way to shrink it.
// Not safe for concurrent use.
type TransTable struct {
	entries map[uint64]TTEntry
}

func NewTransTable() *TransTable {
	return &TransTable{entries: make(map[uint64]TTEntry, 1<<12)}
}

// Probe returns the entry stored for hash. Callers decide whether its depth
// is enough to trust it.
func (tt *TransTable) Probe(hash uint64) (TTEntry, bool) {
	entry, ok := tt.entries[hash]
	return entry, ok
}

/*
Store is "always replace": a shallower result for the same key overwrites a
deeper one. Score, depth and flag are written together as one value.
*/
func (tt *TransTable) Store(hash uint64, entry TTEntry) {
	tt.entries[hash] = entry
}

// Len returns the number of stored positions.
func (tt *TransTable) Len() int { return len(tt.entries) }

func (tt *TransTable) Clear() {
	tt.entries = make(map[uint64]TTEntry, 1<<12)
}
