package limits

// Stat is the store's running usage.
type Stat struct {
	TriplesCount uint64 `json:"triples_count"`
	ByteSize     uint64 `json:"byte_size"`
}

// Guard enforces insert ceilings over one insert call.
//
// It starts from the committed Stat and tracks the prospective store
// totals plus the totals of the current batch. Admit is called once per
// triple before the triple is written.
type Guard struct {
	limits Limits
	stat   Stat

	batchCount uint64
	batchBytes uint64
}

// NewGuard creates a guard seeded from the committed usage.
func NewGuard(l Limits, committed Stat) *Guard {
	return &Guard{limits: l, stat: committed}
}

// Admit checks whether one more triple of the given byte size fits.
//
// Checks run in order: store triple count, per-triple size, store byte
// size, batch byte size, batch triple count. The first violation is
// returned and no counter moves.
func (g *Guard) Admit(tripleSize uint64) error {
	count := g.stat.TriplesCount + 1
	bytes := g.stat.ByteSize + tripleSize
	batchCount := g.batchCount + 1
	batchBytes := g.batchBytes + tripleSize

	checks := []struct {
		kind  Kind
		value uint64
	}{
		{KindMaxTripleCount, count},
		{KindMaxTripleByteSize, tripleSize},
		{KindMaxByteSize, bytes},
		{KindMaxInsertDataByteSize, batchBytes},
		{KindMaxInsertDataTripleCount, batchCount},
	}
	for _, c := range checks {
		if err := g.limits.check(c.kind, c.value); err != nil {
			return err
		}
	}

	g.stat.TriplesCount = count
	g.stat.ByteSize = bytes
	g.batchCount = batchCount
	g.batchBytes = batchBytes
	return nil
}

// Stat returns the prospective usage including every admitted triple.
func (g *Guard) Stat() Stat {
	return g.stat
}

// Admitted returns the number of triples admitted in this batch.
func (g *Guard) Admitted() uint64 {
	return g.batchCount
}
