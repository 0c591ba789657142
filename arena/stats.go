package arena

// Stats is a point-in-time snapshot of an arena's chunk chain.
type Stats struct {
	// Chunks is the number of chunks the arena currently owns.
	Chunks int `json:"chunks"`

	// Capacity is the total data capacity of all owned chunks in bytes.
	Capacity uint64 `json:"capacity"`

	// Used is the total number of data bytes handed out.
	Used uint64 `json:"used"`

	// Free is the total number of unused data bytes across all chunks.
	// Only the current chunk's free bytes are allocatable; free bytes in
	// older chunks are stranded until Reset or Close.
	Free uint64 `json:"free"`

	// GrowthEvents is the number of chunk-growth events over the arena's
	// lifetime, including dedicated oversized chunks.
	GrowthEvents int `json:"growth_events"`
}

// Stats walks the chunk chain and returns a snapshot. For every chunk,
// used + free equals capacity; the sentinel contributes nothing.
func (a *Arena) Stats() Stats {
	s := Stats{GrowthEvents: a.growths}
	for f := a.current; !f.isSentinel(); f = f.prevFooter() {
		s.Chunks++
		s.Capacity += uint64(f.capacity())
		s.Used += uint64(f.usedBytes())
		s.Free += uint64(f.freeBytes())
	}
	return s
}
