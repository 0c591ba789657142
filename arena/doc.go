// Package arena implements a chunked, region-based bump allocator with
// zero-copy transfer of its backing memory across ownership boundaries.
//
// # Overview
//
// An Arena serves many small allocation requests out of large chunks
// obtained from the system allocator, and reclaims everything at once on
// Close. There is no per-object free, no free lists, and no per-object
// metadata: allocation is a single cursor bump, which is what makes an
// arena suitable for workloads that build millions of short-lived objects
// per pass and drop them together.
//
// # Chunk layout
//
// Each chunk is one contiguous allocation laid out as
//
//	[data region][footer]
//
// with the footer record occupying the chunk's highest FooterSize bytes.
// The footer stores the chunk's start address, the bump cursor, a link to
// the previous chunk, and the alignment the chunk was allocated with. Data
// grows downward: the cursor starts at the footer's address and moves
// toward the chunk start, so a chunk is full when cursor == start and
// empty when cursor == footer address.
//
// Exhausted chunks stay linked behind the current one through the footer's
// previous-chunk relation, terminated by a canonical, process-wide empty
// chunk whose link points to itself. The empty chunk reports zero capacity,
// so an arena never needs a nil-chunk special case.
//
// # Growth
//
// When the current chunk cannot satisfy a request, the arena grows by a new
// chunk whose capacity doubles each time (from Options.MinChunkSize up to a
// fixed cap), keeping the number of growth events logarithmic in the total
// bytes allocated. A single request larger than the next policy size gets a
// dedicated, exactly-sized chunk and leaves the doubling trajectory alone.
//
// # Raw transfer
//
// FromRawParts builds an arena directly over a caller-supplied block, and
// IntoRawParts extracts an arena's sole chunk as a (pointer, layout) pair.
// Together they let two components exchange a fully built arena's memory
// (for example, a finished syntax tree's backing storage) without copying
// it, provided both sides agree on the layout contract constants FooterSize,
// ChunkAlign, RawMinSize, and RawMinAlign. A transfer is a hard single-owner
// hand-off, never a shared borrow.
//
// # Error model
//
// The arena deliberately has almost no runtime error surface. Exhaustion of
// the system allocator panics; there is no recovery path threaded through
// bump allocation. The raw-transfer constructor is the one checked
// boundary: it validates the size and alignment contract and returns an
// error on violation. Everything else is an invariant, not an error.
//
// # Thread safety
//
// An Arena is not safe for concurrent use. Give each goroutine its own
// arena; if results must be merged, transfer ownership of the backing
// memory rather than sharing an arena. The canonical empty chunk is the
// only state shared between arenas, and it is immutable for the life of
// the process.
package arena
