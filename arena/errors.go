package arena

import "errors"

var (
	// ErrRawNilPointer indicates a nil block pointer passed to FromRawParts.
	ErrRawNilPointer = errors.New("arena: raw block pointer is nil")

	// ErrRawMisaligned indicates a block pointer not aligned to RawMinAlign.
	ErrRawMisaligned = errors.New("arena: raw block pointer is not aligned to RawMinAlign")

	// ErrRawSizeTooSmall indicates a block smaller than RawMinSize.
	ErrRawSizeTooSmall = errors.New("arena: raw block is smaller than RawMinSize")

	// ErrRawSizeUnaligned indicates a block size that is not a multiple of
	// RawMinAlign.
	ErrRawSizeUnaligned = errors.New("arena: raw block size is not a multiple of RawMinAlign")

	// ErrRawAlignTooSmall indicates a block layout alignment below
	// RawMinAlign (or not a power of two).
	ErrRawAlignTooSmall = errors.New("arena: raw block alignment is below RawMinAlign")

	// ErrNoChunk indicates a transfer out of an arena that owns no chunk.
	ErrNoChunk = errors.New("arena: arena owns no chunk")

	// ErrChainNotSole indicates a transfer out of an arena that owns more
	// than one chunk; only a sole chunk can be handed off.
	ErrChainNotSole = errors.New("arena: arena owns more than one chunk")
)
