package alloc

import (
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/joshuapare/segalloc/internal/format"
	"github.com/joshuapare/segalloc/provider"
)

// Allocator is a size-segregated best-fit sub-allocator.
// - buckets[k] holds free chunks of exactly k units
// - bits tracks non-empty buckets for best-fit lookup in two word scans
// - blocks is the list of live blocks; a block that becomes entirely free is
//   returned to the provider at once
// - regions maps the region half of a Ref to its block or direct region.
//
// All methods are safe for concurrent use; one mutex serialises them,
// including the calls into the provider.
type Allocator struct {
	mu sync.Mutex

	p   provider.Provider
	cfg Config
	log *zap.Logger

	buckets []format.Link // index 0 unused
	bits    bitmap
	blocks  *block
	regions regionTable

	stats  Stats
	closed bool
}

// New creates an allocator drawing memory from p.
//
// Parameters:
//   - p: The base provider blocks and direct regions are obtained from
//   - cfg: Unit size and block capacity (use nil for DefaultConfig)
func New(p provider.Provider, cfg *Config) (*Allocator, error) {
	if p == nil {
		return nil, errors.Wrap(ErrBadConfig, "nil provider")
	}
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Allocator{
		p:       p,
		cfg:     *cfg,
		log:     newLogger(cfg.Logger),
		buckets: make([]format.Link, cfg.BlockUnits+1),
		regions: newRegionTable(),
	}, nil
}

// Config returns the allocator's configuration.
func (a *Allocator) Config() Config {
	return a.cfg
}

// Alloc allocates size bytes.
//
// A zero size returns NilRef and a nil slice without touching any state.
// Requests above Config.MaxChunkBytes go straight to the provider; everything
// else is carved from a block. The returned slice has len == size and its
// capacity is the whole unit-rounded allocation. Provider failures are
// reported as ErrOutOfMemory.
func (a *Allocator) Alloc(size int) (Ref, []byte, error) {
	if size == 0 {
		return NilRef, nil, nil
	}
	if size < 0 {
		return NilRef, nil, errors.Wrapf(ErrBadSize, "alloc %d", size)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocLocked(size)
}

func (a *Allocator) allocLocked(size int) (Ref, []byte, error) {
	if a.closed {
		return NilRef, nil, ErrClosed
	}
	a.stats.AllocCalls++

	// ceil without the overflow of size + unit - 1
	units := (size-1)/a.cfg.UnitSize + 1
	if units > a.cfg.BlockUnits {
		return a.allocDirect(size, units)
	}
	return a.allocChunk(size, uint32(units))
}

// allocChunk serves a request from the smallest free chunk that fits.
func (a *Allocator) allocChunk(size int, units uint32) (Ref, []byte, error) {
	var c chunk
	if k, ok := a.bits.findFirstAtOrAbove(int(units)); ok {
		c = a.popFree(uint32(k))
	} else {
		nc, err := a.createBlock()
		if err != nil {
			return NilRef, nil, err
		}
		c = nc
	}

	if c.size() > units {
		// Split: allocate head, return tail to its bucket
		a.stats.SplitCount++
		a.pushFree(c.split(units))
	}
	c.acquire()

	a.stats.LiveChunks++
	a.stats.BytesInUse += int64(units) * int64(a.cfg.UnitSize)

	return makeRef(c.blk.id, c.offset()), c.data()[:size], nil
}

// Free releases the allocation behind ref. NilRef is a no-op.
//
// Freeing a ref that was not returned by this allocator, or freeing twice, is
// undefined; the checks that come with the lookup report ErrBadRef or
// ErrNotUsed, but they do not catch every misuse.
func (a *Allocator) Free(ref Ref) error {
	if ref == NilRef {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.freeLocked(ref)
}

func (a *Allocator) freeLocked(ref Ref) error {
	if a.closed {
		return ErrClosed
	}
	a.stats.FreeCalls++

	r, ok := a.regions.get(ref.region())
	if !ok {
		return errors.Wrapf(ErrBadRef, "free %s: unknown region", ref)
	}
	if r.direct != nil {
		return a.freeDirect(ref, r)
	}

	c, err := a.chunkFor(r.blk, ref)
	if err != nil {
		return err
	}
	return a.freeChunk(c)
}

// chunkFor resolves ref to the used chunk it names.
func (a *Allocator) chunkFor(b *block, ref Ref) (chunk, error) {
	off := ref.offset()
	if off%b.unitSize != 0 || off/b.unitSize >= b.capUnits {
		return chunk{}, errors.Wrapf(ErrBadRef, "%s: not a chunk offset", ref)
	}
	c := chunk{blk: b, idx: off / b.unitSize}
	if !c.isUsed() {
		return chunk{}, errors.Wrapf(ErrNotUsed, "%s", ref)
	}
	return c, nil
}

// freeChunk releases c, coalesces it with free neighbours and either files the
// result in its bucket or, when it spans the block, destroys the block.
func (a *Allocator) freeChunk(c chunk) error {
	a.stats.LiveChunks--
	a.stats.BytesInUse -= int64(c.size()) * int64(a.cfg.UnitSize)
	c.release()

	if prev := c.prevInBlock(); prev.valid() && prev.isFree() {
		a.stats.CoalesceBackward++
		a.removeFree(prev)
		c = prev.merge(c)
	}
	if next := c.nextInBlock(); next.valid() && next.isFree() {
		a.stats.CoalesceForward++
		a.removeFree(next)
		c = c.merge(next)
	}

	if c.size() == c.blk.capUnits {
		return a.destroyBlock(c.blk)
	}
	a.pushFree(c)
	return nil
}

// Bytes returns the full usable capacity of a live allocation.
func (a *Allocator) Bytes(ref Ref) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bytesLocked(ref)
}

func (a *Allocator) bytesLocked(ref Ref) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	r, ok := a.regions.get(ref.region())
	if !ok {
		return nil, errors.Wrapf(ErrBadRef, "bytes %s: unknown region", ref)
	}
	if r.direct != nil {
		if _, err := a.directHeader(ref, r); err != nil {
			return nil, err
		}
		off := int(ref.offset())
		return r.direct[off:len(r.direct):len(r.direct)], nil
	}
	c, err := a.chunkFor(r.blk, ref)
	if err != nil {
		return nil, err
	}
	return c.data(), nil
}

// Realloc resizes the allocation behind ref.
//
// NilRef behaves like Alloc and a zero size like Free (returning NilRef). When
// the current allocation already holds size bytes in the same number of units
// (direct) or in its chunk (block), ref is returned unchanged; otherwise the
// contents are copied to a new allocation and the old one is freed.
func (a *Allocator) Realloc(ref Ref, size int) (Ref, []byte, error) {
	if ref == NilRef {
		return a.Alloc(size)
	}
	if size < 0 {
		return NilRef, nil, errors.Wrapf(ErrBadSize, "realloc %d", size)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if size == 0 {
		return NilRef, nil, a.freeLocked(ref)
	}

	old, err := a.bytesLocked(ref)
	if err != nil {
		return NilRef, nil, err
	}
	if size <= len(old) {
		if r, _ := a.regions.get(ref.region()); r.direct != nil {
			if !a.resizeDirectInPlace(ref, r, size) {
				return a.moveLocked(ref, old, size)
			}
		}
		return ref, old[:size], nil
	}
	return a.moveLocked(ref, old, size)
}

// resizeDirectInPlace updates the recorded size of a direct region when the
// unit-rounded size does not change.
func (a *Allocator) resizeDirectInPlace(ref Ref, r region, size int) bool {
	h, err := a.directHeader(ref, r)
	if err != nil {
		return false
	}
	if format.UnitsFor(size, a.cfg.UnitSize) != format.UnitsFor(int(h.Size), a.cfg.UnitSize) {
		return false
	}
	h.Size = uint64(size)
	format.PutDirectHeader(r.direct[h.Lead:int(h.Lead)+format.DirectHeaderSize], h)
	return true
}

func (a *Allocator) moveLocked(ref Ref, old []byte, size int) (Ref, []byte, error) {
	nref, nb, err := a.allocLocked(size)
	if err != nil {
		return NilRef, nil, err
	}
	copy(nb, old)
	if err := a.freeLocked(ref); err != nil {
		return NilRef, nil, err
	}
	return nref, nb, nil
}

// Close returns every block and direct region to the provider. Outstanding
// refs become invalid and further calls report ErrClosed.
func (a *Allocator) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true

	var errs error
	for id := 1; id < len(a.regions.slots); id++ {
		r := a.regions.slots[id]
		switch {
		case r.blk != nil:
			errs = errors.CombineErrors(errs, a.p.Free(r.blk.mem))
			a.stats.LiveBlocks--
			a.stats.ProviderBytes -= int64(len(r.blk.mem))
		case r.direct != nil:
			errs = errors.CombineErrors(errs, a.p.Free(r.direct))
			a.stats.LiveDirect--
			a.stats.ProviderBytes -= int64(len(r.direct))
		}
	}

	a.blocks = nil
	a.regions = newRegionTable()
	a.bits = bitmap{}
	clear(a.buckets)
	a.stats.LiveChunks = 0
	a.stats.FreeChunks = 0
	a.stats.FreeUnits = 0
	a.stats.BytesInUse = 0
	a.log.Debug("allocator closed")
	return errs
}
