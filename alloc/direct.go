package alloc

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/joshuapare/segalloc/internal/buf"
	"github.com/joshuapare/segalloc/internal/format"
)

// Direct regions serve requests larger than a block. Layout:
//
//	[lead padding][DirectHeader][user data: units * unitSize]
//	               ^ slot-16     ^ slot
//
// slot is one unit wide so the user data keeps unit alignment; Ref.offset()
// points at the user data, and the header sits immediately before it.

// allocDirect forwards a large request to the provider.
func (a *Allocator) allocDirect(size, units int) (Ref, []byte, error) {
	slot := format.DirectHeaderSlot(a.cfg.UnitSize)
	total, ok := buf.RegionSize(units, a.cfg.UnitSize, slot)
	if !ok {
		a.stats.OutOfMemory++
		return NilRef, nil, errors.Wrapf(ErrOutOfMemory, "direct request of %d bytes overflows", size)
	}

	mem, err := a.p.Alloc(total)
	if err != nil {
		a.stats.OutOfMemory++
		a.log.Warn("direct allocation failed", zap.Int("bytes", total), zap.Error(err))
		return NilRef, nil, outOfMemory(err, total)
	}
	mem = mem[:total]

	lead := slot - format.DirectHeaderSize
	format.PutDirectHeader(mem[lead:slot], format.DirectHeader{
		Lead: uint32(lead),
		Size: uint64(size),
	})
	id := a.regions.add(region{direct: mem})

	a.stats.DirectAllocs++
	a.stats.LiveDirect++
	a.stats.BytesInUse += int64(total - slot)
	a.stats.ProviderBytes += int64(total)
	a.log.Debug("direct allocation", zap.Uint32("region", id), zap.Int("bytes", total))

	return makeRef(id, uint32(slot)), mem[slot:total:total][:size], nil
}

// directHeader locates and decodes the header preceding ref's data.
func (a *Allocator) directHeader(ref Ref, r region) (format.DirectHeader, error) {
	off := int(ref.offset())
	hb, ok := buf.Slice(r.direct, off-format.DirectHeaderSize, format.DirectHeaderSize)
	if !ok {
		return format.DirectHeader{}, errors.Wrapf(ErrBadRef, "direct %s: offset out of range", ref)
	}
	h, err := format.DecodeDirectHeader(hb)
	if err != nil {
		return format.DirectHeader{}, errors.Wrapf(ErrBadRef, "direct %s: %v", ref, err)
	}
	return h, nil
}

// directLen recomputes the region length from a decoded header.
func (a *Allocator) directLen(h format.DirectHeader) int {
	return int(h.Lead) + format.DirectHeaderSize + format.AlignUnit(int(h.Size), a.cfg.UnitSize)
}

// freeDirect returns a direct region to the provider.
func (a *Allocator) freeDirect(ref Ref, r region) error {
	h, err := a.directHeader(ref, r)
	if err != nil {
		return err
	}
	total := a.directLen(h)
	if total != len(r.direct) {
		return errors.Wrapf(ErrBadRef, "direct %s: header records %d bytes, region has %d", ref, total, len(r.direct))
	}

	// Wipe the signature so a stale ref into reused memory does not decode.
	lead := int(h.Lead)
	clear(r.direct[lead : lead+format.DirectSignatureLen])
	a.regions.remove(ref.region())

	slot := int(ref.offset())
	a.stats.DirectFrees++
	a.stats.LiveDirect--
	a.stats.BytesInUse -= int64(total - slot)
	a.stats.ProviderBytes -= int64(total)
	a.log.Debug("direct free", zap.Uint32("region", ref.region()), zap.Int("bytes", total))

	if err := a.p.Free(r.direct[:total]); err != nil {
		return errors.Wrapf(err, "alloc: release direct region %d", ref.region())
	}
	return nil
}
