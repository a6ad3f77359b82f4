package alloc

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// WriteMap writes a JSON map of the allocator to w: configuration, counters,
// every block with its chunks in physical order, the non-empty buckets and the
// live direct regions.
func (a *Allocator) WriteMap(w io.Writer) error {
	a.mu.Lock()
	jw := jwriter.NewWriter()
	err := a.writeMap(&jw)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	if err := jw.Error(); err != nil {
		return errors.Wrap(err, "alloc: encode map")
	}
	_, err = w.Write(jw.Bytes())
	return err
}

func (a *Allocator) writeMap(jw *jwriter.Writer) error {
	if a.closed {
		return ErrClosed
	}
	obj := jw.Object()
	defer obj.End()

	cfg := obj.Name("config").Object()
	cfg.Name("name").String(a.cfg.Name)
	cfg.Name("unitSize").Int(a.cfg.UnitSize)
	cfg.Name("blockUnits").Int(a.cfg.BlockUnits)
	cfg.End()

	writeStats(obj.Name("stats"), a.stats)

	blocks := obj.Name("blocks").Array()
	for b := a.blocks; b != nil; b = b.next {
		bo := blocks.Object()
		bo.Name("id").Int(int(b.id))
		bo.Name("bytes").Int(len(b.mem))
		chunks := bo.Name("chunks").Array()
		for c := b.first(); c.valid(); c = c.nextInBlock() {
			co := chunks.Object()
			co.Name("offset").Int(int(c.offset()))
			co.Name("units").Int(int(c.size()))
			co.Name("used").Bool(c.isUsed())
			co.End()
		}
		chunks.End()
		bo.End()
	}
	blocks.End()

	buckets := obj.Name("buckets").Array()
	for k := 1; k < len(a.buckets); k++ {
		if !a.bits.isSet(k) {
			continue
		}
		n := 0
		for l := a.buckets[k]; !l.IsNil(); l = a.chunkAt(l).nextFree() {
			n++
		}
		bo := buckets.Object()
		bo.Name("units").Int(k)
		bo.Name("chunks").Int(n)
		bo.End()
	}
	buckets.End()

	direct := obj.Name("direct").Array()
	for id := 1; id < len(a.regions.slots); id++ {
		r := a.regions.slots[id]
		if r.direct == nil {
			continue
		}
		do := direct.Object()
		do.Name("id").Int(id)
		do.Name("bytes").Int(len(r.direct))
		do.End()
	}
	direct.End()
	return nil
}

func writeStats(jw *jwriter.Writer, s Stats) {
	obj := jw.Object()
	obj.Name("allocCalls").Int(s.AllocCalls)
	obj.Name("freeCalls").Int(s.FreeCalls)
	obj.Name("directAllocs").Int(s.DirectAllocs)
	obj.Name("directFrees").Int(s.DirectFrees)
	obj.Name("blocksCreated").Int(s.BlocksCreated)
	obj.Name("blocksDestroyed").Int(s.BlocksDestroyed)
	obj.Name("splits").Int(s.SplitCount)
	obj.Name("coalesceForward").Int(s.CoalesceForward)
	obj.Name("coalesceBackward").Int(s.CoalesceBackward)
	obj.Name("outOfMemory").Int(s.OutOfMemory)
	obj.Name("liveBlocks").Int(s.LiveBlocks)
	obj.Name("liveDirect").Int(s.LiveDirect)
	obj.Name("liveChunks").Int(s.LiveChunks)
	obj.Name("freeChunks").Int(s.FreeChunks)
	obj.Name("freeUnits").Int(int(s.FreeUnits))
	obj.Name("bytesInUse").Int(int(s.BytesInUse))
	obj.Name("providerBytes").Int(int(s.ProviderBytes))
	obj.End()
}
