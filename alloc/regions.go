package alloc

// region is one provider allocation owned by the allocator: either a block or
// a direct region.
type region struct {
	blk    *block
	direct []byte
}

// regionTable maps region IDs to regions. ID 0 is never handed out so that a
// zero Ref or Link stays distinguishable; freed IDs are reused LIFO.
type regionTable struct {
	slots []region
	free  []uint32
}

func newRegionTable() regionTable {
	return regionTable{slots: make([]region, 1, 64)}
}

func (t *regionTable) add(r region) uint32 {
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[id] = r
		return id
	}
	t.slots = append(t.slots, r)
	return uint32(len(t.slots) - 1)
}

func (t *regionTable) remove(id uint32) {
	t.slots[id] = region{}
	t.free = append(t.free, id)
}

func (t *regionTable) get(id uint32) (region, bool) {
	if id == 0 || int(id) >= len(t.slots) {
		return region{}, false
	}
	r := t.slots[id]
	if r.blk == nil && r.direct == nil {
		return region{}, false
	}
	return r, true
}
