package format

import "testing"

func TestLinkEncoding(t *testing.T) {
	l := MakeLink(7, 1234)
	if l.BlockID() != 7 || l.Unit() != 1234 {
		t.Fatalf("unexpected decode: block=%d unit=%d", l.BlockID(), l.Unit())
	}
	if l.IsNil() {
		t.Fatalf("link with block 7 must not be nil")
	}
	if !Link(NoLink).IsNil() {
		t.Fatalf("NoLink must be nil")
	}
}

func TestLinkSlot(t *testing.T) {
	b := make([]byte, LinkSlotSize)
	prev, next := MakeLink(1, 0), MakeLink(2, 99)
	PutLinks(b, prev, next)
	if ReadPrevLink(b) != prev || ReadNextLink(b) != next {
		t.Fatalf("links not preserved: %x %x", ReadPrevLink(b), ReadNextLink(b))
	}
	PutNextLink(b, NoLink)
	if !ReadNextLink(b).IsNil() || ReadPrevLink(b) != prev {
		t.Fatalf("PutNextLink touched the wrong field")
	}
	PutPrevLink(b, NoLink)
	if !ReadPrevLink(b).IsNil() {
		t.Fatalf("PutPrevLink did not clear prev")
	}
}
