package vectorclock

import (
	"sort"
	"testing"
)

func TestReflexivity(t *testing.T) {
	a := New[uint64]()
	a.Inc(1)
	a.Inc(2)

	if rel := a.Relation(a); rel != Equal {
		t.Fatalf("Relation(a, a) = %v, want Equal", rel)
	}
}

func TestHappenedBeforeAntisymmetry(t *testing.T) {
	a := New[uint64]()
	a.Inc(1)
	b := a.Clone()
	b.Inc(1)

	if !a.HappenedBefore(b) {
		t.Fatalf("expected a.HappenedBefore(b)")
	}
	if b.HappenedBefore(a) {
		t.Fatalf("b.HappenedBefore(a) should be false when a.HappenedBefore(b)")
	}
}

func TestIncStrictlyAdvances(t *testing.T) {
	a := New[uint64]()
	a.Inc(1)
	before := a.Clone()
	a.Inc(1)

	if !before.HappenedBefore(a) {
		t.Fatalf("expected pre-increment clock to happen-before post-increment clock")
	}
}

func TestMergeIsLeastUpperBound(t *testing.T) {
	a := New[uint64]()
	a.Inc(1)
	b := New[uint64]()
	b.Inc(2)
	b.Inc(2)

	merged := a.Clone()
	merged.MergeWith(b)

	if !(b.HappenedBefore(merged) || b.Equals(merged)) {
		t.Fatalf("b should happen-before or equal merged clock")
	}
	if !(a.HappenedBefore(merged) || a.Equals(merged)) {
		t.Fatalf("a should happen-before or equal merged clock")
	}
	snap := merged.Clone()
	if got := snap.get(1); got != 1 {
		t.Fatalf("merged[1] = %d, want 1", got)
	}
	if got := snap.get(2); got != 2 {
		t.Fatalf("merged[2] = %d, want 2", got)
	}
}

func TestLearnFromIdempotence(t *testing.T) {
	a := New[uint64]()
	a.Inc(1)
	b := New[uint64]()
	b.Inc(2)
	b.Inc(2)
	b.Inc(3)

	once := a.Clone()
	once.LearnFrom(b)

	twice := a.Clone()
	twice.LearnFrom(b)
	twice.LearnFrom(b)

	if !once.Equals(twice) {
		t.Fatalf("learn_from is not idempotent: once=%+v twice=%+v", once.counts, twice.counts)
	}
	// Existing keys are untouched: a's own counter for source 1 must survive.
	if got := once.get(1); got != 1 {
		t.Fatalf("LearnFrom overwrote an existing key: got %d, want 1", got)
	}
}

func TestConcurrencyDetection(t *testing.T) {
	a := New[uint64]()
	a.Inc(10)
	b := New[uint64]()
	b.Inc(20)

	if rel := a.Relation(b); rel != Concurrent {
		t.Fatalf("Relation(a, b) = %v, want Concurrent", rel)
	}
}

func TestRelationBeforeAfter(t *testing.T) {
	a := New[uint64]()
	a.Inc(1)
	b := a.Clone()
	b.Inc(1)

	if rel := a.Relation(b); rel != Before {
		t.Fatalf("a.Relation(b) = %v, want Before", rel)
	}
	if rel := b.Relation(a); rel != After {
		t.Fatalf("b.Relation(a) = %v, want After", rel)
	}
}

func TestLessTotalization(t *testing.T) {
	a := New[uint64]()
	a.Inc(1)
	b := a.Clone()
	b.Inc(1)
	c := New[uint64]()
	c.Inc(2)

	if !Less(a, b) {
		t.Fatalf("Less(a, b) should be true when a happened-before b")
	}
	if Less(a, c) {
		t.Fatalf("Less(a, c) should collapse Concurrent to false")
	}
	if Compare(a, c) != 0 {
		t.Fatalf("Compare(a, c) should collapse Concurrent to 0")
	}
	if Compare(a, b) != -1 {
		t.Fatalf("Compare(a, b) should be -1")
	}
	if Compare(b, a) != 1 {
		t.Fatalf("Compare(b, a) should be 1")
	}
}

func TestSortedClocksOrdersCausalChain(t *testing.T) {
	// A causal chain c0 < c1 < c2, inserted out of order.
	c0 := New[uint64]()
	c0.Inc(1)
	c1 := c0.Clone()
	c1.Inc(1)
	c2 := c1.Clone()
	c2.Inc(2)

	clocks := SortedClocks[uint64]{c2, c0, c1}
	sort.Sort(clocks)

	if !clocks[0].Equals(c0) || !clocks[1].Equals(c1) || !clocks[2].Equals(c2) {
		t.Fatalf("sort did not recover causal order")
	}
	for i := 0; i+1 < len(clocks); i++ {
		if clocks[i+1].HappenedBefore(clocks[i]) {
			t.Fatalf("clock %d happened-before its predecessor after sort", i+1)
		}
	}
}

func TestServerVectorClockConcurrentIncrements(t *testing.T) {
	svc := NewServerVectorClock(42)
	const n = 200
	done := make(chan StandardVectorClock, n)
	for i := 0; i < n; i++ {
		go func() {
			done <- svc.Inc()
		}()
	}
	for i := 0; i < n; i++ {
		<-done
	}
	final := svc.ToClock()
	if got := final.get(42); got != n {
		t.Fatalf("expected %d increments to survive concurrency, got %d", n, got)
	}
}
