package query

import "testing"

func TestScoreLessOrdersByValueThenOffset(t *testing.T) {
	low := Score{Value: 1}
	high := Score{Value: 2}
	if !low.Less(high) {
		t.Fatalf("expected lower value to be Less")
	}
	tie1 := Score{Value: 5, Offset: Offset{Start: 0, End: 1}}
	tie2 := Score{Value: 5, Offset: Offset{Start: 1, End: 2}}
	if !tie1.Less(tie2) {
		t.Fatalf("expected earlier offset to be Less on a value tie")
	}
}

func TestMaxReturnsGreaterScore(t *testing.T) {
	a := Score{Value: 10}
	b := Score{Value: 20}
	if Max(a, b) != b {
		t.Fatalf("expected Max to return the higher-value score")
	}
	if Max(b, a) != b {
		t.Fatalf("expected Max to be order-independent")
	}
}

func TestNegativeInfinityLosesToAnyRealScore(t *testing.T) {
	ni := NegativeInfinity()
	real := Score{Value: -1000000}
	if !ni.Less(real) {
		t.Fatalf("expected NegativeInfinity to be less than any real score")
	}
}
