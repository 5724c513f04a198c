package ion

import "testing"

func TestNewStateDeduplicatesAndSorts(t *testing.T) {
	s := NewState(Na, []int{5, 2, 2, 8, 2, 5}, 50, 10, 140)
	want := []int{2, 5, 8}
	if len(s.CVs) != len(want) {
		t.Fatalf("CVs = %v, want %v", s.CVs, want)
	}
	for i, cv := range want {
		if s.CVs[i] != cv {
			t.Errorf("CVs[%d] = %d, want %d", i, s.CVs[i], cv)
		}
	}
}

func TestViewSharesWritesAcrossMechanisms(t *testing.T) {
	s := NewState(Na, []int{3, 7}, 50, 10, 140)
	v1 := NewView(s)
	v2 := NewView(s)

	v1.SetE(3, 55)
	if got := v2.E(3); got != 55 {
		t.Errorf("v2.E(3) = %v after v1.SetE(3, 55), want 55", got)
	}
}

func TestViewPanicsOnUnboundCV(t *testing.T) {
	s := NewState(Na, []int{3, 7}, 50, 10, 140)
	v := NewView(s)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unbound CV")
		}
	}()
	v.E(4)
}

func TestDefaultReversalUnknownKind(t *testing.T) {
	if _, err := DefaultReversal(Kind(99)); err == nil {
		t.Fatal("expected UnknownIonError for unrecognized kind")
	}
}
