package event

import "testing"

func TestPopIfBeforeOrdersByTime(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Time: 5.0})
	q.Push(Event{Time: 1.0})
	q.Push(Event{Time: 3.0})

	var got []float64
	for {
		e, ok := q.PopIfBefore(100)
		if !ok {
			break
		}
		got = append(got, e.Time)
	}
	want := []float64{1.0, 3.0, 5.0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pop order[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPopIfBeforeLeavesQueueUntouchedWhenNotDue(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Time: 5.0})
	if _, ok := q.PopIfBefore(3.0); ok {
		t.Fatal("PopIfBefore popped an event scheduled after the cutoff")
	}
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (event must remain queued)", q.Len())
	}
}

func TestResetClearsQueue(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Time: 1})
	q.Push(Event{Time: 2})
	q.Reset()
	if q.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", q.Len())
	}
}

func TestTieBreakByTargetThenWeight(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Time: 1, Target: 2, Weight: 1})
	q.Push(Event{Time: 1, Target: 1, Weight: 5})
	q.Push(Event{Time: 1, Target: 1, Weight: 2})

	e1, _ := q.PopIfBefore(10)
	e2, _ := q.PopIfBefore(10)
	e3, _ := q.PopIfBefore(10)
	if e1.Target != 1 || e1.Weight != 2 {
		t.Errorf("first pop = %+v, want target 1 weight 2", e1)
	}
	if e2.Target != 1 || e2.Weight != 5 {
		t.Errorf("second pop = %+v, want target 1 weight 5", e2)
	}
	if e3.Target != 2 {
		t.Errorf("third pop = %+v, want target 2", e3)
	}
}
