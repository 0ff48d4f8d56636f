package notify

import (
	"testing"
)

func TestNotifyDeliversToObservers(t *testing.T) {
	n := New()

	var got []Change
	n.Subscribe(func(c Change) {
		got = append(got, c)
	})

	n.Notify(Change{Type: ChangeNodeInserted, NodeID: "a"})
	n.Notify(Change{Type: ChangeNodeRemoved, NodeID: "b"})

	if len(got) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(got))
	}
	if got[0].Type != ChangeNodeInserted || got[0].NodeID != "a" {
		t.Errorf("unexpected first change: %+v", got[0])
	}
	if got[1].Type != ChangeNodeRemoved || got[1].NodeID != "b" {
		t.Errorf("unexpected second change: %+v", got[1])
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	n := New()

	count := 0
	sub := n.Subscribe(func(Change) { count++ })

	n.Notify(Change{Type: ChangeSelection})
	sub.Unsubscribe()
	n.Notify(Change{Type: ChangeSelection})

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
	if n.ObserverCount() != 0 {
		t.Errorf("expected 0 observers, got %d", n.ObserverCount())
	}
}

func TestHoldBuffersUntilRelease(t *testing.T) {
	n := New()

	var got []Change
	n.Subscribe(func(c Change) { got = append(got, c) })

	n.Hold()
	n.Notify(Change{Type: ChangeNodeContent, NodeID: "a"})
	n.Notify(Change{Type: ChangeSelection})

	if len(got) != 0 {
		t.Fatalf("expected no deliveries while held, got %d", len(got))
	}

	n.Release()
	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries after release, got %d", len(got))
	}
}

func TestReleaseCoalescesDuplicates(t *testing.T) {
	n := New()

	var got []Change
	n.Subscribe(func(c Change) { got = append(got, c) })

	n.Hold()
	n.Notify(Change{Type: ChangeNodeContent, NodeID: "a"})
	n.Notify(Change{Type: ChangeNodeContent, NodeID: "a"})
	n.Notify(Change{Type: ChangeSelection})
	n.Release()

	if len(got) != 2 {
		t.Fatalf("expected duplicates coalesced to 2 changes, got %d", len(got))
	}
	if got[0].Type != ChangeNodeContent || got[1].Type != ChangeSelection {
		t.Errorf("unexpected change order: %+v", got)
	}
}

func TestNestedHold(t *testing.T) {
	n := New()

	count := 0
	n.Subscribe(func(Change) { count++ })

	n.Hold()
	n.Hold()
	n.Notify(Change{Type: ChangeSelection})
	n.Release()

	if count != 0 {
		t.Fatal("inner release should not flush while outer hold is active")
	}

	n.Release()
	if count != 1 {
		t.Errorf("expected 1 delivery after final release, got %d", count)
	}
}
