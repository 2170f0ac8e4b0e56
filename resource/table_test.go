package resource

import (
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

type testDropper struct {
	dropped int
}

func (d *testDropper) Drop() { d.dropped++ }

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(TypePlayer, "player")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "player" {
		t.Fatalf("Expected 'player', got %v", val)
	}

	if _, ok = table.GetTyped(h, TypePlayer); !ok {
		t.Fatal("GetTyped with correct type failed")
	}
	if _, ok = table.GetTyped(h, TypeRender); ok {
		t.Fatal("GetTyped with wrong type should fail")
	}

	val, ok = table.Remove(h)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != "player" {
		t.Fatalf("Expected 'player', got %v", val)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestTable_ZeroHandleInvalid(t *testing.T) {
	table := NewTable()

	if _, ok := table.Get(0); ok {
		t.Error("Get(0) should fail")
	}
	if _, ok := table.Remove(0); ok {
		t.Error("Remove(0) should fail")
	}
}

func TestTable_StaleHandle(t *testing.T) {
	table := NewTable()

	h := table.Insert(TypeRender, "ctx")
	if _, ok := table.Remove(h); !ok {
		t.Fatal("Remove failed")
	}

	// Dropped handle must stay dead until the slot is reassigned.
	if _, ok := table.Get(h); ok {
		t.Error("Get on dropped handle should fail")
	}
	if _, ok := table.Remove(h); ok {
		t.Error("second Remove should be a no-op")
	}
}

func TestTable_SlotReuse(t *testing.T) {
	table := NewTable()

	h1 := table.Insert(TypePlayer, "a")
	table.Remove(h1)

	h2 := table.Insert(TypePlayer, "b")
	if h2 != h1 {
		t.Fatalf("Expected freed slot to be reused, got %d want %d", h2, h1)
	}

	val, ok := table.Get(h2)
	if !ok || val != "b" {
		t.Fatalf("Get after reuse: %v %v", val, ok)
	}
}

func TestTable_DropHook(t *testing.T) {
	table := NewTable()
	d := &testDropper{}

	h := table.Insert(TypePlayer, d)
	table.Remove(h)

	if d.dropped != 1 {
		t.Fatalf("Expected Drop to run once, ran %d times", d.dropped)
	}

	table.Remove(h)
	if d.dropped != 1 {
		t.Fatal("Drop must not run again for a dead handle")
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert(TypeRender, "ctx")
	table.Remove(h)

	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventCreated || obs.events[1].Type != EventDropped {
		t.Errorf("Unexpected event order: %v", obs.events)
	}
	if obs.events[0].Handle != h || obs.events[0].TypeID != TypeRender {
		t.Errorf("Unexpected event payload: %+v", obs.events[0])
	}

	table.Unsubscribe(obs)
	table.Insert(TypeRender, "ctx2")
	if len(obs.events) != 2 {
		t.Error("Observer received events after Unsubscribe")
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	d1 := &testDropper{}
	d2 := &testDropper{}
	table.Insert(TypePlayer, d1)
	table.Insert(TypeRender, d2)

	if err := table.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if d1.dropped != 1 || d2.dropped != 1 {
		t.Error("Close did not drop live resources")
	}
	if h := table.Insert(TypePlayer, "late"); h != 0 {
		t.Error("Insert after Close should return 0")
	}
	if err := table.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestTable_Handles(t *testing.T) {
	table := NewTable()
	table.Insert(TypePlayer, "p1")
	table.Insert(TypeRender, "r1")
	table.Insert(TypePlayer, "p2")

	if got := len(table.Handles(TypePlayer)); got != 2 {
		t.Errorf("Handles(TypePlayer) = %d, want 2", got)
	}
	if got := len(table.Handles(0)); got != 3 {
		t.Errorf("Handles(0) = %d, want 3", got)
	}
}
