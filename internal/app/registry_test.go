package app

import "testing"

func TestClientDirectoryLifecycle(t *testing.T) {
	d := NewClientDirectory()

	if !d.Register("c1") {
		t.Fatal("first Register reported false")
	}
	if d.Register("c1") {
		t.Fatal("second Register reported true")
	}
	if _, ok := d.RoomOf("c1"); ok {
		t.Fatal("fresh connection already has a room")
	}

	d.Assign("c1", "abc")
	if room, ok := d.RoomOf("c1"); !ok || room != "abc" {
		t.Fatalf("RoomOf = %q, %v", room, ok)
	}

	d.Clear("c1")
	if _, ok := d.RoomOf("c1"); ok {
		t.Fatal("RoomOf after Clear still reports a room")
	}
	if !d.Known("c1") {
		t.Fatal("Clear dropped the connection entry")
	}

	d.Unregister("c1")
	if d.Known("c1") || d.Len() != 0 {
		t.Fatal("Unregister left the entry behind")
	}
}

func TestClientDirectoryClearUnknownIsNoop(t *testing.T) {
	d := NewClientDirectory()
	d.Clear("ghost")
	if d.Known("ghost") {
		t.Fatal("Clear created an entry")
	}
}

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		name string
		want BackpressureAction
		err  bool
	}{
		{"", DropFrame, false},
		{"drop", DropFrame, false},
		{"disconnect", Disconnect, false},
		{"explode", 0, true},
	}
	for _, tt := range tests {
		p, err := PolicyByName(tt.name)
		if tt.err {
			if err == nil {
				t.Errorf("PolicyByName(%q) expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("PolicyByName(%q): %v", tt.name, err)
		}
		if got := p.OnBackPressure(); got != tt.want {
			t.Errorf("PolicyByName(%q).OnBackPressure() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
