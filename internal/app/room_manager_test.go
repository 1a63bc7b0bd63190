package app

import "testing"

func TestRoomRegistryGetOrCreate(t *testing.T) {
	reg := NewRoomRegistry()

	a := reg.GetOrCreate("abc")
	b := reg.GetOrCreate("abc")
	if a != b {
		t.Fatal("GetOrCreate returned a different room for the same id")
	}
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}
	if _, ok := reg.Get("xyz"); ok {
		t.Fatal("Get reported an absent room")
	}
}

func TestRoomRegistryRemove(t *testing.T) {
	reg := NewRoomRegistry()
	reg.GetOrCreate("abc")

	reg.Remove("abc")
	reg.Remove("abc")
	if _, ok := reg.Get("abc"); ok {
		t.Fatal("room still present after Remove")
	}
}

func TestRoomRegistryListSorted(t *testing.T) {
	reg := NewRoomRegistry()
	_ = reg.GetOrCreate("zz").Add("1")
	full := reg.GetOrCreate("aa")
	_ = full.Add("2")
	_ = full.Add("3")

	list := reg.List()
	if len(list) != 2 {
		t.Fatalf("List() len = %d", len(list))
	}
	if list[0].ID != "aa" || !list[0].Full || list[0].Occupants != 2 {
		t.Errorf("list[0] = %+v", list[0])
	}
	if list[1].ID != "zz" || list[1].Full || list[1].Occupants != 1 {
		t.Errorf("list[1] = %+v", list[1])
	}
}
