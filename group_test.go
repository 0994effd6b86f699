package composer

import "testing"

func TestGroupRowsByKey(t *testing.T) {
	rows := []Row{
		{"id": int64(1), "user_id": int64(10)},
		{"id": int64(2), "user_id": int64(20)},
		{"id": int64(3), "user_id": int64(10)},
	}

	groups := groupRowsByKey(rows, "user_id")
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups["10"]) != 2 {
		t.Errorf("group 10 has %d rows, want 2", len(groups["10"]))
	}
	// Result-set order preserved inside a bucket.
	if groups["10"][0]["id"] != int64(1) || groups["10"][1]["id"] != int64(3) {
		t.Errorf("group 10 order = %v", groups["10"])
	}
	if len(groups["20"]) != 1 {
		t.Errorf("group 20 has %d rows, want 1", len(groups["20"]))
	}
}

func TestGroupRowsByKey_MixedKeyTypes(t *testing.T) {
	rows := []Row{
		{"user_id": int64(1)},
		{"user_id": int32(1)},
		{"user_id": "1"},
	}

	groups := groupRowsByKey(rows, "user_id")
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1 (widths must normalize)", len(groups))
	}
	if len(groups["1"]) != 3 {
		t.Errorf("group 1 has %d rows, want 3", len(groups["1"]))
	}
}

func TestGroupRowsByKey_SkipsNilAndMissing(t *testing.T) {
	rows := []Row{
		{"user_id": int64(1)},
		{"user_id": nil},
		{"other": int64(2)},
	}

	groups := groupRowsByKey(rows, "user_id")
	if len(groups) != 1 || len(groups["1"]) != 1 {
		t.Errorf("groups = %v", groups)
	}
}
