package itinerary

import (
	"reflect"
	"testing"
)

const (
	idA = "64f1a2b3c4d5e6f708091a0a"
	idB = "64f1a2b3c4d5e6f708091a0b"
	idC = "64f1a2b3c4d5e6f708091a0c"
)

func TestNormalizeCell_BareString(t *testing.T) {
	got := NormalizeCell(idA)
	if !reflect.DeepEqual(got, []string{idA}) {
		t.Fatalf("NormalizeCell(%q) = %v, want %v", idA, got, []string{idA})
	}
}

func TestNormalizeCell_ArrayOfStrings(t *testing.T) {
	got := NormalizeCell([]any{idA, idB})
	if !reflect.DeepEqual(got, []string{idA, idB}) {
		t.Fatalf("NormalizeCell() = %v, want %v", got, []string{idA, idB})
	}
}

func TestNormalizeCell_ObjectWithID(t *testing.T) {
	cell := map[string]any{"id": idA, "name": "Hotel Amber"}
	got := NormalizeCell(cell)
	if !reflect.DeepEqual(got, []string{idA}) {
		t.Fatalf("NormalizeCell(object) = %v, want %v", got, []string{idA})
	}
}

func TestNormalizeCell_ObjectWrappingIDArray(t *testing.T) {
	cell := map[string]any{"id": []any{idB, idC}}
	got := NormalizeCell(cell)
	if !reflect.DeepEqual(got, []string{idB}) {
		t.Fatalf("NormalizeCell(wrapped array) = %v, want %v", got, []string{idB})
	}
}

func TestNormalizeCell_NestedIDObject(t *testing.T) {
	cell := map[string]any{"id": map[string]any{"_id": idC}}
	got := NormalizeCell(cell)
	if !reflect.DeepEqual(got, []string{idC}) {
		t.Fatalf("NormalizeCell(nested object) = %v, want %v", got, []string{idC})
	}
}

func TestNormalizeCell_DropsNonIdentifierElements(t *testing.T) {
	cell := []any{idA, 42, map[string]any{"name": "no id"}, nil}
	got := NormalizeCell(cell)
	if !reflect.DeepEqual(got, []string{idA}) {
		t.Fatalf("NormalizeCell(mixed) = %v, want %v", got, []string{idA})
	}
}

func TestNormalizeCell_EmptyAndNil(t *testing.T) {
	if got := NormalizeCell(nil); got != nil {
		t.Fatalf("NormalizeCell(nil) = %v, want nil", got)
	}
	if got := NormalizeCell([]any{}); got != nil {
		t.Fatalf("NormalizeCell(empty array) = %v, want nil", got)
	}
	if got := NormalizeCell(7); got != nil {
		t.Fatalf("NormalizeCell(number) = %v, want nil", got)
	}
}

func TestNormalizeCell_Idempotent(t *testing.T) {
	once := NormalizeCell([]any{map[string]any{"id": idA}, idB})
	var asAny []any
	for _, s := range once {
		asAny = append(asAny, s)
	}
	twice := NormalizeCell(asAny)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalizing twice changed the result: %v then %v", once, twice)
	}
}

func TestIsHotelRef(t *testing.T) {
	if !IsHotelRef(idA) {
		t.Fatalf("IsHotelRef(%q) = false, want true", idA)
	}
	for _, bad := range []string{"", "short", "zzzzzzzzzzzzzzzzzzzzzzzz", idA + "0"} {
		if IsHotelRef(bad) {
			t.Fatalf("IsHotelRef(%q) = true, want false", bad)
		}
	}
}

func TestNormalizeMatrix_OmitsEmptyBranches(t *testing.T) {
	raw := RawMatrix{
		"Deluxe": {
			"1": {"Jaipur": {"breakfast": []any{idA}, "dinner": []any{}}},
			"2": {"Udaipur": {"lunch": nil}},
		},
	}
	got := NormalizeMatrix(raw)
	if len(got["Deluxe"]) != 1 {
		t.Fatalf("expected only day 1 to survive, got %v", got["Deluxe"])
	}
	if !reflect.DeepEqual(got["Deluxe"]["1"]["Jaipur"]["breakfast"], []string{idA}) {
		t.Fatalf("unexpected normalized matrix: %v", got)
	}
}

func TestNormalizeOverrides_KeepsFirstReference(t *testing.T) {
	raw := RawMatrix{
		"Deluxe": {"2": {"Jaipur": {"breakfast": []any{idB, idC}}}},
	}
	got := NormalizeOverrides(raw)
	if got["Deluxe"]["2"]["Jaipur"]["breakfast"] != idB {
		t.Fatalf("NormalizeOverrides kept %q, want %q", got["Deluxe"]["2"]["Jaipur"]["breakfast"], idB)
	}
}
