package boundary

import "testing"

var bangaloreAliases = []string{"bangalore", "bengaluru"}

func TestResolveArea_Priority(t *testing.T) {
	address := map[string]string{
		"suburb":        "Indiranagar",
		"neighbourhood": "HAL 2nd Stage",
		"city":          "Bengaluru",
	}
	if got := ResolveArea(address); got != "Indiranagar" {
		t.Errorf("ResolveArea = %q, want %q", got, "Indiranagar")
	}

	// Without suburb the next field in priority order wins.
	delete(address, "suburb")
	if got := ResolveArea(address); got != "HAL 2nd Stage" {
		t.Errorf("ResolveArea = %q, want %q", got, "HAL 2nd Stage")
	}
}

func TestResolveArea_SkipsEmptyValues(t *testing.T) {
	address := map[string]string{
		"suburb":   "",
		"locality": "Shivajinagar",
	}
	if got := ResolveArea(address); got != "Shivajinagar" {
		t.Errorf("ResolveArea = %q, want %q", got, "Shivajinagar")
	}
}

func TestResolveArea_Fallback(t *testing.T) {
	if got := ResolveArea(map[string]string{"postcode": "560001"}); got != UnknownArea {
		t.Errorf("ResolveArea = %q, want %q", got, UnknownArea)
	}
	if got := ResolveArea(nil); got != UnknownArea {
		t.Errorf("ResolveArea(nil) = %q, want %q", got, UnknownArea)
	}
}

func TestWithinCity_Inside(t *testing.T) {
	cases := []map[string]string{
		{"city": "Bengaluru", "state": "Karnataka"},
		{"town": "Bangalore South"},
		{"state_district": "Bangalore Urban"},
		{"county": "Bangalore North"},
	}
	for _, address := range cases {
		if !WithinCity(address, bangaloreAliases) {
			t.Errorf("WithinCity(%v) = false, want true", address)
		}
	}
}

func TestWithinCity_Outside(t *testing.T) {
	address := map[string]string{
		"city":   "New York",
		"county": "New York County",
		"state":  "New York",
	}
	if WithinCity(address, bangaloreAliases) {
		t.Error("WithinCity(New York) = true, want false")
	}
}

func TestWithinCity_IgnoresNonBoundaryFields(t *testing.T) {
	// suburb participates in area resolution but not in the boundary check.
	address := map[string]string{"suburb": "Bangalore Layout", "city": "Mysuru"}
	if WithinCity(address, bangaloreAliases) {
		t.Error("WithinCity should not match on suburb")
	}
}

func TestWithinCity_EmptyAddress(t *testing.T) {
	if WithinCity(map[string]string{}, bangaloreAliases) {
		t.Error("WithinCity(empty) = true, want false")
	}
}
