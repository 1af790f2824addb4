package main

import "testing"

func TestHeroNames_MixedIDTypes(t *testing.T) {
	body := `{"data": [{"id": "1", "name": "Bruenor"}, {"id": 58, "name": "Briv"}]}`

	names, err := heroNames([]byte(body))
	if err != nil {
		t.Fatalf("heroNames: %v", err)
	}
	if names[1] != "Bruenor" || names[58] != "Briv" {
		t.Fatalf("unexpected mapping %v", names)
	}
}

func TestHeroNames_BadID(t *testing.T) {
	if _, err := heroNames([]byte(`{"data": [{"id": "x", "name": "?"}]}`)); err == nil {
		t.Fatal("expected error for unparseable id")
	}
}

func TestRender_NumericKeyOrder(t *testing.T) {
	got := render(map[int]string{10: "Tyril", 2: "Celeste", 1: "Bruenor"})
	want := "{\n  \"1\": \"Bruenor\",\n  \"2\": \"Celeste\",\n  \"10\": \"Tyril\"\n}"
	if got != want {
		t.Fatalf("render mismatch:\n%s\nwant:\n%s", got, want)
	}
}
