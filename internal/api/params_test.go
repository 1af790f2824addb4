package api

import "testing"

func TestParamsEncode_PreservesInsertionOrder(t *testing.T) {
	p := NewParams().
		Set("b", 2).
		Set("a", "one").
		Set("c", true)

	if got := p.Encode(); got != "b=2&a=one&c=true" {
		t.Fatalf("unexpected encoding: %q", got)
	}
}

func TestParamsSet_ReplacesInPlace(t *testing.T) {
	p := NewParams().
		Set("user_id", "u1").
		Set("instance_id", "old").
		Set("code", "X")

	p.Set("instance_id", "new")

	if got := p.Encode(); got != "user_id=u1&instance_id=new&code=X" {
		t.Fatalf("unexpected encoding after replace: %q", got)
	}
	if v, ok := p.Get("instance_id"); !ok || v != "new" {
		t.Fatalf("Get(instance_id) = %q, %v", v, ok)
	}
}

func TestBaseParams(t *testing.T) {
	want := "language_id=1&timestamp=0&request_id=0&network_id=11&mobile_client_version=999"
	if got := BaseParams().Encode(); got != want {
		t.Fatalf("BaseParams() = %q, want %q", got, want)
	}
}

func TestEscapeCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ABC&123#X", "ABC%26123%23X"},
		{"PLAIN123", "PLAIN123"},
		{"&&##", "%26%26%23%23"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := EscapeCode(tc.in); got != tc.want {
			t.Errorf("EscapeCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
