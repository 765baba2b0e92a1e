package id

import (
	"strings"
	"testing"
)

func TestNewIDFormat(t *testing.T) {
	raw, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(raw) != Length {
		t.Fatalf("expected %d-character id, got %d", Length, len(raw))
	}
	for _, r := range raw {
		if (r < 'a' || r > 'z') && (r < '2' || r > '7') {
			t.Fatalf("unexpected character %q in id", r)
		}
	}
	decoded, err := encoding.DecodeString(strings.ToUpper(raw))
	if err != nil {
		t.Fatalf("decode id: %v", err)
	}
	if version := decoded[6] >> 4; version != 4 {
		t.Fatalf("expected uuid version 4, got %d", version)
	}
}

func TestNewPrefixed(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "inv", want: "inv_"},
		{prefix: "", want: ""},
	}
	for _, tt := range tests {
		got, err := New(tt.prefix)
		if err != nil {
			t.Fatalf("new %q: %v", tt.prefix, err)
		}
		if !strings.HasPrefix(got, tt.want) || len(got) != len(tt.want)+Length {
			t.Fatalf("New(%q) = %q", tt.prefix, got)
		}
		if !Valid(got, tt.prefix) {
			t.Fatalf("expected %q to be valid for prefix %q", got, tt.prefix)
		}
	}
}

func TestValidRejects(t *testing.T) {
	good, err := New("inv")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, tc := range []struct {
		name, s, prefix string
	}{
		{name: "wrong prefix", s: good, prefix: "req"},
		{name: "missing prefix", s: strings.TrimPrefix(good, "inv_"), prefix: "inv"},
		{name: "short", s: "abc", prefix: ""},
		{name: "bad alphabet", s: strings.Repeat("1", Length), prefix: ""},
	} {
		if Valid(tc.s, tc.prefix) {
			t.Fatalf("%s: expected %q to be invalid", tc.name, tc.s)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		raw, err := NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if _, dup := seen[raw]; dup {
			t.Fatalf("duplicate id %q", raw)
		}
		seen[raw] = struct{}{}
	}
}
