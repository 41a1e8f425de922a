package utils

import (
	"errors"
	"iter"
	"testing"
)

func TestFindMatchingBracket(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start int
		want  int
	}{
		{"simple", `["a","b"]`, 0, 8},
		{"nested", `[["a"],"b"] tail`, 0, 10},
		{"bracket inside string", `["a]b","c"]`, 0, 10},
		{"escaped quote", `["a\"]","c"]`, 0, 11},
		{"unbalanced", `["a","b"`, 0, -1},
		{"not a bracket", `{"a":1}`, 0, -1},
		{"out of range", `[]`, 5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindMatchingBracket(tt.input, tt.start); got != tt.want {
				t.Errorf("FindMatchingBracket(%q, %d) = %d, want %d", tt.input, tt.start, got, tt.want)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	got := StripCodeFences("```json\n[\"a\"]\n```")
	if got != "\n[\"a\"]\n" {
		t.Fatalf("StripCodeFences = %q", got)
	}
}

func fragments(parts []string, failAt int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for i, p := range parts {
			if i == failAt {
				yield("", errors.New("boom"))
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

func TestCollect(t *testing.T) {
	text, err := Collect(fragments([]string{"東京", "から", "大阪"}, -1))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if text != "東京から大阪" {
		t.Fatalf("Collect = %q", text)
	}

	partial, err := Collect(fragments([]string{"a", "b", "c"}, 2))
	if err == nil {
		t.Fatal("expected error from failing sequence")
	}
	if partial != "ab" {
		t.Fatalf("partial = %q, want %q", partial, "ab")
	}
}
