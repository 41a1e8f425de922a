package services

import (
	"errors"
	"reflect"
	"testing"

	"tabiplan/pkg/utils"
)

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		name    string
		legs    []Leg
		want    Route
		wantErr error
	}{
		{
			name: "single leg",
			legs: []Leg{{From: "東京", To: "大阪"}},
			want: Route{"東京", "大阪"},
		},
		{
			name: "chained legs collapse shared city",
			legs: []Leg{{From: "東京", To: "京都"}, {From: "京都", To: "大阪"}},
			want: Route{"東京", "京都", "大阪"},
		},
		{
			name: "later repeat dropped not reordered",
			legs: []Leg{{From: "東京", To: "大阪"}, {From: "大阪", To: "東京"}, {From: "東京", To: "福岡"}},
			want: Route{"東京", "大阪", "福岡"},
		},
		{
			name: "empty fields skipped",
			legs: []Leg{{From: "東京", To: ""}, {From: "", To: "  "}, {From: " ", To: "札幌"}},
			want: Route{"東京", "札幌"},
		},
		{
			name:    "one distinct city",
			legs:    []Leg{{From: "東京", To: "東京"}},
			wantErr: utils.ErrInvalidRoute,
		},
		{
			name:    "no cities",
			legs:    []Leg{{}},
			wantErr: utils.ErrInvalidRoute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeRoute(&FormState{Legs: tt.legs})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("route = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(Route(dedupePreservingOrder(got)), got) {
				t.Fatalf("route %v is not idempotent under dedupe", got)
			}
		})
	}
}

func TestRouteAccessors(t *testing.T) {
	r := Route{"東京", "京都", "大阪"}
	if r.Start() != "東京" || r.End() != "大阪" {
		t.Fatalf("Start/End = %s/%s", r.Start(), r.End())
	}
	if r.String() != "東京 → 京都 → 大阪" {
		t.Fatalf("String() = %q", r.String())
	}
	var empty Route
	if empty.Start() != "" || empty.End() != "" {
		t.Fatal("empty route should have empty start and end")
	}
}

func TestTotalDays(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
		wantErr    bool
	}{
		{"2024-05-01", "2024-05-02", 2, false},
		{"2024-05-01", "2024-05-01", 1, false},
		{"2024-04-29", "2024-05-05", 7, false},
		{"2024-05-02", "2024-05-01", 0, true},
		{"2024-05-01", "2024-05-31", MaxTripDays, false},
		{"2024-05-01", "2024-06-01", 0, true},
		{"2000-01-01", "9999-12-31", 0, true},
	}

	for _, tt := range tests {
		start, _ := utils.ParseDateJST(tt.start)
		end, _ := utils.ParseDateJST(tt.end)
		got, err := TotalDays(start, end)
		if tt.wantErr {
			if !errors.Is(err, utils.ErrInvalidDateRange) {
				t.Errorf("TotalDays(%s, %s) err = %v, want ErrInvalidDateRange", tt.start, tt.end, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("TotalDays(%s, %s) = %d, %v; want %d", tt.start, tt.end, got, err, tt.want)
		}
	}
}

func TestFormStateLegEditing(t *testing.T) {
	f := NewFormState()
	if len(f.Legs) != 1 || f.Legs[0] != (Leg{From: "東京", To: "大阪"}) {
		t.Fatalf("default legs = %v", f.Legs)
	}

	if err := f.RemoveLeg(0); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("removing last leg: err = %v", err)
	}

	f.AddLeg(Leg{})
	if err := f.UpdateLeg(1, Leg{From: "大阪", To: "福岡"}); err != nil {
		t.Fatalf("UpdateLeg: %v", err)
	}
	if err := f.UpdateLeg(5, Leg{}); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("UpdateLeg out of range: err = %v", err)
	}
	if err := f.RemoveLeg(0); err != nil {
		t.Fatalf("RemoveLeg: %v", err)
	}
	if len(f.Legs) != 1 || f.Legs[0].To != "福岡" {
		t.Fatalf("legs after removal = %v", f.Legs)
	}
}
