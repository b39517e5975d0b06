package snapwatch

import (
	"testing"
	"time"
)

func TestSnapshotCode(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "single digit week is zero padded",
			date: time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC),
			want: "24w05a",
		},
		{
			name: "double digit week",
			date: time.Date(2023, time.October, 4, 12, 0, 0, 0, time.UTC),
			want: "23w40a",
		},
		{
			name: "week 1",
			date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: "24w01a",
		},
		{
			name: "late december in next ISO year keeps calendar year",
			date: time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC),
			want: "24w01a",
		},
		{
			name: "early january in previous ISO year keeps calendar year",
			date: time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: "21w53a",
		},
		{
			name: "year 2000 pads to two digits",
			date: time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC),
			want: "00w24a",
		},
		{
			name: "year 2009 pads to two digits",
			date: time.Date(2009, time.March, 3, 0, 0, 0, 0, time.UTC),
			want: "09w10a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapshotCode(tt.date); got != tt.want {
				t.Errorf("SnapshotCode(%s) = %q, want %q", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestSnapshotCode_Deterministic(t *testing.T) {
	date := time.Date(2023, time.October, 4, 9, 30, 0, 0, time.UTC)
	first := SnapshotCode(date)
	for i := 0; i < 10; i++ {
		if got := SnapshotCode(date); got != first {
			t.Fatalf("SnapshotCode() = %q on call %d, want %q", got, i, first)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	now := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		explicit string
		want     string
	}{
		{name: "empty derives snapshot code", explicit: "", want: "24w05a"},
		{name: "explicit used verbatim", explicit: "1.20.4", want: "1.20.4"},
		{name: "explicit not trimmed", explicit: " 23w40a ", want: " 23w40a "},
		{name: "explicit not case folded", explicit: "23W40A", want: "23W40A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTarget(tt.explicit, now); got != tt.want {
				t.Errorf("ResolveTarget(%q) = %q, want %q", tt.explicit, got, tt.want)
			}
		})
	}
}
