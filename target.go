package snapwatch

import (
	"fmt"
	"time"
)

// SnapshotCode returns the weekly snapshot code for t: the last two digits of
// the calendar year, "w", the zero-padded ISO-8601 week number, and "a".
//
// For example, 2024-01-31 (ISO week 5) yields "24w05a".
//
// The year is taken from t's calendar date, not from the ISO week-year, so
// 2024-12-30 (ISO week 1 of 2025) yields "24w01a".
func SnapshotCode(t time.Time) string {
	_, week := t.ISOWeek()
	return fmt.Sprintf("%02dw%02da", t.Year()%100, week)
}

// ResolveTarget returns explicit unchanged when it is non-empty, otherwise
// the [SnapshotCode] for now in the local time zone.
//
// No validation or normalization is applied to an explicit target.
func ResolveTarget(explicit string, now time.Time) string {
	if explicit != "" {
		return explicit
	}
	return SnapshotCode(now.Local())
}
