package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// BusinessDay normalizes a timestamp to the calendar date it belongs to, in
// the location it carries. Ledger entries and closing records are grouped by
// this value; it is computed once per engine invocation so a reconciliation
// that straddles midnight keeps operating on the day it started with.
func BusinessDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameBusinessDay reports whether two timestamps fall on the same calendar date.
func SameBusinessDay(a, b time.Time) bool {
	return BusinessDay(a).Equal(BusinessDay(b))
}

// calendarDate projects a timestamp onto its own calendar date at UTC
// midnight. Due dates scanned from DATE columns carry UTC while the clock
// runs in the store's zone; comparing through this keeps day arithmetic on
// calendar components instead of instants.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
