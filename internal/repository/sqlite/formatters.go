package sqlite

import (
	"database/sql"
	"strings"
	"time"
)

// customFieldSeparator joins free-form tag values into a single column.
const customFieldSeparator = ","

// JoinCustomFields flattens a custom field list for storage
func JoinCustomFields(fields []string) string {
	return strings.Join(fields, customFieldSeparator)
}

// SplitCustomFields restores a custom field list from its stored form
func SplitCustomFields(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, customFieldSeparator)
}

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time value as RFC3339 string, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// NullableInt64 converts a *int64 to a driver-friendly value
func NullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// Int64Ptr converts a scanned sql.NullInt64 back to a *int64
func Int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	value := v.Int64
	return &value
}

// TimePtr converts a scanned nullable RFC3339 string back to a *time.Time.
// Unparseable stored values are treated as absent rather than fatal.
func TimePtr(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := ParseTimeFromDB(v.String)
	if err != nil {
		return nil
	}
	return &t
}
