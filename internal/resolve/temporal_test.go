package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qikfiller/internal/errors"
)

// All temporal tests run against a fixed clock.
var testNow = time.Date(2024, 6, 1, 15, 30, 0, 0, time.Local)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "should default an empty token to today",
			token:    "",
			expected: time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "should treat zero as today",
			token:    "0",
			expected: time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "should treat a negative offset as days ago",
			token:    "-1",
			expected: time.Date(2024, 5, 31, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "should treat a positive offset as days ahead",
			token:    "3",
			expected: time.Date(2024, 6, 4, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "should parse an ISO date string",
			token:    "2024-05-20",
			expected: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "should fail on gibberish",
			token:   "not-a-date",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := ParseDate(tt.token, testNow)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDateParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Year(), day.Year())
			assert.Equal(t, tt.expected.Month(), day.Month())
			assert.Equal(t, tt.expected.Day(), day.Day())
			assert.Equal(t, 0, day.Hour())
			assert.Equal(t, 0, day.Minute())
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "should parse a bare hour", token: "9", expected: 9 * time.Hour},
		{name: "should parse 24-hour time", token: "13:30", expected: 13*time.Hour + 30*time.Minute},
		{name: "should parse 24-hour time with seconds", token: "13:30:15", expected: 13*time.Hour + 30*time.Minute + 15*time.Second},
		{name: "should parse lowercase am/pm", token: "10:15am", expected: 10*time.Hour + 15*time.Minute},
		{name: "should parse a bare pm hour", token: "3pm", expected: 15 * time.Hour},
		{name: "should parse uppercase am/pm", token: "3:04PM", expected: 15*time.Hour + 4*time.Minute},
		{name: "should fail on an hour past 23", token: "24", wantErr: true},
		{name: "should fail on a negative hour", token: "-3", wantErr: true},
		{name: "should fail on gibberish", token: "lunchtime", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, err := ParseClock(tt.token)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, offset)
		})
	}
}

func TestParseSpan(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "should treat a bare integer as hours", token: "2", expected: 2 * time.Hour},
		{name: "should parse the colon form", token: "1:30", expected: time.Hour + 30*time.Minute},
		{name: "should parse a duration literal", token: "90m", expected: 90 * time.Minute},
		{name: "should parse a compound duration literal", token: "1h30m", expected: time.Hour + 30*time.Minute},
		{name: "should fail on negative hours", token: "-2", wantErr: true},
		{name: "should fail on a negative duration literal", token: "-30m", wantErr: true},
		{name: "should fail on gibberish", token: "a while", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := ParseSpan(tt.token)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, span)
		})
	}
}

func TestWindow(t *testing.T) {
	t.Run("should derive the end from start and duration", func(t *testing.T) {
		start, end, err := Window("", "10am", "", "2h", testNow)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local), start)
		assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local), end)
	})

	t.Run("should derive the start from end and duration on an offset day", func(t *testing.T) {
		start, end, err := Window("-1", "", "13:00", "1:30", testNow)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 31, 11, 30, 0, 0, time.Local), start)
		assert.Equal(t, time.Date(2024, 5, 31, 13, 0, 0, 0, time.Local), end)
	})

	t.Run("should accept start and end directly", func(t *testing.T) {
		start, end, err := Window("", "9", "17:00", "", testNow)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local), start)
		assert.Equal(t, time.Date(2024, 6, 1, 17, 0, 0, 0, time.Local), end)
	})

	t.Run("should reject a start not before the end", func(t *testing.T) {
		_, _, err := Window("", "14:00", "10:00", "", testNow)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTemporalConstraint))
		assert.Contains(t, err.Error(), "14:00")
		assert.Contains(t, err.Error(), "10:00")
	})

	t.Run("should reject equal start and end", func(t *testing.T) {
		_, _, err := Window("", "10:00", "10:00", "", testNow)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTemporalConstraint))
	})

	t.Run("should reject fewer than two temporal tokens", func(t *testing.T) {
		_, _, err := Window("", "10am", "", "", testNow)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTemporalConstraint))
		assert.Contains(t, err.Error(), "exactly two")
	})

	t.Run("should reject all three temporal tokens", func(t *testing.T) {
		_, _, err := Window("", "10am", "12pm", "2h", testNow)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTemporalConstraint))
	})

	t.Run("should surface a bad date token", func(t *testing.T) {
		_, _, err := Window("someday", "10am", "", "2h", testNow)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDateParse))
	})
}
