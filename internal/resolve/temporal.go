package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"qikfiller/internal/errors"
)

// Temporal parsing for entry creation. All values are naive local time: no
// timezone conversion happens anywhere on this path.

// clockLayouts are tried in order when a clock token is not a bare hour.
var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05PM",
	"3:04PM",
	"3:04pm",
	"3PM",
	"3pm",
}

var spanColonForm = regexp.MustCompile(`^(\d+):(\d{2})$`)

// ParseDate turns a date token into a calendar day. An empty token is today,
// an integer is a day offset from today (0 = today, -1 = yesterday), and
// anything else goes through the generic date parser.
func ParseDate(token string, now time.Time) (time.Time, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return truncateToDay(now), nil
	}

	if offset, err := strconv.Atoi(token); err == nil {
		return truncateToDay(now.AddDate(0, 0, offset)), nil
	}

	parsed, err := dateparse.ParseAny(token)
	if err != nil {
		return time.Time{}, errors.NewDateParseError(token)
	}
	return truncateToDay(parsed), nil
}

// ParseClock turns a time-of-day token into an offset from midnight. An
// integer token is an hour of the day; otherwise the token is matched
// against the known clock layouts.
func ParseClock(token string) (time.Duration, error) {
	token = strings.TrimSpace(token)

	if hour, err := strconv.Atoi(token); err == nil {
		if hour < 0 || hour > 23 {
			return 0, errors.NewTimeParseError(token)
		}
		return time.Duration(hour) * time.Hour, nil
	}

	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, token); err == nil {
			return time.Duration(parsed.Hour())*time.Hour +
				time.Duration(parsed.Minute())*time.Minute +
				time.Duration(parsed.Second())*time.Second, nil
		}
	}

	return 0, errors.NewTimeParseError(token)
}

// ParseSpan turns a duration token into a duration. Accepted forms: a bare
// integer (hours), "H:MM", and anything time.ParseDuration understands
// ("2h", "90m", "1h30m").
func ParseSpan(token string) (time.Duration, error) {
	token = strings.TrimSpace(token)

	if hours, err := strconv.Atoi(token); err == nil {
		if hours < 0 {
			return 0, errors.NewTimeParseError(token)
		}
		return time.Duration(hours) * time.Hour, nil
	}

	if match := spanColonForm.FindStringSubmatch(token); match != nil {
		hours, _ := strconv.Atoi(match[1])
		minutes, _ := strconv.Atoi(match[2])
		return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
	}

	if duration, err := time.ParseDuration(token); err == nil && duration >= 0 {
		return duration, nil
	}

	return 0, errors.NewTimeParseError(token)
}

// Window resolves date/start/end/duration tokens into concrete start and end
// times on a single day. Exactly two of start, end and duration must be
// supplied; the missing one is derived. Start must be strictly before end.
func Window(dateToken, startToken, endToken, durationToken string, now time.Time) (time.Time, time.Time, error) {
	supplied := 0
	for _, token := range []string{startToken, endToken, durationToken} {
		if strings.TrimSpace(token) != "" {
			supplied++
		}
	}
	if supplied != 2 {
		return time.Time{}, time.Time{}, errors.NewTemporalConstraintError(
			"provide exactly two of start, end, duration").
			WithContext("supplied", supplied)
	}

	day, err := ParseDate(dateToken, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	var start, end time.Duration
	switch {
	case startToken != "" && endToken != "":
		if start, err = ParseClock(startToken); err != nil {
			return time.Time{}, time.Time{}, err
		}
		if end, err = ParseClock(endToken); err != nil {
			return time.Time{}, time.Time{}, err
		}
	case startToken != "" && durationToken != "":
		if start, err = ParseClock(startToken); err != nil {
			return time.Time{}, time.Time{}, err
		}
		duration, err := ParseSpan(durationToken)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = start + duration
	default: // end and duration
		if end, err = ParseClock(endToken); err != nil {
			return time.Time{}, time.Time{}, err
		}
		duration, err := ParseSpan(durationToken)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = end - duration
	}

	startTime := day.Add(start)
	endTime := day.Add(end)
	if !startTime.Before(endTime) {
		return time.Time{}, time.Time{}, errors.NewTemporalConstraintError(
			fmt.Sprintf("start time %s is not before end time %s",
				startTime.Format("15:04"), endTime.Format("15:04"))).
			WithContext("start", startTime).
			WithContext("end", endTime)
	}

	return startTime, endTime, nil
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
