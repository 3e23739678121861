package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParsedEntry is the result of splitting free-form journal text into an
// optional time-of-day prefix and a description.
type ParsedEntry struct {
	Description string `json:"description"`
	TimeOfDay   string `json:"time_of_day,omitempty"` // "HH:MM" when HasTime
	HasTime     bool   `json:"has_time"`
}

var (
	meridiemPattern = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)\s+(.+)$`)
	clockPattern    = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s+(.+)$`)
	bareHourPattern = regexp.MustCompile(`^(\d{1,2})\s+(.+)$`)
)

// ParseEntry extracts a leading time of day from free-form text. Patterns
// are tried most-specific first: 12-hour clock with meridiem ("7:30am Run"),
// 24-hour clock ("19:30 Run"), then a bare hour ("19 Run"). Text that fits
// no pattern, or whose candidate time is out of range, becomes a plain
// description. Parsing never fails.
func ParseEntry(text string) ParsedEntry {
	trimmed := strings.TrimSpace(text)

	if m := meridiemPattern.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		desc := strings.TrimSpace(m[4])
		if hour >= 1 && hour <= 12 && minute <= 59 && desc != "" {
			if strings.EqualFold(m[3], "pm") {
				if hour != 12 {
					hour += 12
				}
			} else if hour == 12 {
				hour = 0
			}
			return ParsedEntry{
				Description: desc,
				TimeOfDay:   fmt.Sprintf("%02d:%02d", hour, minute),
				HasTime:     true,
			}
		}
	}

	if m := clockPattern.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		desc := strings.TrimSpace(m[3])
		if hour <= 23 && minute <= 59 && desc != "" {
			return ParsedEntry{
				Description: desc,
				TimeOfDay:   fmt.Sprintf("%02d:%02d", hour, minute),
				HasTime:     true,
			}
		}
	}

	if m := bareHourPattern.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		desc := strings.TrimSpace(m[2])
		if hour <= 23 && desc != "" {
			return ParsedEntry{
				Description: desc,
				TimeOfDay:   fmt.Sprintf("%02d:00", hour),
				HasTime:     true,
			}
		}
	}

	return ParsedEntry{Description: trimmed}
}

// FormatEntry renders a parsed entry back into journal text, using the
// compact 12-hour form for the time prefix. Parsing the result yields an
// equivalent entry.
func FormatEntry(e ParsedEntry) string {
	if !e.HasTime {
		return e.Description
	}
	display, err := FormatTimeOfDay(e.TimeOfDay)
	if err != nil {
		return e.Description
	}
	if e.Description == "" {
		return display
	}
	return display + " " + e.Description
}
