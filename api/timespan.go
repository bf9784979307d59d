package api

import "strings"

// Timespan is the aggregation window unit of an aggregates request.
type Timespan uint8

const (
	TimespanSecond Timespan = iota
	TimespanMinute
	TimespanHour
	TimespanDay
	TimespanWeek
	TimespanMonth
	TimespanQuarter
	TimespanYear
)

// Path is the value used in the request path.
func (t Timespan) Path() string {
	switch t {
	case TimespanSecond:
		return "second"
	case TimespanMinute:
		return "minute"
	case TimespanHour:
		return "hour"
	case TimespanDay:
		return "day"
	case TimespanWeek:
		return "week"
	case TimespanMonth:
		return "month"
	case TimespanQuarter:
		return "quarter"
	case TimespanYear:
		return "year"
	default:
		return ""
	}
}

// ParseTimespan is case insensitive and returns false for unknown values.
func ParseTimespan(s string) (Timespan, bool) {
	for t := TimespanSecond; t <= TimespanYear; t++ {
		if strings.EqualFold(strings.TrimSpace(s), t.Path()) {
			return t, true
		}
	}
	return 0, false
}
