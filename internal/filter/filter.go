// Package filter composes search, exact-match and date-window predicates over
// in-memory entity collections. Every function returns a new slice in input
// order and never mutates its argument.
package filter

import (
	"strings"
	"time"

	"subsidy-dashboard/internal/timeutil"
)

// DefaultWildcard is the select value meaning "no filtering".
const DefaultWildcard = "all"

// Fielder exposes string-valued fields by name. ok is false when the field is
// missing or empty, and such items never match a search or exact filter.
type Fielder interface {
	FieldValue(field string) (string, bool)
}

// Timed exposes time-valued fields by name.
type Timed interface {
	TimeValue(field string) (time.Time, bool)
}

// Filter narrows a collection.
type Filter[T any] func([]T) []T

// Window is a relative date range anchored at the current time.
type Window string

const (
	WindowAll   Window = "all"
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// ParseWindow maps a query value to a Window; unknown values mean WindowAll.
func ParseWindow(s string) Window {
	switch Window(strings.ToLower(strings.TrimSpace(s))) {
	case WindowToday:
		return WindowToday
	case WindowWeek:
		return WindowWeek
	case WindowMonth:
		return WindowMonth
	}
	return WindowAll
}

// Now is read on every date-window evaluation.
var Now = timeutil.Now

// BySearch keeps items where any of fields contains term, case-insensitively.
// A blank term keeps everything.
func BySearch[T Fielder](items []T, term string, fields ...string) []T {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return clone(items)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields {
			v, ok := item.FieldValue(f)
			if ok && strings.Contains(strings.ToLower(v), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// ByExactField keeps items whose field equals value. value == wildcard keeps everything.
func ByExactField[T Fielder](items []T, field, value, wildcard string) []T {
	if value == wildcard {
		return clone(items)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if v, ok := item.FieldValue(field); ok && v == value {
			out = append(out, item)
		}
	}
	return out
}

// ByDateWindow keeps items whose date field falls inside window, relative to Now().
func ByDateWindow[T Timed](items []T, field string, window Window) []T {
	return ByDateWindowAt(items, field, window, Now())
}

// ByDateWindowAt is ByDateWindow with an explicit reference time.
func ByDateWindowAt[T Timed](items []T, field string, window Window, now time.Time) []T {
	var keep func(time.Time) bool
	switch window {
	case WindowToday:
		keep = func(d time.Time) bool { return timeutil.SameDay(d, now) }
	case WindowWeek:
		cutoff := now.AddDate(0, 0, -7)
		keep = func(d time.Time) bool { return !d.Before(cutoff) }
	case WindowMonth:
		cutoff := now.AddDate(0, 0, -30)
		keep = func(d time.Time) bool { return !d.Before(cutoff) }
	default:
		return clone(items)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if d, ok := item.TimeValue(field); ok && keep(d) {
			out = append(out, item)
		}
	}
	return out
}

// Compose applies filters left to right. With no filters items is returned as is.
func Compose[T any](items []T, filters ...Filter[T]) []T {
	out := items
	for _, f := range filters {
		if f == nil {
			continue
		}
		out = f(out)
	}
	return out
}

func Search[T Fielder](term string, fields ...string) Filter[T] {
	return func(items []T) []T { return BySearch(items, term, fields...) }
}

func Exact[T Fielder](field, value, wildcard string) Filter[T] {
	return func(items []T) []T { return ByExactField(items, field, value, wildcard) }
}

func DateWindow[T Timed](field string, window Window) Filter[T] {
	return func(items []T) []T { return ByDateWindow(items, field, window) }
}

// Where keeps items satisfying pred.
func Where[T any](pred func(T) bool) Filter[T] {
	return func(items []T) []T {
		out := make([]T, 0, len(items))
		for _, item := range items {
			if pred(item) {
				out = append(out, item)
			}
		}
		return out
	}
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
