package itinerary

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// StayWindow is a half-open [CheckIn, CheckOut) hotel stay.
type StayWindow struct {
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
}

// WindowStrategy selects how stay windows are inferred from the day numbers
// that actually carry selections.  The two variants produce materially
// different check-out dates for multi-meal days, and call sites historically
// disagreed on which one to use, so both are supported behind this explicit
// parameter.
type WindowStrategy int

const (
	// PerCategoryWindow derives a single check-in/check-out window for the
	// whole category from the minimum and maximum used day numbers.  All
	// options in the category share it.
	PerCategoryWindow WindowStrategy = iota
	// PerDayPerMealWindow derives a window per day and meal: only the
	// biggest meal of a day (dinner over lunch over breakfast) extends to
	// the next used day, everything else gets a same-day window.
	PerDayPerMealWindow
)

// mealPriority orders the meal-slot vocabulary.  Unknown slots rank below
// breakfast and never extend a stay.
var mealPriority = map[string]int{
	"breakfast": 1,
	"lunch":     2,
	"dinner":    3,
}

// ParseTravelDate parses a trip start date in DD-MM-YYYY, YYYY-MM-DD or
// DD/MM/YYYY form.  Unparseable input falls back to today rather than
// failing the resolution; the engine has no fatal error category.
func ParseTravelDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"02-01-2006", "2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// usedDays returns the sorted day numbers of one category that carry at
// least one candidate in either matrix.  Day keys that are not positive
// integers are ignored.
func usedDays(category string, sel Selections, over Overrides) []int {
	set := make(map[int]struct{})
	for day, locations := range sel[category] {
		n, err := strconv.Atoi(day)
		if err != nil || n <= 0 {
			continue
		}
		for _, meals := range locations {
			if len(meals) > 0 {
				set[n] = struct{}{}
				break
			}
		}
	}
	for day, locations := range over[category] {
		n, err := strconv.Atoi(day)
		if err != nil || n <= 0 {
			continue
		}
		for _, meals := range locations {
			if len(meals) > 0 {
				set[n] = struct{}{}
				break
			}
		}
	}
	days := make([]int, 0, len(set))
	for n := range set {
		days = append(days, n)
	}
	sort.Ints(days)
	return days
}

// CategoryWindows computes one stay window per category.  checkIn maps the
// smallest used day onto the trip start; checkOut spans through the largest
// used day, next-day exclusive, so a gap between used days never shrinks the
// stay.  A single used day still yields a one-night window.  Categories with
// no used days get no window and are skipped downstream.
func CategoryWindows(sel Selections, over Overrides, tripStart time.Time) map[string]StayWindow {
	categories := make(map[string]struct{}, len(sel)+len(over))
	for c := range sel {
		categories[c] = struct{}{}
	}
	for c := range over {
		categories[c] = struct{}{}
	}
	out := make(map[string]StayWindow, len(categories))
	for category := range categories {
		days := usedDays(category, sel, over)
		if len(days) == 0 {
			continue
		}
		minDay, maxDay := days[0], days[len(days)-1]
		checkIn := tripStart.AddDate(0, 0, minDay-1)
		checkOut := checkIn.AddDate(0, 0, maxDay-minDay+1)
		out[category] = StayWindow{CheckIn: checkIn, CheckOut: checkOut}
	}
	return out
}

// DayMealWindows computes, per category, a window for every day/meal slot
// that carries a candidate in either matrix.  Within a day the meal with the
// highest priority checks out at the start of the next used day (gap-aware;
// the last used day extends one night), while lower-priority meals keep a
// same-day window.  Days that only appear in the override matrix get windows
// too.  The result is keyed category → day → meal; location does not
// influence the window.
func DayMealWindows(sel Selections, over Overrides, tripStart time.Time) map[string]map[string]map[string]StayWindow {
	categories := make(map[string]struct{}, len(sel)+len(over))
	for c := range sel {
		categories[c] = struct{}{}
	}
	for c := range over {
		categories[c] = struct{}{}
	}
	out := make(map[string]map[string]map[string]StayWindow, len(categories))
	for category := range categories {
		days := usedDays(category, sel, over)
		if len(days) == 0 {
			continue
		}
		next := make(map[int]int, len(days)) // used day -> following used day
		for i, d := range days {
			if i < len(days)-1 {
				next[d] = days[i+1]
			} else {
				next[d] = d + 1
			}
		}
		dayKeys := make(map[string]struct{}, len(sel[category])+len(over[category]))
		for day := range sel[category] {
			dayKeys[day] = struct{}{}
		}
		for day := range over[category] {
			dayKeys[day] = struct{}{}
		}
		catOut := make(map[string]map[string]StayWindow, len(dayKeys))
		for day := range dayKeys {
			n, err := strconv.Atoi(day)
			if err != nil || n <= 0 {
				continue
			}
			mealSet := make(map[string]struct{})
			for _, meals := range sel[category][day] {
				for meal, refs := range meals {
					if len(refs) > 0 {
						mealSet[meal] = struct{}{}
					}
				}
			}
			for _, meals := range over[category][day] {
				for meal := range meals {
					mealSet[meal] = struct{}{}
				}
			}
			if len(mealSet) == 0 {
				continue
			}
			maxPri := 0
			for meal := range mealSet {
				if p := mealPriority[strings.ToLower(meal)]; p > maxPri {
					maxPri = p
				}
			}
			dayStart := tripStart.AddDate(0, 0, n-1)
			nextStart := tripStart.AddDate(0, 0, next[n]-1)
			mealsOut := make(map[string]StayWindow, len(mealSet))
			for meal := range mealSet {
				w := StayWindow{CheckIn: dayStart, CheckOut: dayStart}
				if p := mealPriority[strings.ToLower(meal)]; p == maxPri && maxPri > 0 {
					w.CheckOut = nextStart
				}
				mealsOut[meal] = w
			}
			catOut[day] = mealsOut
		}
		if len(catOut) > 0 {
			out[category] = catOut
		}
	}
	return out
}
