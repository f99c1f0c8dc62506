package itinerary

import "time"

// Option is one resolved hotel candidate for a meal slot.  Every option in a
// slot shares the slot's stay window; exactly one of them is selected.
type Option struct {
	DisplayRecord
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
	Selected bool      `json:"selected"`
}

// ResolvedSelections mirrors the selection matrix with every cell replaced by
// its ordered resolved options.
type ResolvedSelections map[string]map[string]map[string]map[string][]Option

// ResolvedOverrides mirrors the override matrix with each cell replaced by
// the single resolved option the staff picked.
type ResolvedOverrides map[string]map[string]map[string]map[string]Option

// windowFor picks the stay window for one cell under the given strategy.
// Both calculators cover every category, day and meal that appears in either
// matrix, so a populated cell always finds its window.
func windowFor(strategy WindowStrategy, category, day, meal string,
	catWindows map[string]StayWindow,
	dayWindows map[string]map[string]map[string]StayWindow) StayWindow {
	if strategy == PerDayPerMealWindow {
		return dayWindows[category][day][meal]
	}
	return catWindows[category]
}

// hasCandidates reports whether a category carries at least one candidate
// anywhere in the selection matrix.  Categories that never offered an option
// to the client are omitted from the resolved output entirely.
func hasCandidates(category string, sel Selections) bool {
	for _, locations := range sel[category] {
		for _, meals := range locations {
			for _, refs := range meals {
				if len(refs) > 0 {
					return true
				}
			}
		}
	}
	return false
}

// ResolveSelections replaces every candidate list in sel with resolved
// options carrying the category's stay window.  The override matrix decides
// which option is selected: an override matching one of the candidates wins,
// otherwise the first candidate is marked selected so a populated slot never
// ends up with zero selections.
func ResolveSelections(sel Selections, over Overrides, records map[string]DisplayRecord,
	strategy WindowStrategy, tripStart time.Time) ResolvedSelections {
	catWindows := CategoryWindows(sel, over, tripStart)
	var dayWindows map[string]map[string]map[string]StayWindow
	if strategy == PerDayPerMealWindow {
		dayWindows = DayMealWindows(sel, over, tripStart)
	}
	out := make(ResolvedSelections, len(sel))
	for category, days := range sel {
		if !hasCandidates(category, sel) {
			continue
		}
		catOut := make(map[string]map[string]map[string][]Option, len(days))
		for day, locations := range days {
			dayOut := make(map[string]map[string][]Option, len(locations))
			for location, meals := range locations {
				locOut := make(map[string][]Option, len(meals))
				for meal, refs := range meals {
					if len(refs) == 0 {
						continue
					}
					w := windowFor(strategy, category, day, meal, catWindows, dayWindows)
					chosen := over[category][day][location][meal]
					selectedRef := refs[0]
					for _, ref := range refs {
						if ref == chosen {
							selectedRef = ref
							break
						}
					}
					options := make([]Option, 0, len(refs))
					marked := false
					for _, ref := range refs {
						rec, ok := records[ref]
						if !ok {
							rec = NotFoundRecord(ref)
						}
						sel := !marked && ref == selectedRef
						if sel {
							marked = true
						}
						options = append(options, Option{
							DisplayRecord: rec,
							CheckIn:       w.CheckIn,
							CheckOut:      w.CheckOut,
							Selected:      sel,
						})
					}
					locOut[meal] = options
				}
				if len(locOut) > 0 {
					dayOut[location] = locOut
				}
			}
			if len(dayOut) > 0 {
				catOut[day] = dayOut
			}
		}
		if len(catOut) > 0 {
			out[category] = catOut
		}
	}
	return out
}

// ResolveOverrides replaces each override cell with its resolved option.
// Override cells always resolve as selected; they are the staff's choice.
func ResolveOverrides(over Overrides, records map[string]DisplayRecord,
	sel Selections, strategy WindowStrategy, tripStart time.Time) ResolvedOverrides {
	if over == nil {
		return nil
	}
	catWindows := CategoryWindows(sel, over, tripStart)
	var dayWindows map[string]map[string]map[string]StayWindow
	if strategy == PerDayPerMealWindow {
		dayWindows = DayMealWindows(sel, over, tripStart)
	}
	out := make(ResolvedOverrides, len(over))
	for category, days := range over {
		catOut := make(map[string]map[string]map[string]Option, len(days))
		for day, locations := range days {
			dayOut := make(map[string]map[string]Option, len(locations))
			for location, meals := range locations {
				locOut := make(map[string]Option, len(meals))
				for meal, ref := range meals {
					rec, ok := records[ref]
					if !ok {
						rec = NotFoundRecord(ref)
					}
					w := windowFor(strategy, category, day, meal, catWindows, dayWindows)
					locOut[meal] = Option{
						DisplayRecord: rec,
						CheckIn:       w.CheckIn,
						CheckOut:      w.CheckOut,
						Selected:      true,
					}
				}
				dayOut[location] = locOut
			}
			catOut[day] = dayOut
		}
		out[category] = catOut
	}
	return out
}
