package itinerary

// Selection matrices arrive from clients in a loose JSON shape: category →
// day number → location → meal slot → candidate cell.  A cell may be a bare
// identifier string, an array of identifiers, an embedded hotel object, or an
// object wrapping either.  Everything downstream of this file works on the
// canonical form produced here, so no other package needs to branch on cell
// shape.

// RawMatrix is the wire shape of a selection matrix before normalization.
type RawMatrix map[string]map[string]map[string]map[string]any

// Selections is the canonical selection matrix: every populated cell holds an
// ordered list of candidate hotel references.
type Selections map[string]map[string]map[string]map[string][]string

// Overrides is the canonical staff-override matrix: at most one reference per
// cell, naming the candidate the staff picked for that slot.
type Overrides map[string]map[string]map[string]map[string]string

// IsHotelRef reports whether s is syntactically a catalogue object id
// (24 hex characters).  References that fail this check are still carried
// through normalization so the resolver can surface them as invalid, but they
// are never sent to the catalogue lookup.
func IsHotelRef(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// refFromValue extracts a single hotel reference from a candidate element.
// Strings pass through.  Objects contribute their "id" (or "_id") field,
// recursing one level when "id" is itself an array or a nested object.
// Anything else yields "".
func refFromValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if id, ok := t["id"]; ok {
			switch inner := id.(type) {
			case string:
				return inner
			case []any:
				if len(inner) > 0 {
					if s, ok := inner[0].(string); ok {
						return s
					}
				}
			case map[string]any:
				if s, ok := inner["id"].(string); ok {
					return s
				}
				if s, ok := inner["_id"].(string); ok {
					return s
				}
			}
			return ""
		}
		if s, ok := t["_id"].(string); ok {
			return s
		}
	}
	return ""
}

// NormalizeCell converts one polymorphic candidate cell into an ordered list
// of hotel references.  Elements that yield no reference at all are dropped
// silently; catalogues routinely contain partial data and that is not an
// error.  The transform is pure and idempotent: normalizing an already
// normalized cell returns the same list.
func NormalizeCell(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, el := range t {
			if ref := refFromValue(el); ref != "" {
				out = append(out, ref)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		if ref := refFromValue(v); ref != "" {
			return []string{ref}
		}
		return nil
	}
}

// NormalizeMatrix walks a raw matrix and normalizes every cell.  Cells that
// normalize to nothing are omitted, as are the day/location levels they leave
// empty.  The input is never mutated.
func NormalizeMatrix(raw RawMatrix) Selections {
	if raw == nil {
		return nil
	}
	out := make(Selections, len(raw))
	for category, days := range raw {
		for day, locations := range days {
			for location, meals := range locations {
				for meal, cell := range meals {
					refs := NormalizeCell(cell)
					if len(refs) == 0 {
						continue
					}
					ensureCell(out, category, day, location)[meal] = refs
				}
			}
		}
	}
	return out
}

// NormalizeOverrides is NormalizeMatrix for the staff-override matrix.  Each
// cell keeps only its first extracted reference.
func NormalizeOverrides(raw RawMatrix) Overrides {
	if raw == nil {
		return nil
	}
	out := make(Overrides, len(raw))
	for category, days := range raw {
		for day, locations := range days {
			for location, meals := range locations {
				for meal, cell := range meals {
					refs := NormalizeCell(cell)
					if len(refs) == 0 {
						continue
					}
					if _, ok := out[category]; !ok {
						out[category] = make(map[string]map[string]map[string]string)
					}
					if _, ok := out[category][day]; !ok {
						out[category][day] = make(map[string]map[string]string)
					}
					if _, ok := out[category][day][location]; !ok {
						out[category][day][location] = make(map[string]string)
					}
					out[category][day][location][meal] = refs[0]
				}
			}
		}
	}
	return out
}

func ensureCell(s Selections, category, day, location string) map[string][]string {
	if _, ok := s[category]; !ok {
		s[category] = make(map[string]map[string]map[string][]string)
	}
	if _, ok := s[category][day]; !ok {
		s[category][day] = make(map[string]map[string][]string)
	}
	if _, ok := s[category][day][location]; !ok {
		s[category][day][location] = make(map[string][]string)
	}
	return s[category][day][location]
}
