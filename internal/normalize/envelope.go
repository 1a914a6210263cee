// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package normalize

// listFallbackKeys are the field names known to hold entity lists inside an
// envelope's data mapping, tried in order when the caller's key misses.
var listFallbackKeys = []string{"data", "networks", "eeros", "devices", "profiles"}

// isEnvelope reports whether m is a {"meta": ..., "data": ...} wire wrapper.
// Both keys must be present; a payload that happens to contain only one of
// them is treated as already unwrapped.
func isEnvelope(m map[string]any) bool {
	if m == nil {
		return false
	}
	_, hasMeta := m["meta"]
	_, hasData := m["data"]
	return hasMeta && hasData
}

// ExtractData unwraps a single-item response. List-shaped payloads yield an
// empty mapping; callers wanting a list use ExtractList. The input is never
// mutated and the result is always a fresh map.
func ExtractData(raw any) map[string]any {
	m := asMap(raw)
	if m == nil {
		return map[string]any{}
	}
	if isEnvelope(m) {
		data := asMap(m["data"])
		if data == nil {
			return map[string]any{}
		}
		return copyMap(data)
	}
	return copyMap(m)
}

// ExtractList unwraps a list response. It accepts, in decreasing order of
// likelihood:
//
//   - a bare sequence (already unwrapped)
//   - {"meta": ..., "data": [...]}
//   - {"meta": ..., "data": {<listKey>: [...]}} and the legacy
//     {"meta": ..., "data": {<listKey>: {"data": [...]}}} double wrap
//   - a plain mapping carrying listKey directly
//
// listKey may be empty; the known list-holding keys are tried as fallback.
// Elements that are not mappings are dropped rather than failing the batch.
func ExtractList(raw any, listKey string) []map[string]any {
	items, _ := ExtractListCounted(raw, listKey)
	return items
}

// ExtractListCounted is ExtractList plus the raw element count before
// non-mapping elements were dropped, so callers can surface silent loss.
func ExtractListCounted(raw any, listKey string) ([]map[string]any, int) {
	if raw == nil {
		return []map[string]any{}, 0
	}
	if s := asSlice(raw); s != nil {
		return mapElements(s), len(s)
	}
	m := asMap(raw)
	if m == nil {
		return []map[string]any{}, 0
	}
	if isEnvelope(m) {
		if s := asSlice(m["data"]); s != nil {
			return mapElements(s), len(s)
		}
		if data := asMap(m["data"]); data != nil {
			keys := listFallbackKeys
			if listKey != "" {
				keys = append([]string{listKey}, listFallbackKeys...)
			}
			for _, key := range keys {
				v, ok := data[key]
				if !ok {
					continue
				}
				if s := asSlice(v); s != nil {
					return mapElements(s), len(s)
				}
				// One more level of legacy nesting: {key: {data: [...]}}.
				if inner := asMap(v); inner != nil {
					if s := asSlice(inner["data"]); s != nil {
						return mapElements(s), len(s)
					}
				}
			}
		}
		return []map[string]any{}, 0
	}
	if listKey != "" {
		if s := asSlice(m[listKey]); s != nil {
			return mapElements(s), len(s)
		}
	}
	return []map[string]any{}, 0
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mapElements(s []any) []map[string]any {
	out := make([]map[string]any, 0, len(s))
	for _, v := range s {
		if m := asMap(v); m != nil {
			out = append(out, m)
		}
	}
	return out
}
