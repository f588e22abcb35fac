package session

// Record is the application-defined payload of a session: a map from string keys
// to JSON-compatible values (objects, arrays, strings, numbers, booleans, null).
type Record map[string]any

// Clone returns a shallow copy of r. A nil record clones to an empty one.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
