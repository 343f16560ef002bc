package core

// Payload is the opaque serialized form of an entity. The manager never
// interprets it; the serialized form carries the entity name under "name".
type Payload map[string]any

// PayloadNameKey is the payload key holding the entity name.
const PayloadNameKey = "name"

// Collection is the set of primitive operations a Project exposes for one
// entity kind. E is the Project's entity handle.
//
// Implementations own the entity state; the manager only reads and writes
// through these calls.
type Collection[E any] interface {
	Count() int
	HasNamed(name string) bool
	// InsertNew creates an empty entity named name at index.
	InsertNew(name string, index int) E
	At(index int) E
	Name(e E) string
	SetName(e E, name string)
	Remove(e E)
	Swap(i, j int)
	Serialize(e E) Payload
	// DeserializeInto replaces the entity content with p. It may overwrite the name.
	DeserializeInto(e E, p Payload)
}

// Clone returns a deep copy of p. Nested maps and slices are copied so the
// result shares no mutable state with p.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Payload:
		return val.Clone()
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = cloneValue(inner)
		}
		return m
	case []any:
		l := make([]any, len(val))
		for i, inner := range val {
			l[i] = cloneValue(inner)
		}
		return l
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
