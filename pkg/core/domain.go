// Package core holds the named-entity collection manager and the ports it
// consumes (Collection, Clipboard, View).
package core

import (
	"fmt"
	"strings"
)

// Kind identifies one of the project's named-entity collections.
type Kind int

const (
	KindScene Kind = iota
	KindExternalEvents
	KindExternalLayout
	KindExtension

	// KindCount is the number of known kinds. Useful to size kind-indexed tables.
	KindCount
)

type kindInfo struct {
	tag      string
	label    string
	baseName string
	aliases  []string
}

// kinds is indexed by Kind.
var kinds = [KindCount]kindInfo{
	KindScene: {
		tag:      "layout",
		label:    "Scenes",
		baseName: "NewScene",
		aliases:  []string{"scene", "scenes", "layouts"},
	},
	KindExternalEvents: {
		tag:      "external-events",
		label:    "External events",
		baseName: "NewExternalEvents",
		aliases:  []string{"events", "externalevents"},
	},
	KindExternalLayout: {
		tag:      "external-layout",
		label:    "External layouts",
		baseName: "NewExternalLayout",
		aliases:  []string{"external-layouts", "externallayout", "externallayouts"},
	},
	KindExtension: {
		tag:      "extension",
		label:    "Extensions",
		baseName: "NewExtension",
		aliases:  []string{"extensions", "functions"},
	},
}

// Kinds returns every known kind in display order.
func Kinds() []Kind {
	out := make([]Kind, 0, KindCount)
	for k := Kind(0); k < KindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < KindCount
}

// Tag is the stable identifier of the kind (clipboard key, file keys).
func (k Kind) Tag() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].tag
}

// Label is the human readable collection title.
func (k Kind) Label() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].label
}

// BaseName is the seed used when generating names for new entities.
func (k Kind) BaseName() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].baseName
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].tag
}

// ParseKind resolves a tag or one of its aliases (case-insensitive).
func ParseKind(s string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for k := Kind(0); k < KindCount; k++ {
		info := kinds[k]
		if needle == info.tag {
			return k, nil
		}
		for _, alias := range info.aliases {
			if needle == alias {
				return k, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// EventType represents the type of change in a project.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventRename EventType = "RENAME"
	EventMove   EventType = "MOVE"
	EventDelete EventType = "DELETE"
)

// Event represents a change in a project collection.
// Kind is only meaningful when Name refers to an entity; storage-level events
// (an external edit of the project file) carry the file name instead.
type Event struct {
	Type      EventType
	Kind      Kind
	Name      string
	OldName   string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	if e.OldName != "" {
		return fmt.Sprintf("%s %s %s -> %s", e.Type, e.Kind, e.OldName, e.Name)
	}
	return fmt.Sprintf("%s %s %s", e.Type, e.Kind, e.Name)
}

type contextKey string

// ChangeReasonKey is the context key for passing the change reason (commit message) to storage adapters.
const ChangeReasonKey contextKey = "change_reason"
