package core

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// View is the host that renders a collection. The manager calls Refresh after
// every mutation and RenameStarted when an entity enters rename mode, so the
// host can focus its input however it sees fit.
type View interface {
	Refresh(kind Kind)
	RenameStarted(kind Kind, name string)
}

// NopView ignores every notification.
type NopView struct{}

func (NopView) Refresh(Kind)               {}
func (NopView) RenameStarted(Kind, string) {}

// ViewFuncs adapts plain functions to View. Nil fields are ignored.
type ViewFuncs struct {
	OnRefresh       func(kind Kind)
	OnRenameStarted func(kind Kind, name string)
}

func (v ViewFuncs) Refresh(kind Kind) {
	if v.OnRefresh != nil {
		v.OnRefresh(kind)
	}
}

func (v ViewFuncs) RenameStarted(kind Kind, name string) {
	if v.OnRenameStarted != nil {
		v.OnRenameStarted(kind, name)
	}
}

// Item is what the host view needs to render one entity row.
type Item struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Renaming    bool   `json:"renaming,omitempty"`
	CanMoveUp   bool   `json:"canMoveUp"`
	CanMoveDown bool   `json:"canMoveDown"`
	CanPaste    bool   `json:"canPaste"`
}

// MatchName reports whether name passes the search query.
// An empty query matches everything. A query holding glob metacharacters is
// matched as a doublestar pattern; otherwise it is a case-insensitive substring.
func MatchName(query, name string) bool {
	if query == "" {
		return true
	}
	if strings.ContainsAny(query, "*?[{") {
		ok, err := doublestar.Match(query, name)
		return err == nil && ok
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}
