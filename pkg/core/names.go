package core

import (
	"strconv"
	"strings"
)

// NewName returns the first name derived from seed for which exists reports false.
//
// Candidates are seed itself, then stem2, stem3, ... where stem is seed
// without its trailing decimal number. "NewScene" yields NewScene, NewScene2,
// NewScene3; "Scene1" yields Scene1, Scene2, Scene3.
func NewName(seed string, exists func(name string) bool) string {
	if !exists(seed) {
		return seed
	}

	stem := trimNumericSuffix(seed)
	for i := 2; ; i++ {
		candidate := stem + strconv.Itoa(i)
		if !exists(candidate) {
			return candidate
		}
	}
}

// trimNumericSuffix strips trailing ASCII digits. A seed made only of digits is kept whole.
func trimNumericSuffix(s string) string {
	stem := strings.TrimRightFunc(s, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	if stem == "" {
		return s
	}
	return stem
}
