// Package match decides whether two file or folder names refer to the
// same logical tree position.
package match

import (
	"path"
	"strings"

	"github.com/mdewilde/treecomp/pkg/config"
)

// Matcher applies the configured name-equivalence rules: ordinal case
// folding and cross-extension equivalence. A Matcher is read-only after
// construction and safe for concurrent use.
type Matcher struct {
	foldCase bool
	// partner maps a normalized extension to its declared equivalent,
	// populated in both directions since pairs are unordered
	partner map[string]string
}

// New builds a matcher from the compare options. The extension-pair set
// is validated here, once per run: an extension appearing in more than
// one pair is a configuration error raised before any tree walk.
func New(cfg config.CompareConfig) (*Matcher, error) {
	if err := cfg.ValidateExtensionPairs(); err != nil {
		return nil, err
	}

	partner := make(map[string]string, len(cfg.IgnoreExtension)*2)
	for _, pair := range cfg.IgnoreExtension {
		a, b := pair.Normalized()
		partner[a] = b
		partner[b] = a
	}

	return &Matcher{
		foldCase: cfg.IgnoreFileNameCase,
		partner:  partner,
	}, nil
}

// Matches reports whether two base names occupy the same logical
// position. The relation is symmetric.
func (m *Matcher) Matches(nameA, nameB string) bool {
	a := m.fold(nameA)
	b := m.fold(nameB)
	if a == b {
		return true
	}
	if len(m.partner) == 0 {
		return false
	}

	// Extension lookup is case-insensitive regardless of the name-case
	// setting; stems follow it.
	extA := strings.ToLower(path.Ext(a))
	extB := strings.ToLower(path.Ext(b))
	if extA == "" || extB == "" {
		return false
	}

	stemA := a[:len(a)-len(path.Ext(a))]
	stemB := b[:len(b)-len(path.Ext(b))]
	if stemA != stemB {
		return false
	}

	return m.partner[extA] == extB
}

func (m *Matcher) fold(name string) string {
	if m.foldCase {
		return strings.ToLower(name)
	}
	return name
}
