// Package sanitize derives storage partition identifiers from human-facing
// organization names.
package sanitize

import (
	"strings"
	"unicode"
)

// Prefix namespaces every partition identifier so tenant tables never collide
// with the master registry tables.
const Prefix = "org_"

// Identifier maps an organization name to its partition identifier.
// The mapping is deterministic: surrounding whitespace is trimmed, letters and
// digits are lowercased, and every other rune becomes a single underscore
// (one rune in, one rune out; consecutive substitutions are not collapsed).
//
// Distinct names can still collide ("A B" and "A_B" both map to "org_a_b");
// the registry's unique index on the stored identifier rejects the second one.
func Identifier(name string) string {
	trimmed := strings.TrimSpace(name)

	var b strings.Builder
	b.Grow(len(Prefix) + len(trimmed))
	b.WriteString(Prefix)
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
