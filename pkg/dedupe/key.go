// Package dedupe finds and merges duplicate contacts inside one workspace.
// Everything here is pure: callers load the contacts and persist the result.
package dedupe

import (
	"strings"

	"brandlink-be/internal/entity"
)

// IsBlank reports whether an optional string carries no usable value:
// nil, empty, or whitespace only.
func IsBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func normalize(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*s))
}

// DeriveKey returns the identity key used to bucket a contact.
//
// Precedence: email, then name|company, then name, then company. A contact
// with none of them falls back to its own id so it can never be grouped
// with an unrelated record.
func DeriveKey(c *entity.Contact) string {
	if !IsBlank(c.Email) {
		return normalize(c.Email)
	}

	hasName := !IsBlank(c.Name)
	hasCompany := !IsBlank(c.Company)

	switch {
	case hasName && hasCompany:
		return normalize(c.Name) + "|" + normalize(c.Company)
	case hasName:
		return normalize(c.Name)
	case hasCompany:
		return normalize(c.Company)
	default:
		return c.Id.String()
	}
}
