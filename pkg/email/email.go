// Package email derives display defaults from an email address for
// registrations that omit optional profile fields.
package email

import (
	"strings"
	"unicode"
)

// DeriveCompanyName builds a readable fallback company name from the local
// part of an email address: "obras.del-norte@x.com" becomes "Obras Del Norte".
func DeriveCompanyName(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Empresa"
	}

	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
