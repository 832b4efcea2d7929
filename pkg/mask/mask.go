// Package mask redacts personal fields before they cross the trust
// boundary to an unauthenticated caller. Deterministic, not reversible,
// no lookup tables. All rules count runes, not bytes, so CJK names and
// full-width digits mask correctly.
package mask

import "strings"

const maskChar = "*"

// Name masks a personal name. Names shorter than 2 runes are returned
// unchanged; otherwise the first rune is kept, the last rune is kept
// from 3 runes up, and everything in between becomes stars.
func Name(name string) string {
	r := []rune(name)
	switch n := len(r); {
	case n < 2:
		return name
	case n == 2:
		return string(r[0]) + maskChar
	default:
		return string(r[0]) + strings.Repeat(maskChar, n-2) + string(r[n-1])
	}
}

// IDNumber masks an identity number, keeping the first 6 and last 4
// characters. Inputs shorter than 10 runes are treated as not maskable
// and returned unchanged.
func IDNumber(id string) string {
	r := []rune(id)
	n := len(r)
	if n < 10 {
		return id
	}
	return string(r[:6]) + strings.Repeat(maskChar, n-10) + string(r[n-4:])
}

// Phone masks a phone number, keeping the first 3 and last 4 digits.
// Inputs shorter than 8 runes are returned unchanged.
func Phone(phone string) string {
	r := []rune(phone)
	n := len(r)
	if n < 8 {
		return phone
	}
	return string(r[:3]) + strings.Repeat(maskChar, n-7) + string(r[n-4:])
}
