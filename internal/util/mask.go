// Package util tiene helpers chicos sin dependencias del dominio.
package util

import (
	"strings"
	"unicode/utf8"
)

// MaskEmail oculta un email para logs: "ana.perez@gmail.com" => "a…@g….com".
// Un valor sin "@" se enmascara entero. Corta por runa, nunca por byte.
func MaskEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	at := strings.IndexByte(s, '@')
	if at <= 0 {
		switch {
		case s == "":
			return ""
		case utf8.RuneCountInString(s) <= 3:
			return "***"
		default:
			first, _ := utf8.DecodeRuneInString(s)
			last, _ := utf8.DecodeLastRuneInString(s)
			return string(first) + "…" + string(last)
		}
	}

	user, domain := s[:at], s[at+1:]
	user = keepFirstRune(user)
	parts := strings.Split(domain, ".")
	parts[0] = keepFirstRune(parts[0])
	return user + "@" + strings.Join(parts, ".")
}

// keepFirstRune deja la primera runa seguida de "…" si hay más de una.
func keepFirstRune(s string) string {
	if utf8.RuneCountInString(s) <= 1 {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size] + "…"
}

// Truncate corta s a lo sumo en n bytes sin partir una runa y agrega "..."
// si hubo corte.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
