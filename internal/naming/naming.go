// Package naming holds the string transforms every generator derives its
// identifiers, file names and URL segments from. All generators must go
// through this package so that artifacts generated independently stay
// name-consistent with each other.
package naming

import "strings"

// goInitialisms matches the standard Go initialisms so PascalCase output
// lines up with what gofmt-era tooling expects ("id" -> "ID").
var goInitialisms = map[string]bool{
	"api": true, "cpu": true, "css": true, "dns": true, "eof": true,
	"guid": true, "html": true, "http": true, "https": true, "id": true,
	"ip": true, "json": true, "ram": true, "rpc": true, "sla": true,
	"smtp": true, "sql": true, "ssh": true, "tcp": true, "tls": true,
	"ttl": true, "udp": true, "ui": true, "uid": true, "uuid": true,
	"uri": true, "url": true, "utf8": true, "vm": true, "xml": true,
}

// words splits an identifier on separators and camel humps.
// "ClaimAgreement" -> [claim agreement], "claim_agreement" -> [claim agreement].
func words(s string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	var prev rune
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '\t':
			flush()
		case r >= 'A' && r <= 'Z':
			// Hump boundary, except inside an all-caps run ("HTTPServer").
			if prev < 'A' || prev > 'Z' {
				flush()
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return out
}

// ToPascal converts any supported casing to PascalCase, uppercasing Go
// initialisms ("claim_id" -> "ClaimID").
func ToPascal(s string) string {
	parts := words(s)
	for i, p := range parts {
		if goInitialisms[p] {
			parts[i] = strings.ToUpper(p)
		} else if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}

// ToCamel is ToPascal with a lowercase first word.
func ToCamel(s string) string {
	parts := words(s)
	if len(parts) == 0 {
		return ""
	}
	first := parts[0]
	rest := ToPascal(strings.Join(parts[1:], "_"))
	return first + rest
}

// ToKebab converts to kebab-case, used for URL path segments.
func ToKebab(s string) string {
	return strings.Join(words(s), "-")
}

// ToSnake converts to snake_case, used for file names and property names.
func ToSnake(s string) string {
	return strings.Join(words(s), "_")
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Plural applies suffix rules only: y->ies after a consonant, +es after
// s/x/z/ch/sh, +s otherwise. Irregular nouns ("person") are deliberately
// not handled; entity names are curated by the operator.
func Plural(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "y") && len(s) > 1 && !isVowel(lower[len(lower)-2]):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"), strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return s + "es"
	default:
		return s + "s"
	}
}

// Singular reverses the Plural suffix rules.
func Singular(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(lower, "ses"), strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "zes"), strings.HasSuffix(lower, "ches"),
		strings.HasSuffix(lower, "shes"):
		return s[:len(s)-2]
	case strings.HasSuffix(lower, "s") && len(s) > 1:
		return s[:len(s)-1]
	default:
		return s
	}
}
