package resolver

import (
	"regexp"
	"strings"
)

var (
	nonDigitRe = regexp.MustCompile(`\D`)
	nonWordRe  = regexp.MustCompile(`[^\w\s]`)
	multiSpace = regexp.MustCompile(`\s{2,}`)
)

// legalSuffixes lists legal entity suffixes stripped as whole words during
// name normalization.
var legalSuffixes = map[string]bool{
	"llc":          true,
	"inc":          true,
	"incorporated": true,
	"corp":         true,
	"corporation":  true,
	"ltd":          true,
	"limited":      true,
	"co":           true,
}

// NormalizePhone reduces a phone number to digits only for matching,
// stripping a leading US country code when present.
//
//	"(555) 123-4567"    -> "5551234567"
//	"+1 (555) 123-4567" -> "5551234567"
//	"555.123.4567"      -> "5551234567"
func NormalizePhone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := nonDigitRe.ReplaceAllString(phone, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	return digits
}

// NormalizeDomain lowercases a domain, strips the www prefix, and
// collapses subdomains to the root. Second-level registries like co.uk
// keep three labels; everything else keeps two.
//
//	"www.Example.com"      -> "example.com"
//	"sub.example.com"      -> "example.com"
//	"shop.example.co.uk"   -> "example.co.uk"
func NormalizeDomain(domain string) string {
	if domain == "" {
		return ""
	}
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.ReplaceAll(d, "www.", "")

	parts := strings.Split(d, ".")
	if len(parts) >= 3 {
		switch parts[len(parts)-2] {
		case "co", "com", "org", "net":
			return strings.Join(parts[len(parts)-3:], ".")
		}
	}
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}
	return d
}

// NormalizeName standardizes a company name for fuzzy matching:
// lowercase, punctuation stripped, legal suffixes removed as whole words,
// whitespace collapsed.
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	n = nonWordRe.ReplaceAllString(n, "")

	fields := strings.Fields(n)
	kept := fields[:0]
	for _, f := range fields {
		if legalSuffixes[f] {
			continue
		}
		kept = append(kept, f)
	}
	n = strings.Join(kept, " ")
	n = multiSpace.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}
