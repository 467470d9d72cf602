// Package faker produces realistic-looking sample values from a seeded
// stream. All output is a pure function of the *rng.Rand state.
package faker

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/seedmock/internal/rng"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BaseTime anchors generated dates so output does not depend on the clock.
var BaseTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var titleCaser = cases.Title(language.English)

var (
	firstNames = []string{
		"John", "Jane", "Alex", "Maria", "Sam", "Taylor", "Jordan", "Morgan",
		"Priya", "Chen", "Fatima", "Lucas", "Amara", "Noah", "Elena", "Kenji",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Okafor", "Nakamura", "Rossi", "Novak", "Silva", "Kowalski", "Haddad", "Larsen",
	}
	emailDomains = []string{"example.com", "test.io", "demo.org", "mail.example.net"}
	streets      = []string{"Main St", "Oak Ave", "Park Blvd", "Cedar Ln", "Elm St", "Maple Dr", "Pine Rd", "Lake Way"}
	cities       = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"San Francisco", "Seattle", "Austin", "Denver", "Boston",
	}
	states    = []string{"California", "Texas", "New York", "Florida", "Illinois", "Washington", "Colorado", "Massachusetts"}
	countries = []string{"US", "GB", "CA", "DE", "FR", "JP", "AU", "BR", "IN", "NL"}
	companies = []string{"Acme", "Globex", "Initech", "Umbrella", "Stark", "Wayne", "Pied Piper", "Hooli"}
	suffixes  = []string{"Corp", "Inc", "LLC", "Ltd", "Group"}
	words     = []string{
		"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "theta", "omega",
		"quick", "brown", "fox", "lazy", "river", "stone", "cloud", "ember",
		"amber", "harbor", "meadow", "summit", "orbit", "pixel", "vector", "signal",
	}
	sentenceWords = []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"a", "modern", "approach", "to", "building", "scalable", "applications",
		"with", "reliable", "systems", "and", "clear", "interfaces",
	}
	colors        = []string{"Crimson", "Azure", "Emerald", "Ivory", "Coral", "Indigo", "Amber", "Teal"}
	currencyCodes = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF"}
	jobLevels     = []string{"Senior", "Junior", "Lead", "Principal", "Staff"}
	jobRoles      = []string{"Engineer", "Analyst", "Manager", "Designer", "Developer"}
	statuses      = []string{"active", "inactive", "pending", "archived"}
	tagWords      = []string{"new", "featured", "sale", "popular", "limited", "classic"}
)

// FirstName returns a first name.
func FirstName(r *rng.Rand) string { return rng.Pick(r, firstNames) }

// LastName returns a last name.
func LastName(r *rng.Rand) string { return rng.Pick(r, lastNames) }

// FullName returns "First Last".
func FullName(r *rng.Rand) string { return FirstName(r) + " " + LastName(r) }

// Username returns a lowercase handle with a numeric suffix.
func Username(r *rng.Rand) string {
	return strings.ToLower(FirstName(r)) + r.Digits(2)
}

// Email returns an address on a reserved example domain.
func Email(r *rng.Rand) string {
	return strings.ToLower(FirstName(r)) + "." + strings.ToLower(LastName(r)) +
		"@" + rng.Pick(r, emailDomains)
}

// Phone returns a North American style number in the 555 range.
func Phone(r *rng.Rand) string {
	return "+1-555-" + r.Digits(3) + "-" + r.Digits(4)
}

// Street returns a street address line.
func Street(r *rng.Rand) string {
	return strconv.Itoa(r.IntRange(1, 9999)) + " " + rng.Pick(r, streets)
}

// City returns a city name.
func City(r *rng.Rand) string { return rng.Pick(r, cities) }

// State returns a state or province name.
func State(r *rng.Rand) string { return rng.Pick(r, states) }

// Country returns an ISO 3166 alpha-2 country code.
func Country(r *rng.Rand) string { return rng.Pick(r, countries) }

// PostalCode returns a five digit postal code.
func PostalCode(r *rng.Rand) string { return r.Digits(5) }

// Address returns a single-line postal address.
func Address(r *rng.Rand) string {
	return Street(r) + ", " + City(r)
}

// Company returns a company name.
func Company(r *rng.Rand) string {
	return rng.Pick(r, companies) + " " + rng.Pick(r, suffixes)
}

// Word returns a single lowercase word.
func Word(r *rng.Rand) string { return rng.Pick(r, words) }

// Title returns n title-cased words.
func Title(r *rng.Rand, n int) string {
	if n <= 0 {
		n = 1
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = Word(r)
	}
	return titleCaser.String(strings.Join(parts, " "))
}

// Sentence returns a capitalized sentence of 5 to 10 words.
func Sentence(r *rng.Rand) string {
	n := r.IntRange(5, 10)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = rng.Pick(r, sentenceWords)
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

// Paragraph returns two to four sentences.
func Paragraph(r *rng.Rand) string {
	n := r.IntRange(2, 4)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = Sentence(r)
	}
	return strings.Join(parts, " ")
}

// Slug returns a lowercase hyphenated slug.
func Slug(r *rng.Rand) string {
	n := r.IntRange(2, 3)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = Word(r)
	}
	return strings.Join(parts, "-")
}

// URL returns an https URL on example.com.
func URL(r *rng.Rand) string {
	return "https://example.com/" + Slug(r)
}

// ImageURL returns a URL that looks like an image asset.
func ImageURL(r *rng.Rand) string {
	return fmt.Sprintf("https://images.example.com/%s/%dx%d.jpg", Slug(r), r.IntRange(2, 8)*100, r.IntRange(2, 8)*100)
}

// Hostname returns a hostname under example.com.
func Hostname(r *rng.Rand) string { return Word(r) + ".example.com" }

// IPv4 returns a dotted-quad address.
func IPv4(r *rng.Rand) string {
	return fmt.Sprintf("%d.%d.%d.%d", r.IntRange(1, 254), r.IntN(256), r.IntN(256), r.IntRange(1, 254))
}

// IPv6 returns an address in the 2001:db8::/32 documentation range.
func IPv6(r *rng.Rand) string {
	return "2001:0db8:" + r.Hex(4) + ":" + r.Hex(4) + ":" + r.Hex(4) + ":" + r.Hex(4) + ":" + r.Hex(4) + ":" + r.Hex(4)
}

// Time returns an instant within two years after BaseTime.
func Time(r *rng.Rand) time.Time {
	return BaseTime.Add(time.Duration(r.IntN(730*24*3600)) * time.Second)
}

// Date returns a YYYY-MM-DD date.
func Date(r *rng.Rand) string { return Time(r).Format("2006-01-02") }

// DateTime returns an RFC 3339 timestamp.
func DateTime(r *rng.Rand) string { return Time(r).Format(time.RFC3339) }

// Clock returns an HH:MM:SSZ time of day.
func Clock(r *rng.Rand) string { return Time(r).Format("15:04:05Z") }

// Color returns a color name.
func Color(r *rng.Rand) string { return rng.Pick(r, colors) }

// CurrencyCode returns an ISO 4217 currency code.
func CurrencyCode(r *rng.Rand) string { return rng.Pick(r, currencyCodes) }

// Price returns a monetary amount with two decimals.
func Price(r *rng.Rand) float64 {
	return Round2(r.FloatRange(1, 1000))
}

// JobTitle returns a job title.
func JobTitle(r *rng.Rand) string {
	return rng.Pick(r, jobLevels) + " " + rng.Pick(r, jobRoles)
}

// Status returns a lifecycle status word.
func Status(r *rng.Rand) string { return rng.Pick(r, statuses) }

// Tag returns a short tag.
func Tag(r *rng.Rand) string { return rng.Pick(r, tagWords) }

// Latitude returns a latitude in degrees.
func Latitude(r *rng.Rand) float64 { return Round6(r.FloatRange(-90, 90)) }

// Longitude returns a longitude in degrees.
func Longitude(r *rng.Rand) float64 { return Round6(r.FloatRange(-180, 180)) }

// Base64 returns n pseudo-random bytes, base64 encoded.
func Base64(r *rng.Rand, n int) string {
	return base64.StdEncoding.EncodeToString(r.Bytes(n))
}

// Code returns an uppercase alphanumeric code such as "AB-1234".
func Code(r *rng.Rand) string {
	return r.Chars("ABCDEFGHJKLMNPQRSTUVWXYZ", 2) + "-" + r.Digits(4)
}

// Token returns a lowercase alphanumeric token.
func Token(r *rng.Rand, n int) string {
	return r.Chars("abcdefghijklmnopqrstuvwxyz0123456789", n)
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 { return float64(int64(f*100)) / 100 }

// Round6 rounds to six decimal places.
func Round6(f float64) float64 { return float64(int64(f*1e6)) / 1e6 }
