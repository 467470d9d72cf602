package modelgen

import (
	"strings"

	"github.com/getmockd/seedmock/internal/faker"
	"github.com/getmockd/seedmock/internal/id"
	"github.com/getmockd/seedmock/internal/rng"
	"github.com/getmockd/seedmock/pkg/schema"
)

var (
	boolPrefixes = []string{"is_", "has_", "can_", "should_", "allow_", "allows_", "needs_"}
	boolSuffixes = []string{"enabled", "disabled", "active", "verified", "deleted", "archived", "visible", "public", "completed", "complete"}

	countNames = map[string]bool{
		"count": true, "total": true, "quantity": true, "qty": true, "size": true,
		"length": true, "page": true, "limit": true, "offset": true, "rank": true,
		"position": true, "index": true, "order": true, "version": true, "stock": true,
		"votes": true, "likes": true, "views": true, "followers": true, "following": true,
		"attempts": true, "retries": true, "priority": true, "level": true, "port": true,
	}
	moneyNames = []string{"price", "amount", "cost", "balance", "fee", "salary", "subtotal", "tax", "discount", "revenue"}
)

// words returns the snake-case parts of name.
func words(name string) []string {
	return strings.Split(schema.ToSnake(name), "_")
}

func lastWord(name string) string {
	w := words(name)
	return w[len(w)-1]
}

func isIDName(name string) bool {
	snake := schema.ToSnake(name)
	return snake == "id" || strings.HasSuffix(snake, "_id") || snake == "uuid" || snake == "key"
}

func isBoolName(name string) bool {
	snake := schema.ToSnake(name)
	for _, p := range boolPrefixes {
		if strings.HasPrefix(snake, p) {
			return true
		}
	}
	last := lastWord(name)
	for _, s := range boolSuffixes {
		if last == s {
			return true
		}
	}
	return false
}

func isMoneyName(name string) bool {
	last := lastWord(name)
	for _, m := range moneyNames {
		if last == m {
			return true
		}
	}
	return false
}

// intForField returns an integer for count-like or identifier names.
func intForField(r *rng.Rand, name string) (int, bool) {
	snake := schema.ToSnake(name)
	last := lastWord(name)
	switch {
	case isIDName(name):
		return r.IntRange(1, 100000), true
	case last == "age":
		return r.IntRange(18, 90), true
	case last == "year":
		return r.IntRange(1990, 2030), true
	case last == "port":
		return r.IntRange(1024, 65535), true
	case countNames[last] || strings.HasPrefix(snake, "num_") || strings.HasSuffix(snake, "_count"):
		return r.IntRange(0, 500), true
	}
	return 0, false
}

// numberFor handles numeric fields, which client packages declare as a
// single number type whether they hold counts or amounts.
func numberFor(r *rng.Rand, name string) any {
	if v, ok := intForField(r, name); ok {
		return v
	}
	last := lastWord(name)
	switch {
	case isMoneyName(name):
		return faker.Price(r)
	case last == "lat" || last == "latitude":
		return faker.Latitude(r)
	case last == "lng" || last == "lon" || last == "longitude":
		return faker.Longitude(r)
	case last == "rating" || last == "score" || last == "stars":
		return faker.Round2(r.FloatRange(1, 5))
	case last == "percent" || last == "percentage" || last == "ratio":
		return faker.Round2(r.FloatRange(0, 100))
	case last == "weight" || last == "height" || last == "width" || last == "depth":
		return faker.Round2(r.FloatRange(1, 200))
	}
	return faker.Round2(r.FloatRange(0, 1000))
}

func stringFor(r *rng.Rand, name string) string {
	if isIDName(name) {
		return id.UUID(r)
	}
	if v, ok := faker.StringForField(r, name); ok {
		return v
	}
	return faker.Word(r) + "_" + faker.Token(r, 6)
}

// valueForName picks a value for untyped fields from the name alone.
func valueForName(r *rng.Rand, name string) any {
	last := lastWord(name)
	switch {
	case isIDName(name):
		return id.UUID(r)
	case isBoolName(name):
		return r.Bool(0.5)
	case last == "tags" || last == "labels" || last == "keywords":
		n := r.IntRange(1, 3)
		tags := make([]any, n)
		for i := range tags {
			tags[i] = faker.Tag(r)
		}
		return tags
	case isMoneyName(name):
		return faker.Price(r)
	}
	if v, ok := intForField(r, name); ok {
		return v
	}
	if v, ok := faker.StringForField(r, name); ok {
		return v
	}
	return faker.Word(r)
}
