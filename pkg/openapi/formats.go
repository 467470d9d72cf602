package openapi

import (
	"github.com/getmockd/seedmock/internal/faker"
	"github.com/getmockd/seedmock/internal/id"
	"github.com/getmockd/seedmock/internal/rng"
)

// stringByFormat maps OpenAPI string formats to sample values.
func stringByFormat(r *rng.Rand, format string) (string, bool) {
	switch format {
	case "":
		return "", false
	case "date":
		return faker.Date(r), true
	case "date-time":
		return faker.DateTime(r), true
	case "time":
		return faker.Clock(r), true
	case "email", "idn-email":
		return faker.Email(r), true
	case "uuid":
		return id.UUID(r), true
	case "uri", "url", "iri", "uri-reference":
		return faker.URL(r), true
	case "hostname", "idn-hostname":
		return faker.Hostname(r), true
	case "ipv4":
		return faker.IPv4(r), true
	case "ipv6":
		return faker.IPv6(r), true
	case "byte":
		return faker.Base64(r, 12), true
	case "binary":
		return r.Hex(16), true
	case "password":
		return "********", true
	case "phone":
		return faker.Phone(r), true
	case "ulid":
		return id.ULIDAt(r, r.IntN(1<<20)), true
	default:
		return "", false
	}
}
