package faker

import (
	"strings"

	"github.com/getmockd/seedmock/internal/id"
	"github.com/getmockd/seedmock/internal/rng"
)

// StringForField returns a plausible string for a property called name,
// or false when the name carries no hint.
//
//nolint:gocyclo // one flat switch reads better than a lookup table here
func StringForField(r *rng.Rand, name string) (string, bool) {
	lower := strings.ToLower(strings.ReplaceAll(name, "-", "_"))
	flat := strings.ReplaceAll(lower, "_", "")

	switch {
	case strings.HasSuffix(flat, "email"):
		return Email(r), true
	case flat == "phone" || flat == "mobile" || flat == "tel" || strings.HasSuffix(flat, "phone") ||
		strings.HasSuffix(flat, "phonenumber"):
		return Phone(r), true
	case flat == "name" || flat == "fullname" || flat == "displayname" || flat == "customername" ||
		flat == "authorname" || flat == "ownername":
		return FullName(r), true
	case flat == "firstname" || flat == "givenname":
		return FirstName(r), true
	case flat == "lastname" || flat == "surname" || flat == "familyname":
		return LastName(r), true
	case flat == "username" || flat == "login" || flat == "handle" || flat == "nickname":
		return Username(r), true
	case flat == "address" || flat == "streetaddress" || flat == "street" || flat == "address1" || flat == "addressline1":
		return Street(r), true
	case flat == "city" || flat == "town":
		return City(r), true
	case flat == "state" || flat == "province" || flat == "region":
		return State(r), true
	case flat == "country" || flat == "countrycode":
		return Country(r), true
	case flat == "zip" || flat == "zipcode" || flat == "postalcode" || flat == "postcode":
		return PostalCode(r), true
	case flat == "company" || flat == "organization" || flat == "org" || flat == "employer" || flat == "companyname":
		return Company(r), true
	case strings.Contains(flat, "image") || strings.Contains(flat, "avatar") || strings.Contains(flat, "photo") ||
		strings.Contains(flat, "thumbnail") || strings.Contains(flat, "picture"):
		return ImageURL(r), true
	case flat == "url" || flat == "uri" || flat == "href" || flat == "link" || flat == "website" ||
		strings.HasSuffix(flat, "url"):
		return URL(r), true
	case flat == "host" || flat == "hostname" || flat == "domain":
		return Hostname(r), true
	case flat == "ip" || flat == "ipaddress" || flat == "ipv4":
		return IPv4(r), true
	case flat == "ipv6":
		return IPv6(r), true
	case flat == "uuid" || flat == "guid":
		return id.UUID(r), true
	case strings.HasSuffix(lower, "_at") || strings.HasSuffix(name, "At") || flat == "timestamp" ||
		flat == "created" || flat == "updated" || flat == "modified":
		return DateTime(r), true
	case strings.HasSuffix(flat, "date") || flat == "birthday" || flat == "dob":
		return Date(r), true
	case strings.HasSuffix(flat, "time"):
		return DateTime(r), true
	case flat == "description" || flat == "bio" || flat == "summary" || flat == "about" ||
		flat == "body" || flat == "content" || flat == "text" || flat == "message" || flat == "comment" || flat == "notes":
		return Sentence(r), true
	case flat == "title" || flat == "headline" || flat == "subject" || flat == "label":
		return Title(r, r.IntRange(2, 4)), true
	case flat == "jobtitle" || flat == "position" || flat == "role":
		return JobTitle(r), true
	case flat == "status" || flat == "lifecycle":
		return Status(r), true
	case flat == "slug" || flat == "permalink":
		return Slug(r), true
	case flat == "color" || flat == "colour":
		return Color(r), true
	case flat == "currency" || flat == "currencycode":
		return CurrencyCode(r), true
	case flat == "tag" || flat == "category" || flat == "type" || flat == "kind":
		return Tag(r), true
	case flat == "code" || strings.HasSuffix(flat, "code") || flat == "sku" || flat == "reference":
		return Code(r), true
	case flat == "token" || strings.HasSuffix(flat, "token") || flat == "secret" || flat == "apikey":
		return Token(r, 32), true
	case flat == "password" || flat == "passwd":
		return "********", true
	case flat == "locale" || flat == "language" || flat == "lang":
		return rng.Pick(r, []string{"en-US", "en-GB", "de-DE", "fr-FR", "ja-JP"}), true
	case flat == "timezone" || flat == "tz":
		return rng.Pick(r, []string{"UTC", "America/New_York", "Europe/Berlin", "Asia/Tokyo"}), true
	}
	return "", false
}
