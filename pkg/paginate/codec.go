package paginate

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// Direction is the walk direction stored in a cursor.
type Direction string

// Directions.
const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// LegacyPrefix marks anchors decoded from legacy index cursors.
const LegacyPrefix = "legacy-"

// MinRawCursorLength is the shortest token accepted as a raw anchor ID.
const MinRawCursorLength = 8

// CursorPayload is the decoded form of a cursor. It is never stored.
type CursorPayload struct {
	LastID     string    `json:"lastId"`
	Direction  Direction `json:"direction"`
	SnapshotID string    `json:"snapshotId,omitempty"`

	// Timestamp is the issue time in Unix milliseconds. Zero means unknown
	// (legacy and raw cursors) and never expires.
	Timestamp int64 `json:"timestamp,omitempty"`

	SortField string `json:"sortField,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// Encoding names reported by DecodeCursor.
const (
	EncodingStructured = "structured"
	EncodingLegacy     = "legacy"
	EncodingRaw        = "raw"
)

// EncodeCursor returns the structured encoding of p.
func EncodeCursor(p CursorPayload) string {
	if p.Direction == "" {
		p.Direction = Forward
	}
	data, _ := json.Marshal(p)
	return base64.RawURLEncoding.EncodeToString(data)
}

// EncodeLegacyCursor returns the legacy encoding of an index.
func EncodeLegacyCursor(index int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(index)))
}

type cursorDecoder struct {
	name   string
	decode func(string) (CursorPayload, bool)
}

var cursorDecoders = []cursorDecoder{
	{EncodingStructured, decodeStructured},
	{EncodingLegacy, decodeLegacy},
	{EncodingRaw, decodeRaw},
}

// DecodeCursor tries each encoding in order and returns the first
// successful decode along with the encoding name.
func DecodeCursor(s string) (CursorPayload, string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CursorPayload{}, "", false
	}
	for _, d := range cursorDecoders {
		if p, ok := d.decode(s); ok {
			return p, d.name, true
		}
	}
	return CursorPayload{}, "", false
}

func decodeStructured(s string) (CursorPayload, bool) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil || len(data) == 0 || data[0] != '{' {
		return CursorPayload{}, false
	}
	var p CursorPayload
	if err := json.Unmarshal(data, &p); err != nil || p.LastID == "" {
		return CursorPayload{}, false
	}
	if p.Direction != Backward {
		p.Direction = Forward
	}
	return p, true
}

func decodeLegacy(s string) (CursorPayload, bool) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return CursorPayload{}, false
	}
	n, err := strconv.Atoi(string(data))
	if err != nil || n < 0 {
		return CursorPayload{}, false
	}
	return CursorPayload{LastID: LegacyPrefix + strconv.Itoa(n), Direction: Forward}, true
}

func decodeRaw(s string) (CursorPayload, bool) {
	if len(s) < MinRawCursorLength || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return CursorPayload{}, false
	}
	return CursorPayload{LastID: s, Direction: Forward}, true
}

// legacyIndex returns n for anchors of the form legacy-<n>.
func legacyIndex(lastID string) (int, bool) {
	rest, ok := strings.CutPrefix(lastID, LegacyPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
