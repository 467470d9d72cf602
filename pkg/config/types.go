package config

import (
	"slices"
	"time"
)

// IDFormat selects how item identifiers are generated.
type IDFormat string

// Supported ID formats.
const (
	IDFormatSequential IDFormat = "sequential"
	IDFormatUUID       IDFormat = "uuid"
	IDFormatULID       IDFormat = "ulid"
	IDFormatNanoID     IDFormat = "nanoid"
	IDFormatNumeric    IDFormat = "numeric"
	IDFormatHash       IDFormat = "hash"
)

// IDFormats lists every supported format.
func IDFormats() []IDFormat {
	return []IDFormat{IDFormatSequential, IDFormatUUID, IDFormatULID, IDFormatNanoID, IDFormatNumeric, IDFormatHash}
}

// Valid reports whether f is a known format.
func (f IDFormat) Valid() bool {
	return slices.Contains(IDFormats(), f)
}

// Config is the complete runtime configuration.
type Config struct {
	ID         IDConfig         `json:"id" yaml:"id" envPrefix:"ID_"`
	Pagination PaginationConfig `json:"pagination" yaml:"pagination" envPrefix:"PAGINATION_"`
	Cursor     CursorConfig     `json:"cursor" yaml:"cursor" envPrefix:"CURSOR_"`
	Synth      SynthConfig      `json:"synth" yaml:"synth" envPrefix:"SYNTH_"`
	Log        LogConfig        `json:"log" yaml:"log" envPrefix:"LOG_"`
}

// IDConfig controls ID field detection and ID value generation.
type IDConfig struct {
	// FieldPatterns are exact field names treated as the ID, in priority order.
	FieldPatterns []string `json:"fieldPatterns,omitempty" yaml:"fieldPatterns,omitempty" env:"FIELD_PATTERNS" envSeparator:","`

	// FieldSuffixes are suffixes (e.g. "Id") matched when no exact pattern hits.
	FieldSuffixes []string `json:"fieldSuffixes,omitempty" yaml:"fieldSuffixes,omitempty" env:"FIELD_SUFFIXES" envSeparator:","`

	// Format is the global default ID format.
	Format IDFormat `json:"format,omitempty" yaml:"format,omitempty" env:"FORMAT"`

	// Prefix is prepended to every generated ID.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty" env:"PREFIX"`

	// FieldOverrides sets the format for specific field names.
	FieldOverrides map[string]IDFormat `json:"fieldOverrides,omitempty" yaml:"fieldOverrides,omitempty" env:"FIELD_OVERRIDES"`
}

// PaginationConfig controls the snapshot store and page defaults.
type PaginationConfig struct {
	// Cache enables snapshot caching. When false each request builds a
	// fresh snapshot.
	Cache bool `json:"cache" yaml:"cache" env:"CACHE"`

	// CacheTTL is how long a snapshot stays valid.
	CacheTTL time.Duration `json:"cacheTTL" yaml:"cacheTTL" env:"CACHE_TTL"`

	// SweepInterval is how often expired snapshots are removed.
	SweepInterval time.Duration `json:"sweepInterval" yaml:"sweepInterval" env:"SWEEP_INTERVAL"`

	DefaultTotal int `json:"defaultTotal" yaml:"defaultTotal" env:"DEFAULT_TOTAL"`
	DefaultLimit int `json:"defaultLimit" yaml:"defaultLimit" env:"DEFAULT_LIMIT"`

	// MaxLimit caps the page size a caller may request. Zero means no cap.
	MaxLimit int `json:"maxLimit,omitempty" yaml:"maxLimit,omitempty" env:"MAX_LIMIT"`

	// IncludeSnapshotID adds the snapshot handle to list responses.
	IncludeSnapshotID bool `json:"includeSnapshotId" yaml:"includeSnapshotId" env:"INCLUDE_SNAPSHOT_ID"`
}

// CursorConfig controls cursor encoding and expiry.
type CursorConfig struct {
	EnableExpiry bool          `json:"enableExpiry" yaml:"enableExpiry" env:"ENABLE_EXPIRY"`
	CursorTTL    time.Duration `json:"cursorTTL" yaml:"cursorTTL" env:"TTL"`

	// IncludeSortInfo embeds sortField/sortOrder in issued cursors.
	IncludeSortInfo bool `json:"includeSortInfo" yaml:"includeSortInfo" env:"INCLUDE_SORT_INFO"`

	// BackwardParam names the bool request field that asks the gRPC server
	// for the window before the page token. Matched by proto or JSON name.
	BackwardParam string `json:"backwardParam" yaml:"backwardParam" env:"BACKWARD_PARAM"`
}

// SynthConfig holds the value synthesizer tunables.
type SynthConfig struct {
	// OpenAPIOmitRate is the probability a non-required OpenAPI property is left out.
	OpenAPIOmitRate float64 `json:"openapiOmitRate" yaml:"openapiOmitRate" env:"OPENAPI_OMIT_RATE"`

	// ModelOmitRate is the probability an optional client-model field is left out.
	ModelOmitRate float64 `json:"modelOmitRate" yaml:"modelOmitRate" env:"MODEL_OMIT_RATE"`

	OpenAPIMaxDepth int `json:"openapiMaxDepth" yaml:"openapiMaxDepth" env:"OPENAPI_MAX_DEPTH"`
	ProtoMaxDepth   int `json:"protoMaxDepth" yaml:"protoMaxDepth" env:"PROTO_MAX_DEPTH"`
	ModelMaxDepth   int `json:"modelMaxDepth" yaml:"modelMaxDepth" env:"MODEL_MAX_DEPTH"`

	// ArrayMin and ArrayMax bound generated list lengths when the schema
	// does not.
	ArrayMin int `json:"arrayMin" yaml:"arrayMin" env:"ARRAY_MIN"`
	ArrayMax int `json:"arrayMax" yaml:"arrayMax" env:"ARRAY_MAX"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" env:"LEVEL"`
	Format string `json:"format" yaml:"format" env:"FORMAT"`
}

// Default configuration values.
const (
	DefaultCacheTTL      = 30 * time.Minute
	DefaultSweepInterval = 5 * time.Minute
	DefaultCursorTTL     = time.Hour
	DefaultTotal         = 100
	DefaultLimit         = 10
)

// DefaultIDFieldPatterns are the exact ID field names, in priority order.
var DefaultIDFieldPatterns = []string{"id", "uuid", "key"}

// DefaultIDFieldSuffixes are the ID suffixes, in priority order.
var DefaultIDFieldSuffixes = []string{"Id", "_id", "ID", "id"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ID: IDConfig{
			FieldPatterns: append([]string(nil), DefaultIDFieldPatterns...),
			FieldSuffixes: append([]string(nil), DefaultIDFieldSuffixes...),
			Format:        IDFormatUUID,
		},
		Pagination: PaginationConfig{
			Cache:         true,
			CacheTTL:      DefaultCacheTTL,
			SweepInterval: DefaultSweepInterval,
			DefaultTotal:  DefaultTotal,
			DefaultLimit:  DefaultLimit,
		},
		Cursor: CursorConfig{
			EnableExpiry:  true,
			CursorTTL:     DefaultCursorTTL,
			BackwardParam: "isBackward",
		},
		Synth: SynthConfig{
			OpenAPIOmitRate: 0.5,
			ModelOmitRate:   0.3,
			OpenAPIMaxDepth: 6,
			ProtoMaxDepth:   3,
			ModelMaxDepth:   5,
			ArrayMin:        1,
			ArrayMax:        3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
