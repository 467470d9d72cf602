package cli

import "errors"

// Common CLI errors
var (
	ErrNoSources       = errors.New("no sources loaded - use --openapi, --proto or --client")
	ErrSourceAmbiguous = errors.New("more than one source loaded - choose one with --source")
	ErrInvalidSource   = errors.New("invalid source flag")
)
