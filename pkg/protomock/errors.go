package protomock

import "errors"

// Proto parsing errors.
var (
	// ErrNoProtoFiles is returned when ParseProtoFiles is called with an empty slice.
	ErrNoProtoFiles = errors.New("no proto files provided")

	// ErrServiceNotFound is returned when a requested service is not in the schema.
	ErrServiceNotFound = errors.New("service not found")

	// ErrMethodNotFound is returned when a requested method is not in the service.
	ErrMethodNotFound = errors.New("method not found")

	// ErrMessageNotFound is returned when a message type cannot be resolved.
	ErrMessageNotFound = errors.New("message not found")

	// ErrAmbiguousMessage is returned when a short message name matches
	// more than one fully qualified message.
	ErrAmbiguousMessage = errors.New("ambiguous message name")
)

// Server errors.
var (
	ErrServerAlreadyRunning = errors.New("grpc server already running")
	ErrNilSchema            = errors.New("schema cannot be nil")
)
