package catalog

import "errors"

// Kinds of things a NotFoundError can name.
const (
	KindSource = "source"
	KindModel  = "model"
)

// ErrWrongSourceKind is returned when an operation needs a source of a
// different kind, such as serving gRPC from an OpenAPI source.
var ErrWrongSourceKind = errors.New("wrong source kind")

// NotFoundError reports a missing source or model.
type NotFoundError struct {
	Kind string
	Name string

	// Err is the backend error, when there is one.
	Err error
}

func (e *NotFoundError) Error() string {
	return e.Kind + " not found: " + e.Name
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
