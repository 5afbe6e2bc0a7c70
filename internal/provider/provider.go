package provider

import "context"

// Document identifies a remotely created document.
type Document struct {
	DocID  string `json:"doc_id"`
	DocURL string `json:"doc_url"`
}

// Provider is the external document-storage capability. Implementations:
// GoogleClient (network-backed) and Stub (deterministic, offline). Selection
// happens through configuration at wiring time, never at runtime.
type Provider interface {
	// CreateDocument creates a remote document with the given title and body.
	CreateDocument(ctx context.Context, title, content string) (*Document, error)
	// UploadFile stores content as a named file and returns its identifiers.
	UploadFile(ctx context.Context, filename, content string) (*Document, error)
}

// Error is the provider failure kind. Transport and API failures both wrap
// into it; callers translate it to HTTP 500. Failures are terminal, never
// retried.
type Error struct {
	Op  string
	Msg string
	Err error
}

func (e *Error) Error() string {
	s := e.Op + ": " + e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }
