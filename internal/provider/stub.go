package provider

import "context"

// Sentinel identifiers returned by the stub. Fixed so tests and offline
// deployments get deterministic values.
const (
	StubDocID   = "mock-doc-id"
	StubDocURL  = "https://docs.google.com/document/d/mock-doc-id/edit"
	StubFileURL = "https://drive.google.com/file/d/mock-doc-id/view"
)

// Stub is the offline Provider used when SKIP_GOOGLE_AUTH or test mode is
// set. It performs no network I/O.
type Stub struct{}

func NewStub() *Stub { return &Stub{} }

func (s *Stub) CreateDocument(_ context.Context, _, _ string) (*Document, error) {
	return &Document{DocID: StubDocID, DocURL: StubDocURL}, nil
}

func (s *Stub) UploadFile(_ context.Context, _, _ string) (*Document, error) {
	return &Document{DocID: StubDocID, DocURL: StubFileURL}, nil
}

var _ Provider = (*Stub)(nil)
