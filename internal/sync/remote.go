package sync

import "context"

// Remote is a document store holding one document per data slice. The
// production implementation is Cloud Firestore; tests substitute an
// in-memory fake.
type Remote interface {
	// Read fetches the document for the named slice. The second return is
	// false when the document does not exist yet.
	Read(ctx context.Context, name string) ([]byte, bool, error)

	// Write replaces the document for the named slice.
	Write(ctx context.Context, name string, data []byte) error

	// Listen streams every change to the named slice's document, including
	// the initial state, until the returned stop function is called. The
	// callback runs on the listener's goroutine.
	Listen(ctx context.Context, name string, fn func(data []byte)) (stop func(), err error)

	// Close releases the underlying connection.
	Close() error
}
