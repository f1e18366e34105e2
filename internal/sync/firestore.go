package sync

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// syncDocument is the Firestore document shape: the whole slice is one
// JSON-serialized payload, plus a server-side write timestamp.
type syncDocument struct {
	Data      string `firestore:"data"`
	UpdatedAt any    `firestore:"updatedAt,serverTimestamp"`
}

// firestoreRemote stores each slice as a single document inside one
// collection.
type firestoreRemote struct {
	client     *firestore.Client
	collection string
	log        *logrus.Logger
}

// NewFirestoreRemote connects to Firestore and returns the Remote backed by
// it. credentialsFile may be empty, in which case application default
// credentials are used.
func NewFirestoreRemote(ctx context.Context, projectID, credentialsFile, collection string, log *logrus.Logger) (Remote, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &firestoreRemote{client: client, collection: collection, log: log}, nil
}

func (r *firestoreRemote) doc(name string) *firestore.DocumentRef {
	return r.client.Collection(r.collection).Doc(name)
}

func (r *firestoreRemote) Read(ctx context.Context, name string) ([]byte, bool, error) {
	snap, err := r.doc(name).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	var doc syncDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", name, err)
	}
	return []byte(doc.Data), true, nil
}

func (r *firestoreRemote) Write(ctx context.Context, name string, data []byte) error {
	_, err := r.doc(name).Set(ctx, map[string]any{
		"data":      string(data),
		"updatedAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (r *firestoreRemote) Listen(ctx context.Context, name string, fn func(data []byte)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	iter := r.doc(name).Snapshots(ctx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if ctx.Err() == nil {
					r.log.WithError(err).WithField("slice", name).Warn("snapshot listener stopped")
				}
				return
			}
			if !snap.Exists() {
				continue
			}
			var doc syncDocument
			if err := snap.DataTo(&doc); err != nil {
				r.log.WithError(err).WithField("slice", name).Warn("malformed sync document")
				continue
			}
			fn([]byte(doc.Data))
		}
	}()

	return cancel, nil
}

func (r *firestoreRemote) Close() error {
	return r.client.Close()
}
