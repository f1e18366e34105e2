package sync

import (
	"bytes"
	"context"
	stdsync "sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
)

const pushTimeout = 15 * time.Second

// Syncer mirrors the store's syncable slices to a Remote document store,
// two-way: local mutations are pushed, remote snapshots are pulled and
// applied. The app works identically with the syncer offline; pushes then
// degrade to no-ops.
type Syncer struct {
	store *store.Store
	log   *logrus.Logger

	mu       stdsync.Mutex
	remote   Remote
	status   enum.SyncStatus
	applying map[store.Slice]bool
	stops    []func()
	unsubs   []func()
}

// New returns an offline syncer. Call Connect to attach a remote.
func New(st *store.Store, log *logrus.Logger) *Syncer {
	return &Syncer{
		store:    st,
		log:      log,
		status:   enum.SyncStatusOffline,
		applying: make(map[store.Slice]bool),
	}
}

// Status returns the current connectivity state.
func (s *Syncer) Status() enum.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Online reports whether the syncer has a connected remote.
func (s *Syncer) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote != nil && s.status != enum.SyncStatusOffline
}

// Connect attaches a remote and probes it with a read. On failure the
// syncer stays offline and the connection error is returned, so the caller
// can fall back to local-only operation.
func (s *Syncer) Connect(ctx context.Context, remote Remote) error {
	if _, _, err := remote.Read(ctx, string(store.SliceSettings)); err != nil {
		return apperror.NewConnectionError(err)
	}
	s.mu.Lock()
	s.remote = remote
	s.status = enum.SyncStatusSyncing
	s.mu.Unlock()
	return nil
}

// PullAll replaces every syncable slice with its remote document, where one
// exists. Slices with no remote document are left untouched. A failed read
// is logged and skipped so the remaining slices still hydrate.
func (s *Syncer) PullAll(ctx context.Context) error {
	remote := s.currentRemote()
	if remote == nil {
		return apperror.ErrConnection
	}
	for _, sl := range store.SyncableSlices() {
		data, ok, err := remote.Read(ctx, string(sl))
		if err != nil {
			s.log.WithError(err).WithField("slice", sl).Warn("pull failed")
			continue
		}
		if !ok {
			continue
		}
		if err := s.applyRemote(sl, data); err != nil {
			s.log.WithError(err).WithField("slice", sl).Warn("skipping malformed remote snapshot")
		}
	}
	return nil
}

// PushOne writes one slice's current snapshot to the remote. Offline it is
// a silent no-op so call sites never have to branch on connectivity.
func (s *Syncer) PushOne(ctx context.Context, sl store.Slice) error {
	remote := s.currentRemote()
	if remote == nil || !store.IsSyncable(sl) {
		return nil
	}
	data, err := s.store.MarshalSlice(sl)
	if err != nil {
		return err
	}
	if err := remote.Write(ctx, string(sl), data); err != nil {
		s.log.WithError(err).WithField("slice", sl).Warn("push failed")
		return err
	}
	return nil
}

// PushAll writes every syncable slice, typically after reconnecting or
// after a bulk import. A failed write is logged and skipped so one bad
// slice never blocks the rest.
func (s *Syncer) PushAll(ctx context.Context) error {
	for _, sl := range store.SyncableSlices() {
		// PushOne logs the failure with its slice
		_ = s.PushOne(ctx, sl)
	}
	return nil
}

// ListenAll wires the two-way mirror: store subscriptions push local
// changes out, remote listeners apply inbound snapshots. Echoes of our own
// writes are suppressed by serialized equality with the local state. Once
// everything is wired the syncer reports online. Calling it again replaces
// the previous wiring instead of stacking a second set of listeners.
func (s *Syncer) ListenAll(ctx context.Context) error {
	remote := s.currentRemote()
	if remote == nil {
		return apperror.ErrConnection
	}

	s.detach()

	for _, sl := range store.SyncableSlices() {
		sl := sl

		unsub := s.store.Subscribe(sl, func(changed store.Slice) {
			if s.isApplying(changed) {
				return
			}
			pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
			defer cancel()
			_ = s.PushOne(pushCtx, changed)
		})
		s.mu.Lock()
		s.unsubs = append(s.unsubs, unsub)
		s.mu.Unlock()

		stop, err := remote.Listen(ctx, string(sl), func(data []byte) {
			local, err := s.store.MarshalSlice(sl)
			if err == nil && bytes.Equal(local, data) {
				return
			}
			if err := s.applyRemote(sl, data); err != nil {
				s.log.WithError(err).WithField("slice", sl).Warn("skipping malformed remote snapshot")
			}
		})
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.stops = append(s.stops, stop)
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.status = enum.SyncStatusOnline
	s.mu.Unlock()
	return nil
}

// Disconnect tears down listeners and subscriptions, closes the remote and
// returns the syncer to offline.
func (s *Syncer) Disconnect() {
	s.detach()

	s.mu.Lock()
	remote := s.remote
	s.remote = nil
	s.status = enum.SyncStatusOffline
	s.mu.Unlock()

	if remote != nil {
		if err := remote.Close(); err != nil {
			s.log.WithError(err).Warn("closing sync remote")
		}
	}
}

// detach stops all remote listeners and store subscriptions.
func (s *Syncer) detach() {
	s.mu.Lock()
	stops := s.stops
	unsubs := s.unsubs
	s.stops = nil
	s.unsubs = nil
	s.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
	for _, unsub := range unsubs {
		unsub()
	}
}

func (s *Syncer) currentRemote() Remote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote
}

func (s *Syncer) isApplying(sl store.Slice) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applying[sl]
}

// applyRemote hydrates one slice from remote data with the local-push
// subscriber suppressed, so inbound snapshots never bounce straight back.
func (s *Syncer) applyRemote(sl store.Slice, data []byte) error {
	s.mu.Lock()
	s.applying[sl] = true
	s.mu.Unlock()

	err := s.store.ApplySnapshot(sl, data)

	s.mu.Lock()
	s.applying[sl] = false
	s.mu.Unlock()
	return err
}
