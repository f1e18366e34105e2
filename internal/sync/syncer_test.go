package sync

import (
	"context"
	"errors"
	stdsync "sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
)

// fakeRemote is an in-memory Remote with synchronous listeners.
type fakeRemote struct {
	mu        stdsync.Mutex
	docs      map[string][]byte
	listeners map[string]map[int]func([]byte)
	nextID    int
	writes    map[string]int
	failReads bool
	failDocs  map[string]bool
	closed    bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		docs:      make(map[string][]byte),
		listeners: make(map[string]map[int]func([]byte)),
		writes:    make(map[string]int),
		failDocs:  make(map[string]bool),
	}
}

func (r *fakeRemote) Read(_ context.Context, name string) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReads || r.failDocs[name] {
		return nil, false, errors.New("backend unreachable")
	}
	data, ok := r.docs[name]
	return data, ok, nil
}

func (r *fakeRemote) Write(_ context.Context, name string, data []byte) error {
	r.mu.Lock()
	if r.failDocs[name] {
		r.mu.Unlock()
		return errors.New("backend unreachable")
	}
	r.docs[name] = data
	r.writes[name]++
	listeners := r.snapshotListeners(name)
	r.mu.Unlock()

	// mimic the server echoing the write back to every listener
	for _, fn := range listeners {
		fn(data)
	}
	return nil
}

func (r *fakeRemote) Listen(_ context.Context, name string, fn func([]byte)) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listeners[name] == nil {
		r.listeners[name] = make(map[int]func([]byte))
	}
	id := r.nextID
	r.nextID++
	r.listeners[name][id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners[name], id)
	}, nil
}

// snapshotListeners copies a doc's listeners; callers hold r.mu.
func (r *fakeRemote) snapshotListeners(name string) []func([]byte) {
	fns := make([]func([]byte), 0, len(r.listeners[name]))
	for _, fn := range r.listeners[name] {
		fns = append(fns, fn)
	}
	return fns
}

func (r *fakeRemote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// emit delivers a snapshot to listeners as if another device had written.
func (r *fakeRemote) emit(name string, data []byte) {
	r.mu.Lock()
	r.docs[name] = data
	listeners := r.snapshotListeners(name)
	r.mu.Unlock()
	for _, fn := range listeners {
		fn(data)
	}
}

func (r *fakeRemote) writeCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes[name]
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSyncer_OfflinePushIsNoOp(t *testing.T) {
	s := New(store.New(), testLogger())

	assert.Equal(t, enum.SyncStatusOffline, s.Status())
	assert.False(t, s.Online())
	assert.NoError(t, s.PushOne(context.Background(), store.SliceProducts))
	assert.NoError(t, s.PushAll(context.Background()))
}

func TestSyncer_ConnectFailureStaysOffline(t *testing.T) {
	remote := newFakeRemote()
	remote.failReads = true

	s := New(store.New(), testLogger())
	err := s.Connect(context.Background(), remote)
	require.Error(t, err)
	assert.Equal(t, 503, apperror.GetAppError(err).Code)
	assert.Equal(t, enum.SyncStatusOffline, s.Status())
}

func TestSyncer_PullAllHydratesStore(t *testing.T) {
	st := store.New()
	seed := store.New()
	seed.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo, Price: 62})
	data, err := seed.MarshalSlice(store.SliceProducts)
	require.NoError(t, err)

	remote := newFakeRemote()
	remote.docs[string(store.SliceProducts)] = data

	s := New(st, testLogger())
	require.NoError(t, s.Connect(context.Background(), remote))
	require.NoError(t, s.PullAll(context.Background()))

	products := st.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Jasmine", products[0].Name)
	// slices with no remote document stay untouched
	assert.Empty(t, st.Customers())
}

func TestSyncer_PullAllSkipsFailedReads(t *testing.T) {
	st := store.New()
	seed := store.New()
	seed.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo})
	seed.UpsertCustomer(entity.Customer{Name: "Rosy"})
	productsDoc, err := seed.MarshalSlice(store.SliceProducts)
	require.NoError(t, err)
	customersDoc, err := seed.MarshalSlice(store.SliceCustomers)
	require.NoError(t, err)

	remote := newFakeRemote()
	remote.docs[string(store.SliceProducts)] = productsDoc
	remote.docs[string(store.SliceCustomers)] = customersDoc

	s := New(st, testLogger())
	require.NoError(t, s.Connect(context.Background(), remote))

	// one unreadable document must not keep the rest from hydrating
	remote.failDocs[string(store.SliceProducts)] = true
	require.NoError(t, s.PullAll(context.Background()))

	assert.Empty(t, st.Products())
	require.Len(t, st.Customers(), 1)
	assert.Equal(t, "Rosy", st.Customers()[0].Name)
}

func TestSyncer_PushAllSkipsFailedWrites(t *testing.T) {
	st := store.New()
	st.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo})
	st.UpsertCustomer(entity.Customer{Name: "Rosy"})

	remote := newFakeRemote()
	s := New(st, testLogger())
	require.NoError(t, s.Connect(context.Background(), remote))

	remote.failDocs[string(store.SliceProducts)] = true
	require.NoError(t, s.PushAll(context.Background()))

	assert.NotContains(t, remote.docs, string(store.SliceProducts))
	assert.Contains(t, remote.docs, string(store.SliceCustomers))
}

func TestSyncer_LocalChangePushes(t *testing.T) {
	st := store.New()
	remote := newFakeRemote()

	s := New(st, testLogger())
	require.NoError(t, s.Connect(context.Background(), remote))
	require.NoError(t, s.ListenAll(context.Background()))
	assert.Equal(t, enum.SyncStatusOnline, s.Status())

	st.UpsertProduct(entity.Product{Name: "Dinorado", Type: enum.ProductTypeKilo, Price: 70})

	assert.Equal(t, 1, remote.writeCount(string(store.SliceProducts)))
	local, err := st.MarshalSlice(store.SliceProducts)
	require.NoError(t, err)
	assert.Equal(t, local, remote.docs[string(store.SliceProducts)])
}

func TestSyncer_EchoOfOwnWriteIsSuppressed(t *testing.T) {
	st := store.New()
	remote := newFakeRemote()

	s := New(st, testLogger())
	require.NoError(t, s.Connect(context.Background(), remote))
	require.NoError(t, s.ListenAll(context.Background()))

	// the fake echoes each write back synchronously; without suppression
	// this would re-apply, re-notify and push again in a loop
	st.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo, Price: 62})

	assert.Equal(t, 1, remote.writeCount(string(store.SliceProducts)))
	assert.Len(t, st.Products(), 1)
}

func TestSyncer_RemoteChangeApplies(t *testing.T) {
	st := store.New()
	remote := newFakeRemote()

	s := New(st, testLogger())
	require.NoError(t, s.Connect(context.Background(), remote))
	require.NoError(t, s.ListenAll(context.Background()))

	other := store.New()
	other.UpsertCustomer(entity.Customer{Name: "Jovy"})
	data, err := other.MarshalSlice(store.SliceCustomers)
	require.NoError(t, err)

	remote.emit(string(store.SliceCustomers), data)

	customers := st.Customers()
	require.Len(t, customers, 1)
	assert.Equal(t, "Jovy", customers[0].Name)
	// an inbound snapshot must not bounce straight back out
	assert.Equal(t, 0, remote.writeCount(string(store.SliceCustomers)))
}

func TestSyncer_PushAllAfterReconnect(t *testing.T) {
	st := store.New()
	st.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo})
	st.UpsertCustomer(entity.Customer{Name: "Rosy"})

	remote := newFakeRemote()
	s := New(st, testLogger())
	require.NoError(t, s.Connect(context.Background(), remote))
	require.NoError(t, s.PushAll(context.Background()))

	for _, sl := range store.SyncableSlices() {
		assert.Contains(t, remote.docs, string(sl))
	}
	assert.NotContains(t, remote.docs, string(store.SliceOwner))
}

func TestSyncer_ListenAllReplacesPreviousWiring(t *testing.T) {
	st := store.New()
	remote := newFakeRemote()

	s := New(st, testLogger())
	require.NoError(t, s.Connect(context.Background(), remote))
	require.NoError(t, s.ListenAll(context.Background()))
	require.NoError(t, s.ListenAll(context.Background()))

	// rewiring must not leave a second subscriber pushing the same change
	st.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo})
	assert.Equal(t, 1, remote.writeCount(string(store.SliceProducts)))
}

func TestSyncer_Disconnect(t *testing.T) {
	st := store.New()
	remote := newFakeRemote()

	s := New(st, testLogger())
	require.NoError(t, s.Connect(context.Background(), remote))
	require.NoError(t, s.ListenAll(context.Background()))

	s.Disconnect()
	assert.Equal(t, enum.SyncStatusOffline, s.Status())
	assert.True(t, remote.closed)

	// local changes no longer push
	st.UpsertProduct(entity.Product{Name: "A", Type: enum.ProductTypeKilo})
	assert.Equal(t, 0, remote.writeCount(string(store.SliceProducts)))
}
