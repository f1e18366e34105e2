package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/internal/sync"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func backupFixture() (*BackupService, *store.Store) {
	st := store.New()
	return NewBackupService(st, sync.New(st, quietLogger()), quietLogger()), st
}

func TestBackup_ExportImportRoundTrip(t *testing.T) {
	svc, st := backupFixture()
	st.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo, Price: 62, Stock: 8})
	st.UpsertCustomer(entity.Customer{Name: "Rosy"})
	st.SetSettings(entity.Settings{StoreName: "Test Store"})

	backup := svc.Export()
	assert.Equal(t, entity.BackupVersion, backup.Version)

	raw, err := json.Marshal(backup)
	require.NoError(t, err)

	restoredSvc, restored := backupFixture()
	require.NoError(t, restoredSvc.Import(context.Background(), raw))

	assert.Equal(t, st.Products(), restored.Products())
	assert.Equal(t, st.Customers(), restored.Customers())
	assert.Equal(t, "Test Store", restored.Settings().StoreName)
}

func TestBackup_ImportPartialDocument(t *testing.T) {
	svc, st := backupFixture()
	st.UpsertCustomer(entity.Customer{Name: "Keep me"})

	raw := []byte(`{"_version":2,"products":[{"id":"p1","name":"Jasmine","type":"kilo","price":62}]}`)
	require.NoError(t, svc.Import(context.Background(), raw))

	// present collection replaced, absent one untouched
	require.Len(t, st.Products(), 1)
	require.Len(t, st.Customers(), 1)
	assert.Equal(t, "Keep me", st.Customers()[0].Name)
}

func TestBackup_ImportRejectsBadDocuments(t *testing.T) {
	svc, _ := backupFixture()

	err := svc.Import(context.Background(), []byte(`not json`))
	assert.ErrorIs(t, err, apperror.ErrInvalidFormat)

	// missing version marker
	err = svc.Import(context.Background(), []byte(`{"products":[]}`))
	assert.ErrorIs(t, err, apperror.ErrInvalidFormat)
}

func TestBackup_ClearAllKeepsOwner(t *testing.T) {
	svc, st := backupFixture()
	st.SetOwner(entity.Owner{Username: "owner", PasswordHash: "hash"})
	st.UpsertProduct(entity.Product{Name: "Jasmine", Type: enum.ProductTypeKilo})

	require.NoError(t, svc.ClearAll(context.Background()))
	assert.Empty(t, st.Products())
	assert.Equal(t, "owner", st.Owner().Username)
}

func TestBackup_SeedIfEmpty(t *testing.T) {
	svc, st := backupFixture()

	svc.SeedIfEmpty()
	assert.Len(t, st.Products(), 1)
	assert.Len(t, st.Customers(), 3)
	assert.Len(t, st.Suppliers(), 2)

	// a populated store is never reseeded
	svc.SeedIfEmpty()
	assert.Len(t, st.Customers(), 3)
}

func TestBackup_ExportExcludesOwner(t *testing.T) {
	svc, st := backupFixture()
	st.SetOwner(entity.Owner{Username: "owner", PasswordHash: "secret"})

	raw, err := json.Marshal(svc.Export())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password_hash")
}
