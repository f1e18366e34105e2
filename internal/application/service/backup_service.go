package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/domain/enum"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/internal/sync"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
)

// BackupService handles full-dataset export, import, wipe and first-run
// seeding.
type BackupService struct {
	store  *store.Store
	syncer *sync.Syncer
	log    *logrus.Logger
	now    func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(st *store.Store, syncer *sync.Syncer, log *logrus.Logger) *BackupService {
	return &BackupService{
		store:  st,
		syncer: syncer,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Export snapshots every collection into a backup document. Owner
// credentials are deliberately excluded.
func (s *BackupService) Export() *entity.Backup {
	products := s.store.Products()
	transactions := s.store.Transactions()
	customers := s.store.Customers()
	suppliers := s.store.Suppliers()
	restocks := s.store.Restocks()
	credits := s.store.Credits()
	settings := s.store.Settings()

	return &entity.Backup{
		Version:      entity.BackupVersion,
		ExportedAt:   s.now(),
		Products:     &products,
		Transactions: &transactions,
		Customers:    &customers,
		Suppliers:    &suppliers,
		Restocks:     &restocks,
		Credits:      &credits,
		Settings:     &settings,
	}
}

// Import restores collections from a backup document. Only the collections
// present in the document are replaced; the rest are left untouched. After
// a successful import the full dataset is pushed to the remote.
func (s *BackupService) Import(ctx context.Context, raw []byte) error {
	var backup entity.Backup
	if err := json.Unmarshal(raw, &backup); err != nil {
		return apperror.ErrInvalidFormat
	}
	if backup.Version == 0 {
		return apperror.ErrInvalidFormat
	}

	if backup.Products != nil {
		s.store.SetProducts(*backup.Products)
	}
	if backup.Transactions != nil {
		s.store.SetTransactions(*backup.Transactions)
	}
	if backup.Customers != nil {
		s.store.SetCustomers(*backup.Customers)
	}
	if backup.Suppliers != nil {
		s.store.SetSuppliers(*backup.Suppliers)
	}
	if backup.Restocks != nil {
		s.store.SetRestocks(*backup.Restocks)
	}
	if backup.Credits != nil {
		s.store.SetCredits(*backup.Credits)
	}
	if backup.Settings != nil {
		s.store.SetSettings(*backup.Settings)
	}

	if err := s.syncer.PushAll(ctx); err != nil {
		s.log.WithError(err).Warn("pushing imported dataset failed")
	}
	return nil
}

// ClearAll wipes every collection, restores default settings and mirrors
// the empty state to the remote. Owner credentials survive.
func (s *BackupService) ClearAll(ctx context.Context) error {
	s.store.Reset()
	if err := s.syncer.PushAll(ctx); err != nil {
		s.log.WithError(err).Warn("pushing cleared dataset failed")
	}
	return nil
}

// SeedIfEmpty loads the starter dataset on first run. Called after the
// initial remote pull so an existing cloud dataset is never overwritten.
func (s *BackupService) SeedIfEmpty() {
	if len(s.store.Products()) > 0 {
		return
	}
	s.log.Info("empty dataset, seeding starter records")

	s.store.UpsertProduct(entity.Product{
		Name: "Master Chef Jasmine", Type: enum.ProductTypeKilo,
		Price: 62, Unit: "kg", Stock: 8,
	})

	for _, c := range []entity.Customer{
		{Name: "Rosy", Address: "San luis Batangas"},
		{Name: "She", Address: "Sukol Batangas"},
		{Name: "Jovy", Address: "Sukol Batangas"},
	} {
		s.store.UpsertCustomer(c)
	}

	for _, sp := range []entity.Supplier{
		{Name: "Escalona Delen", Address: "Balayong Bauan Batangas"},
		{Name: "Ka Pedro", Address: "lemery, batangas"},
	} {
		s.store.UpsertSupplier(sp)
	}
}
