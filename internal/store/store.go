package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/ledger"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
	"github.com/joshuadev/bigasan-pos/pkg/utils"
)

// Slice names one collection or singleton record held by the store.
type Slice string

const (
	SliceProducts     Slice = "products"
	SliceTransactions Slice = "transactions"
	SliceCustomers    Slice = "customers"
	SliceSuppliers    Slice = "suppliers"
	SliceRestocks     Slice = "restocks"
	SliceCredits      Slice = "credits"
	SliceSettings     Slice = "settings"
	SliceOwner        Slice = "owner"
)

// syncableSlices are mirrored to the remote document store. Owner
// credentials stay local.
var syncableSlices = []Slice{
	SliceProducts,
	SliceTransactions,
	SliceCustomers,
	SliceSuppliers,
	SliceRestocks,
	SliceCredits,
	SliceSettings,
}

// SyncableSlices returns the slices mirrored to the remote store.
func SyncableSlices() []Slice {
	return slices.Clone(syncableSlices)
}

// IsSyncable reports whether a slice participates in cloud sync.
func IsSyncable(sl Slice) bool {
	return slices.Contains(syncableSlices, sl)
}

type subscription struct {
	id    int
	slice Slice
	fn    func(Slice)
}

// Store is the single source of truth for all application data. Actions
// are serialized: one runs to completion, including its subscriber
// notifications, before the next is admitted. Listeners therefore must not
// call back into mutation actions.
type Store struct {
	applyMu sync.Mutex   // serializes actions and their notifications
	mu      sync.RWMutex // guards the data for concurrent readers

	products     []entity.Product
	transactions []entity.Transaction
	customers    []entity.Customer
	suppliers    []entity.Supplier
	restocks     []entity.Restock
	credits      []entity.CreditRecord
	settings     entity.Settings
	owner        entity.Owner

	subs      []subscription
	nextSubID int

	now func() time.Time
}

// New creates an empty store with default settings.
func New() *Store {
	return NewWithClock(func() time.Time { return time.Now().UTC() })
}

// NewWithClock creates a store using the given time source for assigned
// timestamps and credit due-date evaluation.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		settings: entity.DefaultSettings(),
		now:      now,
	}
}

// Subscribe registers a listener for one slice and returns its detach
// function. Listeners fire synchronously after the triggering action, in
// registration order, at most once per action.
func (s *Store) Subscribe(sl Slice, fn func(Slice)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs = append(s.subs, subscription{id: id, slice: sl, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

func (s *Store) notify(changed Slice) {
	s.mu.RLock()
	subs := slices.Clone(s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		if sub.slice == changed {
			sub.fn(changed)
		}
	}
}

/* ---- Getters (all return defensive copies) ---- */

func (s *Store) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Store) ProductByID(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (s *Store) Transactions() []entity.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transactions)
}

func (s *Store) TransactionByID(id string) (entity.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return entity.Transaction{}, false
}

func (s *Store) Customers() []entity.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.customers)
}

func (s *Store) CustomerByID(id string) (entity.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return entity.Customer{}, false
}

func (s *Store) Suppliers() []entity.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.suppliers)
}

func (s *Store) Restocks() []entity.Restock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.restocks)
}

func (s *Store) Credits() []entity.CreditRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.credits)
}

func (s *Store) CreditByID(id string) (entity.CreditRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.credits {
		if c.ID == id {
			return c, true
		}
	}
	return entity.CreditRecord{}, false
}

func (s *Store) CreditByTransaction(transactionID string) (entity.CreditRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.credits {
		if c.TransactionID == transactionID {
			return c, true
		}
	}
	return entity.CreditRecord{}, false
}

func (s *Store) CreditsByCustomer(customerID string) []entity.CreditRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.CreditRecord
	for _, c := range s.credits {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) Settings() entity.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.WithDefaults()
}

func (s *Store) Owner() entity.Owner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner
}

/* ---- Bulk setters (hydration from remote snapshots and backups) ----
   Values arrive already normalized; no IDs or timestamps are fabricated. */

func (s *Store) SetProducts(products []entity.Product) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.products = slices.Clone(products)
	s.mu.Unlock()
	s.notify(SliceProducts)
}

func (s *Store) SetTransactions(transactions []entity.Transaction) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.transactions = slices.Clone(transactions)
	s.mu.Unlock()
	s.notify(SliceTransactions)
}

func (s *Store) SetCustomers(customers []entity.Customer) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.customers = slices.Clone(customers)
	s.mu.Unlock()
	s.notify(SliceCustomers)
}

func (s *Store) SetSuppliers(suppliers []entity.Supplier) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.suppliers = slices.Clone(suppliers)
	s.mu.Unlock()
	s.notify(SliceSuppliers)
}

func (s *Store) SetRestocks(restocks []entity.Restock) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.restocks = slices.Clone(restocks)
	s.mu.Unlock()
	s.notify(SliceRestocks)
}

func (s *Store) SetCredits(credits []entity.CreditRecord) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.credits = slices.Clone(credits)
	s.mu.Unlock()
	s.notify(SliceCredits)
}

func (s *Store) SetSettings(settings entity.Settings) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.settings = settings.WithDefaults()
	s.mu.Unlock()
	s.notify(SliceSettings)
}

func (s *Store) SetOwner(owner entity.Owner) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.owner = owner
	s.mu.Unlock()
	s.notify(SliceOwner)
}

/* ---- Actions (local-origin mutations) ---- */

// UpsertProduct inserts or replaces a product. New products (empty ID) get
// an identifier and creation timestamp.
func (s *Store) UpsertProduct(p entity.Product) entity.Product {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	if p.ID == "" {
		p.ID = utils.NewID()
		p.CreatedAt = s.now()
		s.products = append(slices.Clone(s.products), p)
	} else {
		list := slices.Clone(s.products)
		idx := slices.IndexFunc(list, func(x entity.Product) bool { return x.ID == p.ID })
		if idx >= 0 {
			list[idx] = p
		} else {
			list = append(list, p)
		}
		s.products = list
	}
	s.mu.Unlock()
	s.notify(SliceProducts)
	return p
}

// DeleteProduct removes a product by ID. Restocks and past transaction
// lines referencing it are left as-is.
func (s *Store) DeleteProduct(id string) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.products = slices.DeleteFunc(slices.Clone(s.products), func(p entity.Product) bool {
		return p.ID == id
	})
	s.mu.Unlock()
	s.notify(SliceProducts)
}

// AdjustStock adds delta (which may be negative) to a product's stock,
// clamping the result at zero.
func (s *Store) AdjustStock(id string, delta float64) (entity.Product, bool) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	list := slices.Clone(s.products)
	idx := slices.IndexFunc(list, func(p entity.Product) bool { return p.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return entity.Product{}, false
	}
	stock := decimal.NewFromFloat(list[idx].Stock).Add(decimal.NewFromFloat(delta))
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	list[idx].Stock = stock.InexactFloat64()
	updated := list[idx]
	s.products = list
	s.mu.Unlock()
	s.notify(SliceProducts)
	return updated, true
}

// AddTransaction appends a sale, assigning its identifier, creation
// timestamp, receipt number and per-line subtotals.
func (s *Store) AddTransaction(t entity.Transaction) entity.Transaction {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	t.ID = utils.NewID()
	t.CreatedAt = s.now()

	receiptNos := make([]string, 0, len(s.transactions))
	for _, existing := range s.transactions {
		receiptNos = append(receiptNos, existing.ReceiptNo)
	}
	t.ReceiptNo = utils.GenerateReceiptNo(receiptNos, t.CreatedAt)

	for i := range t.Items {
		qty := decimal.NewFromFloat(t.Items[i].Qty)
		price := decimal.NewFromFloat(t.Items[i].Price)
		t.Items[i].Subtotal = qty.Mul(price).InexactFloat64()
	}

	s.transactions = append(slices.Clone(s.transactions), t)
	s.mu.Unlock()
	s.notify(SliceTransactions)
	return t
}

// UpsertCustomer inserts or replaces a customer.
func (s *Store) UpsertCustomer(c entity.Customer) entity.Customer {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	if c.ID == "" {
		c.ID = utils.NewID()
		c.CreatedAt = s.now()
		s.customers = append(slices.Clone(s.customers), c)
	} else {
		list := slices.Clone(s.customers)
		idx := slices.IndexFunc(list, func(x entity.Customer) bool { return x.ID == c.ID })
		if idx >= 0 {
			list[idx] = c
		} else {
			list = append(list, c)
		}
		s.customers = list
	}
	s.mu.Unlock()
	s.notify(SliceCustomers)
	return c
}

// DeleteCustomer removes a customer. Credit records referencing the
// customer are intentionally left untouched.
func (s *Store) DeleteCustomer(id string) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.customers = slices.DeleteFunc(slices.Clone(s.customers), func(c entity.Customer) bool {
		return c.ID == id
	})
	s.mu.Unlock()
	s.notify(SliceCustomers)
}

// UpsertSupplier inserts or replaces a supplier.
func (s *Store) UpsertSupplier(sp entity.Supplier) entity.Supplier {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	if sp.ID == "" {
		sp.ID = utils.NewID()
		sp.CreatedAt = s.now()
		s.suppliers = append(slices.Clone(s.suppliers), sp)
	} else {
		list := slices.Clone(s.suppliers)
		idx := slices.IndexFunc(list, func(x entity.Supplier) bool { return x.ID == sp.ID })
		if idx >= 0 {
			list[idx] = sp
		} else {
			list = append(list, sp)
		}
		s.suppliers = list
	}
	s.mu.Unlock()
	s.notify(SliceSuppliers)
	return sp
}

// DeleteSupplier removes a supplier.
func (s *Store) DeleteSupplier(id string) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	s.suppliers = slices.DeleteFunc(slices.Clone(s.suppliers), func(sp entity.Supplier) bool {
		return sp.ID == id
	})
	s.mu.Unlock()
	s.notify(SliceSuppliers)
}

// AddRestock appends a restock record. Callers adjust the product's stock
// separately via AdjustStock.
func (s *Store) AddRestock(r entity.Restock) entity.Restock {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	r.ID = utils.NewID()
	r.CreatedAt = s.now()
	s.restocks = append(slices.Clone(s.restocks), r)
	s.mu.Unlock()
	s.notify(SliceRestocks)
	return r
}

// UpsertCredit inserts or replaces a credit record. New records get an
// identifier, creation timestamp and an empty payment history.
func (s *Store) UpsertCredit(c entity.CreditRecord) entity.CreditRecord {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	if c.ID == "" {
		c.ID = utils.NewID()
		c.CreatedAt = s.now()
		if c.Payments == nil {
			c.Payments = []entity.Payment{}
		}
		s.credits = append(slices.Clone(s.credits), c)
	} else {
		list := slices.Clone(s.credits)
		idx := slices.IndexFunc(list, func(x entity.CreditRecord) bool { return x.ID == c.ID })
		if idx >= 0 {
			list[idx] = c
		} else {
			list = append(list, c)
		}
		s.credits = list
	}
	s.mu.Unlock()
	s.notify(SliceCredits)
	return c
}

// AddCreditPayment records an installment against a credit record and
// recomputes its paid total, balance and status. Business-rule violations
// are rejected before any state changes.
func (s *Store) AddCreditPayment(creditID string, amount float64, note string) (entity.CreditRecord, error) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	list := slices.Clone(s.credits)
	idx := slices.IndexFunc(list, func(c entity.CreditRecord) bool { return c.ID == creditID })
	if idx < 0 {
		s.mu.Unlock()
		return entity.CreditRecord{}, apperror.NewNotFoundError("Credit record")
	}

	updated, err := ledger.ApplyPayment(list[idx], amount, note, s.now())
	if err != nil {
		s.mu.Unlock()
		return entity.CreditRecord{}, err
	}

	list[idx] = updated
	s.credits = list
	s.mu.Unlock()
	s.notify(SliceCredits)
	return updated, nil
}

// RefreshCreditStatuses transitions active records past their due date to
// overdue. Returns whether anything changed; a no-op fires no
// notifications, so callers can skip the remote push.
func (s *Store) RefreshCreditStatuses() bool {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.mu.Lock()
	refreshed, changed := ledger.Refresh(s.credits, s.now())
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.credits = refreshed
	s.mu.Unlock()
	s.notify(SliceCredits)
	return true
}

/* ---- Snapshot access (used by the cloud sync adapter and backups) ---- */

// MarshalSlice serializes one syncable slice to its snapshot form.
func (s *Store) MarshalSlice(sl Slice) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch sl {
	case SliceProducts:
		return json.Marshal(s.products)
	case SliceTransactions:
		return json.Marshal(s.transactions)
	case SliceCustomers:
		return json.Marshal(s.customers)
	case SliceSuppliers:
		return json.Marshal(s.suppliers)
	case SliceRestocks:
		return json.Marshal(s.restocks)
	case SliceCredits:
		return json.Marshal(s.credits)
	case SliceSettings:
		return json.Marshal(s.settings.WithDefaults())
	default:
		return nil, fmt.Errorf("slice %q has no snapshot form", sl)
	}
}

// ApplySnapshot replaces one syncable slice from its snapshot form via the
// bulk setters, firing the slice's change notification.
func (s *Store) ApplySnapshot(sl Slice, data []byte) error {
	switch sl {
	case SliceProducts:
		var v []entity.Product
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.SetProducts(v)
	case SliceTransactions:
		var v []entity.Transaction
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.SetTransactions(v)
	case SliceCustomers:
		var v []entity.Customer
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.SetCustomers(v)
	case SliceSuppliers:
		var v []entity.Supplier
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.SetSuppliers(v)
	case SliceRestocks:
		var v []entity.Restock
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.SetRestocks(v)
	case SliceCredits:
		var v []entity.CreditRecord
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.SetCredits(v)
	case SliceSettings:
		var v entity.Settings
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.SetSettings(v)
	default:
		return fmt.Errorf("slice %q has no snapshot form", sl)
	}
	return nil
}

// Reset clears every syncable slice back to its empty state and restores
// default settings. Owner credentials survive a reset.
func (s *Store) Reset() {
	s.applyMu.Lock()
	s.mu.Lock()
	s.products = nil
	s.transactions = nil
	s.customers = nil
	s.suppliers = nil
	s.restocks = nil
	s.credits = nil
	s.settings = entity.DefaultSettings()
	s.mu.Unlock()
	s.applyMu.Unlock()

	for _, sl := range syncableSlices {
		s.applyMu.Lock()
		s.notify(sl)
		s.applyMu.Unlock()
	}
}
