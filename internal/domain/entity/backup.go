package entity

import "time"

// BackupVersion is the current backup document format version
const BackupVersion = 2

// Backup is the export/import document holding a snapshot of every
// syncable collection. Pointer fields distinguish "absent" (leave the
// collection untouched on import) from "present but empty".
type Backup struct {
	Version      int             `json:"_version"`
	ExportedAt   time.Time       `json:"_exportedAt"`
	Products     *[]Product      `json:"products,omitempty"`
	Transactions *[]Transaction  `json:"transactions,omitempty"`
	Customers    *[]Customer     `json:"customers,omitempty"`
	Suppliers    *[]Supplier     `json:"suppliers,omitempty"`
	Restocks     *[]Restock      `json:"restocks,omitempty"`
	Credits      *[]CreditRecord `json:"credits,omitempty"`
	Settings     *Settings       `json:"settings,omitempty"`
}
