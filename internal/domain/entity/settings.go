package entity

// Settings is the singleton store profile record
type Settings struct {
	StoreName   string `json:"store_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	ReceiptNote string `json:"receipt_note"`
}

// DefaultSettings returns the settings record used before the owner has
// saved anything.
func DefaultSettings() Settings {
	return Settings{
		StoreName:   "Bigasan ni Joshua",
		ReceiptNote: "Thank you for your purchase!",
	}
}

// WithDefaults fills the required display fields from the defaults when
// they are blank. Address and phone are legitimately empty.
func (s Settings) WithDefaults() Settings {
	def := DefaultSettings()
	if s.StoreName == "" {
		s.StoreName = def.StoreName
	}
	if s.ReceiptNote == "" {
		s.ReceiptNote = def.ReceiptNote
	}
	return s
}
