package entity

// Owner holds the store owner's local credentials. This record is
// security-sensitive: it is persisted only to local storage and is never
// part of the synchronized dataset.
type Owner struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}
