// Package models defines client-side data models used by the gamedeals CLI.
package models

// UserRecord is a registered account as persisted by the credential store.
type UserRecord struct {
	// Email is the unique key, case-sensitive as entered.
	Email string

	// PasswordHash is an opaque salted hash. Never empty for a stored record.
	PasswordHash []byte

	// SecurityQuestion is shown to the user during password recovery.
	SecurityQuestion string
	// SecurityAnswer is compared case-insensitively during recovery.
	SecurityAnswer string
}

// CredentialTable maps email to its account record. It is loaded wholesale
// and rewritten wholesale on every mutation.
type CredentialTable map[string]UserRecord

// Has reports whether email is registered.
func (t CredentialTable) Has(email string) bool {
	_, ok := t[email]
	return ok
}

// Clone returns an independent copy of the table. Hash slices are copied so
// that mutating the clone never touches the original.
func (t CredentialTable) Clone() CredentialTable {
	out := make(CredentialTable, len(t))
	for k, v := range t {
		v.PasswordHash = append([]byte(nil), v.PasswordHash...)
		out[k] = v
	}
	return out
}
