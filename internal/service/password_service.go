package service

// PasswordService owns the stored-hash format. Verify never returns an
// error: a malformed stored value is indistinguishable from a mismatch.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(stored, candidate string) bool
}
