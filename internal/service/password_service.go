package service

type PasswordService interface {
	Hash(plaintext string) (string, error)
	// Compare never fails on a malformed hash; it just reports false.
	Compare(plaintext, hash string) bool
}
