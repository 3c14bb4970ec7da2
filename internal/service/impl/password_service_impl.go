package impl

import "golang.org/x/crypto/bcrypt"

// bcryptCost balances brute-force resistance against login latency. Codes
// are hashed with the same primitive as passwords, so a database leak does
// not expose live verification codes.
const bcryptCost = 10

type PasswordServiceImpl struct {
	cost int
}

func NewPasswordServiceBcrypt() *PasswordServiceImpl {
	return &PasswordServiceImpl{cost: bcryptCost}
}

func (p *PasswordServiceImpl) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *PasswordServiceImpl) Compare(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
