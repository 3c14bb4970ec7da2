package impl

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// RandomCodeGenerator draws 6-digit codes uniformly from [100000, 999999].
// The small space is acceptable: codes live five minutes, are hashed at
// rest, and resends are throttled by the cooldown rule.
type RandomCodeGenerator struct{}

func NewRandomCodeGenerator() *RandomCodeGenerator { return &RandomCodeGenerator{} }

func (RandomCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}
