package util

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	leoIDPrefix   = "LEO_"
	leoIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	leoIDLength   = 10

	// After this many collisions at a given length the suffix grows by one
	// character, so the generator cannot spin forever as the namespace fills.
	attemptsPerLength = 5
	maxAttempts       = 25
)

// ErrLeoIDExhausted is returned when every attempt collided, which should
// never happen in practice given the 36^10 base ID space.
var ErrLeoIDExhausted = errors.New("could not generate a free LEO ID")

// GenerateLeoID returns a fresh club ID of the form LEO_ followed by ten
// characters from [A-Z0-9]. exists is consulted before accepting a
// candidate; on collision a new candidate is drawn, with a longer suffix
// every few attempts.
func GenerateLeoID(exists func(string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		id, err := randomLeoID(leoIDLength + attempt/attemptsPerLength)
		if err != nil {
			return "", err
		}
		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrLeoIDExhausted
}

func randomLeoID(length int) (string, error) {
	suffix := make([]byte, length)
	alphabetSize := big.NewInt(int64(len(leoIDAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		suffix[i] = leoIDAlphabet[n.Int64()]
	}
	return leoIDPrefix + string(suffix), nil
}
