package models

import (
	"crypto/rand"
	"math/big"
)

// PassPhraseAlphabet is the set pass phrase characters are drawn from.
const PassPhraseAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// PassPhraseLength is the number of characters in a generated pass phrase.
const PassPhraseLength = 6

// GeneratePassPhrase draws size characters independently, with replacement,
// from PassPhraseAlphabet.
func GeneratePassPhrase(size int) (PassPhrase, error) {
	max := big.NewInt(int64(len(PassPhraseAlphabet)))
	buf := make([]byte, size)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = PassPhraseAlphabet[n.Int64()]
	}
	return PassPhrase(buf), nil
}
