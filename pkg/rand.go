package pkg

import "math/rand"

const randAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandString returns a random alphanumeric string of length n. Not
// cryptographically secure; test fixtures only.
func RandString(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = randAlphabet[rand.Intn(len(randAlphabet))] //nolint:gosec
	}

	return string(out)
}
