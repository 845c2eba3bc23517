package pkg

import "os"

// Getenv returns the value of the environment variable key, falling back to
// defaultValue only when the key is unset. An empty set value wins over the
// default.
func Getenv(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	return value
}
