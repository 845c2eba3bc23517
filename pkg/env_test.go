package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	const fallback = "fallback"

	t.Run("unset key returns the fallback", func(t *testing.T) {
		assert.Equal(t, fallback, Getenv("TSL_UNSET_KEY", fallback))
	})
	t.Run("empty set value wins over the fallback", func(t *testing.T) {
		t.Setenv("TSL_EMPTY_KEY", "")
		assert.Empty(t, Getenv("TSL_EMPTY_KEY", fallback))
	})
	t.Run("set value is returned", func(t *testing.T) {
		t.Setenv("TSL_SET_KEY", "value")
		assert.Equal(t, "value", Getenv("TSL_SET_KEY", fallback))
	})
}
