package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaders(t *testing.T) {
	t.Run("known columns keep report order", func(t *testing.T) {
		values := map[string]any{
			"entries":        2,
			"total_value":    5.0,
			"indicator_name": "x",
			"indicator_id":   1,
		}
		assert.Equal(t,
			[]string{"indicator_id", "indicator_name", "total_value", "entries"},
			Headers(values))
	})

	t.Run("unknown columns follow alphabetically", func(t *testing.T) {
		values := map[string]any{
			"zeta":         1,
			"alpha":        2,
			"indicator_id": 3,
		}
		assert.Equal(t, []string{"indicator_id", "alpha", "zeta"}, Headers(values))
	})

	t.Run("empty map", func(t *testing.T) {
		assert.Empty(t, Headers(map[string]any{}))
	})
}
