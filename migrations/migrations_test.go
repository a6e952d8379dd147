//go:build unit

package migrations_test

import (
	"testing"

	"bodyshop/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_Ordered(t *testing.T) {
	names, err := migrations.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_initial_schema.sql", "002_seed_catalog.sql", "003_idempotency_keys.sql"}, names)
}
