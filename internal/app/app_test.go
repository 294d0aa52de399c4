package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rqsn/donasi/internal/app"
	"github.com/rqsn/donasi/internal/config"
)

func TestNew_Memory(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Listener)
	assert.NotNil(t, a.Ledger)
	assert.NotNil(t, a.Tracker)

	amount, err := a.Targets.Get(context.Background())
	require.NoError(t, err)
	assert.Zero(t, amount)
}
