package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/adapters/driving/mcp"
)

func TestMCPCmd_HasServe(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"mcp", "serve"})

	require.NoError(t, err)
	assert.Equal(t, "serve", cmd.Name())
}

func TestMCPServe_RequiresCatalog(t *testing.T) {
	setupServices(t, &Services{Reader: &mockReader{}})

	_, err := executeCommand(t, "mcp", "serve")

	require.Error(t, err)
	assert.ErrorIs(t, err, mcp.ErrMissingCatalog)
}
