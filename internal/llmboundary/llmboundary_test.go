package llmboundary

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopEnhancerReturnsQueryUnchanged(t *testing.T) {
	out, err := NoopEnhancer{}.Enhance(context.Background(), "space movie", EnhanceExpand)
	require.NoError(t, err)
	assert.Equal(t, "space movie", out)
}

func TestNewStubEnhancerRequiresAPIKey(t *testing.T) {
	t.Setenv(GeminiAPIKeyEnv, "")
	os.Unsetenv(GeminiAPIKeyEnv)
	_, err := NewStubEnhancer()
	require.Error(t, err)
}

func TestNewStubEnhancerSucceedsWithKey(t *testing.T) {
	t.Setenv(GeminiAPIKeyEnv, "test-key")
	_, err := NewStubEnhancer()
	require.NoError(t, err)
}
