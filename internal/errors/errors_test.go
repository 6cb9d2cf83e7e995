package errors_test

import (
	"errors"
	"testing"

	gerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodes(t *testing.T) {
	cases := []struct {
		err  *gerrors.Error
		want int
	}{
		{gerrors.NewConfigError("bad config", "", "", nil), 1},
		{gerrors.NewProviderError("boom", "", "", nil), 2},
		{gerrors.NewRateLimitedError("slow down", "", "", nil), 3},
		{gerrors.NewAuthError("nope", "", "", nil), 4},
		{gerrors.NewNetworkError("timeout", "", "", nil), 5},
		{gerrors.NewCacheError("corrupt", "", "", nil), 6},
		{gerrors.NewCancelledError("stopped", nil), 7},
		{gerrors.NewUnsupportedError("gitlab", "trending"), 8},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.err.ExitCode())
		assert.Equal(t, c.want, gerrors.ExitCodeFor(c.err))
	}
}

func TestUnwrapAndAs(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := gerrors.NewNetworkError("request failed", "", "retry later", cause)

	require.ErrorIs(t, err, cause)

	var ge *gerrors.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, gerrors.Network, ge.Category())
}

func TestExitCodeForPlainError(t *testing.T) {
	assert.Equal(t, 1, gerrors.ExitCodeFor(errors.New("plain")))
	assert.Equal(t, 0, gerrors.ExitCodeFor(nil))
}

func TestChainIncludesDetailHintCause(t *testing.T) {
	cause := errors.New("underlying")
	err := gerrors.NewConfigError("duplicate key", "key api_token in a.toml and b.toml", "remove one", cause)
	chain := err.Chain()
	assert.Contains(t, chain, "duplicate key")
	assert.Contains(t, chain, "a.toml and b.toml")
	assert.Contains(t, chain, "remove one")
	assert.Contains(t, chain, "underlying")
}
