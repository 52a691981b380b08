package dockerr_test

import (
	"errors"
	"testing"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := dockerr.Wrap(dockerr.FileReadError, cause, "reading %s", "foo.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "foo.txt")
}

func TestLigandErrorFields(t *testing.T) {
	err := dockerr.NewLigandError("donors", 1, "donors 2 required 3")
	assert.Equal(t, dockerr.LigandError, err.Kind)
	assert.Equal(t, "donors", err.Feature)
	assert.Equal(t, 1, err.Deficit)
	assert.Contains(t, err.Error(), "donors 2 required 3")
}

func TestIsComparesKindOnly(t *testing.T) {
	a := dockerr.New(dockerr.InvalidGrid, "zero step")
	b := dockerr.New(dockerr.InvalidGrid, "different message")
	c := dockerr.New(dockerr.BadArgument, "zero step")
	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}
