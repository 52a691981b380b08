package chrom_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/dockerr"
)

func TestTakeSnapshotCapturesCurrentVector(t *testing.T) {
	c, _ := buildChrom(t)
	idx := 0
	require.NoError(t, c.SetVector([]float64{1, 2, 3, 0.1, 0.2, 0.3}, &idx))

	s := c.TakeSnapshot()
	assert.Equal(t, 6, s.Length)
	assert.Equal(t, []float64{1, 2, 3, 0.1, 0.2, 0.3}, s.Vector)
}

func TestRestoreSnapshotProjectsVectorOntoSameShapeChrom(t *testing.T) {
	c, _ := buildChrom(t)
	idx := 0
	require.NoError(t, c.SetVector([]float64{1, 2, 3, 0.1, 0.2, 0.3}, &idx))
	s := c.TakeSnapshot()

	other, _ := buildChrom(t)
	require.NoError(t, other.RestoreSnapshot(s))

	var got []float64
	other.GetVector(&got)
	assert.Equal(t, s.Vector, got)
}

func TestRestoreSnapshotRejectsLengthMismatch(t *testing.T) {
	c, _ := buildChrom(t)
	s := c.TakeSnapshot()
	s.Vector = append(s.Vector, 99)

	err := c.RestoreSnapshot(s)
	assert.Error(t, err)
}

func TestRestoreSnapshotRejectsWrongShapeChrom(t *testing.T) {
	c, _ := buildChrom(t)
	s := c.TakeSnapshot()

	m := squareModel()
	other := chrom.NewChrom(nil)
	other.Add(chrom.NewOrientation(m, &chrom.OrientationRefData{Mode: chrom.Free, StepSize: 0.1}))

	err := other.RestoreSnapshot(s)
	assert.Error(t, err)
}

func TestSnapshotJSONRoundTripThroughParse(t *testing.T) {
	c, _ := buildChrom(t)
	idx := 0
	require.NoError(t, c.SetVector([]float64{1, 2, 3, 0.1, 0.2, 0.3}, &idx))
	s := c.TakeSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "chrom.json")
	require.NoError(t, chrom.WriteSnapshot(s, path))

	got, err := chrom.ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestParseSnapshotRejectsMalformedJSON(t *testing.T) {
	_, err := chrom.ParseSnapshot(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestReadSnapshotMissingFileIsFileReadError(t *testing.T) {
	_, err := chrom.ReadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, dockerr.KindOf(dockerr.FileReadError)))
}

var _ = os.Open
