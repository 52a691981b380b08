package population

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/rng"
)

func TestGenomeTakeRecordCapturesScoreAndFitness(t *testing.T) {
	seed := seedChrom()
	g := NewGenome(seed)
	g.score = 3.5
	g.rwFitness = 0.75

	rec := g.TakeRecord()
	assert.Equal(t, 3.5, rec.Score)
	assert.Equal(t, 0.75, rec.RWFitness)
	assert.Equal(t, seed.Length(), rec.Chrom.Length)
}

func TestGenomeRestoreRecordProjectsOntoSameShapeGenome(t *testing.T) {
	seed := seedChrom()
	g := NewGenome(seed)
	require.NoError(t, g.Chrom.SetVector([]float64{4, 5, 6}, new(int)))
	g.score = 1
	g.rwFitness = 0.5
	rec := g.TakeRecord()

	other := NewGenome(seedChrom())
	require.NoError(t, other.RestoreRecord(rec))

	assert.Equal(t, 1.0, other.Score())
	assert.Equal(t, 0.5, other.RWFitness())
	var got []float64
	other.Chrom.GetVector(&got)
	assert.Equal(t, []float64{4, 5, 6}, got)
}

func TestRestorePopulationRebuildsFromRecord(t *testing.T) {
	r := rng.New(1)
	sf := &nullScore{raw: 5}
	pop, err := New(seedChrom(), 3, sf, r)
	require.NoError(t, err)
	rec := pop.TakeRecord()

	restoredGenomes := make([]*Genome, len(pop.Genomes()))
	for i := range restoredGenomes {
		restoredGenomes[i] = NewGenome(seedChrom())
	}
	restored, err := RestorePopulation(rec, restoredGenomes, r)
	require.NoError(t, err)

	assert.Equal(t, pop.MaxSize(), restored.MaxSize())
	assert.Equal(t, pop.ScoreMean(), restored.ScoreMean())
	require.Equal(t, pop.ActualSize(), restored.ActualSize())
	for i, g := range pop.Genomes() {
		assert.Equal(t, g.Score(), restored.Genomes()[i].Score())
		assert.Equal(t, g.RWFitness(), restored.Genomes()[i].RWFitness())
	}
}

func TestRestorePopulationRejectsGenomeCountMismatch(t *testing.T) {
	r := rng.New(1)
	sf := &nullScore{raw: 5}
	pop, err := New(seedChrom(), 3, sf, r)
	require.NoError(t, err)
	rec := pop.TakeRecord()

	_, err = RestorePopulation(rec, []*Genome{NewGenome(seedChrom())}, r)
	assert.Error(t, err)
}

func TestPopulationRecordJSONRoundTripThroughParse(t *testing.T) {
	r := rng.New(1)
	sf := &nullScore{raw: 5}
	pop, err := New(seedChrom(), 2, sf, r)
	require.NoError(t, err)
	rec := pop.TakeRecord()

	dir := t.TempDir()
	path := filepath.Join(dir, "population.json")
	require.NoError(t, WritePopulationRecord(rec, path))

	got, err := ReadPopulationRecord(path)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestParsePopulationRecordRejectsMalformedJSON(t *testing.T) {
	_, err := ParsePopulationRecord(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestReadPopulationRecordMissingFileIsFileReadError(t *testing.T) {
	_, err := ReadPopulationRecord(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, dockerr.KindOf(dockerr.FileReadError)))
}
