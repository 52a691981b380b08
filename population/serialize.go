package population

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/rng"
)

// JSON (de)serialization hooks, following the teacher's bio/polyjson pattern
// of function-variable dependencies so tests can stub file/marshal IO.
var (
	marshalIndentFn = json.MarshalIndent
	readFileFn      = os.Open
	unmarshalFn     = json.Unmarshal
)

// GenomeRecord is the §6.1 JSON wire representation of a Genome: its
// chromosome snapshot plus the last recorded score and roulette fitness.
type GenomeRecord struct {
	Chrom     chrom.Snapshot `json:"chrom"`
	Score     float64        `json:"score"`
	RWFitness float64        `json:"rw_fitness"`
}

// TakeRecord captures g's current state as a GenomeRecord.
func (g *Genome) TakeRecord() GenomeRecord {
	return GenomeRecord{Chrom: g.Chrom.TakeSnapshot(), Score: g.score, RWFitness: g.rwFitness}
}

// RestoreRecord projects r back onto g's existing chromosome (same shape as
// when r was taken) and restores its score/fitness fields directly, without
// recomputing them.
func (g *Genome) RestoreRecord(r GenomeRecord) error {
	if err := g.Chrom.RestoreSnapshot(r.Chrom); err != nil {
		return err
	}
	g.score = r.Score
	g.rwFitness = r.RWFitness
	return nil
}

// PopulationRecord is the §6.1 JSON wire representation of a Population:
// its ranked genome records plus the sort-derived moments.
type PopulationRecord struct {
	MaxSize       int            `json:"max_size"`
	ScoreMean     float64        `json:"score_mean"`
	ScoreVariance float64        `json:"score_variance"`
	Genomes       []GenomeRecord `json:"genomes"`
}

// TakeRecord captures p's current state as a PopulationRecord.
func (p *Population) TakeRecord() PopulationRecord {
	rec := PopulationRecord{MaxSize: p.maxSize, ScoreMean: p.scoreMean, ScoreVariance: p.scoreVariance}
	for _, g := range p.genomes {
		rec.Genomes = append(rec.Genomes, g.TakeRecord())
	}
	return rec
}

// RestorePopulation rebuilds a Population from rec onto genomes: a slice of
// already-constructed genomes (cloned from the same seed chromosome rec was
// taken from) in the same order rec.Genomes was recorded. Genome records
// can't be reconstructed from JSON alone — their chromosomes hold live
// *model.Model references — so the caller supplies the shape and this
// function restores the recorded values onto it.
func RestorePopulation(rec PopulationRecord, genomes []*Genome, r *rng.Source) (*Population, error) {
	if len(genomes) != len(rec.Genomes) {
		return nil, dockerr.New(dockerr.BadArgument, "population: record has %d genomes, got %d to restore onto", len(rec.Genomes), len(genomes))
	}
	for i, g := range genomes {
		if err := g.RestoreRecord(rec.Genomes[i]); err != nil {
			return nil, err
		}
	}
	return &Population{
		genomes:       genomes,
		maxSize:       rec.MaxSize,
		scoreMean:     rec.ScoreMean,
		scoreVariance: rec.ScoreVariance,
		rng:           r,
	}, nil
}

// ParsePopulationRecord reads a PopulationRecord from r.
func ParsePopulationRecord(reader io.Reader) (PopulationRecord, error) {
	var rec PopulationRecord
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(reader); err != nil {
		return rec, dockerr.Wrap(dockerr.FileReadError, err, "population: reading record")
	}
	if err := unmarshalFn(buf.Bytes(), &rec); err != nil {
		return rec, dockerr.Wrap(dockerr.FileParseError, err, "population: parsing record JSON")
	}
	return rec, nil
}

// ReadPopulationRecord reads a PopulationRecord from a JSON file at path.
func ReadPopulationRecord(path string) (PopulationRecord, error) {
	f, err := readFileFn(path)
	if err != nil {
		return PopulationRecord{}, dockerr.NewFileError(dockerr.FileReadError, path, 0, "%v", err)
	}
	defer f.Close()
	return ParsePopulationRecord(f)
}

// WritePopulationRecord writes rec to path as indented JSON.
func WritePopulationRecord(rec PopulationRecord, path string) error {
	data, err := marshalIndentFn(rec, "", " ")
	if err != nil {
		return dockerr.Wrap(dockerr.FileWriteError, err, "population: marshaling record")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return dockerr.NewFileError(dockerr.FileWriteError, path, 0, "%v", err)
	}
	return nil
}
