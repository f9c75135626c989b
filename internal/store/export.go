// Package store persists search results: multi-frame XYZ trajectories,
// JSON run summaries and energy plots.
package store

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/mwillard/confspin/internal/mol"
	"github.com/mwillard/confspin/internal/spin"
)

// TrajectoryWriter appends conformers to a multi-frame XYZ file, one
// block per frame. Files ending in .gz, or opened with compression
// requested, are gzip-compressed.
type TrajectoryWriter struct {
	w      io.Writer
	gz     *gzip.Writer
	f      *os.File
	frames int
}

// NewTrajectoryWriter creates (truncating) the trajectory file at path.
func NewTrajectoryWriter(path string, compress bool) (*TrajectoryWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	tw := &TrajectoryWriter{f: f, w: f}
	if compress || strings.HasSuffix(path, ".gz") {
		tw.gz = gzip.NewWriter(f)
		tw.w = tw.gz
	}
	return tw, nil
}

// WriteFrame appends one conformer as an XYZ block.
func (tw *TrajectoryWriter) WriteFrame(s *mol.SupraMolecule) error {
	_, err := io.WriteString(tw.w, s.XYZContent())
	if err == nil {
		tw.frames++
	}
	return err
}

// Frames returns the number of frames written so far.
func (tw *TrajectoryWriter) Frames() int { return tw.frames }

// Close flushes and closes the underlying file.
func (tw *TrajectoryWriter) Close() error {
	if tw.gz != nil {
		if err := tw.gz.Close(); err != nil {
			tw.f.Close()
			return err
		}
	}
	return tw.f.Close()
}

// ConformerRecord is one accepted conformer in a run summary.
type ConformerRecord struct {
	CID    int     `json:"cid"`
	Energy float64 `json:"energy"`
}

// Summary captures a whole search for post-hoc inspection.
type Summary struct {
	Host          string            `json:"host"`
	Guests        []string          `json:"guests"`
	InitialEnergy float64           `json:"initial_energy"`
	Conformers    []ConformerRecord `json:"conformers"`
	Proposals     int               `json:"proposals"`
	Accepted      int               `json:"accepted"`
	Exhausted     bool              `json:"exhausted"`
}

// NewSummary assembles a summary from a finished search's bookkeeping.
func NewSummary(host string, guests []string, initial *mol.SupraMolecule, conformers []*mol.SupraMolecule, stats spin.Stats) *Summary {
	records := make([]ConformerRecord, len(conformers))
	for i, c := range conformers {
		records[i] = ConformerRecord{CID: c.CID(), Energy: c.Energy()}
	}
	return &Summary{
		Host:          host,
		Guests:        guests,
		InitialEnergy: initial.Energy(),
		Conformers:    records,
		Proposals:     stats.Proposals,
		Accepted:      stats.Accepted,
		Exhausted:     stats.Exhausted,
	}
}

// WriteJSON writes the summary, indented, to path.
func (s *Summary) WriteJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Energies returns the accepted-conformer energies in order, prefixed by
// the initial energy.
func (s *Summary) Energies() []float64 {
	out := make([]float64, 0, len(s.Conformers)+1)
	out = append(out, s.InitialEnergy)
	for _, c := range s.Conformers {
		out = append(out, c.Energy)
	}
	return out
}
