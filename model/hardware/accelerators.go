// Package hardware holds the accelerator specifications used to size a facility.
// Specs come from the EpochAI ml_hardware dataset and manufacturer datasheets.
package hardware

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	computemonth "github.com/superdango/compute-month"
	"github.com/superdango/compute-month/internal/must"
)

//go:embed data/accelerators.csv
var acceleratorsCSV []byte

// DefaultAccelerator is returned when a lookup finds nothing.
const DefaultAccelerator = "H100 SXM"

// Spec describes one accelerator model.
type Spec struct {
	Name       string  `yaml:"name"`
	TDPKW      float64 `yaml:"tdp_kw"`
	PeakTFLOPS float64 `yaml:"peak_tflops"`
	// MemoryGB is zero when the vendor does not publish it.
	MemoryGB float64 `yaml:"memory_gb,omitempty"`
	Label    string  `yaml:"label,omitempty"`
}

// HasMemory reports whether the memory size is known.
func (s Spec) HasMemory() bool {
	return s.MemoryGB > 0
}

// PerformanceMultiplier expresses the accelerator throughput in H100 equivalents.
func (s Spec) PerformanceMultiplier() float64 {
	return s.PeakTFLOPS / computemonth.H100BaselineTFLOPS
}

// Validate rejects specs that cannot size a facility.
func (s Spec) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckPositive(s.Name+".tdp_kw", s.TDPKW),
		computemonth.CheckPositive(s.Name+".peak_tflops", s.PeakTFLOPS),
		computemonth.CheckNonNegative(s.Name+".memory_gb", s.MemoryGB),
	)
}

func (s Spec) withLabel() Spec {
	if s.Label != "" {
		return s
	}
	if s.HasMemory() {
		s.Label = fmt.Sprintf("%s (%g TFLOPS, %gkW, %gGB)", s.Name, s.PeakTFLOPS, s.TDPKW, s.MemoryGB)
		return s
	}
	s.Label = fmt.Sprintf("%s (%g TFLOPS, %gkW)", s.Name, s.PeakTFLOPS, s.TDPKW)
	return s
}

// Table is an ordered list of accelerator specs.
type Table []Spec

var accelerators Table

func init() {
	csvAccelerators := csv.NewReader(bytes.NewReader(acceleratorsCSV))
	csvAccelerators.Read() // skip header line
	for {
		record, err := csvAccelerators.Read()
		if err == io.EOF {
			break
		}
		must.NoError(err)
		must.Assert(len(record) == 4, "accelerator csv line must be 4 fields length")

		accelerators = append(accelerators, Spec{
			Name:       record[0],
			TDPKW:      must.CastFloat64(record[1]),
			PeakTFLOPS: must.CastFloat64(record[2]),
			MemoryGB:   must.CastFloat64(record[3]),
		}.withLabel())
	}
}

// Default returns a copy of the embedded accelerator table.
func Default() Table {
	return append(Table(nil), accelerators...)
}

// Names lists accelerator names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, s := range t {
		names[i] = s.Name
	}
	return names
}

// Lookup finds an accelerator by its exact name, ignoring case.
func (t Table) Lookup(name string) (Spec, bool) {
	for _, s := range t {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Spec{}, false
}

// Merge returns a table where specs from other replace or extend t.
func (t Table) Merge(other Table) Table {
	labelled := make(Table, len(other))
	for i, s := range other {
		labelled[i] = s.withLabel()
	}
	return computemonth.MergeByName(t, labelled, func(s Spec) string { return s.Name })
}

// LookupByName fuzzy finds the closest accelerator. When nothing matches, the
// H100 baseline is returned with ok set to false.
func (t Table) LookupByName(name string) (spec Spec, ok bool) {
	if s, found := t.Lookup(name); found {
		return s, true
	}

	names := t.Names()
	for _, submatch := range submatches(name) {
		ranks := fuzzy.RankFindNormalizedFold(submatch, names)
		if len(ranks) == 0 {
			continue
		}
		sort.SliceStable(ranks, func(i, j int) bool {
			if ranks[i].Distance == ranks[j].Distance {
				return ranks[i].OriginalIndex < ranks[j].OriginalIndex
			}
			return ranks[i].Distance < ranks[j].Distance
		})
		spec = t[ranks[0].OriginalIndex]
		slog.Debug("fuzzy found the closest accelerator", "source", name, "match", spec.Name)
		return spec, true
	}

	slog.Debug("no accelerator found in fuzzy finding", "source", name)
	spec, found := t.Lookup(DefaultAccelerator)
	if !found && len(t) > 0 {
		spec = t[0]
	}
	return spec, false
}

// submatches splits a name into candidates from the entire string down to its
// single words, longest first. "foo bar baz" gives
// {"foo bar baz", "foo bar", "bar baz", "foo", "bar", "baz"}.
func submatches(s string) []string {
	words := strings.Fields(s)
	candidates := make([]string, 0)
	for size := len(words); size > 0; size-- {
		for start := 0; start+size <= len(words); start++ {
			candidates = append(candidates, strings.Join(words[start:start+size], " "))
		}
	}
	return candidates
}
