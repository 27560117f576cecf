// Package tokens converts GPU allocations and query volumes into token counts,
// and revenue into a price per million tokens.
package tokens

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	computemonth "github.com/superdango/compute-month"
	"github.com/superdango/compute-month/internal/must"
	"gopkg.in/yaml.v3"
)

//go:embed data/profiles.yaml
var profilesYAML []byte

// TrainingProfile is the measured training throughput of a model.
type TrainingProfile struct {
	Name               string  `yaml:"name"`
	TokensPerSecPerGPU float64 `yaml:"tokens_per_sec_per_gpu"`
	DatasetTokens      float64 `yaml:"dataset_tokens"`
	Source             string  `yaml:"source"`
}

func (p TrainingProfile) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckPositive(p.Name+".tokens_per_sec_per_gpu", p.TokensPerSecPerGPU),
		computemonth.CheckPositive(p.Name+".dataset_tokens", p.DatasetTokens),
	)
}

// InferenceProfile is the measured serving throughput of a model class.
type InferenceProfile struct {
	Name               string  `yaml:"name"`
	TokensPerSecPerGPU float64 `yaml:"tokens_per_sec_per_gpu"`
	TokensPerQuery     float64 `yaml:"tokens_per_query"`
	Source             string  `yaml:"source"`
}

func (p InferenceProfile) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckPositive(p.Name+".tokens_per_sec_per_gpu", p.TokensPerSecPerGPU),
		computemonth.CheckPositive(p.Name+".tokens_per_query", p.TokensPerQuery),
	)
}

// Profiles groups the training and inference throughput tables.
type Profiles struct {
	Training  []TrainingProfile  `yaml:"training"`
	Inference []InferenceProfile `yaml:"inference"`
}

var defaultProfiles Profiles

func init() {
	profiles, err := DecodeProfiles(bytes.NewReader(profilesYAML))
	must.NoError(err)
	must.Assert(len(profiles.Training) > 0, "training profiles must not be empty")
	must.Assert(len(profiles.Inference) > 0, "inference profiles must not be empty")
	defaultProfiles = profiles
}

// DefaultProfiles returns a copy of the embedded profiles.
func DefaultProfiles() Profiles {
	return Profiles{
		Training:  append([]TrainingProfile(nil), defaultProfiles.Training...),
		Inference: append([]InferenceProfile(nil), defaultProfiles.Inference...),
	}
}

// DecodeProfiles reads and validates a YAML profile document.
func DecodeProfiles(r io.Reader) (Profiles, error) {
	profiles := Profiles{}
	if err := yaml.NewDecoder(r).Decode(&profiles); err != nil && err != io.EOF {
		return Profiles{}, fmt.Errorf("failed to decode token profiles: %w", err)
	}
	for _, p := range profiles.Training {
		if err := p.Validate(); err != nil {
			return Profiles{}, err
		}
	}
	for _, p := range profiles.Inference {
		if err := p.Validate(); err != nil {
			return Profiles{}, err
		}
	}
	return profiles, nil
}

// Merge returns profiles where entries of other replace or extend p by name.
func (p Profiles) Merge(other Profiles) Profiles {
	return Profiles{
		Training:  computemonth.MergeByName(p.Training, other.Training, func(t TrainingProfile) string { return t.Name }),
		Inference: computemonth.MergeByName(p.Inference, other.Inference, func(i InferenceProfile) string { return i.Name }),
	}
}

// LookupTraining finds a training profile by name. Unknown names fall back
// to the first profile with ok set to false.
func (p Profiles) LookupTraining(name string) (profile TrainingProfile, ok bool) {
	names := make([]string, len(p.Training))
	for i, t := range p.Training {
		names[i] = t.Name
	}
	idx, ok := closest(name, names)
	if idx < 0 {
		return TrainingProfile{}, false
	}
	return p.Training[idx], ok
}

// LookupInference finds an inference profile by name. Unknown names fall back
// to the first profile with ok set to false.
func (p Profiles) LookupInference(name string) (profile InferenceProfile, ok bool) {
	names := make([]string, len(p.Inference))
	for i, t := range p.Inference {
		names[i] = t.Name
	}
	idx, ok := closest(name, names)
	if idx < 0 {
		return InferenceProfile{}, false
	}
	return p.Inference[idx], ok
}

// closest returns the index of name in names, or of its nearest fuzzy match.
func closest(name string, names []string) (int, bool) {
	if len(names) == 0 {
		return -1, false
	}
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i, true
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	if len(ranks) == 0 {
		slog.Debug("no token profile found in fuzzy finding", "source", name, "fallback", names[0])
		return 0, false
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance == ranks[j].Distance {
			return ranks[i].OriginalIndex < ranks[j].OriginalIndex
		}
		return ranks[i].Distance < ranks[j].Distance
	})
	slog.Debug("fuzzy found the closest token profile", "source", name, "match", ranks[0].Target)
	return ranks[0].OriginalIndex, true
}
