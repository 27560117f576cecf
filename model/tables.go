package model

import (
	"fmt"
	"io"

	computemonth "github.com/superdango/compute-month"
	"github.com/superdango/compute-month/model/carbon"
	"github.com/superdango/compute-month/model/hardware"
	"github.com/superdango/compute-month/model/inference"
	"github.com/superdango/compute-month/model/tokens"
	"github.com/superdango/compute-month/model/training"
	"gopkg.in/yaml.v3"
)

// Tables are the read-only reference data shared by every evaluation.
type Tables struct {
	Accelerators   hardware.Table         `yaml:"accelerators"`
	TrainingModels []training.ModelSpec   `yaml:"training_models"`
	ModelClasses   []inference.ModelClass `yaml:"model_classes"`
	Tokens         tokens.Profiles        `yaml:"tokens"`
	Regions        carbon.Regions         `yaml:"regions"`
}

func DefaultTables() Tables {
	return Tables{
		Accelerators:   hardware.Default(),
		TrainingModels: training.DefaultModels(),
		ModelClasses:   inference.DefaultModelClasses(),
		Tokens:         tokens.DefaultProfiles(),
		Regions:        carbon.DefaultRegions(),
	}
}

// LoadTables reads a YAML document whose entries replace the default ones
// with the same name or are appended to them.
func LoadTables(r io.Reader) (Tables, error) {
	overlay := Tables{}
	if err := yaml.NewDecoder(r).Decode(&overlay); err != nil && err != io.EOF {
		return Tables{}, fmt.Errorf("failed to decode tables: %w", err)
	}
	if err := overlay.Validate(); err != nil {
		return Tables{}, err
	}

	defaults := DefaultTables()
	return Tables{
		Accelerators:   defaults.Accelerators.Merge(overlay.Accelerators),
		TrainingModels: computemonth.MergeByName(defaults.TrainingModels, overlay.TrainingModels, func(m training.ModelSpec) string { return m.Name }),
		ModelClasses:   computemonth.MergeByName(defaults.ModelClasses, overlay.ModelClasses, func(c inference.ModelClass) string { return c.Name }),
		Tokens:         defaults.Tokens.Merge(overlay.Tokens),
		Regions:        defaults.Regions.Merge(overlay.Regions),
	}, nil
}

// Validate checks every entry of the tables.
func (t Tables) Validate() error {
	for _, a := range t.Accelerators {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, m := range t.TrainingModels {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	for _, c := range t.ModelClasses {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, p := range t.Tokens.Training {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, p := range t.Tokens.Inference {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, r := range t.Regions {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}
