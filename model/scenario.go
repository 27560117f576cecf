// Package model chains the capacity, cost and impact calculations of a
// compute facility into one report.
package model

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
	computemonth "github.com/superdango/compute-month"
	"github.com/superdango/compute-month/model/carbon"
	"github.com/superdango/compute-month/model/economics"
	"github.com/superdango/compute-month/model/hardware"
	"github.com/superdango/compute-month/model/inference"
	"github.com/superdango/compute-month/model/loadgrowth"
	"gopkg.in/yaml.v3"
)

// Scenario holds every input of the calculator.
type Scenario struct {
	Name            string  `mapstructure:"name" json:"name"`
	FacilityGW      float64 `mapstructure:"facility_gw" json:"facility_gw"`
	TrainingPercent float64 `mapstructure:"training_percent" json:"training_percent"`
	Accelerator     string  `mapstructure:"accelerator" json:"accelerator"`
	Months          int     `mapstructure:"months" json:"months"`

	PUE                  float64                     `mapstructure:"pue" json:"pue"`
	ITOverhead           float64                     `mapstructure:"it_overhead" json:"it_overhead"`
	RDOverhead           float64                     `mapstructure:"rd_overhead" json:"rd_overhead"`
	InferenceUtilization float64                     `mapstructure:"inference_utilization" json:"inference_utilization"`
	ReasoningPercent     float64                     `mapstructure:"reasoning_percent" json:"reasoning_percent"`
	ReasoningScenario    inference.ReasoningScenario `mapstructure:"reasoning_scenario" json:"reasoning_scenario"`

	Capex         economics.CapexModel `mapstructure:"capex_model" json:"capex_model"`
	Region        string               `mapstructure:"region" json:"region"`
	TrainingRate  float64              `mapstructure:"training_rate" json:"training_rate"`
	InferenceRate float64              `mapstructure:"inference_rate" json:"inference_rate"`

	TrainingTokenModel  string                      `mapstructure:"training_token_model" json:"training_token_model"`
	InferenceTokenModel string                      `mapstructure:"inference_token_model" json:"inference_token_model"`
	TokenReasoningLevel inference.ReasoningScenario `mapstructure:"token_reasoning_level" json:"token_reasoning_level"`

	GrowthRatePercent float64 `mapstructure:"growth_rate_percent" json:"growth_rate_percent"`
}

// DefaultScenario is a 1 GW facility with the compute-month constant set:
// 1.82 IT overhead and a 10x R&D multiplier.
func DefaultScenario() Scenario {
	return Scenario{
		Name:                 "compute-month",
		FacilityGW:           1,
		TrainingPercent:      80,
		Accelerator:          hardware.DefaultAccelerator,
		Months:               12,
		PUE:                  1.2,
		ITOverhead:           1.82,
		RDOverhead:           10,
		InferenceUtilization: 0.70,
		ReasoningPercent:     20,
		ReasoningScenario:    inference.ReasoningMedium,
		Capex:                economics.CapexValidated,
		Region:               carbon.DefaultRegion,
		TrainingRate:         economics.DefaultTrainingRate,
		InferenceRate:        economics.DefaultInferenceRate,
		TrainingTokenModel:   "GPT-4.5",
		InferenceTokenModel:  "GPT-4 class (280B)",
		TokenReasoningLevel:  inference.ReasoningMedium,
		GrowthRatePercent:    loadgrowth.DefaultGrowthRate,
	}
}

// LegacyCalculatorScenario keeps the constants of the first calculator
// release: 1.14 IT overhead and a 11.25x R&D multiplier.
func LegacyCalculatorScenario() Scenario {
	s := DefaultScenario()
	s.Name = "calculator-legacy"
	s.ITOverhead = 1.14
	s.RDOverhead = 11.25
	return s
}

// FacilityPower is the scenario power as a typed quantity.
func (s Scenario) FacilityPower() computemonth.Power {
	return computemonth.GigaWatts(s.FacilityGW)
}

// InferencePercent is what training leaves to serving.
func (s Scenario) InferencePercent() float64 {
	return 100 - s.TrainingPercent
}

func (s Scenario) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckPositive("facility_gw", s.FacilityGW),
		computemonth.CheckPercent("training_percent", s.TrainingPercent),
		computemonth.CheckAtLeast("months", float64(s.Months), 1),
		loadgrowth.CheckGrowthRate(s.GrowthRatePercent),
	)
}

// DecodeScenario overrides base with untyped parameters such as url query
// values. Strings are converted to numbers and enums; unknown keys are rejected.
func DecodeScenario(params map[string]any, base Scenario) (Scenario, error) {
	s := base
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &s,
	})
	if err != nil {
		return base, fmt.Errorf("failed to create scenario decoder: %w", err)
	}
	if err := decoder.Decode(params); err != nil {
		return base, fmt.Errorf("%w: %s", computemonth.ErrInvalidParameter, err.Error())
	}
	return s, nil
}

// LoadScenario reads a YAML scenario document on top of base.
func LoadScenario(r io.Reader, base Scenario) (Scenario, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return base, fmt.Errorf("failed to read scenario: %w", err)
	}

	params := make(map[string]any)
	if len(bytes.TrimSpace(content)) > 0 {
		if err := yaml.Unmarshal(content, &params); err != nil {
			return base, fmt.Errorf("failed to parse scenario: %w", err)
		}
	}
	return DecodeScenario(params, base)
}
