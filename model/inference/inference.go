// Package inference estimates the queries a facility can serve per month.
//
// Serving is bound by memory bandwidth, not FLOPs: every generated token streams
// the whole model out of HBM, so tokens per second per GPU is bandwidth divided by
// model size. Peak TFLOPS never enters the formula.
package inference

import (
	computemonth "github.com/superdango/compute-month"
	"gonum.org/v1/gonum/floats"
)

const (
	// MemoryBandwidth of an H100 in bytes per second.
	MemoryBandwidth = 3.35e12
	// BytesPerParameter for FP16 weights.
	BytesPerParameter = 2.0

	// Reasoning queries are served by a 70B reference model.
	ReasoningReferenceParameters = 70e9
	ReasoningReferenceTokens     = 400.0
)

// ModelClass is a family of served models of similar size.
type ModelClass struct {
	Name           string  `yaml:"name"`
	Parameters     float64 `yaml:"parameters"`
	TokensPerQuery float64 `yaml:"tokens_per_query"`
}

func (m ModelClass) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckPositive(m.Name+".parameters", m.Parameters),
		computemonth.CheckPositive(m.Name+".tokens_per_query", m.TokensPerQuery),
	)
}

// TokensPerSecond generated by one GPU at the given utilization.
func (m ModelClass) TokensPerSecond(utilization float64) float64 {
	return tokensPerSecond(m.Parameters, utilization)
}

func DefaultModelClasses() []ModelClass {
	return []ModelClass{
		{Name: "GPT-4 class (280B)", Parameters: 280e9, TokensPerQuery: 550},
		{Name: "Llama 70B class", Parameters: 70e9, TokensPerQuery: 400},
		{Name: "Llama 8B class", Parameters: 8e9, TokensPerQuery: 280},
	}
}

type Params struct {
	GPUCount         int
	InferencePercent float64
	// Utilization is the batch efficiency achieved on the bandwidth.
	Utilization      float64
	ReasoningPercent float64
	Scenario         ReasoningScenario
}

func (p Params) Validate() error {
	err := computemonth.FirstError(
		computemonth.CheckNonNegative("gpu_count", float64(p.GPUCount)),
		computemonth.CheckPercent("inference_percent", p.InferencePercent),
		computemonth.CheckFraction("inference_utilization", p.Utilization),
		computemonth.CheckPercent("reasoning_percent", p.ReasoningPercent),
	)
	if err != nil {
		return err
	}
	if !p.Scenario.valid() {
		return computemonth.InvalidParameter("reasoning_scenario", float64(p.Scenario), "unknown scenario")
	}
	return nil
}

// InferenceGPUs is the share of the fleet serving queries.
func (p Params) InferenceGPUs() float64 {
	return float64(p.GPUCount) * p.InferencePercent / 100
}

func (p Params) StandardGPUs() float64 {
	return p.InferenceGPUs() * (1 - p.ReasoningPercent/100)
}

func (p Params) ReasoningGPUs() float64 {
	return p.InferenceGPUs() * p.ReasoningPercent / 100
}

type ClassCapacity struct {
	Class           ModelClass `json:"class"`
	QueriesPerMonth float64    `json:"queries_per_month"`
}

type ReasoningCapacity struct {
	Scenario        ReasoningScenario `json:"scenario"`
	Multiplier      float64           `json:"multiplier"`
	QueriesPerMonth float64           `json:"queries_per_month"`
}

type Results struct {
	Standard  []ClassCapacity   `json:"standard"`
	Reasoning ReasoningCapacity `json:"reasoning"`
}

// TotalQueries sums every standard class and the reasoning workload.
func (r Results) TotalQueries() float64 {
	queries := make([]float64, 0, len(r.Standard)+1)
	for _, c := range r.Standard {
		queries = append(queries, c.QueriesPerMonth)
	}
	queries = append(queries, r.Reasoning.QueriesPerMonth)
	return floats.Sum(queries)
}

// Compute returns monthly queries for each model class, each one assumed to get
// all the standard GPUs, and for the reasoning workload.
func Compute(p Params, classes []ModelClass) (Results, error) {
	if err := p.Validate(); err != nil {
		return Results{}, err
	}

	standardGPUs := p.StandardGPUs()
	standard := make([]ClassCapacity, 0, len(classes))
	for _, class := range classes {
		if err := class.Validate(); err != nil {
			return Results{}, err
		}
		standard = append(standard, ClassCapacity{
			Class:           class,
			QueriesPerMonth: queriesPerMonth(class.Parameters, class.TokensPerQuery, p.Utilization, standardGPUs),
		})
	}

	multiplier := p.Scenario.Multiplier()
	reasoningTokens := ReasoningReferenceTokens * multiplier

	return Results{
		Standard: standard,
		Reasoning: ReasoningCapacity{
			Scenario:        p.Scenario,
			Multiplier:      multiplier,
			QueriesPerMonth: queriesPerMonth(ReasoningReferenceParameters, reasoningTokens, p.Utilization, p.ReasoningGPUs()),
		},
	}, nil
}

func tokensPerSecond(parameters, utilization float64) float64 {
	modelBytes := parameters * BytesPerParameter
	return (MemoryBandwidth / modelBytes) * utilization
}

func queriesPerMonth(parameters, tokensPerQuery, utilization, gpus float64) float64 {
	queriesPerSecond := tokensPerSecond(parameters, utilization) / tokensPerQuery
	return queriesPerSecond * gpus * computemonth.HoursPerMonth * computemonth.SecondsPerHour
}
