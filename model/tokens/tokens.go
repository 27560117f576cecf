package tokens

import (
	"fmt"

	computemonth "github.com/superdango/compute-month"
	"github.com/superdango/compute-month/model/inference"
)

type TrainingParams struct {
	GPUCount        int
	TrainingPercent float64
	Profile         TrainingProfile
	// Revenue earned by training over one month.
	Revenue float64
}

func (p TrainingParams) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckNonNegative("gpu_count", float64(p.GPUCount)),
		computemonth.CheckPercent("training_percent", p.TrainingPercent),
		computemonth.CheckNonNegative("training_revenue", p.Revenue),
		p.Profile.Validate(),
	)
}

type TrainingResult struct {
	MonthlyThroughput  float64 `json:"monthly_throughput"`
	DatasetCompletions float64 `json:"dataset_completions"`
	RevenuePerMillion  float64 `json:"revenue_per_million"`
}

// ComputeTraining returns the tokens processed by the training share of the fleet.
func ComputeTraining(p TrainingParams) (TrainingResult, error) {
	if err := p.Validate(); err != nil {
		return TrainingResult{}, err
	}

	trainingGPUs := float64(p.GPUCount) * p.TrainingPercent / 100
	throughput := trainingGPUs * p.Profile.TokensPerSecPerGPU * computemonth.SecondsPerMonth()

	return TrainingResult{
		MonthlyThroughput:  throughput,
		DatasetCompletions: throughput / p.Profile.DatasetTokens,
		RevenuePerMillion:  perMillion(p.Revenue, throughput),
	}, nil
}

type InferenceParams struct {
	QueriesPerMonth  float64
	Profile          InferenceProfile
	Scenario         inference.ReasoningScenario
	ReasoningPercent float64
	// Revenue earned by inference over one month.
	Revenue float64
}

func (p InferenceParams) Validate() error {
	err := computemonth.FirstError(
		computemonth.CheckNonNegative("queries_per_month", p.QueriesPerMonth),
		computemonth.CheckPercent("reasoning_percent", p.ReasoningPercent),
		computemonth.CheckNonNegative("inference_revenue", p.Revenue),
		p.Profile.Validate(),
	)
	if err != nil {
		return err
	}
	if p.Scenario.Multiplier() == 0 {
		return computemonth.InvalidParameter("reasoning_scenario", float64(p.Scenario), fmt.Sprintf("unknown scenario %s", p.Scenario))
	}
	return nil
}

type InferenceResult struct {
	StandardTokens    float64 `json:"standard_tokens"`
	ReasoningTokens   float64 `json:"reasoning_tokens"`
	TotalTokens       float64 `json:"total_tokens"`
	AvgTokensPerQuery float64 `json:"avg_tokens_per_query"`
	RevenuePerMillion float64 `json:"revenue_per_million"`
}

// ComputeInference splits the monthly queries between standard and reasoning
// traffic and counts the tokens generated by each.
func ComputeInference(p InferenceParams) (InferenceResult, error) {
	if err := p.Validate(); err != nil {
		return InferenceResult{}, err
	}

	standardQueries := p.QueriesPerMonth * (1 - p.ReasoningPercent/100)
	reasoningQueries := p.QueriesPerMonth * p.ReasoningPercent / 100

	r := InferenceResult{
		StandardTokens:  standardQueries * p.Profile.TokensPerQuery,
		ReasoningTokens: reasoningQueries * p.Profile.TokensPerQuery * p.Scenario.Multiplier(),
	}
	r.TotalTokens = r.StandardTokens + r.ReasoningTokens
	if p.QueriesPerMonth > 0 {
		r.AvgTokensPerQuery = r.TotalTokens / p.QueriesPerMonth
	}
	r.RevenuePerMillion = perMillion(p.Revenue, r.TotalTokens)

	return r, nil
}

// perMillion is the price of a million tokens, zero when nothing was produced.
func perMillion(revenue, tokens float64) float64 {
	if tokens <= 0 {
		return 0
	}
	return revenue / tokens * 1e6
}

// FormatTokens prints a token count with a T/B/M/K suffix.
func FormatTokens(tokens float64) string {
	switch {
	case tokens >= 1e12:
		return fmt.Sprintf("%.1fT", tokens/1e12)
	case tokens >= 1e9:
		return fmt.Sprintf("%.1fB", tokens/1e9)
	case tokens >= 1e6:
		return fmt.Sprintf("%.1fM", tokens/1e6)
	case tokens >= 1e3:
		return fmt.Sprintf("%.1fK", tokens/1e3)
	}
	return fmt.Sprintf("%.0f", tokens)
}
