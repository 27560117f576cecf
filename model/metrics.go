package model

import (
	"maps"
	"slices"

	computemonth "github.com/superdango/compute-month"
)

// Metrics flattens the report into gauges labelled with the scenario name,
// its region and its accelerator.
func (r Report) Metrics() []*computemonth.Metric {
	base := map[string]string{
		"scenario":    r.Scenario.Name,
		"region":      r.Region.Name,
		"accelerator": r.Accelerator.Name,
	}

	metrics := []*computemonth.Metric{
		computemonth.NewMetric("facility_power_mw", r.Scenario.FacilityPower().MW()),
		computemonth.NewMetric("it_power_mw", r.Physical.ITPowerMW),
		computemonth.NewMetric("server_power_mw", r.Physical.ServerPowerMW),
		computemonth.NewMetric("gpu_count", float64(r.Physical.GPUCount)),
		computemonth.NewMetric("h100_hours_per_month", r.Physical.H100HoursPerMonth),
		computemonth.NewMetric("flops_per_month", r.Physical.TotalFlopsPerMonth),
	}

	for _, name := range slices.Sorted(maps.Keys(r.Training)) {
		c := r.Training[name]
		parallel := computemonth.NewMetric("training_runs_per_month", c.Parallel).AddLabel("model", name)
		realistic := parallel.Clone()
		metrics = append(metrics,
			parallel.AddLabel("estimate", "parallel"),
			realistic.SetValue(c.Realistic).AddLabel("estimate", "realistic"),
		)
	}

	for _, c := range r.Inference.Standard {
		metrics = append(metrics, computemonth.NewMetric("inference_queries_per_month", c.QueriesPerMonth).AddLabel("model_class", c.Class.Name))
	}
	metrics = append(metrics, computemonth.NewMetric("reasoning_queries_per_month", r.Inference.Reasoning.QueriesPerMonth).
		AddLabel("reasoning_scenario", r.Inference.Reasoning.Scenario.String()))

	metrics = append(metrics,
		computemonth.NewMetric("capex_usd", r.Economics.TotalCapex),
		computemonth.NewMetric("monthly_cost_usd", r.Economics.Breakdown.Amortization).AddLabel("component", "amortization"),
		computemonth.NewMetric("monthly_cost_usd", r.Economics.Breakdown.Power).AddLabel("component", "power"),
		computemonth.NewMetric("monthly_cost_usd", r.Economics.Breakdown.Operations).AddLabel("component", "operations"),
		computemonth.NewMetric("monthly_tco_usd", r.Economics.MonthlyTCO),
		computemonth.NewMetric("total_tco_usd", r.Economics.TotalTCO),
		computemonth.NewMetric("revenue_usd", r.Revenue.Training).AddLabel("workload", "training"),
		computemonth.NewMetric("revenue_usd", r.Revenue.Inference).AddLabel("workload", "inference"),
		computemonth.NewMetric("margin_percent", r.MarginPercent),
	)

	metrics = append(metrics,
		computemonth.NewMetric("carbon_intensity_g_co2eq_kwh", r.Environmental.CarbonIntensity),
		computemonth.NewMetric("energy_mwh_per_month", r.Environmental.MonthlyEnergyMWh),
		computemonth.NewMetric("co2eq_tonnes_per_month", r.Environmental.MonthlyCO2Tonnes),
		computemonth.NewMetric("water_gallons_per_month", r.Environmental.MonthlyWaterGallons),
	)

	metrics = append(metrics,
		computemonth.NewMetric("training_tokens_per_month", r.TrainingTokens.MonthlyThroughput),
		computemonth.NewMetric("training_dataset_completions", r.TrainingTokens.DatasetCompletions),
		computemonth.NewMetric("inference_tokens_per_month", r.InferenceTokens.StandardTokens).AddLabel("kind", "standard"),
		computemonth.NewMetric("inference_tokens_per_month", r.InferenceTokens.ReasoningTokens).AddLabel("kind", "reasoning"),
		computemonth.NewMetric("inference_tokens_per_query", r.InferenceTokens.AvgTokensPerQuery),
		computemonth.NewMetric("revenue_per_million_tokens_usd", r.TrainingTokens.RevenuePerMillion).AddLabel("workload", "training"),
		computemonth.NewMetric("revenue_per_million_tokens_usd", r.InferenceTokens.RevenuePerMillion).AddLabel("workload", "inference"),
	)

	metrics = append(metrics,
		computemonth.NewMetric("global_ai_capacity_gw", r.LoadGrowth.GlobalCapacityGW),
		computemonth.NewMetric("global_ai_million_chips", r.LoadGrowth.MillionChips),
	)

	for _, m := range metrics {
		m.SetLabels(computemonth.MergeLabels(base, m.Labels))
	}
	return metrics
}
