package model

import (
	"fmt"

	"github.com/superdango/compute-month/model/capacity"
	"github.com/superdango/compute-month/model/carbon"
	"github.com/superdango/compute-month/model/economics"
	"github.com/superdango/compute-month/model/hardware"
	"github.com/superdango/compute-month/model/inference"
	"github.com/superdango/compute-month/model/loadgrowth"
	"github.com/superdango/compute-month/model/tokens"
	"github.com/superdango/compute-month/model/training"
)

// LoadGrowth is the global capacity projected for the scenario growth rate.
type LoadGrowth struct {
	RatePercent       float64 `json:"rate_percent"`
	GlobalCapacityGW  float64 `json:"global_capacity_gw"`
	MillionChips      float64 `json:"million_chips"`
	LoadAtHalfShareGW float64 `json:"load_at_half_share_gw"`
	// Fitted is the regression of the published benchmarks.
	Fitted      loadgrowth.Model   `json:"fitted"`
	MarketShare []loadgrowth.Point `json:"market_share"`
}

// Report is everything derived from one scenario.
type Report struct {
	Scenario    Scenario      `json:"scenario"`
	Accelerator hardware.Spec `json:"accelerator"`
	Region      carbon.Region `json:"region"`

	Physical  capacity.Result   `json:"physical"`
	Training  training.Results  `json:"training"`
	Inference inference.Results `json:"inference"`

	// TrainingHours and InferenceQueries cover the whole scenario duration.
	TrainingHours    float64 `json:"training_hours"`
	InferenceQueries float64 `json:"inference_queries"`

	Economics     economics.Result  `json:"economics"`
	Revenue       economics.Revenue `json:"revenue"`
	MarginPercent float64           `json:"margin_percent"`
	Environmental carbon.Impact     `json:"environmental"`

	TrainingTokens  tokens.TrainingResult  `json:"training_tokens"`
	InferenceTokens tokens.InferenceResult `json:"inference_tokens"`

	LoadGrowth LoadGrowth `json:"load_growth"`
}

// Evaluate runs every calculation of the scenario. Accelerator, region and
// token model names are resolved against the tables and fall back to their
// defaults when unknown.
func Evaluate(s Scenario, t Tables) (Report, error) {
	if err := s.Validate(); err != nil {
		return Report{}, err
	}

	accelerator, _ := t.Accelerators.LookupByName(s.Accelerator)
	region := t.Regions.Get(s.Region)
	report := Report{
		Scenario:    s,
		Accelerator: accelerator,
		Region:      region,
	}

	var err error
	facility := s.FacilityPower()
	report.Physical, err = capacity.Compute(capacity.Params{
		FacilityPowerMW: facility.MW(),
		PUE:             s.PUE,
		ITOverhead:      s.ITOverhead,
		GPUTDPKW:        accelerator.TDPKW,
	})
	if err != nil {
		return Report{}, fmt.Errorf("physical capacity: %w", err)
	}

	report.Training, err = training.Compute(training.Params{
		H100HoursPerMonth: report.Physical.H100HoursPerMonth,
		TrainingPercent:   s.TrainingPercent,
		RDOverhead:        s.RDOverhead,
		GPUTFLOPS:         accelerator.PeakTFLOPS,
	}, t.TrainingModels)
	if err != nil {
		return Report{}, fmt.Errorf("training capacity: %w", err)
	}

	report.Inference, err = inference.Compute(inference.Params{
		GPUCount:         report.Physical.GPUCount,
		InferencePercent: s.InferencePercent(),
		Utilization:      s.InferenceUtilization,
		ReasoningPercent: s.ReasoningPercent,
		Scenario:         s.ReasoningScenario,
	}, t.ModelClasses)
	if err != nil {
		return Report{}, fmt.Errorf("inference capacity: %w", err)
	}

	report.Economics, err = economics.Compute(economics.Params{
		FacilityPowerMW: facility.MW(),
		Capex:           s.Capex,
		PowerCostPerKWh: region.PowerCostPerKWh,
		Months:          s.Months,
	})
	if err != nil {
		return Report{}, fmt.Errorf("economics: %w", err)
	}

	report.Environmental, err = carbon.ComputeImpact(facility.GW(), region)
	if err != nil {
		return Report{}, fmt.Errorf("environmental impact: %w", err)
	}

	months := float64(s.Months)
	report.TrainingHours = report.Physical.H100HoursPerMonth * s.TrainingPercent / 100 * months
	report.InferenceQueries = report.Inference.TotalQueries() * months

	report.Revenue, err = economics.ComputeRevenue(economics.RevenueParams{
		TrainingHours:    report.TrainingHours,
		InferenceQueries: report.InferenceQueries,
		TrainingRate:     s.TrainingRate,
		InferenceRate:    s.InferenceRate,
	})
	if err != nil {
		return Report{}, fmt.Errorf("revenue: %w", err)
	}
	report.MarginPercent = economics.Margin(report.Revenue.Total, report.Economics.TotalTCO)

	trainingProfile, _ := t.Tokens.LookupTraining(s.TrainingTokenModel)
	report.TrainingTokens, err = tokens.ComputeTraining(tokens.TrainingParams{
		GPUCount:        report.Physical.GPUCount,
		TrainingPercent: s.TrainingPercent,
		Profile:         trainingProfile,
		Revenue:         report.Revenue.Training / months,
	})
	if err != nil {
		return Report{}, fmt.Errorf("training tokens: %w", err)
	}

	// token economics follow the largest served model class
	servedQueries := 0.0
	if len(report.Inference.Standard) > 0 {
		servedQueries = report.Inference.Standard[0].QueriesPerMonth
	}
	inferenceProfile, _ := t.Tokens.LookupInference(s.InferenceTokenModel)
	report.InferenceTokens, err = tokens.ComputeInference(tokens.InferenceParams{
		QueriesPerMonth:  servedQueries,
		Profile:          inferenceProfile,
		Scenario:         s.TokenReasoningLevel,
		ReasoningPercent: s.ReasoningPercent,
		Revenue:          report.Revenue.Inference / months,
	})
	if err != nil {
		return Report{}, fmt.Errorf("inference tokens: %w", err)
	}

	fitted, err := loadgrowth.Calibrate(loadgrowth.Benchmarks())
	if err != nil {
		return Report{}, fmt.Errorf("load growth: %w", err)
	}
	growth := loadgrowth.DefaultModel()
	global := growth.GlobalCapacityGW(s.GrowthRatePercent)
	report.LoadGrowth = LoadGrowth{
		RatePercent:       s.GrowthRatePercent,
		GlobalCapacityGW:  global,
		MillionChips:      loadgrowth.MillionChips(global),
		LoadAtHalfShareGW: growth.LoadAtHalfShare(s.GrowthRatePercent),
		Fitted:            fitted,
		MarketShare:       growth.MarketShareSeries(s.GrowthRatePercent),
	}

	return report, nil
}
