// Package training estimates how many frontier models a facility can train per month.
package training

import (
	computemonth "github.com/superdango/compute-month"
)

// ModelSpec is the compute budget of one published training run. MFU is specific
// to each model as achievable utilization differs per architecture.
type ModelSpec struct {
	Name       string  `yaml:"name"`
	TotalFLOPs float64 `yaml:"total_flops"`
	MFU        float64 `yaml:"mfu"`
}

func (m ModelSpec) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckPositive(m.Name+".total_flops", m.TotalFLOPs),
		computemonth.CheckFraction(m.Name+".mfu", m.MFU),
	)
}

// HoursPerRun is the accelerator-hours needed for one run on a gpuTFLOPS device.
func (m ModelSpec) HoursPerRun(gpuTFLOPS float64) float64 {
	return m.TotalFLOPs / (gpuTFLOPS * 1e12 * computemonth.SecondsPerHour * m.MFU)
}

// DefaultModels are sourced from company announcements and the EpochAI database.
func DefaultModels() []ModelSpec {
	return []ModelSpec{
		{Name: "GPT-5", TotalFLOPs: 6.6e25, MFU: 0.35},
		{Name: "GPT-4.5", TotalFLOPs: 6.4e25, MFU: 0.35},
		{Name: "GPT-4", TotalFLOPs: 2.1e25, MFU: 0.35},
		{Name: "GPT-4o", TotalFLOPs: 3.8e25, MFU: 0.35},
		{Name: "Claude Sonnet 4", TotalFLOPs: 5.0e25, MFU: 0.35},
		{Name: "Claude 3.5 Sonnet", TotalFLOPs: 3.6e25, MFU: 0.35},
		{Name: "Llama 3.1 405B", TotalFLOPs: 3.8e25, MFU: 0.38},
		{Name: "Gemini 2.0 Pro", TotalFLOPs: 8.0e25, MFU: 0.35},
		{Name: "DeepSeek-V3", TotalFLOPs: 2.8e24, MFU: 0.35},
		{Name: "Llama 3.1 70B", TotalFLOPs: 7.9e24, MFU: 0.38},
	}
}

type Params struct {
	H100HoursPerMonth float64
	TrainingPercent   float64
	// RDOverhead is total compute spent over the compute of the final run.
	RDOverhead float64
	GPUTFLOPS  float64
}

func (p Params) Validate() error {
	return computemonth.FirstError(
		computemonth.CheckNonNegative("h100_hours_per_month", p.H100HoursPerMonth),
		computemonth.CheckPercent("training_percent", p.TrainingPercent),
		computemonth.CheckAtLeast("rd_overhead", p.RDOverhead, 1),
		computemonth.CheckPositive("gpu_tflops", p.GPUTFLOPS),
	)
}

// TrainingHours is the share of monthly hours allocated to training.
func (p Params) TrainingHours() float64 {
	return p.H100HoursPerMonth * p.TrainingPercent / 100
}

// Capacity is the number of runs of a model that fit in a month.
type Capacity struct {
	// Parallel assumes every training hour goes to final runs.
	Parallel float64 `json:"parallel"`
	// Realistic discounts Parallel by the R&D overhead.
	Realistic float64 `json:"realistic"`
	MFU       float64 `json:"mfu"`
}

// Results maps a model name to its capacity.
type Results map[string]Capacity

// Compute returns the monthly training capacity for every model.
func Compute(p Params, models []ModelSpec) (Results, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	trainingHours := p.TrainingHours()
	results := make(Results, len(models))
	for _, model := range models {
		if err := model.Validate(); err != nil {
			return nil, err
		}

		parallel := trainingHours / model.HoursPerRun(p.GPUTFLOPS)
		results[model.Name] = Capacity{
			Parallel:  parallel,
			Realistic: parallel / p.RDOverhead,
			MFU:       model.MFU,
		}
	}

	return results, nil
}
