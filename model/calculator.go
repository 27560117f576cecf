package model

import (
	"context"
	"log/slog"

	computemonth "github.com/superdango/compute-month"
)

// Calculator evaluates scenarios derived from a base scenario. It implements
// computemonth.Calculator and keeps no state between calls.
type Calculator struct {
	base   Scenario
	tables Tables
}

type CalculatorOption func(c *Calculator)

// WithBaseScenario sets the scenario that request parameters override.
func WithBaseScenario(s Scenario) CalculatorOption {
	return func(c *Calculator) {
		c.base = s
	}
}

// WithTables replaces the embedded reference tables.
func WithTables(t Tables) CalculatorOption {
	return func(c *Calculator) {
		c.tables = t
	}
}

func NewCalculator(opts ...CalculatorOption) *Calculator {
	c := &Calculator{
		base:   DefaultScenario(),
		tables: DefaultTables(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Evaluate decodes params on top of the base scenario and evaluates it.
func (c *Calculator) Evaluate(params map[string]any) (Report, error) {
	s, err := DecodeScenario(params, c.base)
	if err != nil {
		return Report{}, err
	}
	return Evaluate(s, c.tables)
}

// Metrics implements computemonth.Calculator.
func (c *Calculator) Metrics(ctx context.Context, params map[string]any) ([]*computemonth.Metric, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, err := c.Evaluate(params)
	if err != nil {
		return nil, err
	}

	slog.Debug("scenario evaluated", "scenario", report.Scenario.Name, "gpu_count", report.Physical.GPUCount, "region", report.Region.Name)
	return report.Metrics(), nil
}
