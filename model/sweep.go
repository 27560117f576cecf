package model

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Sweep evaluates independent scenarios concurrently. Reports are returned in
// the order of the scenarios; the first failure cancels the remaining ones.
func Sweep(ctx context.Context, tables Tables, scenarios []Scenario) ([]Report, error) {
	reports := make([]Report, len(scenarios))

	errg, errgctx := errgroup.WithContext(ctx)
	errg.SetLimit(runtime.GOMAXPROCS(0))

	for i, s := range scenarios {
		errg.Go(func() error {
			if err := errgctx.Err(); err != nil {
				return err
			}
			report, err := Evaluate(s, tables)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Variants derives one scenario per value by applying set on a copy of base.
func Variants[T any](base Scenario, values []T, set func(s *Scenario, v T)) []Scenario {
	scenarios := make([]Scenario, 0, len(values))
	for _, v := range values {
		s := base
		set(&s, v)
		scenarios = append(scenarios, s)
	}
	return scenarios
}
