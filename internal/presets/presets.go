// Package presets ships named scenarios with the binary.
package presets

import (
	"slices"
	"strings"

	"github.com/superdango/compute-month/model"
	"github.com/superdango/compute-month/model/carbon"
	"github.com/superdango/compute-month/model/economics"
	"github.com/superdango/compute-month/model/inference"
)

type Preset struct {
	Name        string
	Description string
	Scenario    model.Scenario
}

// All returns every preset, the default one first.
func All() []Preset {
	lowCarbon := model.DefaultScenario()
	lowCarbon.Name = "low-carbon"
	lowCarbon.Region = carbon.DefaultRegions().Cleanest().Name

	reasoning := model.DefaultScenario()
	reasoning.Name = "reasoning-heavy"
	reasoning.TrainingPercent = 40
	reasoning.ReasoningPercent = 60
	reasoning.ReasoningScenario = inference.ReasoningHigh
	reasoning.TokenReasoningLevel = inference.ReasoningHigh

	stargate := model.DefaultScenario()
	stargate.Name = "stargate"
	stargate.FacilityGW = 5
	stargate.Accelerator = "GB200"
	stargate.Capex = economics.CapexStargate
	stargate.Region = "Texas (ERCOT)"
	stargate.Months = 48

	return []Preset{
		{Name: "compute-month", Description: "1 GW H100 facility, 80% training", Scenario: model.DefaultScenario()},
		{Name: "calculator-legacy", Description: "first calculator release constants (1.14 IT overhead, 11.25x R&D)", Scenario: model.LegacyCalculatorScenario()},
		{Name: lowCarbon.Name, Description: "default facility on the cleanest grid", Scenario: lowCarbon},
		{Name: reasoning.Name, Description: "inference-led facility serving deep reasoning", Scenario: reasoning},
		{Name: stargate.Name, Description: "5 GW GB200 campus in Texas over 4 years", Scenario: stargate},
	}
}

func Names() []string {
	names := make([]string, 0)
	for _, p := range All() {
		names = append(names, p.Name)
	}
	return names
}

// Get returns the scenario of the named preset, ignoring case.
func Get(name string) (model.Scenario, bool) {
	presets := All()
	i := slices.IndexFunc(presets, func(p Preset) bool {
		return strings.EqualFold(p.Name, strings.TrimSpace(name))
	})
	if i < 0 {
		return model.Scenario{}, false
	}
	return presets[i].Scenario, true
}

// Scenarios returns the scenarios of every preset.
func Scenarios() []model.Scenario {
	scenarios := make([]model.Scenario, 0)
	for _, p := range All() {
		scenarios = append(scenarios, p.Scenario)
	}
	return scenarios
}
