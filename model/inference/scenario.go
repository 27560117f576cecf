package inference

import (
	"fmt"
	"strings"
)

// ReasoningScenario is the depth of chain-of-thought used by reasoning queries.
type ReasoningScenario int

const (
	ReasoningLow ReasoningScenario = iota
	ReasoningMedium
	ReasoningHigh
	ReasoningExtreme
)

var reasoningScenarios = []struct {
	name        string
	multiplier  float64
	description string
}{
	ReasoningLow:     {"Low", 3, "Basic chain-of-thought"},
	ReasoningMedium:  {"Medium", 10, "Extended reasoning (o1-mini level)"},
	ReasoningHigh:    {"High", 100, "Deep reasoning (o1 level)"},
	ReasoningExtreme: {"Extreme", 1000, "o3-level extended thinking"},
}

// ReasoningScenarios lists every scenario from the lightest to the deepest.
func ReasoningScenarios() []ReasoningScenario {
	return []ReasoningScenario{ReasoningLow, ReasoningMedium, ReasoningHigh, ReasoningExtreme}
}

func (s ReasoningScenario) valid() bool {
	return s >= ReasoningLow && s <= ReasoningExtreme
}

// Multiplier is the factor applied to the token count of a standard query.
func (s ReasoningScenario) Multiplier() float64 {
	if !s.valid() {
		return 0
	}
	return reasoningScenarios[s].multiplier
}

func (s ReasoningScenario) Description() string {
	if !s.valid() {
		return ""
	}
	return reasoningScenarios[s].description
}

func (s ReasoningScenario) String() string {
	if !s.valid() {
		return fmt.Sprintf("ReasoningScenario(%d)", int(s))
	}
	return reasoningScenarios[s].name
}

func ParseReasoningScenario(name string) (ReasoningScenario, error) {
	for _, s := range ReasoningScenarios() {
		if strings.EqualFold(s.String(), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return ReasoningMedium, fmt.Errorf("unknown reasoning scenario %q", name)
}

func (s ReasoningScenario) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("unknown reasoning scenario %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *ReasoningScenario) UnmarshalText(text []byte) error {
	parsed, err := ParseReasoningScenario(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
