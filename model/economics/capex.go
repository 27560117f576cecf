package economics

import (
	"fmt"
	"strings"
)

// CapexModel is an estimate of the capital spent per GW of facility power.
type CapexModel int

const (
	CapexEpochAI CapexModel = iota
	CapexValidated
	CapexStargate
)

var capexModels = []struct {
	name      string
	costPerGW float64
}{
	CapexEpochAI:   {"EpochAI", 44e9},
	CapexValidated: {"Validated", 35.8e9},
	CapexStargate:  {"Stargate", 50e9},
}

func CapexModels() []CapexModel {
	return []CapexModel{CapexEpochAI, CapexValidated, CapexStargate}
}

func (m CapexModel) valid() bool {
	return m >= CapexEpochAI && m <= CapexStargate
}

// CostPerGW in dollars, zero for unknown models.
func (m CapexModel) CostPerGW() float64 {
	if !m.valid() {
		return 0
	}
	return capexModels[m].costPerGW
}

func (m CapexModel) String() string {
	if !m.valid() {
		return fmt.Sprintf("CapexModel(%d)", int(m))
	}
	return capexModels[m].name
}

// Label is the name followed by the cost per GW, like "Validated ($35.8B)".
func (m CapexModel) Label() string {
	return fmt.Sprintf("%s ($%gB)", m, m.CostPerGW()/1e9)
}

// ParseCapexModel accepts a model name or its label.
func ParseCapexModel(s string) (CapexModel, error) {
	s = strings.TrimSpace(s)
	for _, m := range CapexModels() {
		if strings.EqualFold(m.String(), s) || strings.EqualFold(m.Label(), s) {
			return m, nil
		}
	}
	return CapexValidated, fmt.Errorf("unknown capex model %q", s)
}

func (m CapexModel) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("unknown capex model %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *CapexModel) UnmarshalText(text []byte) error {
	parsed, err := ParseCapexModel(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
