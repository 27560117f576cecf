package main

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	computemonth "github.com/superdango/compute-month"
	"github.com/superdango/compute-month/model"
	"github.com/superdango/compute-month/model/loadgrowth"
	"github.com/superdango/compute-month/model/tokens"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Width(34)
)

type line struct {
	label string
	value string
}

func section(b *strings.Builder, title string, lines ...line) {
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(labelStyle.Render(l.label))
		b.WriteString(l.value)
		b.WriteString("\n")
	}
}

// writeText renders the report for a terminal.
func writeText(w io.Writer, r model.Report) error {
	s := r.Scenario
	b := new(strings.Builder)

	b.WriteString(titleStyle.Render(fmt.Sprintf("Compute-month report: %s", s.Name)))
	b.WriteString("\n")

	section(b, "Physical capacity",
		line{"Facility power", fmt.Sprintf("%g GW (%s)", s.FacilityGW, r.Accelerator.Label)},
		line{"IT power", fmt.Sprintf("%.1f MW", r.Physical.ITPowerMW)},
		line{"Server power", fmt.Sprintf("%.1f MW", r.Physical.ServerPowerMW)},
		line{"GPUs", humanize.Comma(int64(r.Physical.GPUCount))},
		line{"H100-hours per month", humanize.Comma(int64(r.Physical.H100HoursPerMonth))},
		line{"FLOPs per month", fmt.Sprintf("%.3e", r.Physical.TotalFlopsPerMonth)},
	)

	trainingLines := make([]line, 0, len(r.Training))
	for _, name := range slices.Sorted(maps.Keys(r.Training)) {
		c := r.Training[name]
		trainingLines = append(trainingLines, line{
			name,
			fmt.Sprintf("%.2f runs in parallel, %.2f with R&D (MFU %.0f%%)", c.Parallel, c.Realistic, c.MFU*100),
		})
	}
	section(b, fmt.Sprintf("Training (%g%%, R&D x%g)", s.TrainingPercent, s.RDOverhead), trainingLines...)

	inferenceLines := make([]line, 0, len(r.Inference.Standard)+1)
	for _, c := range r.Inference.Standard {
		inferenceLines = append(inferenceLines, line{c.Class.Name, computemonth.FormatNumber(c.QueriesPerMonth) + " queries/month"})
	}
	inferenceLines = append(inferenceLines, line{
		fmt.Sprintf("Reasoning %s (x%g)", r.Inference.Reasoning.Scenario, r.Inference.Reasoning.Multiplier),
		computemonth.FormatNumber(r.Inference.Reasoning.QueriesPerMonth) + " queries/month",
	})
	section(b, fmt.Sprintf("Inference (%g%%, %g%% reasoning)", s.InferencePercent(), s.ReasoningPercent), inferenceLines...)

	section(b, fmt.Sprintf("Economics over %d months (%s, %s)", s.Months, s.Capex.Label(), r.Region.Name),
		line{"Capex", computemonth.FormatCurrency(r.Economics.TotalCapex)},
		line{"Amortization per month", computemonth.FormatCurrency(r.Economics.Breakdown.Amortization)},
		line{"Power per month", computemonth.FormatCurrency(r.Economics.Breakdown.Power)},
		line{"Operations per month", computemonth.FormatCurrency(r.Economics.Breakdown.Operations)},
		line{"Total cost of ownership", computemonth.FormatCurrency(r.Economics.TotalTCO)},
		line{"Training revenue", computemonth.FormatCurrency(r.Revenue.Training)},
		line{"Inference revenue", computemonth.FormatCurrency(r.Revenue.Inference)},
		line{"Margin", computemonth.FormatPercentage(r.MarginPercent, 1)},
	)

	section(b, "Tokens",
		line{"Training tokens per month", tokens.FormatTokens(r.TrainingTokens.MonthlyThroughput) + " (" + s.TrainingTokenModel + ")"},
		line{"Dataset completions per month", fmt.Sprintf("%.1f", r.TrainingTokens.DatasetCompletions)},
		line{"Training $ per 1M tokens", fmt.Sprintf("$%.4f", r.TrainingTokens.RevenuePerMillion)},
		line{"Inference tokens per month", tokens.FormatTokens(r.InferenceTokens.TotalTokens) + " (" + s.InferenceTokenModel + ")"},
		line{"Tokens per query", fmt.Sprintf("%.0f", r.InferenceTokens.AvgTokensPerQuery)},
		line{"Inference $ per 1M tokens", fmt.Sprintf("$%.4f", r.InferenceTokens.RevenuePerMillion)},
	)

	section(b, "Environment",
		line{"Carbon intensity", fmt.Sprintf("%g gCO2eq/kWh", r.Environmental.CarbonIntensity)},
		line{"CO2 per month", humanize.Commaf(math.Round(r.Environmental.MonthlyCO2Tonnes)) + " t"},
		line{"Water per month", computemonth.FormatNumber(r.Environmental.MonthlyWaterGallons) + " gallons"},
	)

	growthLines := []line{
		{"Capacity", fmt.Sprintf("%.1f GW (%.1fM chips)", r.LoadGrowth.GlobalCapacityGW, r.LoadGrowth.MillionChips)},
		{"US load at 50% share", fmt.Sprintf("%.1f GW", r.LoadGrowth.LoadAtHalfShareGW)},
	}
	for _, p := range r.LoadGrowth.MarketShare {
		if int(p.MarketShare)%25 != 0 || p.MarketShare == 0 {
			continue
		}
		growthLines = append(growthLines, line{
			fmt.Sprintf("US at %g%% share", p.MarketShare),
			fmt.Sprintf("%.1f GW (%.1fM chips)", p.CapacityGW, p.MillionChips),
		})
	}
	for _, bench := range loadgrowth.Benchmarks() {
		growthLines = append(growthLines, line{
			fmt.Sprintf("%s (%g%%)", bench.Label, bench.RatePercent),
			fmt.Sprintf("%.1f GW, %.0f%% up the slider (%s)", bench.CapacityGW, loadgrowth.NotchPosition(bench.RatePercent, loadgrowth.MaxGrowthRate), bench.Source),
		})
	}
	growthLines = append(growthLines, line{
		"Benchmark fit",
		fmt.Sprintf("%.2f GW + %.2f GW x CAGR", r.LoadGrowth.Fitted.InterceptGW, r.LoadGrowth.Fitted.SlopeGW),
	})
	section(b, fmt.Sprintf("Global AI capacity at %g%% CAGR", r.LoadGrowth.RatePercent), growthLines...)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeComparison prints one row per report.
func writeComparison(w io.Writer, reports []model.Report) error {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.Scenario.Name,
			fmt.Sprintf("%g", r.Scenario.FacilityGW),
			r.Accelerator.Name,
			r.Region.Name,
			humanize.Comma(int64(r.Physical.GPUCount)),
			computemonth.FormatNumber(r.InferenceQueries),
			computemonth.FormatCurrency(r.Economics.TotalTCO),
			computemonth.FormatCurrency(r.Revenue.Total),
			computemonth.FormatPercentage(r.MarginPercent, 1),
			fmt.Sprintf("%.0f", r.Environmental.MonthlyCO2Tonnes),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SCENARIO", "GW", "ACCELERATOR", "REGION", "GPUS", "QUERIES", "TCO", "REVENUE", "MARGIN", "TCO2/MONTH").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
