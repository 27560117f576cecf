package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	computemonth "github.com/superdango/compute-month"
	"github.com/superdango/compute-month/internal/presets"
	"github.com/superdango/compute-month/model"
	"github.com/superdango/compute-month/model/economics"
)

// scenarioFlags are exposed as -scenario.<key> and only override the
// scenario when set on the command line.
var scenarioFlags = map[string]string{
	"facility_gw":           "facility power in GW",
	"training_percent":      "share of the fleet allocated to training (0-100)",
	"accelerator":           "accelerator name (H100 SXM, GB200, TPU v7...)",
	"months":                "duration of the scenario in months",
	"pue":                   "power usage effectiveness (>= 1)",
	"it_overhead":           "IT power over accelerator power (>= 1)",
	"rd_overhead":           "R&D compute multiplier over final training runs (>= 1)",
	"inference_utilization": "memory bandwidth utilization of inference (0-1]",
	"reasoning_percent":     "share of inference serving reasoning queries (0-100)",
	"reasoning_scenario":    "reasoning depth (Low, Medium, High, Extreme)",
	"capex_model":           "capex per GW (EpochAI, Validated, Stargate)",
	"region":                "grid region (Weighted Average, Texas (ERCOT), Oregon...)",
	"training_rate":         "training price in $ per H100-hour",
	"inference_rate":        "inference price in $ per 1M tokens",
	"training_token_model":  "training token profile (GPT-4.5, Llama 3.1 70B...)",
	"inference_token_model": "inference token profile (GPT-4 class (280B), Llama 8B class...)",
	"token_reasoning_level": "reasoning depth used for token economics",
	"growth_rate_percent":   "global AI chip supply CAGR (0-150)",
}

func main() {
	ctx := context.Background()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])

		flag.PrintDefaults()

		fmt.Fprint(os.Stderr, "\nPresets:\n")
		for _, p := range presets.All() {
			fmt.Fprintf(os.Stderr, "  %s\n        %s\n", p.Name, p.Description)
		}
	}

	flagPreset := ""
	flagScenarioFile := ""
	flagTablesFile := ""
	flagOutput := ""
	flagCompare := ""
	flagListen := ""
	flagLogLevel := ""
	flagLogFormat := ""

	flag.StringVar(&flagPreset, "preset", "compute-month", "base scenario preset")
	flag.StringVar(&flagScenarioFile, "scenario.file", "", "yaml file overriding the preset scenario")
	flag.StringVar(&flagTablesFile, "tables.file", "", "yaml file overriding accelerators, models, token profiles and regions")
	flag.StringVar(&flagOutput, "output", "text", "report format (text, json, openmetrics)")
	flag.StringVar(&flagCompare, "compare", "", "print a comparison of every preset, region or capex model (presets, regions, capex)")
	flag.StringVar(&flagListen, "listen", "", "serve scenario metrics over http on this addr instead of printing a report")
	flag.StringVar(&flagLogLevel, "log.level", "info", "log severity (debug, info, warn, error)")
	flag.StringVar(&flagLogFormat, "log.format", "text", "log format (text, json)")
	for key, usage := range scenarioFlags {
		flag.String("scenario."+key, "", usage)
	}

	flag.Parse()

	initLogging(os.Stderr, flagLogLevel, flagLogFormat)

	tables, err := loadTables(flagTablesFile)
	if err != nil {
		slog.Error("failed to load tables", "file", flagTablesFile, "err", err)
		os.Exit(1)
	}

	scenario, err := buildScenario(flagPreset, flagScenarioFile, setScenarioFlags())
	if err != nil {
		slog.Error("invalid scenario", "err", err)
		flag.Usage()
		os.Exit(1)
	}

	if flagCompare != "" {
		scenarios, err := comparedScenarios(flagCompare, scenario, tables)
		if err != nil {
			slog.Error("invalid comparison", "err", err)
			os.Exit(1)
		}
		reports, err := model.Sweep(ctx, tables, scenarios)
		if err != nil {
			slog.Error("failed to evaluate scenarios", "compare", flagCompare, "err", err)
			os.Exit(1)
		}
		if err := writeComparison(os.Stdout, reports); err != nil {
			slog.Error("failed to write comparison", "err", err)
			os.Exit(1)
		}
		return
	}

	if flagListen != "" {
		calculator := model.NewCalculator(
			model.WithBaseScenario(scenario),
			model.WithTables(tables),
		)

		mux := http.NewServeMux()
		mux.Handle("/metrics", computemonth.NewOpenMetricsHandler(scenario.Name, calculator))

		slog.Info("starting compute-month calculator", "listen", flagListen, "scenario", scenario.Name)
		if err := http.ListenAndServe(flagListen, mux); err != nil {
			slog.Error("failed to start compute-month calculator", "err", err)
			os.Exit(1)
		}
		return
	}

	report, err := model.Evaluate(scenario, tables)
	if err != nil {
		slog.Error("failed to evaluate scenario", "scenario", scenario.Name, "err", err)
		os.Exit(1)
	}

	if err := writeReport(os.Stdout, flagOutput, report); err != nil {
		slog.Error("failed to write report", "output", flagOutput, "err", err)
		os.Exit(1)
	}
}

func initLogging(w io.Writer, logLevel string, logFormat string) {
	switch logFormat {
	case "text":
		noColor := true
		if f, ok := w.(*os.File); ok {
			noColor = !isatty.IsTerminal(f.Fd())
		}
		slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
			Level:   slogLevel(logLevel),
			NoColor: noColor,
		})))
	case "json":
		slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slogLevel(logLevel),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				switch a.Key {
				case slog.LevelKey:
					a.Key = "severity"
					return a
				case slog.MessageKey:
					a.Key = "message"
					return a
				default:
					return a
				}
			},
		})))
	}
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

// setScenarioFlags collects the -scenario.<key> flags given on the command line.
func setScenarioFlags() map[string]any {
	params := make(map[string]any)
	flag.Visit(func(f *flag.Flag) {
		if key, found := strings.CutPrefix(f.Name, "scenario."); found && key != "file" {
			params[key] = f.Value.String()
		}
	})
	return params
}

// buildScenario layers the preset, the scenario file and the flags, in this order.
func buildScenario(preset string, file string, params map[string]any) (model.Scenario, error) {
	scenario, found := presets.Get(preset)
	if !found {
		return model.Scenario{}, fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(presets.Names(), ", "))
	}

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("failed to open scenario file: %w", err)
		}
		defer f.Close()

		scenario, err = model.LoadScenario(f, scenario)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("failed to load scenario file %s: %w", file, err)
		}
	}

	return model.DecodeScenario(params, scenario)
}

// comparedScenarios derives the scenarios of a comparison. Regions and capex
// models are varied on top of base.
func comparedScenarios(by string, base model.Scenario, tables model.Tables) ([]model.Scenario, error) {
	switch strings.ToLower(by) {
	case "presets":
		return presets.Scenarios(), nil
	case "regions":
		return model.Variants(base, tables.Regions.Names(), func(s *model.Scenario, region string) {
			s.Name = base.Name + "/" + region
			s.Region = region
		}), nil
	case "capex":
		return model.Variants(base, economics.CapexModels(), func(s *model.Scenario, capex economics.CapexModel) {
			s.Name = base.Name + "/" + capex.String()
			s.Capex = capex
		}), nil
	}
	return nil, fmt.Errorf("unsupported comparison %q (available: presets, regions, capex)", by)
}

func loadTables(file string) (model.Tables, error) {
	if file == "" {
		return model.DefaultTables(), nil
	}
	f, err := os.Open(file)
	if err != nil {
		return model.Tables{}, err
	}
	defer f.Close()
	return model.LoadTables(f)
}

func writeReport(w io.Writer, format string, report model.Report) error {
	switch format {
	case "text":
		return writeText(w, report)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "openmetrics":
		return computemonth.WriteMetrics(w, report.Metrics())
	}
	return fmt.Errorf("unsupported output format %q", format)
}
