package computemonth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// OpenMetricsHandler implements the http.Handler interface
type OpenMetricsHandler struct {
	defaultTimeout time.Duration
	calculator     Calculator
	calculatorName string
}

// NewOpenMetricsHandler create a new OpenMetricsHandler
func NewOpenMetricsHandler(calculatorName string, calculator Calculator) *OpenMetricsHandler {
	return &OpenMetricsHandler{
		defaultTimeout: 10 * time.Second,
		calculator:     calculator,
		calculatorName: calculatorName,
	}
}

// ServeHTTP implements the http.Handler interface. Query parameters override the
// calculator's default scenario; every request is evaluated on its own.
func (handler *OpenMetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	metrics := make(chan *Metric)

	baseLabels := map[string]string{
		"calculator": handler.calculatorName,
	}

	errg, errgctx := errgroup.WithContext(r.Context())
	errgctx, cancel := context.WithTimeout(errgctx, handler.defaultTimeout)
	defer cancel()

	errg.Go(func() error {
		defer close(metrics)

		computed, err := handler.calculator.Metrics(errgctx, QueryParams(r.URL.Query()))
		if err != nil {
			return err
		}

		computed = append(computed, &Metric{
			Name:  "evaluate_duration_ms",
			Value: float64(time.Since(start).Milliseconds()),
		})

		for _, metric := range computed {
			metric.Labels = MergeLabels(metric.Labels, baseLabels)
			select {
			case metrics <- metric:
			case <-errgctx.Done():
				return nil
			}
		}

		return nil
	})

	errg.Go(func() error {
		return writeMetrics(errgctx, w, metrics)
	})

	err := errg.Wait()
	if errors.Is(err, ErrInvalidParameter) {
		slog.Warn("rejected scenario parameters", "err", err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.Error("failed to evaluate scenario", "err", err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("scenario metrics have been successfully written", "duration_ms", time.Since(start).Milliseconds())
}

// QueryParams flattens url values into an untyped parameter map. Only the first
// value of a repeated key is kept.
func QueryParams(values url.Values) map[string]any {
	params := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) == 0 {
			continue
		}
		params[k] = v[0]
	}
	return params
}

// WriteMetrics writes every metric on w in the OpenMetrics text format.
func WriteMetrics(w io.Writer, metrics []*Metric) error {
	for _, metric := range metrics {
		if metric == nil {
			continue
		}
		if err := writeMetric(w, metric); err != nil {
			return err
		}
	}
	return nil
}

// writeMetrics write all metrics sent over the channel and write them on the writer.
// Metrics labels are sorted lexicographically before being written.
func writeMetrics(ctx context.Context, w io.Writer, metrics chan *Metric) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case metric, ok := <-metrics:
			if !ok {
				return nil
			}

			if metric == nil {
				slog.Warn("discarding nil metric")
				continue
			}
			if err := writeMetric(w, metric); err != nil {
				return fmt.Errorf("failed to write metric on writer: %w", err)
			}
		}
	}
}

func writeMetric(w io.Writer, metric *Metric) error {
	metric = metric.SanitizeLabels()

	// sort labels in lexicographical order
	labels := make([]string, 0, len(metric.Labels))
	for labelName, labelValue := range metric.Labels {
		labels = append(labels, fmt.Sprintf(`%s="%s"`, labelName, labelValue))
	}
	slices.SortFunc(labels, strings.Compare)

	_, err := fmt.Fprintf(w, "%s{%s} %0.10f\n", metric.Name, strings.Join(labels, ","), metric.Value)
	if err != nil {
		return fmt.Errorf("writing metric %s failed: %w", metric.Name, err)
	}

	return nil
}

// Metric olds the name and value of a measurement in addition to its labels.
type Metric struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// NewMetric returns a metric without labels.
func NewMetric(name string, value float64) *Metric {
	return &Metric{Name: name, Value: value}
}

// Clone return a deep copy of a metric.
func (m Metric) Clone() *Metric {
	return &Metric{
		Name:   m.Name,
		Value:  m.Value,
		Labels: cloneLabels(m.Labels),
	}
}

func (m *Metric) AddLabel(key, value string) *Metric {
	m.Labels = MergeLabels(
		m.Labels,
		map[string]string{
			key: value,
		},
	)
	return m
}

func (m *Metric) SetLabels(l map[string]string) *Metric {
	m.Labels = l
	return m
}

func (m *Metric) SetValue(v float64) *Metric {
	m.Value = v
	return m
}

func (m *Metric) SanitizeLabels() *Metric {
	newLabels := make(map[string]string)
	invalidChars := []string{".", "/", "-", ":", ";", " ", "(", ")"}
	for label, value := range m.Labels {
		for _, char := range invalidChars {
			label = strings.ReplaceAll(label, char, "_")
		}
		newLabels[label] = value
	}
	m.Labels = newLabels
	return m
}
