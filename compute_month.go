package computemonth

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"strings"
)

// ErrInvalidParameter is returned when a calculation input is out of its valid range.
var ErrInvalidParameter = errors.New("invalid parameter")

// Calculator turns a set of untyped scenario parameters into metrics.
type Calculator interface {
	Metrics(ctx context.Context, params map[string]any) ([]*Metric, error)
}

type InvalidParameterError struct {
	Parameter string
	Value     float64
	Reason    string
}

func (paramErr *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter (param: %s, value: %g): %s", paramErr.Parameter, paramErr.Value, paramErr.Reason)
}

func (paramErr *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// InvalidParameter builds an error wrapping ErrInvalidParameter.
func InvalidParameter(parameter string, value float64, reason string) error {
	return &InvalidParameterError{Parameter: parameter, Value: value, Reason: reason}
}

// CheckPositive fails when v is not a finite number strictly greater than zero.
func CheckPositive(parameter string, v float64) error {
	if math.IsInf(v, 0) {
		return InvalidParameter(parameter, v, "must be finite")
	}
	if !(v > 0) {
		return InvalidParameter(parameter, v, "must be greater than 0")
	}
	return nil
}

// CheckNonNegative fails when v is negative or infinite.
func CheckNonNegative(parameter string, v float64) error {
	if math.IsInf(v, 0) {
		return InvalidParameter(parameter, v, "must be finite")
	}
	if !(v >= 0) {
		return InvalidParameter(parameter, v, "must not be negative")
	}
	return nil
}

// CheckAtLeast fails when v is lower than min. Ratios such as PUE use min=1.
func CheckAtLeast(parameter string, v, min float64) error {
	if math.IsInf(v, 0) {
		return InvalidParameter(parameter, v, "must be finite")
	}
	if !(v >= min) {
		return InvalidParameter(parameter, v, fmt.Sprintf("must be at least %g", min))
	}
	return nil
}

// CheckPercent fails when v is outside [0,100].
func CheckPercent(parameter string, v float64) error {
	if !(v >= 0 && v <= 100) {
		return InvalidParameter(parameter, v, "must be within [0,100]")
	}
	return nil
}

// CheckFraction fails when v is outside (0,1].
func CheckFraction(parameter string, v float64) error {
	if !(v > 0 && v <= 1) {
		return InvalidParameter(parameter, v, "must be within (0,1]")
	}
	return nil
}

// FirstError returns the first non nil error.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func MergeLabels(labels ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, l := range labels {
		for k, v := range l {
			if v == "" {
				continue
			}
			result[k] = v
		}
	}
	return result
}

// MergeByName returns base where items of other replace the ones with the
// same name, ignoring case. Unknown items are appended. base is not modified.
func MergeByName[T any](base, other []T, name func(T) string) []T {
	merged := append([]T(nil), base...)
	for _, o := range other {
		replaced := false
		for i := range merged {
			if strings.EqualFold(name(merged[i]), name(o)) {
				merged[i] = o
				replaced = true
			}
		}
		if !replaced {
			merged = append(merged, o)
		}
	}
	return merged
}

func cloneLabels(labels map[string]string) map[string]string {
	copied := make(map[string]string, len(labels))
	maps.Copy(copied, labels)
	return copied
}
