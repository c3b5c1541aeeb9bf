package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSearch()...)
	errors = append(errors, c.validateCounting()...)
	errors = append(errors, c.validateOracle()...)
	errors = append(errors, c.validateSweep()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSearch() ValidationErrors {
	var errors ValidationErrors

	if c.Search.ProbMin <= 0 || c.Search.ProbMin >= 1 {
		errors = append(errors, ValidationError{
			Field:   "search.prob_min",
			Message: "prob_min must be in (0, 1)",
		})
	}

	if c.Search.FallbackBudget <= 0 {
		errors = append(errors, ValidationError{
			Field:   "search.fallback_budget",
			Message: "fallback_budget must be positive",
		})
	}

	validPolicies := map[string]bool{StoppingAdaptive: true, StoppingFixed: true, "": true}
	if !validPolicies[c.Search.StoppingPolicy] {
		errors = append(errors, ValidationError{
			Field:   "search.stopping_policy",
			Message: "stopping_policy must be 'adaptive' or 'fixed'",
		})
	}

	if c.Search.StoppingPolicy == StoppingFixed && c.Search.FixedBudget <= 0 {
		errors = append(errors, ValidationError{
			Field:   "search.fixed_budget",
			Message: "fixed_budget must be positive for the fixed policy",
		})
	}

	validRebuild := map[string]bool{RebuildReuse: true, RebuildEachHit: true, "": true}
	if !validRebuild[c.Search.RebuildPolicy] {
		errors = append(errors, ValidationError{
			Field:   "search.rebuild_policy",
			Message: "rebuild_policy must be 'reuse' or 'rebuild'",
		})
	}

	if c.Search.MaxSamples < 0 {
		errors = append(errors, ValidationError{
			Field:   "search.max_samples",
			Message: "max_samples cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateCounting() ValidationErrors {
	var errors ValidationErrors

	if c.Counting.Shots <= 0 {
		errors = append(errors, ValidationError{
			Field:   "counting.shots",
			Message: "shots must be positive",
		})
	}

	if c.Counting.Trials <= 0 {
		errors = append(errors, ValidationError{
			Field:   "counting.trials",
			Message: "trials must be positive",
		})
	}

	return errors
}

func (c *Config) validateOracle() ValidationErrors {
	var errors ValidationErrors

	validEngines := map[string]bool{"analytic": true, "statevector": true, "": true}
	if !validEngines[c.Oracle.Engine] {
		errors = append(errors, ValidationError{
			Field:   "oracle.engine",
			Message: "engine must be 'analytic' or 'statevector'",
		})
	}

	if c.Oracle.MaxStateVectorQubits < 0 || c.Oracle.MaxStateVectorQubits > 26 {
		errors = append(errors, ValidationError{
			Field:   "oracle.max_state_vector_qubits",
			Message: "max_state_vector_qubits must be between 0 and 26",
		})
	}

	return errors
}

func (c *Config) validateSweep() ValidationErrors {
	var errors ValidationErrors

	ranges := []struct {
		name string
		r    QubitRange
	}{{"discovery", c.Sweep.Discovery}, {"counting", c.Sweep.Counting}}
	for _, nr := range ranges {
		name, r := nr.name, nr.r
		if r.Min < 2 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("sweep.%s.min_qubits", name),
				Message: "min_qubits must be at least 2",
			})
		}
		if r.Max < r.Min {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("sweep.%s.max_qubits", name),
				Message: "max_qubits cannot be below min_qubits",
			})
		}
		if r.Max > 24 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("sweep.%s.max_qubits", name),
				Message: "max_qubits cannot exceed 24",
			})
		}
	}

	if c.Sweep.Workers < 0 {
		errors = append(errors, ValidationError{
			Field:   "sweep.workers",
			Message: "workers cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
