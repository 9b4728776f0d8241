package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/revenueops/pipeline-health/internal/domain"
)

var validate = validator.New()

// ReadAlerts loads the alert feed produced by the external scoring model.
// Each record is validated on load; a malformed record is fatal and names the
// offending field.
func ReadAlerts(path string) ([]domain.Alert, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var alerts []domain.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i := range alerts {
		if err := validate.Struct(&alerts[i]); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
				return nil, &domain.FieldError{
					Record: i,
					Field:  fieldErrs[0].Field(),
					Reason: "failed on " + fieldErrs[0].Tag() + " validation",
				}
			}
			return nil, fmt.Errorf("alert record %d: %w", i, err)
		}
	}
	return alerts, nil
}

// WriteReport emits the enriched and aggregated report as JSON for the
// rendering layer
func WriteReport(path string, report *domain.PipelineReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
