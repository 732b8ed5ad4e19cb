package usecase

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors carries every failed check so the caller can correct the
// whole input at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateCreateLeadInput checks the manual-entry required fields. Budget,
// location and broker data are parsed, never judged for business sense.
func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.CompanyID) == "" {
		errs = append(errs, ValidationError{"company_id", "is required"})
	}
	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, ValidationError{"first_name", "is required"})
	}
	if strings.TrimSpace(input.Phone) == "" {
		errs = append(errs, ValidationError{"phone", "is required"})
	}
	if input.BrokerCutPct != nil && (*input.BrokerCutPct < 0 || *input.BrokerCutPct > 100) {
		errs = append(errs, ValidationError{"broker_cut_pct", "must be between 0 and 100"})
	}

	return errs
}
