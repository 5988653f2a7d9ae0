package service

import (
	"errors"
	"fmt"

	"github.com/parabel-ml/parabel/domain"
)

// ErrorCategorizerImpl turns a domain.DomainError's code into a
// human-readable summary and a short list of recovery suggestions, for
// the CLI's error output.
type ErrorCategorizerImpl struct{}

// NewErrorCategorizer creates a new error categorizer.
func NewErrorCategorizer() *ErrorCategorizerImpl {
	return &ErrorCategorizerImpl{}
}

// Categorize extracts the domain.DomainError wrapped in err, if any, and
// returns its code and message. A plain error (not a DomainError) is
// reported under ErrCodeInternal with its own message.
func (ErrorCategorizerImpl) Categorize(err error) (code, message string) {
	if err == nil {
		return "", ""
	}
	var de domain.DomainError
	if errors.As(err, &de) {
		return de.Code, de.Message
	}
	return domain.ErrCodeInternal, err.Error()
}

// GetRecoverySuggestions returns actionable next steps for a given error
// code, surfaced in CLI output alongside the error itself.
func (ErrorCategorizerImpl) GetRecoverySuggestions(code string) []string {
	switch code {
	case domain.ErrCodeInvalidInput:
		return []string{
			"Check the dataset file's label/feature-index format",
			"Ensure n_trees, max_leaf_size, and beam_size are all >= 1",
			"Run parabel inspect on the model file to confirm it loaded correctly",
		}
	case domain.ErrCodeNumerical:
		return []string{
			"This indicates an internal invariant was violated, not a bad input",
			"Retry with a fixed --seed to get a reproducible failure",
			"File an issue with the dataset size and hyperparameters used",
		}
	case domain.ErrCodePersistence:
		return []string{
			"Confirm the model file was produced by a compatible parabel version",
			"Check that the output path is writable and has free disk space",
		}
	case domain.ErrCodeConfigError:
		return []string{
			"Check .parabel.toml for syntax errors or out-of-range values",
			"Run with explicit CLI flags to bypass the config file entirely",
		}
	default:
		return []string{"Run with increased logging for more detail"}
	}
}

// RecoverInvariant is deferred by a service-layer call site around any
// call into the algorithmic core. A panicking internal/invariant.Assert
// carries a domain.DomainError with ErrCodeNumerical; RecoverInvariant
// turns that panic into a normal error return instead of crashing the
// process, the boundary between "core bugs panic" and "callers get errors".
func RecoverInvariant(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if de, ok := r.(domain.DomainError); ok {
		*errp = de
		return
	}
	*errp = domain.NewInternalError(fmt.Sprintf("recovered panic: %v", r), nil)
}
