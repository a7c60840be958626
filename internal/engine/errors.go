package engine

import (
	"fmt"

	"mapstats/internal/shared/svcerrors"
)

const (
	codeInvalidWindow    = "CHART_1000"
	codeQueryTimeout     = "CHART_1001"
	codeStoreUnavailable = "CHART_1002"
)

// errInvalidWindow returns an error for an unusable query window.
func errInvalidWindow(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidWindow, msg, cause)
}

// errQueryTimeout returns a retryable error when a query exceeds its
// cooperative deadline. No partial payload accompanies it.
func errQueryTimeout(cause error) *svcerrors.ServiceError {
	return svcerrors.NewTimeoutError(codeQueryTimeout, "query deadline exceeded", cause)
}

// errStoreUnavailable returns a retryable error when the sample store fails.
func errStoreUnavailable(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeStoreUnavailable, "sample store unavailable", fmt.Errorf("sampleStoreFailed: %w", cause))
}
