package collector

import (
	"fmt"

	"mapstats/internal/shared/svcerrors"
)

// Collector errors
const (
	codeInternalSampleStoreFailed = "SCAN_9000"
)

// errInternalSampleStoreFailed returns an error when persisting a scan cycle fails.
func errInternalSampleStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSampleStoreFailed, fmt.Errorf("sampleStoreFailed: %w", cause))
}
