package log

import (
	"github.com/cockroachdb/errors"
)

// extractStacktrace returns the first stack trace recorded by
// cockroachdb/errors in err's chain, or "" when there is none.
func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
