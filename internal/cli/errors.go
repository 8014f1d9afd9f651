package cli

import (
	"errors"
	"fmt"
)

var errImportCancelled = errors.New("import cancelled")

// ErrDoctorIssuesFound is returned by `board doctor --fail`.
var ErrDoctorIssuesFound = errors.New("doctor found issues")

type confirmRequiredError struct {
	action string
}

func (e confirmRequiredError) Error() string {
	return fmt.Sprintf("%s would overwrite saved statuses; re-run with --yes", e.action)
}
