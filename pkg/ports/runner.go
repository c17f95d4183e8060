package ports

import "context"

// ProcessRunner executes one shell command and reports its exit status.
// A non-zero status is data, not an error; err is reserved for failures to
// start the process at all.
type ProcessRunner interface {
	Run(ctx context.Context, label string, command string) (exitCode int, err error)
}
