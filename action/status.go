// Package action provides reusable schedule actions that run a shell
// command or send an HTTP request each time a schedule fires.
package action

// Status represents the outcome of the latest run of an action.
type Status int8

const (
	// StatusNA is the status of an action that has not run yet.
	StatusNA Status = iota

	// StatusOK indicates that the latest run succeeded.
	StatusOK

	// StatusFailure indicates that the latest run failed.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailure:
		return "failure"
	}
	return "n/a"
}
