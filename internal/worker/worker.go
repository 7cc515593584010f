package worker

import "errors"

var ErrNotFound = errors.New("worker not found")

// Worker is the identity the ledger reads from the directory.
type Worker struct {
	ID             string
	Email          string
	FirstName      string
	LastName       string
	EmployerID     string
	DefaultProject string
	Active         bool
}

// FullName returns "FirstName LastName" without dangling spaces.
func (w *Worker) FullName() string {
	switch {
	case w.FirstName == "":
		return w.LastName
	case w.LastName == "":
		return w.FirstName
	}

	return w.FirstName + " " + w.LastName
}
