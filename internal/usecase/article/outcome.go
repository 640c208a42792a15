package article

import (
	"blog/internal/domain/entity"
	"blog/internal/domain/validation"
)

// State is a step of the create/update command lifecycle:
// Received → Validating → {Rejected | Persisting} → {Accepted | PersistenceFailed}.
type State int

const (
	StateReceived State = iota
	StateValidating
	StateRejected
	StatePersisting
	StateAccepted
	StatePersistenceFailed
)

var stateNames = [...]string{
	StateReceived:          "received",
	StateValidating:        "validating",
	StateRejected:          "rejected",
	StatePersisting:        "persisting",
	StateAccepted:          "accepted",
	StatePersistenceFailed: "persistence_failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether s ends a command.
func (s State) Terminal() bool {
	return s == StateRejected || s == StateAccepted || s == StatePersistenceFailed
}

// Outcome is the result of a create or update command.
// Exactly one of Article, Errors or Err is meaningful, selected by State.
type Outcome struct {
	State   State
	Article entity.Article
	Errors  validation.Errors
	Err     error
}

// Accepted wraps a stored article.
func Accepted(a entity.Article) Outcome {
	return Outcome{State: StateAccepted, Article: a}
}

// Rejected wraps validation errors. The store was not touched.
func Rejected(errs validation.Errors) Outcome {
	return Outcome{State: StateRejected, Errors: errs}
}

// Failed wraps a store failure.
func Failed(err error) Outcome {
	return Outcome{State: StatePersistenceFailed, Err: err}
}

// OK reports whether the command was accepted.
func (o Outcome) OK() bool {
	return o.State == StateAccepted
}
