package persistence

import "fmt"

type OutcomeKind int

const (
	OutcomeCreated OutcomeKind = iota
	OutcomeNoContent
	OutcomeNotFound
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCreated:
		return "Created"
	case OutcomeNoContent:
		return "NoContent"
	case OutcomeNotFound:
		return "NotFound"
	case OutcomeFailed:
		return "Failed"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of a write against a table: Created(payload),
// NoContent, NotFound or Failed(err). Build it with the constructors below.
type Outcome struct {
	kind    OutcomeKind
	payload any
	err     error
}

func Created(payload any) Outcome {
	return Outcome{kind: OutcomeCreated, payload: payload}
}

func NoContent() Outcome {
	return Outcome{kind: OutcomeNoContent}
}

func NotFound() Outcome {
	return Outcome{kind: OutcomeNotFound}
}

func Failed(err error) Outcome {
	return Outcome{kind: OutcomeFailed, err: err}
}

func (o Outcome) Kind() OutcomeKind {
	return o.kind
}

// Payload is the created record. Nil for every other kind.
func (o Outcome) Payload() any {
	return o.payload
}

func (o Outcome) Err() error {
	return o.err
}

func (o Outcome) String() string {
	if o.kind == OutcomeFailed && o.err != nil {
		return fmt.Sprintf("%s: %s", o.kind, o.err)
	}
	return o.kind.String()
}
