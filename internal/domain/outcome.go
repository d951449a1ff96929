package domain

// Status is the normalized result of a service operation.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// Outcome pairs a Status with its payload. Payload is the zero value when
// Status is StatusNotFound.
type Outcome[T any] struct {
	Status  Status
	Payload T
}

func (o Outcome[T]) IsOK() bool { return o.Status == StatusOK }

// OK wraps payload in a successful Outcome.
func OK[T any](payload T) Outcome[T] {
	return Outcome[T]{Status: StatusOK, Payload: payload}
}

// NotFound returns an empty NOT_FOUND Outcome.
func NotFound[T any]() Outcome[T] {
	return Outcome[T]{Status: StatusNotFound}
}
