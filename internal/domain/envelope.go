package domain

// EnvelopeStatusSuccess is the only status value treated as success.
const EnvelopeStatusSuccess = "success"

// Envelope is the {status, data, message} wrapper around every upstream payload.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Success reports whether the status is exactly "success".
func (e *Envelope[T]) Success() bool {
	return e != nil && e.Status == EnvelopeStatusSuccess
}

type (
	EmployeeEnvelope     = Envelope[*Employee]
	EmployeeListEnvelope = Envelope[[]Employee]
	CreatedEnvelope      = Envelope[map[string]interface{}]
)
