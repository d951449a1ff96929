package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode marks an upstream payload that could not be decoded.
	ErrDecode = errors.New("upstream payload decode failed")
	// ErrInvalidSalary marks a salary that is not an integer.
	ErrInvalidSalary = errors.New("invalid salary")
)

// SalaryError reports the employee whose salary could not be parsed.
type SalaryError struct {
	EmployeeID string
	Raw        string
}

func (e *SalaryError) Error() string {
	return fmt.Sprintf("employee %q: %v %q", e.EmployeeID, ErrInvalidSalary, e.Raw)
}

func (e *SalaryError) Unwrap() error { return ErrInvalidSalary }

// Is lets a SalaryError match ErrDecode too, since it is a decode failure of
// the salary field.
func (e *SalaryError) Is(target error) bool { return target == ErrDecode }
