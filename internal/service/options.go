package service

// DefaultTopEarnersLimit is the number of names TopEarnerNames returns.
const DefaultTopEarnersLimit = 10

// Option configures an EmployeeService.
type Option func(*employeeService)

// WithTopEarnersLimit overrides DefaultTopEarnersLimit. Non-positive values
// are ignored.
func WithTopEarnersLimit(n int) Option {
	return func(s *employeeService) {
		if n > 0 {
			s.topEarnersLimit = n
		}
	}
}
