package domain

import "context"

// EmployeeRepository is the upstream employee data source. Each method makes
// exactly one HTTP call.
type EmployeeRepository interface {
	FetchAll(ctx context.Context) (*EmployeeListEnvelope, error)
	FetchByID(ctx context.Context, id string) (*EmployeeEnvelope, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (*CreatedEnvelope, error)
	Delete(ctx context.Context, id string) error
}
