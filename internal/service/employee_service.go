package service

import (
	"context"
	"errors"
	"strings"

	"github.com/locvowork/employee_gateway/internal/domain"
	"github.com/locvowork/employee_gateway/internal/logger"
)

// EmployeeService derives the employee views the upstream API does not offer
// (search, ranking, top-N) and normalizes upstream results into Outcomes.
//
// A NOT_FOUND Outcome covers invalid input and every upstream failure. A
// non-nil error is returned only for decode failures (matching
// domain.ErrDecode), which must not be mistaken for an empty result.
type EmployeeService interface {
	ListAll(ctx context.Context) (domain.Outcome[[]domain.Employee], error)
	GetByID(ctx context.Context, id string) (domain.Outcome[domain.Employee], error)
	SearchByName(ctx context.Context, query string) (domain.Outcome[[]domain.Employee], error)
	HighestSalary(ctx context.Context) (domain.Outcome[int64], error)
	TopEarners(ctx context.Context, n int) (domain.Outcome[[]string], error)
	TopEarnerNames(ctx context.Context) (domain.Outcome[[]string], error)
	Create(ctx context.Context, input map[string]interface{}) (domain.Outcome[domain.Employee], error)
	Delete(ctx context.Context, id string) (domain.Outcome[string], error)
	ExportRoster(ctx context.Context) (domain.Outcome[Roster], error)
}

// Roster is the full employee list in upstream order plus its salary ranking.
type Roster struct {
	Employees []domain.Employee
	Ranked    []RankedEmployee
}

type employeeService struct {
	repo            domain.EmployeeRepository
	topEarnersLimit int
}

// NewEmployeeService creates a new EmployeeService on top of repo.
func NewEmployeeService(repo domain.EmployeeRepository, opts ...Option) EmployeeService {
	s := &employeeService{
		repo:            repo,
		topEarnersLimit: DefaultTopEarnersLimit,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *employeeService) ListAll(ctx context.Context) (domain.Outcome[[]domain.Employee], error) {
	env, err := s.repo.FetchAll(ctx)
	if err != nil {
		return domain.NotFound[[]domain.Employee](), upstreamErr(ctx, "list employees", err)
	}
	if !env.Success() {
		logger.WarnLog(ctx, "list employees: upstream status=%q message=%q", env.Status, env.Message)
		return domain.NotFound[[]domain.Employee](), nil
	}

	employees := env.Data
	if employees == nil {
		employees = []domain.Employee{}
	}
	return domain.OK(employees), nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (domain.Outcome[domain.Employee], error) {
	if strings.TrimSpace(id) == "" {
		logger.WarnLog(ctx, "get employee: id is empty")
		return domain.NotFound[domain.Employee](), nil
	}

	env, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		return domain.NotFound[domain.Employee](), upstreamErr(ctx, "get employee "+id, err)
	}
	if !env.Success() || env.Data == nil {
		logger.WarnLog(ctx, "get employee %s: upstream status=%q message=%q", id, env.Status, env.Message)
		return domain.NotFound[domain.Employee](), nil
	}
	return domain.OK(*env.Data), nil
}

// SearchByName returns the employees whose name contains query, ignoring
// case. The upstream has no search endpoint, so this scans the full list.
func (s *employeeService) SearchByName(ctx context.Context, query string) (domain.Outcome[[]domain.Employee], error) {
	all, err := s.nonEmptyList(ctx)
	if err != nil || !all.IsOK() {
		return domain.NotFound[[]domain.Employee](), err
	}

	needle := strings.ToLower(query)
	matches := make([]domain.Employee, 0)
	for _, e := range all.Payload {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			matches = append(matches, e)
		}
	}
	logger.DebugLog(ctx, "search %q matched %d of %d employees", query, len(matches), len(all.Payload))
	return domain.OK(matches), nil
}

func (s *employeeService) HighestSalary(ctx context.Context) (domain.Outcome[int64], error) {
	ranked, err := s.rankedList(ctx)
	if err != nil || !ranked.IsOK() {
		return domain.NotFound[int64](), err
	}
	return domain.OK(ranked.Payload[0].Salary), nil
}

func (s *employeeService) TopEarners(ctx context.Context, n int) (domain.Outcome[[]string], error) {
	ranked, err := s.rankedList(ctx)
	if err != nil || !ranked.IsOK() {
		return domain.NotFound[[]string](), err
	}
	return domain.OK(topNames(ranked.Payload, n)), nil
}

func (s *employeeService) TopEarnerNames(ctx context.Context) (domain.Outcome[[]string], error) {
	return s.TopEarners(ctx, s.topEarnersLimit)
}

func (s *employeeService) Create(ctx context.Context, input map[string]interface{}) (domain.Outcome[domain.Employee], error) {
	if len(input) == 0 {
		logger.WarnLog(ctx, "create employee: input is empty")
		return domain.NotFound[domain.Employee](), nil
	}

	env, err := s.repo.Create(ctx, domain.NewCreateEmployeeRequest(input))
	if err != nil {
		return domain.NotFound[domain.Employee](), upstreamErr(ctx, "create employee", err)
	}
	if !env.Success() || env.Data == nil {
		logger.WarnLog(ctx, "create employee: upstream status=%q message=%q", env.Status, env.Message)
		return domain.NotFound[domain.Employee](), nil
	}

	created := domain.EmployeeFromCreated(env.Data)
	logger.InfoLog(ctx, "created employee id=%s", created.ID)
	return domain.OK(created), nil
}

// Delete requests deletion upstream and echoes id back. The upstream result
// is not inspected, so OK means "requested", not "confirmed".
func (s *employeeService) Delete(ctx context.Context, id string) (domain.Outcome[string], error) {
	if strings.TrimSpace(id) == "" {
		logger.WarnLog(ctx, "delete employee: id is empty")
		return domain.NotFound[string](), nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.WarnLog(ctx, "delete employee %s: %v", id, err)
	}
	return domain.OK(id), nil
}

func (s *employeeService) ExportRoster(ctx context.Context) (domain.Outcome[Roster], error) {
	all, err := s.ListAll(ctx)
	if err != nil || !all.IsOK() {
		return domain.NotFound[Roster](), err
	}

	ranked, err := RankBySalary(all.Payload)
	if err != nil {
		return domain.NotFound[Roster](), err
	}
	return domain.OK(Roster{Employees: all.Payload, Ranked: ranked}), nil
}

// nonEmptyList is ListAll with an empty roster reported as NOT_FOUND.
func (s *employeeService) nonEmptyList(ctx context.Context) (domain.Outcome[[]domain.Employee], error) {
	all, err := s.ListAll(ctx)
	if err != nil || !all.IsOK() {
		return all, err
	}
	if len(all.Payload) == 0 {
		logger.WarnLog(ctx, "no employees returned by upstream")
		return domain.NotFound[[]domain.Employee](), nil
	}
	return all, nil
}

func (s *employeeService) rankedList(ctx context.Context) (domain.Outcome[[]RankedEmployee], error) {
	all, err := s.nonEmptyList(ctx)
	if err != nil || !all.IsOK() {
		return domain.NotFound[[]RankedEmployee](), err
	}

	ranked, err := RankBySalary(all.Payload)
	if err != nil {
		logger.ErrorLog(ctx, "rank employees by salary", err)
		return domain.NotFound[[]RankedEmployee](), err
	}
	return domain.OK(ranked), nil
}

// upstreamErr keeps decode failures as errors and folds every other
// repository failure into NOT_FOUND.
func upstreamErr(ctx context.Context, op string, err error) error {
	if errors.Is(err, domain.ErrDecode) {
		logger.ErrorLog(ctx, op+": decode upstream response", err)
		return err
	}
	logger.WarnLog(ctx, "%s: upstream unavailable: %v", op, err)
	return nil
}
