package service

import (
	"sort"

	"github.com/locvowork/employee_gateway/internal/domain"
)

// RankedEmployee is an employee with its parsed salary and 1-based rank.
type RankedEmployee struct {
	Rank   int
	Salary int64
	domain.Employee
}

// RankBySalary orders employees by salary, highest first. Equal salaries keep
// their input order. Every salary is parsed once before sorting; the first
// unparsable one aborts the ranking. The input slice is not modified.
func RankBySalary(employees []domain.Employee) ([]RankedEmployee, error) {
	ranked := make([]RankedEmployee, len(employees))
	for i, e := range employees {
		salary, err := e.SalaryValue()
		if err != nil {
			return nil, err
		}
		ranked[i] = RankedEmployee{Salary: salary, Employee: e}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Salary > ranked[j].Salary
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// topNames returns the names of the first n ranked employees.
func topNames(ranked []RankedEmployee, n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	names := make([]string, 0, n)
	for _, r := range ranked[:n] {
		names = append(names, r.Name)
	}
	return names
}
