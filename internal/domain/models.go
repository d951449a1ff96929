package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ==================== EMPLOYEE ====================

// Employee is the upstream employee record. Salary and age stay in their
// upstream text form; use SalaryValue when a number is needed.
type Employee struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"employee_name,omitempty"`
	Salary       string `json:"employee_salary,omitempty"`
	Age          string `json:"employee_age,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// employeeWire mirrors Employee with raw fields so scalars can arrive as
// strings or numbers.
type employeeWire struct {
	ID           json.RawMessage `json:"id"`
	Name         json.RawMessage `json:"employee_name"`
	Salary       json.RawMessage `json:"employee_salary"`
	Age          json.RawMessage `json:"employee_age"`
	ProfileImage json.RawMessage `json:"profile_image"`
}

// UnmarshalJSON decodes an upstream employee, ignoring unknown fields.
func (e *Employee) UnmarshalJSON(data []byte) error {
	var w employeeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: employee: %v", ErrDecode, err)
	}

	var out Employee
	fields := []struct {
		name string
		raw  json.RawMessage
		dst  *string
	}{
		{"id", w.ID, &out.ID},
		{"employee_name", w.Name, &out.Name},
		{"employee_salary", w.Salary, &out.Salary},
		{"employee_age", w.Age, &out.Age},
		{"profile_image", w.ProfileImage, &out.ProfileImage},
	}
	for _, f := range fields {
		s, err := scalarText(f.raw)
		if err != nil {
			return fmt.Errorf("%w: employee field %q: %v", ErrDecode, f.name, err)
		}
		*f.dst = s
	}

	*e = out
	return nil
}

// SalaryValue parses the salary text as a base-10 integer.
func (e Employee) SalaryValue() (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(e.Salary), 10, 64)
	if err != nil {
		return 0, &SalaryError{EmployeeID: e.ID, Raw: e.Salary}
	}
	return v, nil
}

// scalarText returns the textual form of a JSON string, number or null.
func scalarText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	default:
		return "", fmt.Errorf("unsupported JSON value %s", raw)
	}
}

// ToText converts a loosely typed JSON value into its text form. nil becomes
// the empty string.
func ToText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	}

	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprint(v)
}

// ==================== CREATE ====================

// CreateEmployeeRequest is the body POSTed to the upstream create endpoint.
// Its shape differs from Employee.
type CreateEmployeeRequest struct {
	Name   string `json:"name,omitempty"`
	Salary string `json:"salary,omitempty"`
	Age    string `json:"age,omitempty"`
}

// NewCreateEmployeeRequest picks name, salary and age out of loosely typed
// input. Other keys are ignored.
func NewCreateEmployeeRequest(input map[string]interface{}) CreateEmployeeRequest {
	return CreateEmployeeRequest{
		Name:   ToText(input["name"]),
		Salary: ToText(input["salary"]),
		Age:    ToText(input["age"]),
	}
}

// EmployeeFromCreated extracts an Employee from the open map the upstream
// returns on create.
func EmployeeFromCreated(data map[string]interface{}) Employee {
	return Employee{
		ID:     ToText(data["id"]),
		Name:   ToText(data["name"]),
		Salary: ToText(data["salary"]),
		Age:    ToText(data["age"]),
	}
}
