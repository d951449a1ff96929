package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployee_JSONRoundTrip(t *testing.T) {
	in := `{"id":"1","employee_name":"Bob","employee_salary":"1000","employee_age":"30"}`

	var e Employee
	require.NoError(t, json.Unmarshal([]byte(in), &e))
	assert.Equal(t, Employee{ID: "1", Name: "Bob", Salary: "1000", Age: "30"}, e)

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestEmployee_UnmarshalTolerant(t *testing.T) {
	t.Run("numbers become text", func(t *testing.T) {
		var e Employee
		err := json.Unmarshal([]byte(`{"id":7,"employee_name":"Ann","employee_salary":320800,"employee_age":61}`), &e)
		require.NoError(t, err)
		assert.Equal(t, "7", e.ID)
		assert.Equal(t, "320800", e.Salary)
		assert.Equal(t, "61", e.Age)
	})

	t.Run("unknown and null fields", func(t *testing.T) {
		var e Employee
		err := json.Unmarshal([]byte(`{"id":"2","employee_name":null,"profile_image":"","extra":{"a":[1,2]}}`), &e)
		require.NoError(t, err)
		assert.Equal(t, Employee{ID: "2"}, e)
	})

	t.Run("missing fields default", func(t *testing.T) {
		var e Employee
		require.NoError(t, json.Unmarshal([]byte(`{}`), &e))
		assert.Equal(t, Employee{}, e)
	})

	t.Run("unsupported type is a decode failure", func(t *testing.T) {
		var e Employee
		err := json.Unmarshal([]byte(`{"id":"3","employee_salary":true}`), &e)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDecode))
	})

	t.Run("non-object is a decode failure", func(t *testing.T) {
		var list []Employee
		err := json.Unmarshal([]byte(`["nope"]`), &list)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDecode))
	})
}

func TestEmployee_MarshalOmitsEmpty(t *testing.T) {
	out, err := json.Marshal(Employee{ID: "9", Name: "Zoe"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"9","employee_name":"Zoe"}`, string(out))
}

func TestEmployee_SalaryValue(t *testing.T) {
	v, err := Employee{Salary: " 50000 "}.SalaryValue()
	require.NoError(t, err)
	assert.Equal(t, int64(50000), v)

	for _, raw := range []string{"", "abc", "12.5", "1e3"} {
		_, err := Employee{ID: "x", Salary: raw}.SalaryValue()
		require.Error(t, err, "salary %q", raw)
		assert.True(t, errors.Is(err, ErrInvalidSalary))
		assert.True(t, errors.Is(err, ErrDecode))

		var se *SalaryError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "x", se.EmployeeID)
		assert.Equal(t, raw, se.Raw)
	}
}

func TestToText(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{json.Number("777777"), "777777"},
		{float64(777777), "777777"},
		{float64(12.5), "12.5"},
		{42, "42"},
		{int64(-3), "-3"},
		{true, "true"},
		{[]interface{}{"a", 1.0}, `["a",1]`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToText(c.in), "input %#v", c.in)
	}
}

func TestNewCreateEmployeeRequest(t *testing.T) {
	req := NewCreateEmployeeRequest(map[string]interface{}{
		"name":   "Alice",
		"salary": float64(777777),
		"age":    json.Number("39"),
		"id":     "ignored",
	})
	assert.Equal(t, CreateEmployeeRequest{Name: "Alice", Salary: "777777", Age: "39"}, req)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alice","salary":"777777","age":"39"}`, string(b))
}

func TestEmployeeFromCreated(t *testing.T) {
	e := EmployeeFromCreated(map[string]interface{}{
		"id":     json.Number("25"),
		"name":   "fake-test-22",
		"salary": "777777",
		"age":    float64(39),
		"extra":  "dropped",
	})
	assert.Equal(t, Employee{ID: "25", Name: "fake-test-22", Salary: "777777", Age: "39"}, e)
}

func TestEnvelope_Success(t *testing.T) {
	var nilEnv *EmployeeListEnvelope
	assert.False(t, nilEnv.Success())
	assert.True(t, (&EmployeeListEnvelope{Status: "success"}).Success())
	assert.False(t, (&EmployeeListEnvelope{Status: "Success"}).Success())
	assert.False(t, (&EmployeeListEnvelope{Status: "failed"}).Success())
	assert.False(t, (&EmployeeListEnvelope{}).Success())
}

func TestEnvelope_Decode(t *testing.T) {
	var env EmployeeEnvelope
	require.NoError(t, json.Unmarshal([]byte(`{"status":"success","data":null,"message":"gone"}`), &env))
	assert.True(t, env.Success())
	assert.Nil(t, env.Data)
	assert.Equal(t, "gone", env.Message)

	var list EmployeeListEnvelope
	require.NoError(t, json.Unmarshal([]byte(`{"status":"success","data":[{"id":"1"},{"id":"2"}]}`), &list))
	require.Len(t, list.Data, 2)
	assert.Equal(t, "2", list.Data[1].ID)
}

func TestOutcome(t *testing.T) {
	ok := OK([]string{"a"})
	assert.True(t, ok.IsOK())
	assert.Equal(t, "OK", ok.Status.String())

	nf := NotFound[int64]()
	assert.False(t, nf.IsOK())
	assert.Equal(t, int64(0), nf.Payload)
	assert.Equal(t, "NOT_FOUND", nf.Status.String())
	assert.Equal(t, "UNKNOWN", Status(99).String())
}
