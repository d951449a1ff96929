package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_gateway/internal/domain"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// newUpstream starts a server that answers every request with handler and
// counts the calls it receives.
func newUpstream(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestFetchAll(t *testing.T) {
	srv, calls := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/employees", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		writeJSON(w, http.StatusOK, `{"status":"success","data":[
			{"id":"1","employee_name":"Tiger Nixon","employee_salary":"320800","employee_age":"61","profile_image":""},
			{"id":2,"employee_name":"Garrett Winters","employee_salary":170750,"employee_age":63,"ignored":true}
		],"message":"Successfully! All records has been fetched."}`)
	})

	repo := NewEmployeeRepository(srv.URL+"/", srv.Client())
	env, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))

	assert.True(t, env.Success())
	require.Len(t, env.Data, 2)
	assert.Equal(t, domain.Employee{ID: "1", Name: "Tiger Nixon", Salary: "320800", Age: "61"}, env.Data[0])
	assert.Equal(t, "2", env.Data[1].ID)
	assert.Equal(t, "170750", env.Data[1].Salary)
}

func TestFetchAll_FailureEnvelopeOnErrorStatus(t *testing.T) {
	srv, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, `{"status":"failed","message":"Too Many Attempts."}`)
	})

	env, err := NewEmployeeRepository(srv.URL, srv.Client()).FetchAll(context.Background())
	require.NoError(t, err)
	assert.False(t, env.Success())
	assert.Equal(t, "Too Many Attempts.", env.Message)
}

func TestFetchAll_NonJSONErrorStatus(t *testing.T) {
	srv, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := NewEmployeeRepository(srv.URL, srv.Client()).FetchAll(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.False(t, errors.Is(err, domain.ErrDecode))
}

func TestFetchAll_MalformedJSON(t *testing.T) {
	srv, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"success","data":[`)
	})

	_, err := NewEmployeeRepository(srv.URL, srv.Client()).FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDecode))
}

func TestFetchByID(t *testing.T) {
	srv, calls := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/employee/a b", r.URL.Path)
		assert.Equal(t, "/api/v1/employee/a%20b", r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, `{"status":"success","data":{"id":"a b","employee_name":"Spaced"}}`)
	})

	env, err := NewEmployeeRepository(srv.URL, srv.Client()).FetchByID(context.Background(), "a b")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
	require.NotNil(t, env.Data)
	assert.Equal(t, "Spaced", env.Data.Name)
}

func TestFetchByID_NullData(t *testing.T) {
	srv, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"success","data":null}`)
	})

	env, err := NewEmployeeRepository(srv.URL, srv.Client()).FetchByID(context.Background(), "404")
	require.NoError(t, err)
	assert.Nil(t, env.Data)
}

func TestCreate(t *testing.T) {
	srv, calls := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/create", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"name": "Alice", "salary": "777777", "age": "39"}, body)

		writeJSON(w, http.StatusOK, `{"status":"success","data":{"name":"Alice","salary":"777777","age":"39","id":4567}}`)
	})

	env, err := NewEmployeeRepository(srv.URL, srv.Client()).Create(context.Background(),
		domain.CreateEmployeeRequest{Name: "Alice", Salary: "777777", Age: "39"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
	assert.True(t, env.Success())
	assert.Equal(t, json.Number("4567"), env.Data["id"])
}

func TestCreate_Non2xx(t *testing.T) {
	srv, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"status":"success","data":{"id":"1"}}`)
	})

	_, err := NewEmployeeRepository(srv.URL, srv.Client()).Create(context.Background(), domain.CreateEmployeeRequest{Name: "x"})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestDelete_IgnoresResponse(t *testing.T) {
	srv, calls := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/delete/77", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, `not even json`)
	})

	err := NewEmployeeRepository(srv.URL, srv.Client()).Delete(context.Background(), "77")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestTransportError(t *testing.T) {
	var calls int32
	boom := errors.New("connection refused")
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	})}
	repo := NewEmployeeRepository("http://upstream", client)
	ctx := context.Background()

	_, err := repo.FetchAll(ctx)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.MethodGet, te.Method)
	assert.Equal(t, "http://upstream/api/v1/employees", te.URL)
	assert.True(t, errors.Is(err, boom))

	_, err = repo.FetchByID(ctx, "1")
	assert.True(t, errors.As(err, &te))
	_, err = repo.Create(ctx, domain.CreateEmployeeRequest{Name: "x"})
	assert.True(t, errors.As(err, &te))
	err = repo.Delete(ctx, "1")
	assert.True(t, errors.As(err, &te))

	// One call per operation, no retries.
	assert.EqualValues(t, 4, atomic.LoadInt32(&calls))
}

func TestCanceledContext(t *testing.T) {
	srv, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"success","data":[]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEmployeeRepository(srv.URL, srv.Client()).FetchAll(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
