package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/locvowork/employee_gateway/internal/domain"
	"github.com/locvowork/employee_gateway/internal/logger"
)

const (
	employeesPath = "/api/v1/employees"
	employeePath  = "/api/v1/employee/%s"
	createPath    = "/api/v1/create"
	deletePath    = "/api/v1/delete/%s"

	contentTypeJSON = "application/json"
)

type employeeRepository struct {
	baseURL string
	http    *http.Client
}

// NewEmployeeRepository creates an EmployeeRepository backed by the upstream
// employee service at baseURL. The client is shared by every call and must be
// safe for concurrent use; nil means http.DefaultClient.
func NewEmployeeRepository(baseURL string, client *http.Client) domain.EmployeeRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &employeeRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

func (r *employeeRepository) FetchAll(ctx context.Context) (*domain.EmployeeListEnvelope, error) {
	var env domain.EmployeeListEnvelope
	if err := r.getJSON(ctx, r.baseURL+employeesPath, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (r *employeeRepository) FetchByID(ctx context.Context, id string) (*domain.EmployeeEnvelope, error) {
	var env domain.EmployeeEnvelope
	u := r.baseURL + fmt.Sprintf(employeePath, url.PathEscape(id))
	if err := r.getJSON(ctx, u, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (r *employeeRepository) Create(ctx context.Context, req domain.CreateEmployeeRequest) (*domain.CreatedEnvelope, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	u := r.baseURL + createPath
	status, body, err := r.do(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &StatusError{Method: http.MethodPost, URL: u, StatusCode: status}
	}

	var env domain.CreatedEnvelope
	if err := decodeEnvelope(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Delete fires the upstream delete. The response is drained and ignored;
// only transport failures are reported.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	u := r.baseURL + fmt.Sprintf(deletePath, url.PathEscape(id))
	_, _, err := r.do(ctx, http.MethodDelete, u, nil)
	return err
}

// getJSON decodes the response body whatever the status code, since the
// envelope status is what decides success. A body that does not decode is
// a StatusError on non-2xx and a decode failure otherwise.
func (r *employeeRepository) getJSON(ctx context.Context, u string, out interface{}) error {
	status, body, err := r.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	if err := decodeEnvelope(body, out); err != nil {
		if status < 200 || status > 299 {
			return &StatusError{Method: http.MethodGet, URL: u, StatusCode: status}
		}
		return err
	}
	return nil
}

func (r *employeeRepository) do(ctx context.Context, method, u string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	start := time.Now()
	resp, err := r.http.Do(req)
	if err != nil {
		logger.DebugLog(ctx, "upstream %s %s failed after %v: %v", method, u, time.Since(start), err)
		return 0, nil, &TransportError{Method: method, URL: u, Err: err}
	}
	defer resp.Body.Close()

	// Always read the full body so the connection can be reused.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Method: method, URL: u, Err: err}
	}

	logger.DebugLog(ctx, "upstream %s %s -> %d in %v", method, u, resp.StatusCode, time.Since(start))
	return resp.StatusCode, data, nil
}

func decodeEnvelope(body []byte, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return nil
}
