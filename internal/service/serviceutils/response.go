package serviceutils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_gateway/internal/domain"
	"github.com/locvowork/employee_gateway/internal/logger"
)

// APIResponse is the body used for error responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// HTTPStatus maps an Outcome status to its transport status code.
func HTTPStatus(s domain.Status) int {
	switch s {
	case domain.StatusOK:
		return http.StatusOK
	case domain.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ResponseOutcome writes the payload as JSON on OK and an empty body
// otherwise.
func ResponseOutcome[T any](c echo.Context, o domain.Outcome[T]) error {
	code := HTTPStatus(o.Status)
	if o.Status != domain.StatusOK {
		return c.NoContent(code)
	}
	return c.JSON(code, o.Payload)
}

// ResponseError logs err and writes an APIResponse error body.
func ResponseError(c echo.Context, code int, message string, err error) error {
	resp := APIResponse{Success: false, Message: message}
	if err != nil {
		logger.ErrorLog(c.Request().Context(), message, err)
		resp.Error = err.Error()
	}
	return c.JSON(code, resp)
}

// ResponseSuccess writes an APIResponse success body.
func ResponseSuccess(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, APIResponse{Success: true, Message: message, Data: data})
}
