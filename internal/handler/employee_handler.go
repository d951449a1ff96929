package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/employee_gateway/internal/logger"
	"github.com/locvowork/employee_gateway/internal/report"
	"github.com/locvowork/employee_gateway/internal/service"
	"github.com/locvowork/employee_gateway/internal/service/serviceutils"
	"github.com/locvowork/employee_gateway/pkg/simpleexcel"
)

// ExportConfig controls the roster spreadsheet.
type ExportConfig struct {
	TemplatePath string
	TopN         int
}

type EmployeeHandler struct {
	svc    service.EmployeeService
	export ExportConfig
}

func NewEmployeeHandler(svc service.EmployeeService, export ExportConfig) *EmployeeHandler {
	if export.TopN <= 0 {
		export.TopN = service.DefaultTopEarnersLimit
	}
	return &EmployeeHandler{svc: svc, export: export}
}

// ListHandler handles GET /
func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	out, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to list employees", err)
	}
	return serviceutils.ResponseOutcome(c, out)
}

// SearchHandler handles GET /search/:searchString
func (h *EmployeeHandler) SearchHandler(c echo.Context) error {
	query := c.Param("searchString")
	logger.DebugLog(c.Request().Context(), "search employees by name %q", query)

	out, err := h.svc.SearchByName(c.Request().Context(), query)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to search employees", err)
	}
	return serviceutils.ResponseOutcome(c, out)
}

// GetHandler handles GET /:id
func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	out, err := h.svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to get employee", err)
	}
	return serviceutils.ResponseOutcome(c, out)
}

// HighestSalaryHandler handles GET /highestSalary
func (h *EmployeeHandler) HighestSalaryHandler(c echo.Context) error {
	out, err := h.svc.HighestSalary(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to compute highest salary", err)
	}
	return serviceutils.ResponseOutcome(c, out)
}

// TopEarnersHandler handles GET /topTenHighestEarningEmployeeNames
func (h *EmployeeHandler) TopEarnersHandler(c echo.Context) error {
	out, err := h.svc.TopEarnerNames(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to rank employees", err)
	}
	return serviceutils.ResponseOutcome(c, out)
}

// CreateHandler handles POST / with a JSON object body.
func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	var input map[string]interface{}
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	if err := dec.Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	out, err := h.svc.Create(c.Request().Context(), input)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to create employee", err)
	}
	return serviceutils.ResponseOutcome(c, out)
}

// DeleteHandler handles DELETE /:id
func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	out, err := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to delete employee", err)
	}
	return serviceutils.ResponseOutcome(c, out)
}

// ExportRosterHandler handles GET /export/roster.xlsx
func (h *EmployeeHandler) ExportRosterHandler(c echo.Context) error {
	ctx := c.Request().Context()

	out, err := h.svc.ExportRoster(ctx)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to load roster", err)
	}
	if !out.IsOK() {
		return serviceutils.ResponseOutcome(c, out)
	}

	exporter, err := report.NewRosterExporter(out.Payload, h.export.TemplatePath, h.export.TopN)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to prepare roster export", err)
	}
	excelBytes, err := exporter.ToBytes()
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate Excel file", err)
	}

	logger.InfoLog(ctx, "exported roster with %d employees", len(out.Payload.Employees))

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, "roster.xlsx"))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(excelBytes)))
	return c.Blob(http.StatusOK, simpleexcel.ContentType, excelBytes)
}

// HealthHandler handles GET /healthz
func (h *EmployeeHandler) HealthHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "ok", nil)
}
