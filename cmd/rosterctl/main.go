package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/locvowork/employee_gateway/internal/config"
	"github.com/locvowork/employee_gateway/internal/logger"
	"github.com/locvowork/employee_gateway/internal/repository"
	"github.com/locvowork/employee_gateway/internal/service"
)

func main() {
	if err := config.LoadEnvConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	cfg := config.DefaultEnvConfig

	// Logs go to stderr so stdout stays machine readable.
	logger.InitWithWriter(os.Stderr, cfg.LOG_LEVEL)

	newService := func(baseURL string) service.EmployeeService {
		if baseURL == "" {
			baseURL = cfg.API_BASE_URL
		}
		repo := repository.NewEmployeeRepository(baseURL, &http.Client{Timeout: cfg.UPSTREAM_TIMEOUT})
		return service.NewEmployeeService(repo, service.WithTopEarnersLimit(cfg.TOP_EARNERS_LIMIT))
	}

	root := newRootCmd(newService, cfg.EXPORT_TEMPLATE_PATH)
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
