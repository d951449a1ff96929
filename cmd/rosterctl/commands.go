package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/locvowork/employee_gateway/internal/domain"
	"github.com/locvowork/employee_gateway/internal/report"
	"github.com/locvowork/employee_gateway/internal/service"
)

var errNotFound = errors.New("not found")

// serviceFactory builds the service for a base URL; "" means the configured one.
type serviceFactory func(baseURL string) service.EmployeeService

func newRootCmd(newService serviceFactory, exportTemplate string) *cobra.Command {
	var baseURL string

	root := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Query and manage employees through the upstream employee service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "upstream base URL (default from API_BASE_URL)")

	svc := func() service.EmployeeService { return newService(baseURL) }

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all employees in upstream order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out, err := svc().ListAll(cmd.Context())
				return printOutcome(cmd.OutOrStdout(), out, err)
			},
		},
		&cobra.Command{
			Use:   "get ID",
			Short: "Get one employee",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := svc().GetByID(cmd.Context(), args[0])
				return printOutcome(cmd.OutOrStdout(), out, err)
			},
		},
		&cobra.Command{
			Use:   "search QUERY",
			Short: "Find employees whose name contains QUERY (case-insensitive)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := svc().SearchByName(cmd.Context(), args[0])
				return printOutcome(cmd.OutOrStdout(), out, err)
			},
		},
		&cobra.Command{
			Use:   "highest",
			Short: "Print the highest salary",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out, err := svc().HighestSalary(cmd.Context())
				return printOutcome(cmd.OutOrStdout(), out, err)
			},
		},
		newTopCmd(svc),
		newCreateCmd(svc),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Request deletion of an employee",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := svc().Delete(cmd.Context(), args[0])
				return printOutcome(cmd.OutOrStdout(), out, err)
			},
		},
		newExportCmd(svc, exportTemplate),
	)
	return root
}

func newTopCmd(svc func() service.EmployeeService) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the names of the top earners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				out domain.Outcome[[]string]
				err error
			)
			if cmd.Flags().Changed("count") {
				out, err = svc().TopEarners(cmd.Context(), n)
			} else {
				out, err = svc().TopEarnerNames(cmd.Context())
			}
			return printOutcome(cmd.OutOrStdout(), out, err)
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", service.DefaultTopEarnersLimit, "number of names")
	return cmd
}

func newCreateCmd(svc func() service.EmployeeService) *cobra.Command {
	var name, salary, age string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := map[string]interface{}{}
			for key, val := range map[string]string{"name": name, "salary": salary, "age": age} {
				if val != "" {
					input[key] = val
				}
			}
			out, err := svc().Create(cmd.Context(), input)
			return printOutcome(cmd.OutOrStdout(), out, err)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "employee name")
	cmd.Flags().StringVar(&salary, "salary", "", "employee salary")
	cmd.Flags().StringVar(&age, "age", "", "employee age")
	return cmd
}

func newExportCmd(svc func() service.EmployeeService, template string) *cobra.Command {
	var (
		outPath string
		topN    int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the roster and top earners to an XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := svc().ExportRoster(cmd.Context())
			if err != nil {
				return err
			}
			if !out.IsOK() {
				return errNotFound
			}

			exporter, err := report.NewRosterExporter(out.Payload, template, topN)
			if err != nil {
				return err
			}
			if err := exporter.ExportToExcel(outPath); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d employees to %s\n", len(out.Payload.Employees), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "roster.xlsx", "output file")
	cmd.Flags().IntVar(&topN, "top", service.DefaultTopEarnersLimit, "rows on the top earners sheet")
	cmd.Flags().StringVar(&template, "template", template, "YAML layout template (default from EXPORT_TEMPLATE_PATH)")
	return cmd
}

// printOutcome writes an OK payload as indented JSON. NOT_FOUND becomes
// errNotFound so the process exits non-zero.
func printOutcome[T any](w io.Writer, out domain.Outcome[T], err error) error {
	if err != nil {
		return err
	}
	if !out.IsOK() {
		return errNotFound
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Payload)
}
