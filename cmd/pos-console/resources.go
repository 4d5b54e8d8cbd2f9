package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/jrsteele09/pos-console/posapi"
	"github.com/spf13/cobra"
)

// resourceCommands builds "<name> list" and "<name> get <id>" for every collection.
func resourceCommands(a *app) []*cobra.Command {
	collections := []struct {
		name  string
		short string
		get   func() *posapi.Resource
	}{
		{name: "users", short: "Staff and customer accounts", get: func() *posapi.Resource { return a.api.Users.Resource }},
		{name: "customers", short: "Customer records", get: func() *posapi.Resource { return a.api.Customers.Resource }},
		{name: "plans", short: "Service plans", get: func() *posapi.Resource { return a.api.Plans }},
		{name: "transactions", short: "Sales and payments", get: func() *posapi.Resource { return a.api.Transactions.Resource }},
		{name: "tickets", short: "Support tickets", get: func() *posapi.Resource { return a.api.Tickets.Resource }},
		{name: "equipment", short: "Equipment inventory", get: func() *posapi.Resource { return a.api.Equipment.Resource }},
	}

	var cmds []*cobra.Command
	for _, c := range collections {
		cmd := &cobra.Command{Use: c.name, Short: c.short}

		var params []string
		list := &cobra.Command{
			Use:   "list",
			Short: "List " + c.name,
			RunE: func(cmd *cobra.Command, args []string) error {
				query, err := parseParams(params)
				if err != nil {
					return err
				}
				return a.print(c.get().List(cmd.Context(), query))
			},
		}
		list.Flags().StringArrayVarP(&params, "param", "q", nil, "query parameter as key=value, repeatable")

		get := &cobra.Command{
			Use:   "get <id>",
			Short: "Show one of " + c.name,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.print(c.get().Get(cmd.Context(), args[0]))
			},
		}

		cmd.AddCommand(list, get)
		cmds = append(cmds, cmd)
	}
	return cmds
}

func newDashboardCmd(a *app) *cobra.Command {
	var period string
	cmd := &cobra.Command{Use: "dashboard", Short: "Dashboard figures"}

	simple := map[string]func(ctx context.Context) (json.RawMessage, error){
		"stats":   func(ctx context.Context) (json.RawMessage, error) { return a.api.Dashboard.Stats(ctx) },
		"tickets": func(ctx context.Context) (json.RawMessage, error) { return a.api.Dashboard.Tickets(ctx) },
		"network": func(ctx context.Context) (json.RawMessage, error) { return a.api.Dashboard.NetworkStatus(ctx) },
		"sales":   func(ctx context.Context) (json.RawMessage, error) { return a.api.Dashboard.Sales(ctx, period) },
		"revenue": func(ctx context.Context) (json.RawMessage, error) { return a.api.Dashboard.Revenue(ctx, period) },
		"growth":  func(ctx context.Context) (json.RawMessage, error) { return a.api.Dashboard.CustomerGrowth(ctx, period) },
	}
	for name, fetch := range simple {
		cmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: "Dashboard " + name,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.print(fetch(cmd.Context()))
			},
		})
	}
	cmd.PersistentFlags().StringVar(&period, "period", posapi.DefaultPeriod, "period for sales, revenue and growth")
	return cmd
}

func newReportsCmd(a *app) *cobra.Command {
	var params []string
	cmd := &cobra.Command{Use: "reports", Short: "Reports"}
	cmd.PersistentFlags().StringArrayVarP(&params, "param", "q", nil, "report parameter as key=value, repeatable")

	reports := map[string]func(ctx context.Context, q url.Values) (json.RawMessage, error){
		"sales": func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return a.api.Reports.Sales(ctx, q)
		},
		"customers": func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return a.api.Reports.Customers(ctx, q)
		},
		"revenue": func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return a.api.Reports.Revenue(ctx, q)
		},
		"tickets": func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return a.api.Reports.Tickets(ctx, q)
		},
	}
	for name, fetch := range reports {
		cmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: "The " + name + " report",
			RunE: func(cmd *cobra.Command, args []string) error {
				query, err := parseParams(params)
				if err != nil {
					return err
				}
				return a.print(fetch(cmd.Context(), query))
			},
		})
	}

	var outFile string
	export := &cobra.Command{
		Use:   "export <type>",
		Short: "Download a report file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseParams(params)
			if err != nil {
				return err
			}
			data, err := a.api.Reports.Export(cmd.Context(), args[0], query)
			if err != nil {
				return err
			}
			if outFile == "" {
				_, err = a.out.Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %d bytes to %s\n", len(data), outFile)
			return nil
		},
	}
	export.Flags().StringVar(&outFile, "file", "", "write to this file instead of stdout")
	cmd.AddCommand(export)
	return cmd
}

func (a *app) print(payload json.RawMessage, err error) error {
	if err != nil {
		return err
	}
	return writeOutput(a.out, a.output, payload)
}

func parseParams(params []string) (url.Values, error) {
	if len(params) == 0 {
		return nil, nil
	}
	query := url.Values{}
	for _, p := range params {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("parameter %q must look like key=value", p)
		}
		query.Add(key, value)
	}
	return query, nil
}
