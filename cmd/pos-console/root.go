package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jrsteele09/pos-console/apiclient"
	"github.com/jrsteele09/pos-console/internal/config"
	"github.com/jrsteele09/pos-console/internal/logging"
	"github.com/jrsteele09/pos-console/posapi"
	"github.com/jrsteele09/pos-console/session"
	"github.com/jrsteele09/pos-console/tokenstore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is everything a command needs, built once the config is loaded.
type app struct {
	cfg       config.Config
	out       io.Writer
	output    string
	store     tokenstore.Store
	navigator *consoleNavigator
	client    *apiclient.Client
	api       *posapi.API
	sessions  *session.Manager
	registry  *prometheus.Registry
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	v := viper.New()
	a := &app{out: out}
	var cfgFile string
	var showMetrics bool

	rootCmd := &cobra.Command{
		Use:           "pos-console",
		Short:         "Capital POS back office console",
		Long:          `Log in to the Capital POS API and work in the section of your role: admin, sales, tech or customer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(v, cfgFile); err != nil {
				return err
			}
			logging.Setup(errOut, v.GetString("log.level"))
			return a.init(cmd.Context(), config.New(v), v.GetString("output"))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if showMetrics && a.registry != nil {
				printMetrics(errOut, a.registry)
			}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pos-console/pos-console.yaml)")
	flags.String("api-url", "", "base URL of the POS API")
	flags.String("store", "", "token store: file or redis")
	flags.StringP("output", "o", "json", "output format: json or yaml")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&showMetrics, "metrics", false, "print API request counters after the command")
	_ = v.BindPFlag("api.base_url", flags.Lookup("api-url"))
	_ = v.BindPFlag("store.type", flags.Lookup("store"))
	_ = v.BindPFlag("output", flags.Lookup("output"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newRefreshCmd(a),
		newRecoverPasswordCmd(a),
		newOpenCmd(a),
		newDashboardCmd(a),
		newReportsCmd(a),
	)
	for _, rc := range resourceCommands(a) {
		rootCmd.AddCommand(rc)
	}
	return rootCmd
}

func (a *app) init(ctx context.Context, cfg config.Config, output string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	output = strings.ToLower(output)
	if output != outputJSON && output != outputYAML {
		return fmt.Errorf("unknown output format %q", output)
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.output = output
	a.store = store
	a.navigator = newConsoleNavigator(a.out)
	a.registry = prometheus.NewRegistry()

	a.client, err = apiclient.New(cfg.GetBaseURL(), store,
		apiclient.WithNavigator(a.navigator),
		apiclient.WithTimeout(cfg.GetRequestTimeout()),
		apiclient.WithLogger(log.Logger),
		apiclient.WithRegisterer(a.registry),
	)
	if err != nil {
		return err
	}
	a.api = posapi.New(a.client)

	a.sessions, err = session.NewManager(store, a.api.Auth,
		session.WithLogger(log.Logger),
		session.WithLogoutTimeout(cfg.GetLogoutTimeout()),
	)
	if err != nil {
		return err
	}
	a.sessions.Bootstrap(ctx)
	return nil
}

func printMetrics(w io.Writer, registry *prometheus.Registry) {
	families, err := registry.Gather()
	if err != nil {
		log.Err(err).Msg("gather metrics")
		return
	}
	var lines []string
	for _, family := range families {
		for _, m := range family.GetMetric() {
			var labels []string
			for _, pair := range m.GetLabel() {
				labels = append(labels, pair.GetName()+"="+pair.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %v", family.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
