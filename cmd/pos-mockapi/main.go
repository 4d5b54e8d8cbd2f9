package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/pos-console/internal/config"
	"github.com/jrsteele09/pos-console/internal/logging"
	"github.com/jrsteele09/pos-console/mockapi"
	"github.com/jrsteele09/pos-console/token/jwt"
	fakeuserrepo "github.com/jrsteele09/pos-console/users/repofake"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const revocationPurgeInterval = 10 * time.Minute

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pos-mockapi",
	Short: "Stand-in POS API serving login, logout and token refresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()
		if err := config.Load(v, cfgFile); err != nil {
			return err
		}
		c := config.New(v)
		logging.Setup(os.Stderr, c.GetLogLevel())

		for {
			if err := run(c); err != nil {
				log.Err(err).Msg("Error running server")
				time.Sleep(1 * time.Second)
			} else {
				break
			}
		}
		log.Info().Msg("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pos-console/pos-console.yaml)")
	rootCmd.PersistentFlags().String("port", "", "port to listen on")
	_ = viper.BindPFlag("server.port", rootCmd.PersistentFlags().Lookup("port"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	displayAppname(c.GetAppName() + " API")

	handler, err := newServer(c)
	if err != nil {
		return err
	}
	server := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(server)

	stopPurge := purgeRevoked(handler)
	defer stopPurge()

	waitForStopSignal()
	return shutdown(server)
}

func newServer(c config.Config) (*mockapi.Server, error) {
	secret := []byte(c.GetSigningSecret())
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generating signing secret: %w", err)
		}
		log.Warn().Msg("mockapi.signing_secret not set, tokens will not survive a restart")
	}

	repo, err := fakeuserrepo.NewDemoUserRepo()
	if err != nil {
		return nil, err
	}
	for _, account := range fakeuserrepo.DemoAccounts {
		log.Info().Str("username", account.Username).Str("role", account.Role.String()).Msg("demo account")
	}

	creator := jwt.NewCreator(jwt.NewHMACSigner(secret), c.GetAppName(), c.GetAccessTokenExpiry())
	return mockapi.New(c, repo, creator, mockapi.WithLogger(log.Logger))
}

func purgeRevoked(s *mockapi.Server) func() {
	ticker := time.NewTicker(revocationPurgeInterval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				s.PurgeRevoked()
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}

func listenAndServe(server *http.Server) {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
