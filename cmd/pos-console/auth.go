package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/pos-console/apiclient"
	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/posapi"
	"github.com/jrsteele09/pos-console/router"
	"github.com/jrsteele09/pos-console/session"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	var banner bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and open your section",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptCredentials(&username, &password); err != nil {
				return err
			}

			result := a.sessions.Login(cmd.Context(), username, password)
			if !result.Success {
				return errors.New(result.Message)
			}

			if banner {
				figure.NewFigure(a.cfg.GetAppName(), "cybermedium", true).Print()
				fmt.Fprintln(a.out)
			}
			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", username, result.Role)
			a.navigator.Navigate(router.HomePath(result.Role))
			printMenu(a, router.Menu(result.Role))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	cmd.Flags().BoolVar(&banner, "banner", false, "print the application banner")
	return cmd
}

// promptCredentials asks for whichever of username and password is missing.
func promptCredentials(username, password *string) error {
	var questions []*survey.Question
	if *username == "" {
		questions = append(questions, &survey.Question{
			Name:     "username",
			Prompt:   &survey.Input{Message: "Username:"},
			Validate: survey.Required,
		})
	}
	if *password == "" {
		questions = append(questions, &survey.Question{
			Name:     "password",
			Prompt:   &survey.Password{Message: "Password:"},
			Validate: survey.Required,
		})
	}
	if len(questions) == 0 {
		return nil
	}

	answers := struct {
		Username string
		Password string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return fmt.Errorf("reading credentials: %w", err)
	}
	if answers.Username != "" {
		*username = answers.Username
	}
	if answers.Password != "" {
		*password = answers.Password
	}
	return nil
}

func newRecoverPasswordCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "recover-password",
		Short: "Ask the API to email a password recovery link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				prompt := &survey.Input{Message: "Email address:"}
				if err := survey.AskOne(prompt, &email, survey.WithValidator(survey.Required)); err != nil {
					return fmt.Errorf("reading email: %w", err)
				}
			}

			message, err := a.api.Auth.RecoverPassword(cmd.Context(), email)
			if err != nil {
				if msg := apiclient.Message(err); msg != "" {
					return errors.New(msg)
				}
				return errors.New(posapi.RecoveryFailedMessage)
			}
			fmt.Fprintln(a.out, message)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email address (prompted when empty)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token and tell the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.sessions.Logout(cmd.Context())
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := a.sessions.Current(cmd.Context())
			if !ok {
				return poserrors.ErrNotAuthenticated
			}

			info := map[string]string{
				"username": s.Username,
				"role":     s.Role.String(),
				"home":     router.HomePath(s.Role),
			}
			if !s.IssuedAt.IsZero() {
				info["issued_at"] = s.IssuedAt.Format(time.RFC3339)
			}
			return writeValue(a.out, a.output, info)
		},
	}
}

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the stored token for a fresh one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sessions.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Token refreshed")
			return nil
		},
	}
}

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Open a console section such as /admin or /sales",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var current *session.Session
			if s, ok := a.sessions.Current(cmd.Context()); ok {
				current = &s
			}

			decision, err := router.Resolve(args[0], current)
			if err != nil {
				return err
			}
			if !decision.Allowed {
				a.navigator.Navigate(decision.RedirectTo)
				if current == nil || decision.RedirectTo != router.HomePath(current.Role) {
					return nil
				}
			} else {
				a.navigator.Navigate(args[0])
			}

			if current != nil {
				printMenu(a, router.Menu(current.Role))
			} else {
				fmt.Fprintln(a.out, "Run `pos-console login` to continue")
			}
			return nil
		},
	}
}

func printMenu(a *app, menu []router.MenuItem) {
	for _, item := range menu {
		fmt.Fprintf(a.out, "  %-16s pos-console %s\n", item.Title, item.Command)
	}
}
