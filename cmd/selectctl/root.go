package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/bothellselect/select-client/address"
	"github.com/bothellselect/select-client/models"
	"github.com/bothellselect/select-client/storage"
	"github.com/bothellselect/select-client/utils"
	"github.com/spf13/cobra"
)

type appKey struct{}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "selectctl",
		Short:         "Bothell Select league client",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), envFile, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(cmd.Context(), a))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a := appFrom(cmd); a != nil {
				a.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newParseAddressCmd(),
		newNotificationsCmd(),
		newDismissCmd(),
		newServeCmd(),
	)
	return root
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd)
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password required (flag or stdin)")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if err := a.manager.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			identity := a.manager.State().Identity
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", identity.FullName, identity.Kind)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password; read from stdin when empty")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := appFrom(cmd).manager.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Check the session and print the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd)
			if err := a.manager.RefreshSession(cmd.Context()); err != nil {
				return err
			}
			state := a.manager.State()
			if !state.IsAuthenticated {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			out, err := utils.StructToString(state.Identity)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newParseAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-address <address>",
		Short: "Split a one-line address into fields",
		Args:  cobra.MinimumNArgs(1),
		// Parsing is local; skip config and store setup.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, strategy := address.NewNormalizer().ParseWith(strings.Join(args, " "))
			out, err := utils.StructToString(parsed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nstrategy: %s\n", out, strategy)
			if missing := parsed.MissingFields(); len(missing) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "missing: %s\n", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

func newNotificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "List notifications that have not been dismissed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd)
			if err := requireLogin(cmd, a); err != nil {
				return err
			}

			notifications, err := a.api.GetNotifications(cmd.Context())
			if err != nil {
				return err
			}
			dismissed, err := storage.DismissedNotifications(cmd.Context(), a.store)
			if err != nil {
				return err
			}
			for _, n := range models.FilterDismissed(notifications, dismissed) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", n.ID, utils.FormatLocal(n.CreatedAt), n.Title)
			}
			return nil
		},
	}
}

func newDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <notification-id>",
		Short: "Hide a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.DismissNotification(cmd.Context(), appFrom(cmd).store, args[0])
		},
	}
}

func requireLogin(cmd *cobra.Command, a *app) error {
	if err := a.manager.CheckSession(cmd.Context()); err != nil {
		return err
	}
	if !a.manager.State().IsAuthenticated {
		return errors.New("not logged in; run selectctl login")
	}
	return nil
}
