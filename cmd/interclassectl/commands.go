package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/projetointerclasse/interclasse/internal/interclasse/app"
	"github.com/projetointerclasse/interclasse/internal/interclasse/service"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/pkg/cryptox"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

// opener builds the reset service; tests replace it.
type opener func(ctx context.Context) (*service.ResetService, func(), error)

func newRootCmd() *cobra.Command {
	return newRootCmdWith(openFromEnv)
}

func newRootCmdWith(open opener) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "interclassectl",
		Short:        "Inspect and reset Interclasse data",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := slogx.New(slogx.Config{
				Service: "interclassectl",
				Version: app.BuildVersion,
				Level:   logLevel,
				Format:  "text",
				Output:  cmd.ErrOrStderr(),
			})
			cmd.SetContext(slogx.WithContext(cmd.Context(), logger))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newStatusCmd(open), newResetCmd(open))
	return root
}

func newStatusCmd(open opener) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Count users, teams, matches and photos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := svc.Status(cmd.Context())
			if err != nil {
				return err
			}
			return printStatus(cmd.OutOrStdout(), st, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newResetCmd(open opener) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:       "reset [all|users|teams|matches]",
		Short:     "Delete stored records",
		Long:      "Delete stored records. \"all\" also removes every stored login session.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"all", "users", "teams", "matches"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset %s without --yes", args[0])
			}

			svc, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := cmd.Context()
			switch args[0] {
			case "all":
				err = svc.ClearAll(ctx)
			case "users":
				err = svc.ClearUsers(ctx)
			case "teams":
				err = svc.ClearTeams(ctx)
			case "matches":
				err = svc.ClearMatches(ctx)
			}
			if err != nil {
				return err
			}

			st, err := svc.Status(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", args[0])
			return printStatus(cmd.OutOrStdout(), st, false)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}

func printStatus(w io.Writer, st service.Status, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	_, err := fmt.Fprintf(w, "users:   %d\nteams:   %d\nmatches: %d\nphotos:  %d\n",
		st.Users, st.Teams, st.Matches, st.Photos)
	return err
}

// openFromEnv opens the stores configured for the server. The in-memory
// session backend lives inside the server process, so it is skipped here.
func openFromEnv(ctx context.Context) (*service.ResetService, func(), error) {
	cfg := app.LoadConfig()
	log := slogx.FromContext(ctx)

	records, err := app.OpenRecordStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := &service.ResetService{
		// Resetting never hashes, so no pepper is needed.
		Records: store.NewRecords(records, cryptox.PasswordHasher{}),
		Durable: records,
	}
	closers := []io.Closer{records}

	if cfg.SessionBackend != "memory" {
		sessions, err := app.OpenSessionStore(ctx, cfg)
		if err != nil {
			_ = records.Close()
			return nil, nil, err
		}
		svc.Sessions = sessions
		closers = append(closers, sessions)
	} else {
		log.Info("session backend is in-memory; tab sessions are not reachable from here")
	}

	return svc, func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				log.Warn("failed to close store", slog.Any("err", err))
			}
		}
	}, nil
}
