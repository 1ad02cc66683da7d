package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/burugo/schemamgr/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schemactl",
		Short: "Inspect database schemas across MySQL, PostgreSQL and SQLite",
		Long: `schemactl answers schema existence questions (tables, columns, indexes)
and describes tables through the same dialect layer migrations use.

The database is selected with --backend and --dsn, the SCHEMACTL_BACKEND and
SCHEMACTL_DSN environment variables, or a schemactl.yaml file.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfgFile, _ := cmd.Root().PersistentFlags().GetString("config")
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./"+config.DefaultConfigFile+")")
	flags.StringP("backend", "b", "", "database engine (mysql, postgres, sqlite)")
	flags.String("dsn", "", "data source name")
	flags.String("driver", "", "database/sql driver name, e.g. pgx")
	flags.BoolP("verbose", "v", false, "log executed SQL to stderr")
	flags.Int("max-open-conns", 0, "maximum open connections")

	_ = rootCmd.RegisterFlagCompletionFunc("backend", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"mysql", "postgres", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		newBackendsCmd(),
		newHasTableCmd(),
		newHasColumnCmd(),
		newHasIndexCmd(),
		newDescribeCmd(),
	)
	return rootCmd
}

func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// withSession opens the configured database for the duration of fn.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cfg := getConfig(cmd)
	dbCfg, err := cfg.DBConfig(newLogger(cmd.ErrOrStderr(), cfg.Verbose))
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	s, cleanup, err := initializeSession(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(ctx, s)
}
