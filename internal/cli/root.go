// Package cli implements blogctl, the admin command line for the article store.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"blog/internal/config"
	"blog/internal/infra/store"
	"blog/internal/observability/logging"
	artUC "blog/internal/usecase/article"
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
)

// storeOpener opens the article store; tests swap it for a temporary database.
type storeOpener func(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*store.Store, error)

// app carries the state shared by every subcommand during one invocation.
type app struct {
	open storeOpener

	debug       bool
	output      string
	driver      string
	databaseURL string
	mongoURI    string

	store *store.Store
	svc   *artUC.Service
}

// Execute runs blogctl with the process arguments and exits non-zero on failure.
func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, store.Open); err != nil {
		os.Exit(1)
	}
}

// run executes one invocation and releases the store afterwards.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, open storeOpener) error {
	a := &app{open: open}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	defer a.close()
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "blogctl",
		Short:        "blogctl manages articles and authors in the blog store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.output != outputText && a.output != outputJSON {
				return fmt.Errorf("unknown output format %q (want %s or %s)", a.output, outputText, outputJSON)
			}
			return a.connect(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging to stderr")
	flags.StringVarP(&a.output, "output", "o", outputText, "output format: text or json")
	flags.StringVar(&a.driver, "driver", "", "store driver: postgres, sqlite or mongo (overrides STORE_DRIVER)")
	flags.StringVar(&a.databaseURL, "database-url", "", "SQL DSN (overrides DATABASE_URL)")
	flags.StringVar(&a.mongoURI, "mongo-uri", "", "MongoDB URI (overrides MONGO_URI)")

	cmd.AddCommand(articlesCmd(a), authorsCmd(a))
	return cmd
}

// connect loads configuration, applies flag overrides and opens the store.
func (a *app) connect(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelDebug
	}
	logger := logging.New(cmd.ErrOrStderr(), level, logging.FormatText)

	cfg, err := config.LoadWith(func(c *config.Config) {
		if a.driver != "" {
			c.Store.Driver = a.driver
		}
		if a.databaseURL != "" {
			c.Store.DatabaseURL = a.databaseURL
		}
		if a.mongoURI != "" {
			c.Store.MongoURI = a.mongoURI
		}
	})
	if err != nil {
		return err
	}

	st, err := a.open(cmd.Context(), cfg.Store, logger)
	if err != nil {
		return err
	}
	a.store = st
	a.svc = &artUC.Service{Repo: st.Articles, Authors: st.Authors, Logger: logger}
	return nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close(context.Background())
		a.store = nil
	}
}
