// Command classctl administers a classkeeper deployment. It seeds demo data,
// mints bearer tokens, runs storage migrations and uploads resource files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/netx"
	"github.com/dmitrijs2005/classkeeper/internal/server/auth"
	"github.com/dmitrijs2005/classkeeper/internal/server/config"
	"github.com/dmitrijs2005/classkeeper/internal/server/objectstore"
	"github.com/dmitrijs2005/classkeeper/internal/server/repositories/classes"
	"github.com/dmitrijs2005/classkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/classkeeper/internal/server/services"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// storageFlags override the environment for commands that open storage.
type storageFlags struct {
	backend, dsn, badgerPath string
}

func (f *storageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.backend, "backend", "b", "", "storage backend (memory, postgres, badger)")
	cmd.Flags().StringVarP(&f.dsn, "dsn", "d", "", "PostgreSQL DSN")
	cmd.Flags().StringVarP(&f.badgerPath, "badger-path", "p", "", "badger data directory")
}

func (f *storageFlags) config() *config.Config {
	cfg := config.FromEnv()
	if f.backend != "" {
		cfg.StorageBackend = f.backend
	}
	if f.dsn != "" {
		cfg.DatabaseDSN = f.dsn
	}
	if f.badgerPath != "" {
		cfg.BadgerPath = f.badgerPath
	}
	return cfg
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	logger := logging.NewJSONLogger(stderr, slog.LevelWarn)

	root := &cobra.Command{
		Use:          "classctl",
		Short:        "Administer a classkeeper deployment",
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newSeedCmd(logger), newTokenCmd(), newMigrateCmd(logger), newUploadCmd())
	return root
}

func newSeedCmd(logger logging.Logger) *cobra.Command {
	var sf storageFlags
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the demo classes 理科, 社会 and 体育 with sample files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := sf.config()

			m, err := repomanager.New(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("opening storage: %w", err)
			}
			defer m.Close()

			svc := services.NewClassService(classes.NewSynced(m.Classes()), nil)
			seeded, err := svc.Seed(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(seeded)
		},
	}
	sf.register(cmd)
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		secret  string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the mutating HTTP routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = config.FromEnv().SecretKey
			}
			if secret == "" {
				return errors.New("no secret: pass --secret or set CLASSKEEPER_SECRET")
			}
			token, err := auth.GenerateToken(subject, []byte(secret), ttl)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret (defaults to CLASSKEEPER_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", config.FromEnv().AccessTokenValidityDuration, "token validity (defaults to CLASSKEEPER_TOKEN_TTL or 60m)")
	return cmd
}

func newMigrateCmd(logger logging.Logger) *cobra.Command {
	var sf storageFlags
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the storage schema up to date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := sf.config()

			m, err := repomanager.New(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("opening storage: %w", err)
			}
			defer m.Close()

			if err := m.RunMigrations(ctx); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", cfg.StorageBackend)
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func newUploadCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "upload <classId> <fileId> <path>",
		Short: "Upload a local file to the object storage slot of a resource",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := &http.Client{Timeout: timeout}

			endpoint, err := url.JoinPath(server, "classes", args[0], "resources", args[1], "upload-url")
			if err != nil {
				return fmt.Errorf("building url: %w", err)
			}

			var u objectstore.UploadURL
			if err := netx.GetJSON(ctx, client, endpoint, &u); err != nil {
				return err
			}

			f, err := os.Open(args[2])
			if err != nil {
				return err
			}
			defer f.Close()

			fi, err := f.Stat()
			if err != nil {
				return err
			}

			if err := netx.UploadToPresignedURL(ctx, client, u.Method, u.URL, f, fi.Size()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d bytes to %s\n", fi.Size(), u.Key)
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:3000", "classkeeper HTTP address")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "HTTP timeout")
	return cmd
}

// executeContext is used by tests to run a command line with a context.
func executeContext(ctx context.Context, root *cobra.Command, args ...string) error {
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
