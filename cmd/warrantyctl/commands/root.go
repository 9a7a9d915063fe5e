package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"warranty/internal/apiclient"
	"warranty/internal/config"
	"warranty/internal/fallback"
	"warranty/internal/logging"
	"warranty/internal/service"
	"warranty/internal/session"
	"warranty/internal/store/pg"
)

type app struct {
	apiURL      string
	sessionFile string
	noFallback  bool

	sess    *session.Session
	svc     *service.WarrantyService
	closeFn func()
}

func NewRoot() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "warrantyctl",
		Short:        "Warranty management from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeFn != nil {
				a.closeFn()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "API base URL (default $API_BASE_URL)")
	root.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "session file (default ~/.warranty/session.json)")
	root.PersistentFlags().BoolVar(&a.noFallback, "no-fallback", false, "fail instead of showing demo data when the API is down")

	root.AddCommand(
		loginCmd(a), registerCmd(a), logoutCmd(a), whoamiCmd(a),
		warrantiesCmd(a), warrantyCmd(a), newWarrantyCmd(a),
		servicesCmd(a), serviceCmd(a), newServiceCmd(a),
		productCmd(a), serialCmd(a),
		statsCmd(a), regionsCmd(a), districtsCmd(a),
		phoneCmd(),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	cfg := config.LoadCLI()
	logger := logging.InitTo(cmd.ErrOrStderr(), "warrantyctl", cfg.LogFormat)

	store, err := a.openStore(cmd, cfg)
	if err != nil {
		return err
	}
	a.sess = session.New(store)
	if err := a.sess.Hydrate(cmd.Context()); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	baseURL := cfg.Upstream.APIBaseURL
	if a.apiURL != "" {
		baseURL = a.apiURL
	}
	client := apiclient.New(apiclient.Options{
		BaseURL:         baseURL,
		Timeout:         cfg.Upstream.APITimeout,
		Tokens:          a.sess,
		RPS:             cfg.Upstream.APIRPS,
		Burst:           cfg.Upstream.APIBurst,
		BreakerFailures: cfg.Upstream.BreakerFailures,
		BreakerTimeout:  cfg.Upstream.BreakerTimeout,
	})
	a.svc = service.New(client, &fallback.Resolver{
		Logger:   logger,
		Disabled: a.noFallback || !cfg.Upstream.FallbackEnabled,
	})
	return nil
}

func (a *app) openStore(cmd *cobra.Command, cfg config.CLIConfig) (session.Store, error) {
	if cfg.SessionDSN != "" {
		pool, err := pg.NewPool(cmd.Context(), cfg.SessionDSN, pg.PoolOptions{MaxConns: 2})
		if err != nil {
			return nil, fmt.Errorf("session db: %w", err)
		}
		kv := pg.NewKVStore(pool, cfg.SessionNamespace)
		if err := kv.EnsureSchema(cmd.Context()); err != nil {
			pool.Close()
			return nil, fmt.Errorf("session db schema: %w", err)
		}
		a.closeFn = pool.Close
		return kv, nil
	}

	path := a.sessionFile
	if path == "" {
		path = cfg.SessionFile
	}
	if path == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, ".warranty", "session.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return session.NewFileStore(path), nil
}
