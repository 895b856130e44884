// Package cmd implements catalogctl, the operator tool for checking and
// querying the catalog data files.
package cmd

import (
	"fmt"
	"sync"

	"oli3d-catalog/internal/catalog"
	"oli3d-catalog/internal/config"
	"oli3d-catalog/internal/logger"
	"oli3d-catalog/internal/output"
	"oli3d-catalog/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// OpenFunc builds the document source for a configuration.
type OpenFunc func(cfg *config.Config) (store.Source, func() error, error)

type globalFlags struct {
	source  string
	dir     string
	baseURL string
	output  string
	verbose bool
}

// app holds state shared by every subcommand of one invocation. A CLI run is
// a single catalog session.
type app struct {
	flags globalFlags
	open  OpenFunc

	once    sync.Once
	cfg     *config.Config
	svc     catalog.Service
	closeFn func() error
	err     error
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(store.Open)
}

func newRootCommand(open OpenFunc) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Inspect and validate the product catalog",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if a.flags.verbose {
				logger.Init("development")
				return
			}
			logger.Replace(zap.NewNop())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.source, "source", "", "catalog source: dir, http or postgres (overrides CATALOG_SOURCE)")
	pf.StringVar(&a.flags.dir, "dir", "", "data directory for the dir source (overrides CATALOG_DIR)")
	pf.StringVar(&a.flags.baseURL, "base-url", "", "static host base url for the http source (overrides CATALOG_BASE_URL)")
	pf.StringVarP(&a.flags.output, "output", "o", "", "output format: table, json or yaml")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log loading details")

	root.AddCommand(newValidateCommand(a))
	root.AddCommand(newListCommand(a))
	root.AddCommand(newMailtoCommand(a))

	return root
}

// service opens the configured source once per invocation. Flags take
// precedence over the environment.
func (a *app) service() (catalog.Service, *config.Config, error) {
	a.once.Do(func() {
		cfg := config.FromEnv()
		if a.flags.source != "" {
			cfg.CatalogSource = a.flags.source
		}
		if a.flags.dir != "" {
			cfg.CatalogDir = a.flags.dir
		}
		if a.flags.baseURL != "" {
			cfg.CatalogBaseURL = a.flags.baseURL
		}
		if err := cfg.Validate(); err != nil {
			a.err = err
			return
		}

		source, closeFn, err := a.open(cfg)
		if err != nil {
			a.err = fmt.Errorf("open %s source: %w", cfg.CatalogSource, err)
			return
		}

		a.cfg = cfg
		a.closeFn = closeFn
		a.svc = catalog.NewService(catalog.NewRepository(source, catalog.WithFetchTimeout(cfg.FetchTimeout)))
	})
	return a.svc, a.cfg, a.err
}

func (a *app) close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

func (a *app) format() (output.Format, error) {
	f, err := output.Parse(a.flags.output)
	if err != nil {
		return "", err
	}
	return output.Detect(string(f)), nil
}
