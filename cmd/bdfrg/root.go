package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-bdfrgen/internal/config"
	"github.com/goliatone/go-bdfrgen/pkg/bdfr"
	"github.com/goliatone/go-bdfrgen/pkg/fieldmeta"
	"github.com/goliatone/go-bdfrgen/pkg/logging"
	"github.com/goliatone/go-bdfrgen/pkg/profile"
	"github.com/goliatone/go-bdfrgen/pkg/session"
	"github.com/goliatone/go-bdfrgen/pkg/tree"
)

// app is the state shared by every subcommand once the root pre-run has
// loaded configuration and the field catalog.
type app struct {
	configPath  string
	logLevel    string
	profileName string
	jsonLogs    bool

	cfg     config.Config
	logger  logging.Logger
	catalog *bdfr.Catalog
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "bdfrg",
		Short: "Build Bulk Downloader For Reddit command lines",
		Long: `bdfrg edits a typed bdfr configuration and keeps the matching command line
in sync.

Values can be set from flags, imported from an existing command line, saved as
named profiles, or edited interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.config/bdfrg/config.toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.jsonLogs, "log-json", false, "emit logs as JSON")
	flags.StringVarP(&a.profileName, "profile", "p", "", "named profile to start from")

	cmd.AddCommand(
		newFieldsCmd(a),
		newPreviewCmd(a),
		newAddURLCmd(a),
		newImportCmd(a),
		newEditCmd(a),
		newShowCmd(a),
	)
	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(level)
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.JSON = a.jsonLogs
	a.logger = logging.New(logCfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, a.logger))

	catalog, err := a.loadCatalog()
	if err != nil {
		return fmt.Errorf("load field catalog: %w", err)
	}
	for _, diag := range catalog.Diagnostics {
		a.logger.Warn("field skipped", "path", diag.Path, "type", diag.GoType, "error", diag.Err)
	}
	a.catalog = catalog
	a.logger.Debug("catalog ready", "fields", len(catalog.Schema.Paths()), "documents", catalog.Metadata.Len())
	return nil
}

func (a *app) loadCatalog() (*bdfr.Catalog, error) {
	if a.cfg.MetadataDir == "" {
		return bdfr.DefaultCatalog()
	}
	store, err := fieldmeta.LoadFS(fieldmeta.EmbeddedFS())
	if err != nil {
		return nil, err
	}
	if err := store.AddFS(os.DirFS(a.cfg.MetadataDir)); err != nil {
		return nil, fmt.Errorf("metadata dir %s: %w", a.cfg.MetadataDir, err)
	}
	return bdfr.BuildCatalog(store)
}

// newSession opens a bound session starting from initial (defaults when
// nil), with the selected profile applied on top.
func (a *app) newSession(initial *tree.Tree) (*session.Session, error) {
	sess, err := session.New(a.catalog.Schema,
		session.WithTree(initial),
		session.WithLogger(a.logger),
		session.WithCommandPrefix(a.cfg.CommandPrefix),
	)
	if err != nil {
		return nil, err
	}
	if err := sess.BindAll(nil); err != nil {
		sess.Close()
		return nil, err
	}
	if a.profileName == "" {
		return sess, nil
	}
	p, err := profile.Load(a.cfg.ProfilePath(a.profileName))
	if err != nil {
		sess.Close()
		return nil, err
	}
	if err := sess.ApplyProfile(p); err != nil {
		sess.Close()
		return nil, err
	}
	a.logger.Debug("applied profile", "name", a.profileName, "values", len(p.Values))
	return sess, nil
}

var errNoProfile = errors.New("a profile name is required (--profile)")

// saveProfile persists the session's non-default values under name.
func (a *app) saveProfile(sess *session.Session, name string) (string, error) {
	if name == "" {
		return "", errNoProfile
	}
	p, err := sess.Profile(name)
	if err != nil {
		return "", err
	}
	path := a.cfg.ProfilePath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := profile.Save(path, p); err != nil {
		return "", err
	}
	a.logger.Info("saved profile", "name", name, "path", path, "values", len(p.Values))
	return path, nil
}
