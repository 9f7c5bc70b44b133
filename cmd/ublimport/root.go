package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/erp/docimport/internal/infrastructure/config"
	"github.com/erp/docimport/internal/infrastructure/logger"
	"github.com/erp/docimport/internal/infrastructure/persistence"
	"github.com/erp/docimport/internal/infrastructure/ubl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	configPath string
	logLevel   string
	dbDriver   string
	dbPath     string

	log *zap.Logger
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "ublimport",
		Short: "Inspect UBL order documents and match their customer",
		Long: `ublimport reads UBL 2.x Order and RequestForQuotation documents offline.

It detects the document type, prints the canonical order, matches the
customer party against a partner directory and seeds directories with
demo data.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config.toml (default: search the working directory and /etc/docimport)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.dbDriver, "db-driver", "", "Partner directory driver: sqlite or postgres (default: from config)")
	flags.StringVar(&opts.dbPath, "db-path", "", "sqlite directory file (default: from config)")

	cmd.AddCommand(
		newDetectCmd(opts),
		newParseCmd(opts),
		newMatchCmd(opts),
		newSeedCmd(opts),
	)
	return cmd
}

func (o *globalOptions) init() error {
	o.log = logger.NewCLI(o.logLevel)

	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if o.dbDriver != "" {
		cfg.Database.Driver = o.dbDriver
	}
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	o.cfg = cfg
	return nil
}

// parser builds a UBL parser from the loaded config. A negative precision
// keeps the configured one.
func (o *globalOptions) parser(precision int32) *ubl.Parser {
	pc := ubl.Config{
		QuantityPrecision: o.cfg.Import.QuantityPrecision,
		SampleVATs:        o.cfg.Import.SampleVATs,
		DefaultVersion:    o.cfg.Import.DefaultUBLVersion,
	}
	if precision >= 0 {
		pc.QuantityPrecision = precision
	}
	return ubl.NewParser(pc, ubl.WithLogger(o.log))
}

// openDirectory connects the partner directory, creating sqlite schemas on
// the fly. postgres directories must already be migrated.
func (o *globalOptions) openDirectory() (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(o.log, logger.MapGormLogLevel(o.logLevel))
	db, err := persistence.NewDatabase(&o.cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		return nil, err
	}
	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sqlite directory: %w", err)
		}
	}
	o.log.Debug("Partner directory opened",
		zap.String("driver", db.Driver),
		zap.String("path", o.cfg.Database.Path),
	)
	return db, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
