package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls spans for partner directory queries
type DBTracingConfig struct {
	Enabled bool
	// DBSystem is reported as db.system, e.g. postgresql or sqlite
	DBSystem string
	// IncludeVariables keeps bound values in span statements
	IncludeVariables bool
}

// RegisterDBTracing installs the otelgorm plugin on db
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	opts := []otelgorm.Option{
		otelgorm.WithAttributes(attribute.String("db.system", cfg.DBSystem)),
	}
	if !cfg.IncludeVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	logger.Info("Database tracing enabled", zap.String("db_system", cfg.DBSystem))
	return nil
}
