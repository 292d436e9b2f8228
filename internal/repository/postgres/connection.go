package postgres

import (
	"fmt"
	"strings"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Models lists every table in migration order
var Models = []any{
	&domain.User{},
	&domain.UserSession{},
	&domain.Effect{},
	&domain.Resonance{},
	&domain.Wonder{},
	&domain.WonderResonanceRating{},
}

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// LogLevel maps an application log level onto GORM's SQL logger
func LogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "info", "warn":
		return logger.Warn
	case "error":
		return logger.Error
	}
	return logger.Silent
}

// nameIndexes make catalog names unique regardless of case. FindOrCreate
// uses them as its conflict target.
var nameIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_effects_name_lower ON effects (LOWER(name))",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_resonances_name_lower ON resonances (LOWER(name))",
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	for _, stmt := range nameIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create name index: %w", err)
		}
	}
	return nil
}

// lowerName is the conflict target matching the name indexes
var lowerName = []clause.Column{{Name: "(LOWER(name))", Raw: true}}

// containsPattern builds an ILIKE pattern matching s literally
func containsPattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
	return "%" + s + "%"
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:      NewUserRepository(db),
		Session:   NewSessionRepository(db),
		Effect:    NewEffectRepository(db),
		Resonance: NewResonanceRepository(db),
		Wonder:    NewWonderRepository(db),
	}
}
