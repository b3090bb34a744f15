package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/types"
	"github.com/yigyaps/yigyaps/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "yigyaps", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(allModels()...); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	if err := ApplyConstraints(s.db); err != nil {
		s.log.Error("Constraint migration failed", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

func allModels() []any {
	return []any{
		&types.User{},
		&types.ApiKey{},
		&types.SkillPackage{},
		&types.SkillInstallation{},
		&types.SkillReview{},
		&types.SkillMint{},
		&types.RoyaltyLedgerEntry{},
	}
}

// ApplyConstraints creates the uniqueness guarantees the marketplace core
// depends on. Everything here is portable DDL shared by postgres and the
// sqlite test databases:
//
//   - one (package_id, version) per catalog row
//   - at most one ACTIVE installation per (package, agent); the partial index
//     is what makes concurrent installs collapse into idempotent success
//   - one live review per (package, author); soft-deleted rows free the slot
//     so the author can review again
//   - one mint per (package, owner)
func ApplyConstraints(gdb *gorm.DB) error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_skill_package_pkgid_version
			ON skill_package (package_id, version)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_skill_installation_active
			ON skill_installation (package_id, agent_id) WHERE status = 'active'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_skill_review_pkg_author
			ON skill_review (package_id, author_id) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_skill_mint_pkg_owner
			ON skill_mint (package_id, owner_id)`,
	}
	for _, stmt := range stmts {
		if err := gdb.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}
