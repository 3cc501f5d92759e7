package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hagwonlab/academy-backend/internal/logger"
	"github.com/hagwonlab/academy-backend/internal/types"
	"github.com/hagwonlab/academy-backend/internal/utils"
)

type DatabaseService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewDatabaseService opens postgres by default; DB_DRIVER=sqlite with
// DB_PATH switches to an embedded file for local runs.
func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
	serviceLog := log.With("service", "DatabaseService")

	driver := utils.GetEnv("DB_DRIVER", "postgres", log)

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		path := utils.GetEnv("DB_PATH", "academy.db", log)
		dialector = sqlite.Open(path)
	default:
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "academy", log)
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		dialector = postgres.Open(dsn)
	}

	log.Info("Connecting to database...", "driver", driver)
	gdb, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("Failed to connect to database: %w", err)
	}

	if gdb.Dialector.Name() == "postgres" {
		if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			log.Error("Failed to enable uuid-ossp extension", "error", err)
			return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
		}
	}

	return &DatabaseService{db: gdb, log: serviceLog}, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := Migrate(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *DatabaseService) DB() *gorm.DB {
	return s.db
}

// Migrate is shared with the repo test harness so tests run against the
// same schema and constraints as the service.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Class{},
		&types.ClassEnrollment{},
		&types.Question{},
		&types.Exam{},
		&types.ExamQuestion{},
		&types.Assignment{},
		&types.Submission{},
		&types.SubmissionAnswer{},
		&types.WrongNote{},
	); err != nil {
		return err
	}

	// One live assignment per (exam, student): cancelled rows do not
	// count, so this has to be a partial index rather than a gorm tag.
	if err := gdb.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_assignment_active_pair
		ON assignment (exam_id, student_id)
		WHERE status <> 'cancelled' AND deleted_at IS NULL
	`).Error; err != nil {
		return fmt.Errorf("Failed to create idx_assignment_active_pair: %w", err)
	}

	if gdb.Dialector.Name() == "postgres" {
		// Wrong notes ride on their originating assignment so exam
		// deletion sweeps them even outside the service path.
		if err := gdb.Exec(`
			ALTER TABLE "wrong_note"
			DROP CONSTRAINT IF EXISTS "fk_wrong_note_assignment_id";
		`).Error; err != nil {
			return fmt.Errorf("Failed to drop fk_wrong_note_assignment_id: %w", err)
		}
		if err := gdb.Exec(`
			ALTER TABLE "wrong_note"
			ADD CONSTRAINT "fk_wrong_note_assignment_id"
			FOREIGN KEY ("assignment_id")
			REFERENCES "assignment"("id")
			ON DELETE CASCADE
		`).Error; err != nil {
			return fmt.Errorf("Failed to add fk_wrong_note_assignment_id: %w", err)
		}
	}
	return nil
}
