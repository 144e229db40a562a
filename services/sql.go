package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brightpath-edu/academy_api/model"
	"github.com/brightpath-edu/academy_api/shared"
)

// SqlService owns the relational store. Postgres in deployment, sqlite
// for local development, selected by DB_DRIVER.
type SqlService struct {
	context.DefaultService
	db *gorm.DB

	driver string
	dsn    string
}

const SQL_SVC = "sql_svc"

func (ds SqlService) Id() string {
	return SQL_SVC
}

// Db Access to raw SqlService db
func (ds SqlService) Db() *gorm.DB {
	return ds.db
}

func (ds *SqlService) Configure(ctx *context.Context) error {
	ds.driver = os.Getenv("DB_DRIVER")
	if ds.driver == "" {
		ds.driver = "postgres"
	}

	switch ds.driver {
	case "sqlite":
		ds.dsn = os.Getenv("DB_DATABASE")
		if ds.dsn == "" {
			ds.dsn = "academy.db"
		}
	default:
		ds.dsn = os.Getenv("DATABASE_URL")
		if ds.dsn == "" {
			// Fallback to individual environment variables
			host := os.Getenv("DB_HOST")
			if host == "" {
				host = "localhost"
			}
			port := os.Getenv("DB_PORT")
			if port == "" {
				port = "5432"
			}
			user := os.Getenv("DB_USER")
			if user == "" {
				user = "postgres"
			}
			password := os.Getenv("DB_PASSWORD")
			if password == "" {
				password = "postgres"
			}
			dbname := os.Getenv("DB_NAME")
			if dbname == "" {
				dbname = "academy_api"
			}
			sslmode := os.Getenv("DB_SSLMODE")
			if sslmode == "" {
				sslmode = "disable"
			}

			ds.dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
				host, user, password, dbname, port, sslmode)
		}
	}

	return ds.DefaultService.Configure(ctx)
}

// Start opens the connection and migrates any tables that have changed
// since last runtime.
func (ds *SqlService) Start() (err error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	}

	switch ds.driver {
	case "sqlite":
		ds.db, err = gorm.Open(sqlite.Open(ds.dsn), config)
	default:
		ds.db, err = gorm.Open(postgres.Open(ds.dsn), config)
	}
	if err != nil {
		return err
	}

	models := []interface{}{
		&model.Course{},
		&model.Lesson{},
		&model.LessonProgress{},
		&model.CourseEnrollment{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqlService) Shutdown() {
}

// HandleError classifies a storage failure into the engine's error
// taxonomy. Record-not-found stays a caller error; everything else is
// surfaced as retryable storage unavailability, which is safe because
// submission writes are keyed upserts.
func (ds *SqlService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := shared.GetAppError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewAppError(404, shared.KindLessonNotFound, err, "Record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		log.WithFields(log.Fields{"error": err.Error()}).Warn("Duplicate key on upsert path")
		return shared.NewStorageError(err)
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		log.WithFields(log.Fields{"error": err.Error()}).Warn("Unique constraint hit on upsert path")
		return shared.NewStorageError(err)
	default:
		log.WithFields(log.Fields{"error": err.Error()}).Error("Database error occurred")
		return shared.NewStorageError(err)
	}
}
