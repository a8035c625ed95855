// Package postgres implements the registry and partition interfaces on top of
// PostgreSQL via GORM. Partitions are dynamically named tables in the master
// database, managed through the GORM migrator.
package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"org-service/internal/model"
	"org-service/pkg/config"
)

// Store implements store.Registry and store.PartitionManager. The connection
// pool is owned by the Store; callers receive it from Open and pass it to the
// components that need it, there is no package-level handle.
type Store struct {
	db *gorm.DB
}

// Open connects to the master database with the given configuration.
func Open(dbConfig *config.DBConfig) (*Store, error) {
	// Configure Postgres options
	pgConfig := postgres.Config{
		DSN:                  dbConfig.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: gormlogger.Default.LogMode(dbConfig.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	// Get generic database object SQL
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return &Store{db: db}, nil
}

// Migrate creates or updates the master registry tables. The unique indexes
// on organization name, partition name and admin email declared on the models
// are the serialization point for concurrent writes.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&model.Admin{}, &model.Organization{})
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
