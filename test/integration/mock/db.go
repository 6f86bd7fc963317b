// Package mock provides in-process test doubles for the integration suite.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory SQLite connection used by the test server.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the singleton test database and migrates the given models.
// The keys of the models map are table names, used by database
// assertion steps to resolve a table back to its model.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps every session on the same in-memory
	// database.
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	modelList := make([]any, 0, len(models))
	for _, model := range models {
		modelList = append(modelList, model)
	}

	if err := conn.AutoMigrate(modelList...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	for _, model := range modelList {
		if !conn.Migrator().HasTable(model) {
			panic(fmt.Sprintf("table for model %T was not created", model))
		}
	}

	return &Db{DbConn: conn, models: models}
}

// Reset wipes every table so scenarios start from a clean database.
func (d *Db) Reset() error {
	for table, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to reset table %s: %w", table, err)
		}
	}
	return nil
}

// GetModel resolves a table name to its registered model.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
