// Package mock provides shared test doubles for the integration suite: an
// in-memory SQLite database migrated with the production schema and a
// miniredis-backed Redis client.
package mock

import (
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finledger/backend/internal/integration/persistence/model"
)

// Db wraps the in-memory database shared by every scenario.
type Db struct {
	DbConn *gorm.DB
}

var dbOnce sync.Once
var db *Db

// NewDb returns the shared in-memory database, migrating the schema on
// first use.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = &Db{DbConn: openDbConn()}
	})

	return db
}

func openDbConn() *gorm.DB {
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		panic(err)
	}
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.CreditCardModel{},
		&model.StatementModel{},
		&model.TransactionModel{},
	); err != nil {
		panic(err)
	}

	return conn
}

// ClearDb deletes every row so each scenario starts from a clean database.
// Children go first to respect foreign keys.
func (d *Db) ClearDb() error {
	tables := []string{"transactions", "statements", "credit_cards", "categories", "users"}
	for _, table := range tables {
		if err := d.DbConn.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}

	return nil
}

// GetModel maps a table name to its model, used by row-count assertions.
func GetModel(table string) interface{} {
	switch table {
	case "users":
		return &model.UserModel{}
	case "categories":
		return &model.CategoryModel{}
	case "credit_cards":
		return &model.CreditCardModel{}
	case "statements":
		return &model.StatementModel{}
	case "transactions":
		return &model.TransactionModel{}
	}

	return nil
}
