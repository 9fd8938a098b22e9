package migrations

import (
	"gorm.io/gorm"

	storegorm "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/persistence/gormdb"
	usergorm "github.com/Apurer/go-gin-store-api/internal/domains/users/adapters/persistence/gormdb"
)

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&usergorm.UserRecord{},
		&storegorm.ProductRecord{},
		&storegorm.OrderRecord{},
		&storegorm.OrderLineRecord{},
	)
}
