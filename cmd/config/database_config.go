package config

import (
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/pkg/database"
	"fmt"
	"gorm.io/gorm"
	"strings"
)

func ConnectDB() (*gorm.DB, error) {
	switch driver := strings.ToLower(utils.GetConfig("DB_DRIVER")); driver {
	case "postgres":
		return database.OpenPostgres(PostgresDSN())
	case "sqlite":
		return database.OpenSQLite(utils.GetConfig("SQLITE_PATH"))
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

func PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
		utils.GetConfig("DB_SSLMODE"),
	)
}
