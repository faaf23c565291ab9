package transfer

import (
	migration "Recipe-Share-Backend/cmd/database/migrate"
	"Recipe-Share-Backend/internal/logging"
	"Recipe-Share-Backend/pkg/database"
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 200

// Transfer copies every table from src into dst in foreign-key order inside a
// single dst transaction. Rows already present in dst are skipped, so the
// copy can be re-run. It returns the number of rows read per table.
func Transfer(ctx context.Context, src, dst *gorm.DB) (map[string]int, error) {
	if err := migration.Migrate(dst); err != nil {
		return nil, err
	}

	copied := make(map[string]int)
	err := database.WithTransaction(ctx, dst, func(tx *gorm.DB) error {
		for _, model := range migration.Models() {
			table, n, err := copyTable(ctx, src, tx, model)
			if err != nil {
				return fmt.Errorf("copying %s: %w", table, err)
			}
			copied[table] = n
			logging.Info().Str("table", table).Int("rows", n).Msg("table transferred")
		}

		if database.IsPostgres(tx) {
			return resetSequence(tx, "ingredients", "id")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

func tableName(db *gorm.DB, model any) (string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", err
	}
	return stmt.Schema.Table, nil
}

func copyTable(ctx context.Context, src, tx *gorm.DB, model any) (string, int, error) {
	table, err := tableName(tx, model)
	if err != nil {
		return fmt.Sprintf("%T", model), 0, err
	}

	rows := reflect.New(reflect.SliceOf(reflect.TypeOf(model).Elem()))
	if err := src.WithContext(ctx).Model(model).Find(rows.Interface()).Error; err != nil {
		return table, 0, err
	}

	n := rows.Elem().Len()
	if n == 0 {
		return table, 0, nil
	}
	err = tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows.Interface(), batchSize).Error
	return table, n, err
}

// resetSequence moves a serial column's sequence past the highest copied id.
func resetSequence(tx *gorm.DB, table, column string) error {
	return tx.Exec(
		fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 0) + 1, false) FROM %s",
			table, column, column, table),
	).Error
}
