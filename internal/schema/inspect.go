package schema

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type columnInfo struct {
	Name    string `gorm:"column:name"`
	NotNull bool   `gorm:"column:notnull"`
}

func tableExists(tx *gorm.DB, table string) (bool, error) {
	var n int64
	err := tx.Raw(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n).Error
	return n > 0, err
}

func userTableCount(tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Raw(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`).Scan(&n).Error
	return n, err
}

func columns(tx *gorm.DB, table string) (map[string]columnInfo, error) {
	var infos []columnInfo
	if err := tx.Raw(`SELECT name, "notnull" FROM pragma_table_info(?)`, table).Scan(&infos).Error; err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	out := make(map[string]columnInfo, len(infos))
	for _, c := range infos {
		out[strings.ToLower(c.Name)] = c
	}
	return out, nil
}

func hasColumn(tx *gorm.DB, table, column string) (bool, error) {
	cols, err := columns(tx, table)
	if err != nil {
		return false, err
	}
	_, ok := cols[strings.ToLower(column)]
	return ok, nil
}

// addColumn is a no-op when the column is already there.
func addColumn(tx *gorm.DB, table, column, definition string) error {
	ok, err := hasColumn(tx, table, column)
	if err != nil || ok {
		return err
	}
	return tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)).Error
}

// pick returns column when the table has it, otherwise the SQL fallback
// expression.
func pick(cols map[string]columnInfo, column, fallback string) string {
	if _, ok := cols[strings.ToLower(column)]; ok {
		return column
	}
	return fallback
}

// rebuild replaces table with a fresh copy created by ddl. Rows are copied
// with selectList evaluated against the old table. The new table is created
// under a temporary name and renamed last, so foreign keys held by other
// tables keep pointing at the original name.
func rebuild(tx *gorm.DB, table string, ddl func(name string) string, insertCols, selectList string) error {
	tmp := table + "_new"
	stmts := []string{
		fmt.Sprintf("DROP TABLE IF EXISTS %s", tmp),
		ddl(tmp),
		fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", tmp, insertCols, selectList, table),
		fmt.Sprintf("DROP TABLE %s", table),
		fmt.Sprintf("ALTER TABLE %s RENAME TO %s", tmp, table),
	}
	for _, s := range stmts {
		if err := tx.Exec(s).Error; err != nil {
			return fmt.Errorf("rebuild %s: %w", table, err)
		}
	}
	return nil
}

// recreate drops table and creates it from the current definition.
func recreate(tx *gorm.DB, table string, ddl func(name string) string) error {
	if err := tx.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s_new", table)).Error; err != nil {
		return err
	}
	if err := tx.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
		return err
	}
	return tx.Exec(ddl(table)).Error
}

func execAll(tx *gorm.DB, stmts ...string) error {
	for _, s := range stmts {
		if err := tx.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}
