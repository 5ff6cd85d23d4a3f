// Package backup dumps the core tables to a JSON document and loads them
// back.
package backup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/schema"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/logger"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"gorm.io/gorm"
)

const FormatVersion = "1.0"

// Record is one row keyed by column name.
type Record map[string]any

type Document struct {
	Version       string              `json:"version"`
	SchemaVersion int                 `json:"schema_version,omitempty"`
	Timestamp     string              `json:"timestamp"`
	Tables        map[string][]Record `json:"tables"`
}

// Count returns the number of records per table.
func (d *Document) Count() map[string]int {
	out := make(map[string]int, len(d.Tables))
	for name, rows := range d.Tables {
		out[name] = len(rows)
	}
	return out
}

// restoreOrder lists the tables a backup carries, parents first. Payments
// are optional in a document: older backups do not have them.
var restoreOrder = []string{
	schema.TableCustomers,
	schema.TableProducts,
	schema.TableCustomerEvents,
	schema.TableDailyEvents,
	schema.TablePayments,
}

// wipeOrder is children first.
var wipeOrder = []string{
	schema.TablePayments,
	schema.TableDailyEvents,
	schema.TableCustomerEvents,
	schema.TableProducts,
	schema.TableCustomers,
}

type Service struct {
	db  *store.DB
	now func() time.Time
	log *logger.ZapLogger
}

func New(db *store.DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
		log: logger.Named("backup"),
	}
}

// Export reads every backed-up table inside one transaction so the document
// is a consistent snapshot.
func (s *Service) Export(ctx context.Context) (*Document, error) {
	doc := &Document{
		Version:   FormatVersion,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Tables:    make(map[string][]Record, len(restoreOrder)),
	}
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		tx := s.db.Write(ctx)
		if err := tx.Raw("PRAGMA user_version").Scan(&doc.SchemaVersion).Error; err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		for _, table := range restoreOrder {
			var rows []map[string]any
			if err := tx.Table(table).Find(&rows).Error; err != nil {
				return fmt.Errorf("read %s: %w", table, err)
			}
			records := make([]Record, 0, len(rows))
			for _, r := range rows {
				records = append(records, normalize(r))
			}
			doc.Tables[table] = records
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// normalize turns driver byte slices into strings so records encode as text.
func normalize(row map[string]any) Record {
	out := make(Record, len(row))
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		out[k] = v
	}
	return out
}

// Restore replaces the backed-up tables with the document's contents in one
// transaction. Any record the store rejects rolls the whole restore back.
// Existing payments are always cleared, since their jobs are replaced.
func (s *Service) Restore(ctx context.Context, doc *Document) error {
	if doc == nil || doc.Tables == nil {
		return ErrMissingTables
	}
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		tx := s.db.Write(ctx)
		if err := deleteAll(tx, wipeOrder); err != nil {
			return err
		}
		for _, table := range restoreOrder {
			rows, ok := doc.Tables[table]
			if !ok {
				continue
			}
			if err := insert(tx, table, rows); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	s.log.Info("backup restored", "timestamp", doc.Timestamp, "counts", doc.Count())
	return nil
}

// Wipe empties every data table. Lookup tables are left alone.
func (s *Service) Wipe(ctx context.Context) error {
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		return deleteAll(s.db.Write(ctx), wipeOrder)
	})
	if err != nil {
		return fmt.Errorf("wipe: %w", err)
	}
	s.log.Warn("all data tables wiped")
	return nil
}

func deleteAll(tx *gorm.DB, tables []string) error {
	for _, table := range tables {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// insert writes rows into table, keeping only keys that name a real column.
func insert(tx *gorm.DB, table string, rows []Record) error {
	cols, err := columns(tx, table)
	if err != nil {
		return err
	}
	for i, row := range rows {
		values := make(map[string]any, len(row))
		for k, v := range row {
			if name, ok := cols[strings.ToLower(k)]; ok {
				values[name] = v
			}
		}
		if len(values) == 0 {
			return fmt.Errorf("%w: %s record %d has no known columns", ErrMalformedBackup, table, i)
		}
		if err := tx.Table(table).Create(values).Error; err != nil {
			return fmt.Errorf("insert %s record %d: %w", table, i, err)
		}
	}
	return nil
}

// columns maps lower-cased column names to their declared spelling.
func columns(tx *gorm.DB, table string) (map[string]string, error) {
	var names []string
	if err := tx.Raw("SELECT name FROM pragma_table_info(?)", table).Scan(&names).Error; err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[strings.ToLower(n)] = n
	}
	return out, nil
}
