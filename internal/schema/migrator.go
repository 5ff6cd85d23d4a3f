package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fcatilizer/bookkeep-sub001/pkg/logger"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/prom"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"gorm.io/gorm"
)

var ErrNewerStore = errors.New("store was written by a newer version")

type Migrator struct {
	db      *store.DB
	history []Version
	log     *logger.ZapLogger
}

type Option func(*Migrator)

// WithHistory replaces the built-in version history.
func WithHistory(history []Version) Option {
	return func(m *Migrator) {
		m.history = history
	}
}

func NewMigrator(db *store.DB, opts ...Option) *Migrator {
	m := &Migrator{
		db:      db,
		history: History(),
		log:     logger.Named("schema"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open brings the store to target, creating it when empty.
func Open(ctx context.Context, db *store.DB, target int) error {
	_, err := NewMigrator(db).Migrate(ctx, target)
	return err
}

// Version reads the schema version recorded in the store.
func (m *Migrator) Version(ctx context.Context) (int, error) {
	var v int
	if err := m.db.Gorm().WithContext(ctx).Raw("PRAGMA user_version").Scan(&v).Error; err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return v, nil
}

func setVersion(tx *gorm.DB, v int) error {
	return tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v)).Error
}

// Migrate moves the store to target and returns the version it ended at.
// Individual step failures are logged and do not stop the run.
func (m *Migrator) Migrate(ctx context.Context, target int) (int, error) {
	if target <= 0 {
		target = CurrentVersion
	}
	if target > m.latest() {
		return 0, fmt.Errorf("unknown schema version %d", target)
	}

	conn := m.db.Gorm().WithContext(ctx)
	current, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}
	tables, err := userTableCount(conn)
	if err != nil {
		return 0, fmt.Errorf("inspect store: %w", err)
	}

	switch {
	case current > target:
		return current, fmt.Errorf("%w: store at %d, target %d", ErrNewerStore, current, target)
	case current == target:
		return current, nil
	case current == 0 && tables == 0 && target == m.latest():
		return target, m.create(ctx, target)
	case current == 0 && tables > 0:
		// stores written before versioning started are at version 1.
		m.log.Warn("store has tables but no version, assuming 1")
		current = 1
	}

	if err := conn.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return current, fmt.Errorf("disable foreign keys: %w", err)
	}
	defer m.enableForeignKeys(ctx)

	for _, v := range m.history {
		if v.Number <= current || v.Number > target {
			continue
		}
		m.log.Info("migrating", "from", current, "to", v.Number)
		for _, step := range v.Steps {
			m.apply(ctx, v.Number, step)
		}
		if err := setVersion(conn, v.Number); err != nil {
			return current, fmt.Errorf("record version %d: %w", v.Number, err)
		}
		current = v.Number
	}
	return current, nil
}

func (m *Migrator) apply(ctx context.Context, version int, step Step) {
	err := m.db.Gorm().WithContext(ctx).Transaction(step.Up)
	if err == nil {
		prom.IncMigrationStep(prom.ResultApplied)
		return
	}
	prom.IncMigrationStep(prom.ResultFailed)
	m.log.Error("migration step failed", "version", version, "step", step.Name, "error", err)

	if step.Fallback == nil {
		return
	}
	if err := m.db.Gorm().WithContext(ctx).Transaction(step.Fallback); err != nil {
		m.log.Error("migration fallback failed", "version", version, "table", step.Table, "error", err)
		return
	}
	prom.IncMigrationStep(prom.ResultRebuilt)
	m.log.Warn("table rebuilt from current definition", "version", version, "table", step.Table)
}

func (m *Migrator) create(ctx context.Context, target int) error {
	return m.db.Gorm().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := execAll(tx, currentDDL()...); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if err := seedExpenseTypes(tx); err != nil {
			return err
		}
		if err := seedPaymentModes(tx); err != nil {
			return err
		}
		m.log.Info("created schema", "version", target)
		return setVersion(tx, target)
	})
}

func (m *Migrator) enableForeignKeys(ctx context.Context) {
	conn := m.db.Gorm().WithContext(ctx)
	if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		m.log.Error("enable foreign keys", "error", err)
		return
	}
	var violations []map[string]any
	if err := conn.Raw("PRAGMA foreign_key_check").Scan(&violations).Error; err != nil {
		m.log.Warn("foreign key check", "error", err)
		return
	}
	if len(violations) > 0 {
		m.log.Warn("foreign key violations after migration", "count", len(violations), "first", violations[0])
	}
}

func (m *Migrator) latest() int {
	if len(m.history) == 0 {
		return 0
	}
	return m.history[len(m.history)-1].Number
}
