package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/backup"
	"github.com/Fcatilizer/bookkeep-sub001/internal/config"
	"github.com/Fcatilizer/bookkeep-sub001/internal/export"
	"github.com/Fcatilizer/bookkeep-sub001/internal/queue"
	"github.com/Fcatilizer/bookkeep-sub001/internal/schema"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/logger"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/redis"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"github.com/pkg/errors"
)

const usage = `usage: cli [--env=path] <command> [flags]

commands:
  migrate        bring the store to the current (or --target) schema version
  version        print the schema version recorded in the store
  backup         write a JSON backup into BACKUP_DIR (or --out)
  restore FILE   replace all business data with the contents of FILE
  wipe           delete all business data, keeping lookups
  export-worker  consume export documents and write them into EXPORT_DIR
`

func main() {
	defer func() { _ = logger.Sync() }()

	args := os.Args[1:]
	envPath := ""
	if len(args) > 0 && strings.HasPrefix(args[0], "--env=") {
		envPath = strings.TrimPrefix(args[0], "--env=")
		args = args[1:]
	}
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := config.Load(envPath); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.Get(), args[0], args[1:]); err != nil {
		logger.Error("command failed", "command", args[0], "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, cmd string, args []string) error {
	if cmd == "export-worker" {
		return exportWorker(ctx, cfg)
	}

	db, err := store.Open(cfg.Store())
	if err != nil {
		return errors.Wrapf(err, "open store %s", cfg.DBPath)
	}
	defer db.Close()

	switch cmd {
	case "migrate":
		fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
		target := fs.Int("target", cfg.DBSchemaVersion, "schema version to migrate to, 0 for the latest")
		if err := fs.Parse(args); err != nil {
			return err
		}
		v, err := schema.NewMigrator(db).Migrate(ctx, *target)
		if err != nil {
			return err
		}
		logger.Info("store migrated", "version", v)
		return nil

	case "version":
		v, err := schema.NewMigrator(db).Version(ctx)
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil

	case "backup":
		fs := flag.NewFlagSet("backup", flag.ContinueOnError)
		out := fs.String("out", "", "backup file path, defaults to a timestamped file in BACKUP_DIR")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := schema.Open(ctx, db, cfg.DBSchemaVersion); err != nil {
			return err
		}
		doc, err := backup.New(db).Export(ctx)
		if err != nil {
			return err
		}
		path := *out
		if path == "" {
			path = filepath.Join(cfg.BackupDir, backup.FileName(time.Now()))
		}
		if err := backup.WriteFile(path, doc); err != nil {
			return err
		}
		logger.Info("backup written", "path", path, "records", doc.Count())
		return nil

	case "restore":
		if len(args) != 1 {
			return errors.New("restore needs exactly one backup file")
		}
		doc, err := backup.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := schema.Open(ctx, db, cfg.DBSchemaVersion); err != nil {
			return err
		}
		if err := backup.New(db).Restore(ctx, doc); err != nil {
			return err
		}
		logger.Info("backup restored", "path", args[0], "records", doc.Count())
		return nil

	case "wipe":
		if err := schema.Open(ctx, db, cfg.DBSchemaVersion); err != nil {
			return err
		}
		return backup.New(db).Wipe(ctx)
	}

	fmt.Fprint(os.Stderr, usage)
	return errors.Errorf("unknown command %q", cmd)
}

func exportWorker(ctx context.Context, cfg *config.Config) error {
	if !cfg.RedisEnabled() {
		return errors.New("export-worker needs REDIS_ADDR")
	}
	redisAdap, err := redis.NewRedisAdapter("default", cfg.RedisUniversalKeyPrefix, cfg.RedisOptions())
	if err != nil {
		return errors.Wrap(err, "connect redis")
	}
	defer redisAdap.Close()

	host, _ := os.Hostname()
	q, err := queue.NewQueue(redisAdap, cfg.ExportQueue(fmt.Sprintf("%s-%d", host, os.Getpid())))
	if err != nil {
		return errors.Wrap(err, "create export queue")
	}
	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", cfg.ExportDir)
	}
	return export.NewWorker(q, &export.DirSink{Dir: cfg.ExportDir}).Run(ctx)
}
