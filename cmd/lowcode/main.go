package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lowcodejsorg/lowcodejs-sub005/cmd/config"
	"github.com/lowcodejsorg/lowcodejs-sub005/cmd/lowcode/wire"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/logger"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/domain"
	"github.com/lowcodejsorg/lowcodejs-sub005/internal/tables/usecases"

	"github.com/spf13/pflag"
)

const usage = `usage: lowcode [flags] <command> [args]

commands:
  migrate                      create or update the metadata tables
  tables [--trashed]           list tables
  fields <table>               list the fields of a table in form order
  trash-table <table>          move a table to the trash
  restore-table <table>        bring a table back from the trash
  describe <table>             print the compiled schema of a table
  check <table> <payload.json> validate a row payload without writing it
`

// version is replaced at build time through -ldflags "-X main.version=...".
var version = "development"

func main() {
	flags := pflag.NewFlagSet("lowcode", pflag.ExitOnError)
	logLevel := flags.String("log-level", "", "overrides general.log_level")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	cfg := config.LoadConfig()
	level := cfg.General.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	slog.SetDefault(logger.Setup(level).With(slog.String("version", version)))

	// repositories migrate their tables when they are built
	core, cleanup, err := wire.InitializeCore()
	if err != nil {
		slog.Error("initializing core", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = run(context.Background(), core, flags.Args(), os.Stdout)
	cleanup()
	if err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, core *wire.Core, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing command, see --help")
	}

	switch args[0] {
	case "migrate":
		slog.Info("metadata tables are up to date")
		return nil
	case "tables":
		trashed := len(args) == 2 && args[1] == "--trashed"
		if len(args) > 2 || (len(args) == 2 && !trashed) {
			return errors.New("usage: lowcode tables [--trashed]")
		}
		return listTables(ctx, core.Tables, trashed, out)
	case "fields":
		if len(args) != 2 {
			return errors.New("usage: lowcode fields <table>")
		}
		return listFields(ctx, core.Fields, domain.Slug(args[1]), out)
	case "trash-table", "restore-table":
		if len(args) != 2 {
			return fmt.Errorf("usage: lowcode %s <table>", args[0])
		}
		return setTableTrashed(ctx, core.Tables, domain.Slug(args[1]), args[0] == "trash-table", out)
	case "describe":
		if len(args) != 2 {
			return errors.New("usage: lowcode describe <table>")
		}
		return describe(ctx, core.Registry, domain.Slug(args[1]), out)
	case "check":
		if len(args) != 3 {
			return errors.New("usage: lowcode check <table> <payload.json>")
		}
		return check(ctx, core.Registry, domain.Slug(args[1]), args[2], out)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func listTables(ctx context.Context, tables usecases.TableService, trashed bool, out io.Writer) error {
	pagination := usecases.Pagination{Page: 1, PerPage: usecases.MaxPerPage}
	for {
		page, err := tables.ListTables(ctx, usecases.TableFilter{Trashed: trashed}, pagination)
		if err != nil {
			return err
		}
		for _, table := range page.Data {
			fmt.Fprintf(out, "%-32s %-12s v%d\n", table.Slug, table.Type, table.SchemaVersion)
		}
		if pagination.Page >= page.Meta.LastPage {
			return nil
		}
		pagination.Page++
	}
}

func listFields(ctx context.Context, fields usecases.FieldService, slug domain.Slug, out io.Writer) error {
	list, err := fields.ListFields(ctx, slug)
	if err != nil {
		return err
	}
	for _, field := range list {
		fmt.Fprintf(out, "%-32s %-14s %s\n", field.Slug, field.Type, field.State())
	}
	return nil
}

func setTableTrashed(ctx context.Context, tables usecases.TableService, slug domain.Slug, trashed bool, out io.Writer) error {
	var (
		table domain.Table
		err   error
	)
	if trashed {
		table, err = tables.TrashTable(ctx, slug)
	} else {
		table, err = tables.RestoreTable(ctx, slug)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s\n", table.Slug, table.State())
	return nil
}

func describe(ctx context.Context, registry *usecases.Registry, slug domain.Slug, out io.Writer) error {
	store, err := registry.Resolve(ctx, slug)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(store.Descriptor())
}

func check(ctx context.Context, registry *usecases.Registry, slug domain.Slug, path string, out io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading payload: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}

	store, err := registry.Resolve(ctx, slug)
	if err != nil {
		return err
	}

	data, err := store.Descriptor().ValidateCreate(payload)
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		for key, fieldErr := range validation.FieldErrors {
			fmt.Fprintf(out, "%s: %s\n", key, fieldErr.Error())
		}
		return err
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
