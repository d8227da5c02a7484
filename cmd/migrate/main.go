package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"bizmate/internal/config"
)

const defaultMigrationsDir = "db/migrations"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("migrate %s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Println("Usage: migrate <up|down|steps N|force V|version>")
}

func run(cmd string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dir := defaultMigrationsDir
	if v := os.Getenv("BIZMATE_MIGRATIONS_DIR"); v != "" {
		dir = v
	}

	m, err := migrate.New("file://"+dir, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("opening migrations at %s: %w", dir, err)
	}
	defer m.Close()

	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		log.Println("schema is up to date")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		log.Println("schema reverted")

	case "steps":
		if len(args) < 1 {
			return errors.New("steps requires a count")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", args[0], err)
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		log.Printf("applied %d migration steps", n)

	case "force":
		// Clears a dirty version left by an interrupted migration.
		if len(args) < 1 {
			return errors.New("force requires a version")
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		if err := m.Force(v); err != nil {
			return err
		}
		log.Printf("forced schema version to %d", v)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
