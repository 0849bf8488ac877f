package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/coparent/internal/backup"
	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/ledger"
	"github.com/julianstephens/coparent/internal/storage"
)

type DoctorCmd struct{}

type checkLevel int

const (
	levelFail checkLevel = iota
	levelWarn
)

type doctor struct {
	ctx      *cli.Context
	hasError bool
}

func (d *doctor) run(name string, level checkLevel, check func() error) {
	err := check()
	switch {
	case err == nil:
		d.ctx.Printf("✓ %s: OK\n", name)
	case level == levelWarn:
		d.ctx.Printf("⚠ %s: WARNING\n", name)
		d.ctx.Printf("   %v\n", err)
	default:
		d.ctx.Printf("❌ %s: FAIL\n", name)
		d.ctx.Printf("   Error: %v\n", err)
		d.hasError = true
	}
}

func (d *doctor) skip(name, reason string) {
	d.ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	d := &doctor{ctx: ctx}

	dbReachable := false
	d.run("Database reachable", levelFail, func() error {
		err := checkDBReachable(ctx)
		dbReachable = err == nil
		return err
	})

	inspector, canInspect := ctx.Store.(storage.Inspector)
	switch {
	case !dbReachable:
		d.skip("Schema version", "database not reachable")
		d.skip("Migrations complete", "database not reachable")
	case !canInspect:
		d.skip("Schema version", "not supported by this store")
		d.skip("Migrations complete", "not supported by this store")
	default:
		d.run("Schema version", levelFail, func() error { return checkSchemaVersion(inspector) })
		d.run("Migrations complete", levelFail, func() error { return checkMigrationsComplete(inspector) })
	}

	if storage.IsSQLite(ctx.Store) {
		d.run("Backups present", levelWarn, func() error { return checkBackupsPresent(ctx) })
	} else {
		d.skip("Backups present", "automatic backups only apply to SQLite")
	}

	var h household.Household
	valid := false
	if dbReachable {
		d.run("Household data", levelFail, func() error {
			var err error
			h, err = ctx.Store.GetHousehold()
			valid = err == nil
			return err
		})
	} else {
		d.skip("Household data", "database not reachable")
	}

	if valid {
		d.run("Schedule resolves", levelFail, func() error { return checkScheduleResolves(ctx, h) })
		d.run("Support statuses", levelWarn, func() error { return checkSupportStatuses(h) })
	} else {
		d.skip("Schedule resolves", "household not loaded")
		d.skip("Support statuses", "household not loaded")
	}

	d.run("Clock/timezone", levelFail, func() error { return checkClockTimezone(ctx.Clock()) })

	ctx.Println()
	if d.hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	loadErr := ctx.Store.Load()
	inspector, ok := ctx.Store.(storage.Inspector)
	if !ok {
		if loadErr != nil {
			return fmt.Errorf("failed to load database: %w", loadErr)
		}
		return nil
	}
	// A schema mismatch fails Load but leaves the connection open; the schema
	// checks report it.
	if err := inspector.Ping(); err != nil {
		if loadErr != nil {
			return fmt.Errorf("failed to load database: %w", loadErr)
		}
		return err
	}
	return nil
}

func checkSchemaVersion(inspector storage.Inspector) error {
	current, latest, err := inspector.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(inspector storage.Inspector) error {
	current, latest, err := inspector.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'coparent init')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'coparent backup create'")
	}
	return nil
}

// checkScheduleResolves resolves the whole current year so a pattern gap
// shows up here instead of in the calendar.
func checkScheduleResolves(ctx *cli.Context, h household.Household) error {
	_, err := ctx.Resolver.ResolveYear(ctx.Today().Year(), h.Pattern, h.Exceptions)
	return err
}

func checkSupportStatuses(h household.Household) error {
	mismatches := ledger.StatusMismatches(h.Support)
	if len(mismatches) == 0 {
		return nil
	}
	var lines []string
	for _, m := range mismatches {
		lines = append(lines, fmt.Sprintf("%s is marked %s but the amounts say %s (ID: %s)",
			m.Entry.Month, m.Entry.Status, m.Derived, m.Entry.ID))
	}
	return fmt.Errorf("%d support entries disagree with their amounts:\n   %s",
		len(mismatches), strings.Join(lines, "\n   "))
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
