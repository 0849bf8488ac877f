package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/cli/backups"
	"github.com/julianstephens/coparent/internal/cli/custody"
	"github.com/julianstephens/coparent/internal/cli/finance"
	"github.com/julianstephens/coparent/internal/cli/notes"
	"github.com/julianstephens/coparent/internal/cli/system"
	"github.com/julianstephens/coparent/internal/cli/tasks"
	"github.com/julianstephens/coparent/internal/constants"
	"github.com/julianstephens/coparent/internal/errors"
	"github.com/julianstephens/coparent/internal/keyring"
	"github.com/julianstephens/coparent/internal/logger"
	"github.com/julianstephens/coparent/internal/schedule"
	"github.com/julianstephens/coparent/internal/storage"
	"github.com/julianstephens/coparent/internal/storage/postgres"
	"github.com/julianstephens/coparent/internal/utils"
)

type CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite file path, PostgreSQL connection string, or 'keyring'. PostgreSQL passwords must NOT be embedded; use the OS keyring, COPARENT_DB_CONNECTION or .pgpass." type:"string" default:"${default_config}" env:"COPARENT_DB"`
	Debug   bool   `help:"Log debug output to stderr." env:"COPARENT_DEBUG"`

	Init      system.InitCmd       `cmd:"" help:"Initialize coparent storage."`
	Setup     system.SetupCmd      `cmd:"" help:"Set parent names, children, currency and week start."`
	Status    system.StatusCmd     `cmd:"" help:"Show today's custody and a household overview."`
	Schedule  custody.ScheduleCmd  `cmd:"" help:"Manage the weekly custody pattern."`
	Exception custody.ExceptionCmd `cmd:"" help:"Manage one-off schedule overrides."`
	Calendar  custody.CalendarCmd  `cmd:"" help:"Show who has the children when."`
	Expense   finance.ExpenseCmd   `cmd:"" help:"Track shared expenses."`
	Support   finance.SupportCmd   `cmd:"" help:"Track child-support payments."`
	Task      tasks.TaskCmd        `cmd:"" help:"Manage shared tasks."`
	Note      notes.NoteCmd        `cmd:"" help:"Manage the shared notes log."`
	Export    system.ExportCmd     `cmd:"" help:"Export a year to an Excel workbook."`
	Backup    backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	ConfigCmd system.ConfigCmd     `cmd:"" name:"config" help:"Manage the stored PostgreSQL connection."`
	Doctor    system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
}

func newParser(c *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Shared custody schedule, expenses and notes for two households"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	}, options...)
	return kong.New(c, options...)
}

func main() {
	var c CLI
	parser, err := newParser(&c)
	if err != nil {
		errors.Fatal(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := logger.Init(logger.Config{Debug: c.Debug, ConfigDir: configDir(c.Config)}); err != nil {
		errors.Fatal(err)
	}

	store, err := openStore(c.Config)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:    store,
		Resolver: schedule.New(utils.Gregorian{}),
	}

	logger.Debug("Running command", "command", kctx.Command(), "store", store.GetConfigPath())
	err = kctx.Run(appCtx)
	store.Close()
	if err != nil {
		errors.Fatal(err)
	}
}

// openStore resolves 'keyring' and picks the provider. Connection strings
// from the keyring or environment may carry a password; --config values may not.
func openStore(config string) (storage.Provider, error) {
	resolved, err := keyring.ResolveConnectionString(config)
	if err != nil {
		return nil, err
	}
	if resolved != config {
		return storage.NewTrusted(resolved)
	}
	return storage.New(config)
}

// configDir is where logs are written: next to the SQLite file, or the
// default config directory for PostgreSQL.
func configDir(config string) string {
	path := config
	if config == constants.KeyringConfigRef || postgres.IsConnString(config) {
		path = constants.DefaultConfigPath
	}
	expanded, err := storage.ExpandPath(path)
	if err != nil {
		return filepath.Join(os.TempDir(), constants.AppName)
	}
	return filepath.Dir(expanded)
}
