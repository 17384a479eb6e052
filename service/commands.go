package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hootroost/app/config"
	"hootroost/app/repositories"
)

// HandleCommand handles database subcommands and returns an exit code.
// Prompts are read from stdin and reports written to stdout. The commands
// maintain a badger store only; any other configured driver is refused.
func HandleCommand(cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) int {
	if len(args) < 1 {
		printDbHelp(stdout)
		return 1
	}
	if args[0] == "help" {
		printDbHelp(stdout)
		return 0
	}

	path := defaultBadgerPath
	if cfg != nil {
		if cfg.Store.Driver != "" && cfg.Store.Driver != config.DriverBadger {
			fmt.Fprintf(stdout, "Error: db commands maintain the badger store, but store.driver is %q\n", cfg.Store.Driver)
			return 1
		}
		if cfg.Store.BadgerPath != "" {
			path = cfg.Store.BadgerPath
		}
	}

	tool := newBadgerTool(path, stdin, stdout)
	switch cmd := args[0]; cmd {
	case "clean":
		return tool.clean()
	case "init":
		return tool.initialize()
	case "backup":
		file := ""
		if len(args) > 1 {
			file = args[1]
		}
		return tool.backup(file)
	case "restore":
		if len(args) < 2 {
			return tool.fail("Error: backup file path required for restore")
		}
		return tool.restore(args[1])
	default:
		fmt.Fprintf(stdout, "Unknown db command: %s\n\n", cmd)
		printDbHelp(stdout)
		return 1
	}
}

func printDbHelp(w io.Writer) {
	fmt.Fprintln(w, `Usage: hootroost db <command>

Commands:
  init                            Initialize a new empty badger database
  clean                           Remove the badger database
  backup [file]                   Create a backup of the database
  restore <file>                  Restore database from backup
  help                            Display this help message

Only the badger driver is supported.`)
}

// badgerTool runs maintenance commands against the badger database at path.
// Each command reports to out and returns a process exit code.
type badgerTool struct {
	path      string
	backupDir string
	in        *bufio.Reader
	out       io.Writer
}

// newBadgerTool keeps backups in a "backups" directory next to path.
func newBadgerTool(path string, in io.Reader, out io.Writer) *badgerTool {
	return &badgerTool{
		path:      path,
		backupDir: filepath.Join(filepath.Dir(path), "backups"),
		in:        bufio.NewReader(in),
		out:       out,
	}
}

func (b *badgerTool) fail(format string, args ...any) int {
	fmt.Fprintf(b.out, format+"\n", args...)
	return 1
}

func (b *badgerTool) ok(format string, args ...any) int {
	fmt.Fprintf(b.out, format+"\n", args...)
	return 0
}

func (b *badgerTool) exists() bool {
	_, err := os.Stat(b.path)
	return err == nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (b *badgerTool) confirm(question string) bool {
	fmt.Fprintf(b.out, "%s [y/N] ", question)
	line, _ := b.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// withStore opens the database, runs fn and closes it again.
func (b *badgerTool) withStore(fn func(*repositories.BadgerStore) error) error {
	store, err := repositories.NewBadgerStore(b.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := fn(store); err != nil {
		store.Close()
		return err
	}
	return store.Close()
}

func (b *badgerTool) clean() int {
	if !b.exists() {
		return b.ok("Database is already clean (does not exist)")
	}
	if !b.confirm("Are you sure you want to clean the database? This cannot be undone.") {
		return b.fail("Operation cancelled")
	}
	if err := os.RemoveAll(b.path); err != nil {
		return b.fail("Failed to clean database: %v", err)
	}
	return b.ok("Database cleaned successfully")
}

func (b *badgerTool) initialize() int {
	if b.exists() {
		return b.fail("Database already exists at %s. Use 'clean' first if you want to reinitialize.", b.path)
	}
	if err := os.MkdirAll(b.path, 0755); err != nil {
		return b.fail("Failed to create database directory: %v", err)
	}
	if err := b.withStore(func(*repositories.BadgerStore) error { return nil }); err != nil {
		return b.fail("Failed to initialize database: %v", err)
	}
	return b.ok("Database initialized successfully")
}

// backup writes a backup of the database to file, or to a timestamped file
// under backupDir when file is empty.
func (b *badgerTool) backup(file string) int {
	if !b.exists() {
		return b.fail("No database exists to backup")
	}
	if file == "" {
		if err := os.MkdirAll(b.backupDir, 0755); err != nil {
			return b.fail("Failed to create backup directory: %v", err)
		}
		file = filepath.Join(b.backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	}

	f, err := os.Create(file)
	if err != nil {
		return b.fail("Failed to create backup file: %v", err)
	}
	err = b.withStore(func(store *repositories.BadgerStore) error { return store.Backup(f) })
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(file)
		return b.fail("Failed to backup database: %v", err)
	}
	return b.ok("Database backed up successfully to %s", file)
}

// restore replaces the database with the contents of file.
func (b *badgerTool) restore(file string) int {
	fi, err := os.Stat(file)
	switch {
	case os.IsNotExist(err):
		return b.fail("Backup file does not exist: %s", file)
	case err != nil:
		return b.fail("Failed to stat backup file: %v", err)
	case fi.Size() == 0:
		return b.fail("Backup file is empty: %s", file)
	}

	if b.exists() {
		if !b.confirm("Existing database found. Do you want to replace it?") {
			return b.fail("Operation cancelled")
		}
		if err := os.RemoveAll(b.path); err != nil {
			return b.fail("Failed to remove existing database: %v", err)
		}
	}
	if err := os.MkdirAll(b.path, 0755); err != nil {
		return b.fail("Failed to create database directory: %v", err)
	}

	f, err := os.Open(file)
	if err != nil {
		return b.fail("Failed to open backup file: %v", err)
	}
	defer f.Close()

	err = b.withStore(func(store *repositories.BadgerStore) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return store.Load(f)
	})
	if err != nil {
		return b.fail("Failed to restore database: %v", err)
	}
	return b.ok("Database restored successfully")
}
