package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/coparent/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS test_data (
		id INTEGER PRIMARY KEY,
		name TEXT,
		value INTEGER
	)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO test_data (id, name, value) VALUES (1, 'test1', 100), (2, 'test2', 200)"); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

// steppingClock returns a clock that advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func newTestManager(t *testing.T, dbPath string) *Manager {
	t.Helper()
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))
	return mgr
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM test_data").Scan(&count); err != nil {
		t.Fatalf("failed to query %s: %v", path, err)
	}
	return count
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(t, dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Errorf("backup file was not created: %s", backupPath)
	}
	if want := filepath.Join(mgr.GetBackupDir(), "coparent-20260301-090000.db"); backupPath != want {
		t.Errorf("backup path = %s, want %s", backupPath, want)
	}
	if count := countRows(t, backupPath); count != 2 {
		t.Errorf("expected 2 rows in backup, got %d", count)
	}
}

func TestBackupDirNextToDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join("/data", "coparent.db"))
	if want := filepath.Join("/data", constants.BackupDirName); mgr.GetBackupDir() != want {
		t.Errorf("GetBackupDir() = %s, want %s", mgr.GetBackupDir(), want)
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(t, dbPath)

	var paths []string
	for i := 0; i < constants.MaxBackups+3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		paths = append(paths, path)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	for _, old := range paths[:3] {
		if _, err := os.Stat(old); !os.IsNotExist(err) {
			t.Errorf("oldest backup %s should have been pruned", filepath.Base(old))
		}
	}
	if backups[0].Path != paths[len(paths)-1] {
		t.Errorf("newest backup = %s, want %s", backups[0].Path, paths[len(paths)-1])
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(t, dbPath)

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}

	// foreign files in the directory are ignored
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "coparent-garbage.db"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 0; i < len(backups)-1; i++ {
		if !backups[i].Timestamp.After(backups[i+1].Timestamp) {
			t.Errorf("backups not sorted newest first: %v then %v", backups[i].Timestamp, backups[i+1].Timestamp)
		}
	}
	for _, b := range backups {
		if b.Size == 0 {
			t.Errorf("backup %s has zero size", b.Path)
		}
	}
}

func TestListBackupsMissingDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "coparent.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	frozen := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return frozen }

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		if seen[path] {
			t.Errorf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	if want := "coparent-20260301-090000-2.db"; filepath.Base(backups[0].Path) != want {
		t.Errorf("newest backup = %s, want %s", filepath.Base(backups[0].Path), want)
	}
	if want := "coparent-20260301-090000.db"; filepath.Base(backups[2].Path) != want {
		t.Errorf("oldest backup = %s, want %s", filepath.Base(backups[2].Path), want)
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name    string
		wantOK  bool
		wantSeq int
	}{
		{name: "coparent-20260301-090000.db", wantOK: true},
		{name: "coparent-20260301-090000-4.db", wantOK: true, wantSeq: 4},
		{name: "coparent-20260301-090000-x.db", wantOK: false},
		{name: "coparent-2026.db", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, seq, ok := parseBackupName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("parseBackupName() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if seq != tt.wantSeq {
				t.Errorf("seq = %d, want %d", seq, tt.wantSeq)
			}
			if want := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local); !ts.Equal(want) {
				t.Errorf("timestamp = %v, want %v", ts, want)
			}
		})
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(t, dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO test_data (id, name, value) VALUES (3, 'test3', 300)"); err != nil {
		t.Fatalf("failed to modify database: %v", err)
	}
	db.Close()

	if count := countRows(t, dbPath); count != 3 {
		t.Fatalf("expected 3 rows before restore, got %d", count)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	if count := countRows(t, dbPath); count != 2 {
		t.Errorf("expected 2 rows after restore, got %d", count)
	}
	if safety == "" {
		t.Fatal("RestoreBackup should report the safety backup")
	}
	if count := countRows(t, safety); count != 3 {
		t.Errorf("safety backup should hold the pre-restore state, got %d rows", count)
	}
}

func TestRestoreBackupWithoutCurrentDatabase(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(t, dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(dbPath); err != nil {
		t.Fatal(err)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if safety != "" {
		t.Errorf("safety = %q, want empty when there was nothing to save", safety)
	}
	if count := countRows(t, dbPath); count != 2 {
		t.Errorf("expected 2 rows after restore, got %d", count)
	}
}

func TestRestoreDoesNotPruneSourceBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(t, dbPath)

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < constants.MaxBackups; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := mgr.RestoreBackup(first); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if _, err := os.Stat(first); err != nil {
		t.Errorf("restored backup should survive: %v", err)
	}
}

func TestRestoreBackupMissingFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(t, dbPath)

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected error when restoring a missing file")
	}
}

func TestVerifyBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	if err := verifyBackup(dbPath); err != nil {
		t.Errorf("verifyBackup failed for valid database: %v", err)
	}

	invalidPath := filepath.Join(t.TempDir(), "invalid.db")
	if err := os.WriteFile(invalidPath, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to create invalid file: %v", err)
	}
	if err := verifyBackup(invalidPath); err == nil {
		t.Error("verifyBackup should fail for invalid database")
	}
}
