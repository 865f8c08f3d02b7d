package pebblestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rzbill/eventreg/internal/storage/kv"
)

type testMetrics struct {
	wrote        int
	read         int
	batchCommits int
	batchOps     int
	batchBytes   int
}

func (m *testMetrics) ObserveWrite(d time.Duration, bytes int) { m.wrote += bytes }
func (m *testMetrics) ObserveRead(d time.Duration, bytes int)  { m.read += bytes }
func (m *testMetrics) ObserveBatchCommit(d time.Duration, numOps int, bytes int) {
	m.batchCommits++
	m.batchOps += numOps
	m.batchBytes += bytes
}

func newTestDB(t *testing.T) (*DB, *testMetrics) {
	t.Helper()
	dir := t.TempDir()
	metrics := &testMetrics{}
	db, err := Open(Options{
		DataDir:       dir,
		Fsync:         FsyncModeInterval,
		FsyncInterval: 2 * time.Millisecond,
		Metrics:       metrics,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, metrics
}

func TestCRUD(t *testing.T) {
	db, metrics := newTestDB(t)

	key := []byte("k1")
	val := []byte("v1")
	if err := db.Set(key, val); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := db.Get(key)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != string(val) {
		t.Fatalf("got %q want %q", got, val)
	}
	if metrics.read == 0 {
		t.Fatalf("expected read metrics to record bytes")
	}
	if metrics.wrote == 0 {
		t.Fatalf("expected write metrics to record bytes")
	}

	if err := db.Remove(key); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, err := db.Get(key); err != nil || ok {
		t.Fatalf("expected absent after remove, ok=%v err=%v", ok, err)
	}
	if err := db.Remove([]byte("never-set")); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestWriteCommitsAtomically(t *testing.T) {
	db, metrics := newTestDB(t)

	err := db.Write(context.Background(), func(w kv.Writer) error {
		if err := w.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}
		return w.Set([]byte("b"), []byte("2"))
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if metrics.batchCommits == 0 || metrics.batchOps < 2 {
		t.Fatalf("want batch commit with 2 ops, got commits=%d ops=%d", metrics.batchCommits, metrics.batchOps)
	}
	if metrics.batchBytes <= 0 {
		t.Fatalf("expected positive batch bytes")
	}

	boom := errors.New("boom")
	err = db.Write(context.Background(), func(w kv.Writer) error {
		if err := w.Set([]byte("c"), []byte("3")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if _, ok, _ := db.Get([]byte("c")); ok {
		t.Fatalf("failed write must not commit staged keys")
	}
}

func TestScanBoundsAndReverse(t *testing.T) {
	db, _ := newTestDB(t)
	for _, k := range []string{"p/1", "p/2", "p/3", "q/1"} {
		if err := db.Set([]byte(k), []byte(k)); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	var fwd []string
	err := db.Scan(kv.ScanOptions{LowerBound: []byte("p/"), UpperBound: kv.PrefixEnd([]byte("p/"))}, func(k, _ []byte) bool {
		fwd = append(fwd, string(k))
		return true
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(fwd) != 3 || fwd[0] != "p/1" || fwd[2] != "p/3" {
		t.Fatalf("forward scan: %v", fwd)
	}

	var rev []string
	err = db.Scan(kv.ScanOptions{LowerBound: []byte("p/"), UpperBound: kv.PrefixEnd([]byte("p/")), Reverse: true}, func(k, _ []byte) bool {
		rev = append(rev, string(k))
		return len(rev) < 2
	})
	if err != nil {
		t.Fatalf("reverse scan: %v", err)
	}
	if len(rev) != 2 || rev[0] != "p/3" || rev[1] != "p/2" {
		t.Fatalf("reverse scan: %v", rev)
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(Options{DataDir: dir, Fsync: FsyncModeAlways})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err = Open(Options{DataDir: dir, Fsync: FsyncModeAlways})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got, ok, err := db.Get([]byte("k"))
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("after reopen got %q ok=%v err=%v", got, ok, err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestParseFsyncMode(t *testing.T) {
	tests := []struct {
		in      string
		want    FsyncMode
		wantErr bool
	}{
		{in: "", want: FsyncModeAlways},
		{in: "always", want: FsyncModeAlways},
		{in: "Interval", want: FsyncModeInterval},
		{in: "never", want: FsyncModeNever},
		{in: "sometimes", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFsyncMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFsyncMode(%q) err=%v", tt.in, err)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseFsyncMode(%q)=%v want %v", tt.in, got, tt.want)
		}
	}
}

func TestOpenRequiresDataDir(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Fatalf("expected error without DataDir")
	}
}
