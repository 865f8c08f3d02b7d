package eventsvc

import (
	"context"
	"errors"
	"testing"

	cfgpkg "github.com/rzbill/eventreg/internal/config"
	"github.com/rzbill/eventreg/internal/registry"
	"github.com/rzbill/eventreg/internal/runtime"
	pebblestore "github.com/rzbill/eventreg/internal/storage/pebble"
	logpkg "github.com/rzbill/eventreg/pkg/log"
)

func newServiceForTest(t *testing.T, cfg cfgpkg.Config) *Service {
	t.Helper()
	rt, err := runtime.Open(runtime.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfg})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	logger := logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
	return NewWithLogger(rt, logger)
}

func TestScenario(t *testing.T) {
	ctx := context.Background()
	svc := newServiceForTest(t, cfgpkg.Default())

	id, err := svc.Create(ctx, "", "Launch", "Product launch", 1700000000, 1700003600)
	if err != nil || id != 1 {
		t.Fatalf("create: id=%d err=%v", id, err)
	}
	ev, ok, err := svc.Read(ctx, "default", 1)
	if err != nil || !ok || ev.Name != "Launch" || ev.Status != registry.StatusActive {
		t.Fatalf("read: %+v ok=%v err=%v", ev, ok, err)
	}
	if err := svc.Update(ctx, "default", 1, "Launch v2", "Updated", 1700000000, 1700007200, registry.StatusCompleted); err != nil {
		t.Fatalf("update: %v", err)
	}
	ev, _, _ = svc.Read(ctx, "default", 1)
	if ev.Name != "Launch v2" || ev.EndDate != 1700007200 || ev.Status != registry.StatusCompleted {
		t.Fatalf("after update: %+v", ev)
	}
	if err := svc.Delete(ctx, "default", 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := svc.Read(ctx, "default", 1); ok {
		t.Fatalf("expected absent after delete")
	}
	if n, _ := svc.Count(ctx, "default"); n != 1 {
		t.Fatalf("count=%d want 1", n)
	}
	if list, _ := svc.List(ctx, "default", ""); len(list) != 0 {
		t.Fatalf("list=%v", list)
	}
	if _, ok, _ := svc.ByIndex(ctx, "default", 0); ok {
		t.Fatalf("expected index 0 absent")
	}

	items, next, err := svc.History(ctx, "default", HistoryOptions{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if next != 0 || len(items) != 3 {
		t.Fatalf("history next=%d items=%+v", next, items)
	}
	ops := []registry.Op{registry.OpCreated, registry.OpUpdated, registry.OpDeleted}
	for i, op := range ops {
		if items[i].Op != op {
			t.Fatalf("item %d op=%s want %s", i, items[i].Op, op)
		}
	}
}

func TestListFilter(t *testing.T) {
	ctx := context.Background()
	svc := newServiceForTest(t, cfgpkg.Default())
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if _, err := svc.Create(ctx, "default", name, "", 10, 20); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := svc.Update(ctx, "default", 2, "beta", "", 10, 20, registry.StatusCompleted); err != nil {
		t.Fatalf("update: %v", err)
	}

	cases := []struct {
		filter string
		want   []uint32
	}{
		{"", []uint32{1, 2, 3}},
		{`status == "Completed"`, []uint32{2}},
		{`status == "Active" && name.startsWith("g")`, []uint32{3}},
		{`event_id > 1`, []uint32{2, 3}},
		{`start_date == 10 && end_date == 20`, []uint32{1, 2, 3}},
		{`description != ""`, nil},
	}
	for _, c := range cases {
		got, err := svc.List(ctx, "default", c.filter)
		if err != nil {
			t.Fatalf("list %q: %v", c.filter, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("list %q: got %d events want %v", c.filter, len(got), c.want)
		}
		for i, id := range c.want {
			if got[i].EventID != id {
				t.Fatalf("list %q: got[%d]=%d want %d", c.filter, i, got[i].EventID, id)
			}
		}
	}
}

func TestListFilterInvalid(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.MaxFilterLength = 16
	svc := newServiceForTest(t, cfg)
	for _, expr := range []string{"status ==", "name", "unknown_var == 1", `name == "a very long name here"`} {
		if _, err := svc.List(context.Background(), "default", expr); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("filter %q: expected ErrInvalidFilter, got %v", expr, err)
		}
	}
}

func TestNamespaceValidation(t *testing.T) {
	ctx := context.Background()
	cfg := cfgpkg.Default()
	cfg.AllowedNamespaces = []string{"default", "ops"}
	svc := newServiceForTest(t, cfg)

	if _, err := svc.Create(ctx, "Bad Name", "x", "", 0, 0); !errors.Is(err, ErrInvalidNamespace) {
		t.Fatalf("expected ErrInvalidNamespace for pattern, got %v", err)
	}
	if _, err := svc.Create(ctx, "finance", "x", "", 0, 0); !errors.Is(err, ErrInvalidNamespace) {
		t.Fatalf("expected ErrInvalidNamespace for allow list, got %v", err)
	}
	if _, err := svc.Create(ctx, "ops", "x", "", 0, 0); err != nil {
		t.Fatalf("create in allowed namespace: %v", err)
	}
}

func TestReadsDoNotCreateNamespaces(t *testing.T) {
	ctx := context.Background()
	svc := newServiceForTest(t, cfgpkg.Default())
	if n, err := svc.Count(ctx, "ghost"); err != nil || n != 0 {
		t.Fatalf("count: n=%d err=%v", n, err)
	}
	names, err := svc.ListNamespaces(ctx)
	if err != nil {
		t.Fatalf("list namespaces: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("names=%v", names)
	}
	if _, err := svc.Create(ctx, "ghost", "x", "", 0, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	names, _ = svc.ListNamespaces(ctx)
	if len(names) != 1 || names[0] != "ghost" {
		t.Fatalf("names=%v", names)
	}
}

func TestAutoCreateDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := cfgpkg.Default()
	cfg.AllowAutoCreateNamespaces = false
	svc := newServiceForTest(t, cfg)

	if _, err := svc.Create(ctx, "default", "x", "", 0, 0); !errors.Is(err, ErrNamespaceNotFound) {
		t.Fatalf("expected ErrNamespaceNotFound, got %v", err)
	}
	if _, _, err := svc.Read(ctx, "default", 1); !errors.Is(err, ErrNamespaceNotFound) {
		t.Fatalf("expected ErrNamespaceNotFound on read, got %v", err)
	}
	if _, err := svc.EnsureNamespace(ctx, "default"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := svc.Create(ctx, "default", "x", "", 0, 0); err != nil {
		t.Fatalf("create after ensure: %v", err)
	}
}

func TestNamespaceLimit(t *testing.T) {
	ctx := context.Background()
	cfg := cfgpkg.Default()
	cfg.MaxNamespaces = 2
	svc := newServiceForTest(t, cfg)

	for _, ns := range []string{"a", "b"} {
		if _, err := svc.EnsureNamespace(ctx, ns); err != nil {
			t.Fatalf("ensure %s: %v", ns, err)
		}
	}
	if _, err := svc.EnsureNamespace(ctx, "a"); err != nil {
		t.Fatalf("re-ensure existing: %v", err)
	}
	if _, err := svc.Create(ctx, "c", "x", "", 0, 0); !errors.Is(err, ErrNamespaceLimit) {
		t.Fatalf("expected ErrNamespaceLimit, got %v", err)
	}
}

func TestHistoryPaging(t *testing.T) {
	ctx := context.Background()
	svc := newServiceForTest(t, cfgpkg.Default())
	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, "default", "e", "", 0, 0); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	items, next, err := svc.History(ctx, "default", HistoryOptions{Limit: 2})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 2 || items[0].Seq != 1 || next != 3 {
		t.Fatalf("page1 items=%+v next=%d", items, next)
	}
	items, next, err = svc.History(ctx, "default", HistoryOptions{Limit: 10, Reverse: true})
	if err != nil {
		t.Fatalf("history reverse: %v", err)
	}
	if len(items) != 5 || items[0].Seq != 5 || items[0].EventID != 5 || next != 0 {
		t.Fatalf("reverse items=%+v next=%d", items, next)
	}
}
