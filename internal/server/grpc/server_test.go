package grpcserver

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	eventregv1 "github.com/rzbill/eventreg/api/eventreg/v1"
	cfgpkg "github.com/rzbill/eventreg/internal/config"
	"github.com/rzbill/eventreg/internal/runtime"
	pebblestore "github.com/rzbill/eventreg/internal/storage/pebble"
	logpkg "github.com/rzbill/eventreg/pkg/log"
)

const bufSize = 1 << 20

func dialer(s *grpc.Server) func(context.Context, string) (net.Conn, error) {
	lis := bufconn.Listen(bufSize)
	go func() { _ = s.Serve(lis) }()
	return func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }
}

func newTestConn(t *testing.T, cfg cfgpkg.Config) *grpc.ClientConn {
	t.Helper()
	rt, err := runtime.Open(runtime.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfg})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	srv := New(rt, logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{})))
	d := dialer(srv.grpc)
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(d),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		srv.grpc.Stop()
		_ = rt.Close()
	})
	return conn
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestHealthOverGRPC(t *testing.T) {
	conn := newTestConn(t, cfgpkg.Default())
	ctx := testContext(t)
	c := healthpb.NewHealthClient(conn)
	for _, svc := range []string{"", eventregv1.EventsServiceName} {
		res, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: svc})
		if err != nil {
			t.Fatalf("check %q: %v", svc, err)
		}
		if res.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			t.Fatalf("status %q = %v", svc, res.GetStatus())
		}
	}
}

func TestEventScenarioOverGRPC(t *testing.T) {
	conn := newTestConn(t, cfgpkg.Default())
	ctx := testContext(t)
	c := eventregv1.NewEventsClient(conn)

	created, err := c.Create(ctx, &eventregv1.CreateRequest{Name: "Launch", Description: "Product launch", StartDate: 1700000000, EndDate: 1700003600})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.EventID != 1 {
		t.Fatalf("event_id=%d", created.EventID)
	}

	read, err := c.Read(ctx, &eventregv1.ReadRequest{EventID: 1})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !read.Found || read.Event.Name != "Launch" || read.Event.Status != "Active" {
		t.Fatalf("read=%+v", read)
	}

	if _, err := c.Update(ctx, &eventregv1.UpdateRequest{EventID: 1, Name: "Launch v2", Description: "Updated", StartDate: 1700000000, EndDate: 1700007200, Status: "completed"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	at, err := c.ByIndex(ctx, &eventregv1.ByIndexRequest{Index: 0})
	if err != nil {
		t.Fatalf("by index: %v", err)
	}
	if !at.Found || at.Event.Name != "Launch v2" || at.Event.Status != "Completed" || at.Event.EndDate != 1700007200 {
		t.Fatalf("by index=%+v", at)
	}

	if _, err := c.Delete(ctx, &eventregv1.DeleteRequest{EventID: 1}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	read, err = c.Read(ctx, &eventregv1.ReadRequest{EventID: 1})
	if err != nil || read.Found {
		t.Fatalf("read after delete=%+v err=%v", read, err)
	}
	count, err := c.Count(ctx, &eventregv1.CountRequest{})
	if err != nil || count.Count != 1 {
		t.Fatalf("count=%+v err=%v", count, err)
	}
	list, err := c.List(ctx, &eventregv1.ListRequest{})
	if err != nil || len(list.Events) != 0 {
		t.Fatalf("list=%+v err=%v", list, err)
	}

	hist, err := c.History(ctx, &eventregv1.HistoryRequest{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist.Items) != 3 || hist.Items[2].Op != "deleted" || hist.Items[2].Event != nil || hist.Next != 0 {
		t.Fatalf("history=%+v", hist)
	}
}

func TestErrorCodes(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.AllowAutoCreateNamespaces = false
	conn := newTestConn(t, cfg)
	ctx := testContext(t)
	c := eventregv1.NewEventsClient(conn)

	if _, err := c.Create(ctx, &eventregv1.CreateRequest{Namespace: "ops", Name: "x"}); status.Code(err) != codes.NotFound {
		t.Fatalf("unknown namespace code=%v", status.Code(err))
	}
	if _, err := c.List(ctx, &eventregv1.ListRequest{Namespace: "Bad Name"}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("invalid namespace code=%v", status.Code(err))
	}

	ns := eventregv1.NewNamespacesClient(conn)
	if _, err := ns.Create(ctx, &eventregv1.CreateNamespaceRequest{Namespace: "ops"}); err != nil {
		t.Fatalf("create namespace: %v", err)
	}
	if _, err := c.List(ctx, &eventregv1.ListRequest{Namespace: "ops", Filter: "name +"}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("invalid filter code=%v", status.Code(err))
	}
	if _, err := c.Update(ctx, &eventregv1.UpdateRequest{Namespace: "ops", EventID: 1, Status: "paused"}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("invalid status code=%v", status.Code(err))
	}
	names, err := ns.List(ctx, &eventregv1.ListNamespacesRequest{})
	if err != nil || len(names.Namespaces) != 1 || names.Namespaces[0] != "ops" {
		t.Fatalf("namespaces=%+v err=%v", names, err)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	rt, err := runtime.Open(runtime.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfgpkg.Default()})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	defer rt.Close()
	srv := New(rt, logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{})))
	srv.HealthInterval = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
