package grpcx

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
)

func TestHealthServerRoundTrip(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := NewServer(runtime.DiscardLogger())
	srv.SetServing("interview", true)
	go func() {
		_ = srv.Serve(lis)
	}()
	defer srv.Stop()

	conn, err := Dial(lis.Addr().String(), DialOptions{})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	got, err := CheckHealth(ctx, conn, "interview")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got != "SERVING" {
		t.Fatalf("expected SERVING, got %s", got)
	}

	srv.SetServing("interview", false)
	got, err = CheckHealth(ctx, conn, "interview")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got != "NOT_SERVING" {
		t.Fatalf("expected NOT_SERVING, got %s", got)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if RequestIDFromContext(ctx) != "" {
		t.Fatal("empty id should not be stored")
	}
	ctx = WithRequestID(ctx, "r-1")
	if RequestIDFromContext(ctx) != "r-1" {
		t.Fatal("id not stored")
	}
}
