package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := OpenRedis(mr.Addr(), 2)
	if err != nil {
		t.Fatalf("OpenRedis error: %v", err)
	}
	defer rdb.Close()

	if got := rdb.Options().DB; got != 2 {
		t.Fatalf("DB option = %d, want 2", got)
	}
	if got := rdb.Options().ReadTimeout; got != opTimeout {
		t.Fatalf("read timeout = %s, want %s", got, opTimeout)
	}

	ctx := context.Background()
	if err := rdb.Set(ctx, "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET: %v", err)
	}
	got, err := rdb.Get(ctx, "k").Result()
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if got != "v" {
		t.Fatalf("GET = %q, want %q", got, "v")
	}
}

func TestOpenRedis_Unreachable(t *testing.T) {
	if _, err := OpenRedis("unresolvable-host-gp:6379", 0); err == nil {
		t.Fatal("expected error dialing unreachable redis, got nil")
	}
}
