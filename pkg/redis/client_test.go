package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockCmdable struct {
	mu     sync.Mutex
	values map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{values: map[string]string{}}
}

func (m *mockCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(string)
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStringCmd(ctx)
	value, ok := m.values[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(value)
	return cmd
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := int64(0)
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			removed++
		}
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(removed)
	return cmd
}

func TestSnapshotLifecycle(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	if _, ok, err := client.GetSnapshot(ctx, "rewear_user"); err != nil || ok {
		t.Fatalf("expected absent snapshot, got ok=%v err=%v", ok, err)
	}

	if err := client.SetSnapshot(ctx, "rewear_user", `{"id":"u1"}`); err != nil {
		t.Fatalf("set snapshot: %v", err)
	}
	value, ok, err := client.GetSnapshot(ctx, "rewear_user")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if !ok || value != `{"id":"u1"}` {
		t.Fatalf("unexpected snapshot value %q ok=%v", value, ok)
	}

	if err := client.DelSnapshot(ctx, "rewear_user"); err != nil {
		t.Fatalf("del snapshot: %v", err)
	}
	if _, ok, _ := client.GetSnapshot(ctx, "rewear_user"); ok {
		t.Fatalf("expected snapshot to be removed")
	}

	// Deleting again stays a no-op.
	if err := client.DelSnapshot(ctx, "rewear_user"); err != nil {
		t.Fatalf("del absent snapshot: %v", err)
	}
}

func TestSnapshotKeyNamespacing(t *testing.T) {
	client := &Client{}
	if got := client.SnapshotKey("rewear_user"); got != "rewear:snapshot:rewear_user" {
		t.Fatalf("unexpected snapshot key %s", got)
	}
}
