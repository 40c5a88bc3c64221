package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/poseidon-capital/poseidon-api/internal/core/domain"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func newRecordingAuditRepo(want int) *recordingAuditRepo {
	return &recordingAuditRepo{done: make(chan struct{}), want: want}
}

func (r *recordingAuditRepo) Record(_ context.Context, event domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func (r *recordingAuditRepo) recorded() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}
}

func TestAuditDispatcher_DeliversEvents(t *testing.T) {
	repo := newRecordingAuditRepo(3)
	d := NewAuditDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.AuditEvent{Kind: domain.AuditLoginSuccess, Username: "alice"})
	d.Enqueue(domain.AuditEvent{Kind: domain.AuditLoginFailure, Username: "bob"})
	d.Enqueue(domain.AuditEvent{Kind: domain.AuditLogout, Username: "alice"})

	waitFor(t, repo.done)

	kinds := map[string]bool{}
	for _, e := range repo.recorded() {
		kinds[e.Kind] = true
	}
	for _, want := range []string{domain.AuditLoginSuccess, domain.AuditLoginFailure, domain.AuditLogout} {
		if !kinds[want] {
			t.Fatalf("event kind %s never recorded", want)
		}
	}
}

func TestAuditDispatcher_SameUserKeepsOrder(t *testing.T) {
	const events = 32
	repo := newRecordingAuditRepo(events)
	d := NewAuditDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < events; i++ {
		kind := domain.AuditLoginSuccess
		if i%2 == 1 {
			kind = domain.AuditLogout
		}
		d.Enqueue(domain.AuditEvent{Kind: kind, Username: "carol", AccountID: "1", OccurredAt: time.Unix(int64(i), 0)})
	}

	waitFor(t, repo.done)

	recorded := repo.recorded()
	if len(recorded) != events {
		t.Fatalf("expected %d events, got %d", events, len(recorded))
	}
	for i, e := range recorded {
		if e.OccurredAt.Unix() != int64(i) {
			t.Fatalf("event %d out of order: %v", i, e.OccurredAt)
		}
	}
}

func TestAuditDispatcher_ShardIsStable(t *testing.T) {
	d := NewAuditDispatcher(4, newRecordingAuditRepo(0), zerolog.Nop())

	first := d.shardIndex("dave")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("dave"); got != first {
			t.Fatalf("shard moved: %d then %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard out of range: %d", first)
	}
}
