package livestatus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flotavista-backend/internal/models"
)

func boolPtr(b bool) *bool { return &b }

// fakeProvider returns canned responses and can block until released, to
// simulate a slow fetch racing a newer one
type fakeProvider struct {
	mu        sync.Mutex
	responses []map[int]models.VehicleOnlineStatus
	err       error
	block     chan struct{}
}

func (f *fakeProvider) FetchStatuses(ctx context.Context, nums []int) (map[int]models.VehicleOnlineStatus, error) {
	f.mu.Lock()
	var resp map[int]models.VehicleOnlineStatus
	if len(f.responses) > 0 {
		resp = f.responses[0]
		f.responses = f.responses[1:]
	}
	block := f.block
	f.block = nil
	err := f.err
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return resp, err
}

func statusOf(online bool) map[int]models.VehicleOnlineStatus {
	return map[int]models.VehicleOnlineStatus{
		100: {VehicleNumber: 100, IsOnline: boolPtr(online), Timestamp: time.Now().UnixMilli()},
	}
}

func TestRefreshCommits(t *testing.T) {
	p := &fakeProvider{responses: []map[int]models.VehicleOnlineStatus{statusOf(true)}}
	r := NewRefresher(p, time.Second)

	got := r.Refresh(context.Background(), []int{100})
	st, ok := got[100]
	if !ok || st.IsOnline == nil || !*st.IsOnline {
		t.Fatalf("expected vehicle 100 online, got %+v", got)
	}
}

func TestRefreshStaleGenerationDiscarded(t *testing.T) {
	release := make(chan struct{})
	p := &fakeProvider{
		responses: []map[int]models.VehicleOnlineStatus{statusOf(false), statusOf(true)},
		block:     release,
	}
	r := NewRefresher(p, 5*time.Second)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Slow first refresh: blocks until released, by which time a newer
		// generation has committed
		r.Refresh(context.Background(), []int{100})
	}()

	// Give the slow refresh time to claim its generation before starting
	// the fast one
	time.Sleep(50 * time.Millisecond)
	r.Refresh(context.Background(), []int{100})

	close(release)
	wg.Wait()

	st := r.Snapshot()[100]
	if st.IsOnline == nil || !*st.IsOnline {
		t.Fatalf("stale offline result overwrote the fresh online one: %+v", st)
	}
}

func TestCommitRechecksGenerationUnderLock(t *testing.T) {
	p := &fakeProvider{responses: []map[int]models.VehicleOnlineStatus{statusOf(true)}}
	r := NewRefresher(p, time.Second)

	commits := 0
	r.OnCommit = func(map[int]models.VehicleOnlineStatus) { commits++ }

	fresh := r.Refresh(context.Background(), []int{100})

	// A newer cycle claims the next generation after generation 1's fetch
	// returned but before its commit ran. The commit must notice and back
	// off instead of overwriting, and must not push the stale map.
	r.gen.Add(1)
	if r.commit(1, statusOf(false)) {
		t.Fatal("commit must reject a generation that is no longer the latest")
	}
	if commits != 1 {
		t.Fatalf("stale commit must not fire OnCommit, got %d commits", commits)
	}
	st := r.Snapshot()[100]
	if st.IsOnline == nil || !*st.IsOnline {
		t.Fatalf("stale offline map overwrote the committed one: %+v", st)
	}

	if !r.commit(r.gen.Load(), fresh) {
		t.Fatal("commit for the latest generation must succeed")
	}
	if commits != 2 {
		t.Fatalf("latest-generation commit must fire OnCommit, got %d commits", commits)
	}
}

func TestRefreshFetchErrorDegradesToUnknown(t *testing.T) {
	p := &fakeProvider{err: errors.New("tracker unreachable")}
	r := NewRefresher(p, time.Second)

	got := r.Refresh(context.Background(), []int{100, 101})
	for _, n := range []int{100, 101} {
		st, ok := got[n]
		if !ok {
			t.Fatalf("vehicle %d missing from degraded snapshot", n)
		}
		if st.IsOnline != nil {
			t.Errorf("vehicle %d must be unknown on fetch failure, got %v", n, *st.IsOnline)
		}
		if st.Error == "" {
			t.Errorf("vehicle %d must carry the fetch error", n)
		}
	}
}

func TestMergeOverlay(t *testing.T) {
	buckets := map[string][]models.EnrichedVehicleEntry{
		"Turno Mañana": {
			{VehicleNumber: 100, Source: models.SourceShift, Label: "Turno Mañana"},
			{VehicleNumber: 101, Source: models.SourceShift, Label: "Turno Mañana"},
		},
	}
	statuses := map[int]models.VehicleOnlineStatus{
		100: {VehicleNumber: 100, IsOnline: boolPtr(true), Timestamp: 1700000000000},
	}

	merged := Merge(buckets, statuses)

	got := merged["Turno Mañana"]
	if got[0].IsOnline == nil || !*got[0].IsOnline {
		t.Errorf("vehicle 100 must be online after merge, got %+v", got[0])
	}
	if got[1].IsOnline != nil {
		t.Errorf("vehicle 101 absent from statuses must stay unknown, got %v", *got[1].IsOnline)
	}

	// The source buckets are rebuilt, not mutated
	if buckets["Turno Mañana"][0].IsOnline != nil {
		t.Error("Merge must not mutate its input")
	}
}
