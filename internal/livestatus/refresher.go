package livestatus

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"flotavista-backend/internal/models"
)

// Provider fetches the live online/offline signal for a set of vehicles.
// A vehicle missing from the returned map means "unknown", never offline.
type Provider interface {
	FetchStatuses(ctx context.Context, vehicleNumbers []int) (map[int]models.VehicleOnlineStatus, error)
}

// Refresher serializes live-status refresh cycles with a last-request-wins
// policy. Every refresh takes the next generation number; a result arriving
// after a newer refresh has started is discarded instead of overwriting
// fresher data. The committed snapshot is swapped whole, so readers never
// see a half-updated map.
type Refresher struct {
	provider Provider
	timeout  time.Duration

	// OnCommit, when set, is called with the snapshot after each successful
	// commit. Used to push updates to dashboard websocket clients.
	OnCommit func(map[int]models.VehicleOnlineStatus)

	gen atomic.Int64

	mu      sync.RWMutex
	current map[int]models.VehicleOnlineStatus
}

// NewRefresher wraps a provider. timeout bounds each fetch; zero means a
// 10 second default.
func NewRefresher(p Provider, timeout time.Duration) *Refresher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Refresher{
		provider: p,
		timeout:  timeout,
		current:  make(map[int]models.VehicleOnlineStatus),
	}
}

// Refresh runs one refresh cycle for the given vehicles and returns the
// snapshot that ended up committed (which is the previous one when this
// cycle lost the generation race). A fetch failure degrades to all-unknown
// entries carrying the error string; it never fails the caller.
func (r *Refresher) Refresh(ctx context.Context, vehicleNumbers []int) map[int]models.VehicleOnlineStatus {
	gen := r.gen.Add(1)

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	statuses, err := r.provider.FetchStatuses(fetchCtx, vehicleNumbers)
	if err != nil {
		log.Printf("⚠️  Live status fetch failed (generation %d): %v", gen, err)
		statuses = make(map[int]models.VehicleOnlineStatus, len(vehicleNumbers))
		now := time.Now().UnixMilli()
		for _, n := range vehicleNumbers {
			statuses[n] = models.VehicleOnlineStatus{
				VehicleNumber: n,
				Timestamp:     now,
				Error:         err.Error(),
			}
		}
	}

	if !r.commit(gen, statuses) {
		log.Printf("🗑️  Discarding stale live-status result (generation %d, latest %d)", gen, r.gen.Load())
	}
	return r.Snapshot()
}

// commit swaps in the fetched map if gen is still the latest generation.
// The staleness check has to hold while the map is swapped, so it runs
// under the same lock. Checking before locking leaves a window where a
// newer cycle commits first and this one overwrites it with stale data.
func (r *Refresher) commit(gen int64, statuses map[int]models.VehicleOnlineStatus) bool {
	r.mu.Lock()
	if r.gen.Load() != gen {
		r.mu.Unlock()
		return false
	}
	r.current = statuses
	r.mu.Unlock()

	if r.OnCommit != nil {
		r.OnCommit(r.Snapshot())
	}
	return true
}

// Snapshot returns a copy of the last committed status map
func (r *Refresher) Snapshot() map[int]models.VehicleOnlineStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int]models.VehicleOnlineStatus, len(r.current))
	for k, v := range r.current {
		out[k] = v
	}
	return out
}

// Merge overlays a live-status map onto aggregated fleet buckets by vehicle
// number. The input buckets are not mutated; vehicles absent from statuses
// keep their tri-state nil IsOnline.
func Merge(buckets map[string][]models.EnrichedVehicleEntry, statuses map[int]models.VehicleOnlineStatus) map[string][]models.EnrichedVehicleEntry {
	merged := make(map[string][]models.EnrichedVehicleEntry, len(buckets))
	for label, entries := range buckets {
		out := make([]models.EnrichedVehicleEntry, len(entries))
		copy(out, entries)
		for i := range out {
			if st, ok := statuses[out[i].VehicleNumber]; ok {
				out[i].IsOnline = st.IsOnline
				out[i].StatusTimestamp = st.Timestamp
				out[i].StatusError = st.Error
			}
		}
		merged[label] = out
	}
	return merged
}
