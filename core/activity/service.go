package activity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
)

var (
	// errors
	ErrNotFound = errors.New("activity not found")
)

type (
	Repository interface {
		// QueryActivities returns activities owned by ownerID. A limit <= 0 means no limit.
		QueryActivities(ctx context.Context, ownerID string, ordering []core.DBOrdering, limit int) ([]Activity, error)
		CreateActivity(ctx context.Context, act Activity) (Activity, error)
		// UpdateActivity applies changes to the activity matching (id, ownerID) and
		// returns the updated row; ErrNotFound if no such activity exists.
		UpdateActivity(ctx context.Context, id, ownerID string, changes UpdateActivity) (Activity, error)
	}

	// Service binds the remote activity collection to a local cache for the
	// current identity. All failures are terminal here: they are logged and/or
	// surfaced through the Notifier, never returned to the caller.
	Service struct {
		repo     Repository
		idents   *core.IdentitySignal
		notifier core.Notifier
		logger   core.Logger

		unsubscribe func()

		mu      sync.RWMutex
		cache   []Activity
		loading bool
	}
)

// NewService registers itself on the identity signal: every identity change
// triggers a re-fetch. Call Close to unregister.
func NewService(repo Repository, idents *core.IdentitySignal, notifier core.Notifier, logger core.Logger) *Service {
	svc := &Service{
		repo:     repo,
		idents:   idents,
		notifier: notifier,
		logger:   logger,
		loading:  true,
	}
	svc.unsubscribe = idents.Subscribe(func(string, bool) {
		svc.FetchAll(context.Background())
	})
	return svc
}

func (svc *Service) Close() {
	if svc.unsubscribe != nil {
		svc.unsubscribe()
	}
}

// Activities returns a snapshot of the cache, newest first.
func (svc *Service) Activities() []Activity {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	acts := make([]Activity, len(svc.cache))
	copy(acts, svc.cache)
	return acts
}

func (svc *Service) Loading() bool {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.loading
}

// FetchAll replaces the whole cache with the current identity's latest
// activities. With no identity the cache is emptied without a remote call.
// On failure the last-known-good cache is kept and the user is notified.
func (svc *Service) FetchAll(ctx context.Context) {
	uid, ok := svc.idents.Current()
	if !ok {
		svc.mu.Lock()
		svc.cache = nil
		svc.loading = false
		svc.mu.Unlock()
		return
	}

	svc.mu.Lock()
	svc.loading = true
	svc.mu.Unlock()

	acts, err := svc.repo.QueryActivities(ctx, uid, []core.DBOrdering{{Field: "created_at"}}, CacheCap)

	// a fetch that settles after the identity changed again is stale: its
	// result must not overwrite the cache of the newer identity
	if cur, _ := svc.idents.Current(); cur != uid {
		return
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.loading = false
	if err != nil {
		svc.logger.Error("fetching activities", err)
		svc.notifier.Notify(core.ErrorNotification("Error", "Failed to load activities"))
		return
	}
	svc.cache = acts
}

// Refetch is an alias for FetchAll, exposed for external triggering.
func (svc *Service) Refetch(ctx context.Context) {
	svc.FetchAll(ctx)
}

// Create records a new activity for the current identity and, on confirmation,
// prepends it to the cache. Failures are logged only; the cache is never
// mutated before the backend confirms.
func (svc *Service) Create(ctx context.Context, na NewActivity) {
	uid, ok := svc.idents.Current()
	if !ok {
		return
	}
	if err := na.Validate(); err != nil {
		svc.logger.Error("validating new activity", err)
		return
	}

	status := na.Status
	if status == "" {
		status = StatusCompleted
	}
	now := time.Now().UTC()
	created, err := svc.repo.CreateActivity(ctx, Activity{
		UserID:      uid,
		Type:        na.Type,
		Title:       na.Title,
		Description: na.Description,
		Status:      status,
		Metadata:    na.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		svc.logger.Error("creating activity", err)
		return
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if cur, _ := svc.idents.Current(); cur != uid {
		return
	}
	svc.cache = append([]Activity{created}, svc.cache...)
	if len(svc.cache) > CacheCap {
		svc.cache = svc.cache[:CacheCap]
	}
}

// Update applies a partial change to the activity matching (id, current identity)
// and, on confirmation, replaces the cached entry in place; the cache is not
// re-sorted. On failure the cache is unchanged and the user is notified.
func (svc *Service) Update(ctx context.Context, id string, ua UpdateActivity) {
	uid, ok := svc.idents.Current()
	if !ok {
		return
	}

	updated, err := svc.repo.UpdateActivity(ctx, id, uid, ua)
	if err != nil {
		svc.logger.Error("updating activity", err)
		svc.notifier.Notify(core.ErrorNotification("Error", "Failed to update activity"))
		return
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if cur, _ := svc.idents.Current(); cur != uid {
		return
	}
	for i := range svc.cache {
		if svc.cache[i].ID == updated.ID {
			svc.cache[i] = updated
			break
		}
	}
}
