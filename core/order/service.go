package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
)

var (
	// errors
	ErrNotFound = errors.New("order not found")
)

type (
	Repository interface {
		// QueryOrders returns orders owned by ownerID. A limit <= 0 means no limit.
		QueryOrders(ctx context.Context, ownerID string, ordering []core.DBOrdering, limit int) ([]Order, error)
		CreateOrder(ctx context.Context, ord Order) (Order, error)
		// UpdateOrder applies changes to the order matching (id, ownerID) and
		// returns the updated row; ErrNotFound if no such order exists.
		UpdateOrder(ctx context.Context, id, ownerID string, changes UpdateOrder) (Order, error)
	}

	// Service binds the remote order collection to a local cache for the
	// current identity. All failures are terminal here: they are logged and/or
	// surfaced through the Notifier, never returned to the caller.
	Service struct {
		repo     Repository
		idents   *core.IdentitySignal
		notifier core.Notifier
		logger   core.Logger

		unsubscribe func()

		mu      sync.RWMutex
		cache   []Order
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

// Orders returns a snapshot of the cache, newest first.
func (svc *Service) Orders() []Order {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	ords := make([]Order, len(svc.cache))
	copy(ords, svc.cache)
	return ords
}

func (svc *Service) Loading() bool {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.loading
}

// FetchAll replaces the whole cache with the current identity's orders,
// newest first, uncapped. With no identity the cache is emptied without a
// remote call. On failure the last-known-good cache is kept and the user is
// notified.
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

	ords, err := svc.repo.QueryOrders(ctx, uid, []core.DBOrdering{{Field: "created_at"}}, 0)

	// a fetch that settles after the identity changed again is stale: its
	// result must not overwrite the cache of the newer identity
	if cur, _ := svc.idents.Current(); cur != uid {
		return
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.loading = false
	if err != nil {
		svc.logger.Error("fetching orders", err)
		svc.notifier.Notify(core.ErrorNotification("Error", "Failed to load orders"))
		return
	}
	svc.cache = ords
}

// Refetch is an alias for FetchAll, exposed for external triggering.
func (svc *Service) Refetch(ctx context.Context) {
	svc.FetchAll(ctx)
}

// Create places a new order for the current identity and, on confirmation,
// prepends it to the cache. Failures are logged only; the cache is never
// mutated before the backend confirms.
func (svc *Service) Create(ctx context.Context, no NewOrder) {
	uid, ok := svc.idents.Current()
	if !ok {
		return
	}
	if err := no.Validate(); err != nil {
		svc.logger.Error("validating new order", err)
		return
	}

	status := no.Status
	if status == "" {
		status = StatusPending
	}
	now := time.Now().UTC()
	created, err := svc.repo.CreateOrder(ctx, Order{
		UserID:            uid,
		TotalAmount:       no.TotalAmount,
		Status:            status,
		DeliveryAddress:   no.DeliveryAddress,
		EstimatedDelivery: no.EstimatedDelivery,
		Notes:             no.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		svc.logger.Error("creating order", err)
		return
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if cur, _ := svc.idents.Current(); cur != uid {
		return
	}
	svc.cache = append([]Order{created}, svc.cache...)
}

// Update applies a partial change to the order matching (id, current identity)
// and, on confirmation, replaces the cached entry in place; the cache is not
// re-sorted. When the status moves to delivered and no actual delivery date is
// supplied, the date is stamped with the current time before sending. On
// failure the cache is unchanged and the user is notified; a status change is
// confirmed with a success notification stating the new status.
func (svc *Service) Update(ctx context.Context, id string, uo UpdateOrder) {
	uid, ok := svc.idents.Current()
	if !ok {
		return
	}

	if uo.Status.Valid && core.CleanString(uo.Status.String, true /* lower */) == StatusDelivered && !uo.ActualDeliveryDate.Valid {
		uo.ActualDeliveryDate.SetValid(time.Now().UTC())
	}

	updated, err := svc.repo.UpdateOrder(ctx, id, uid, uo)
	if err != nil {
		svc.logger.Error("updating order", err)
		svc.notifier.Notify(core.ErrorNotification("Error", "Failed to update order"))
		return
	}

	svc.mu.Lock()
	if cur, _ := svc.idents.Current(); cur == uid {
		for i := range svc.cache {
			if svc.cache[i].ID == updated.ID {
				svc.cache[i] = updated
				break
			}
		}
	}
	svc.mu.Unlock()

	if uo.Status.Valid {
		svc.notifier.Notify(core.SuccessNotification(
			"Order Updated",
			fmt.Sprintf("Order status updated to %s", updated.Status),
		))
	}
}
