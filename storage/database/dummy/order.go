package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/order"
)

type orderRepository struct {
	db *orderTable
}

var _ order.Repository = (*orderRepository)(nil) // interface compliance check

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db.order}
}

func (repo *orderRepository) query(ownerID string) []order.Order {
	res := make([]order.Order, 0, len(repo.db.t))
	for _, ord := range repo.db.t {
		if ord.UserID == ownerID {
			res = append(res, *ord)
		}
	}
	return res
}

func (repo *orderRepository) QueryOrders(_ context.Context, ownerID string, ordering []core.DBOrdering, limit int) ([]order.Order, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ords := repo.query(ownerID)
	for _, ord := range ordering {
		if ord.Field == "created_at" {
			asc := ord.Ascending
			sort.SliceStable(ords, func(i, j int) bool {
				if asc {
					return ords[i].CreatedAt.Before(ords[j].CreatedAt)
				}
				return ords[i].CreatedAt.After(ords[j].CreatedAt)
			})
		}
	}
	if limit > 0 && len(ords) > limit {
		ords = ords[:limit]
	}
	return ords, nil
}

func (repo *orderRepository) CreateOrder(_ context.Context, ord order.Order) (order.Order, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ord.ID = uuid.New().String()
	now := time.Now().UTC()
	if ord.CreatedAt.IsZero() {
		ord.CreatedAt = now
	}
	if ord.UpdatedAt.IsZero() {
		ord.UpdatedAt = now
	}
	repo.db.t[ord.ID] = &ord
	return ord, nil
}

func (repo *orderRepository) UpdateOrder(_ context.Context, id, ownerID string, changes order.UpdateOrder) (order.Order, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ord, ok := repo.db.t[id]
	if !ok || ord.UserID != ownerID {
		return order.Order{}, order.ErrNotFound
	}

	if changes.TotalAmount.Valid {
		ord.TotalAmount = changes.TotalAmount.Float64
	}
	if changes.Status.Valid {
		ord.Status = changes.Status.String
	}
	if changes.DeliveryAddress.Valid {
		ord.DeliveryAddress = changes.DeliveryAddress
	}
	if changes.TrackingNumber.Valid {
		ord.TrackingNumber = changes.TrackingNumber
	}
	if changes.EstimatedDelivery.Valid {
		ord.EstimatedDelivery = changes.EstimatedDelivery
	}
	if changes.ActualDeliveryDate.Valid {
		ord.ActualDeliveryDate = changes.ActualDeliveryDate
	}
	if changes.Notes.Valid {
		ord.Notes = changes.Notes
	}
	ord.UpdatedAt = time.Now().UTC()
	return *ord, nil
}
