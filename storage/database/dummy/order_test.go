package dummydb

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/order"
)

func newOrderRepo(t *testing.T) *orderRepository {
	t.Helper()
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return NewOrderRepository(db)
}

func seedOrders(t *testing.T, repo *orderRepository, uid string, n int) []order.Order {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ords := make([]order.Order, 0, n)
	for i := 0; i < n; i++ {
		ord, err := repo.CreateOrder(ctx, order.Order{
			UserID:      uid,
			TotalAmount: float64(10 * (i + 1)),
			Status:      order.StatusPending,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
			UpdatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateOrder() error = %v", err)
		}
		ords = append(ords, ord)
	}
	return ords
}

func Test_orderRepository_QueryOrders(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()
	mine := seedOrders(t, repo, "u1", 4)
	seedOrders(t, repo, "u2", 2)

	got, err := repo.QueryOrders(ctx, "u1", []core.DBOrdering{{Field: "created_at"}}, 0)
	if err != nil {
		t.Fatalf("QueryOrders() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len(got) = %d, want 4", len(got))
	}
	if got[0].ID != mine[3].ID {
		t.Errorf("got[0].ID = %q, want the newest (%q)", got[0].ID, mine[3].ID)
	}
	for i, ord := range got {
		if ord.UserID != "u1" {
			t.Errorf("got[%d].UserID = %q, want u1", i, ord.UserID)
		}
	}

	got, err = repo.QueryOrders(ctx, "u1", []core.DBOrdering{{Field: "created_at", Ascending: true}}, 0)
	if err != nil {
		t.Fatalf("QueryOrders() error = %v", err)
	}
	if got[0].ID != mine[0].ID {
		t.Errorf("got[0].ID = %q, want the oldest (%q)", got[0].ID, mine[0].ID)
	}
}

func Test_orderRepository_UpdateOrder(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()
	ords := seedOrders(t, repo, "u1", 1)

	delivered := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	updated, err := repo.UpdateOrder(ctx, ords[0].ID, "u1", order.UpdateOrder{
		Status:             null.StringFrom(order.StatusDelivered),
		TrackingNumber:     null.StringFrom("TRK-123"),
		ActualDeliveryDate: null.TimeFrom(delivered),
	})
	if err != nil {
		t.Fatalf("UpdateOrder() error = %v", err)
	}
	if updated.Status != order.StatusDelivered {
		t.Errorf("Status = %q, want %q", updated.Status, order.StatusDelivered)
	}
	if updated.TrackingNumber.String != "TRK-123" {
		t.Errorf("TrackingNumber = %q, want TRK-123", updated.TrackingNumber.String)
	}
	if !updated.ActualDeliveryDate.Time.Equal(delivered) {
		t.Errorf("ActualDeliveryDate = %v, want %v", updated.ActualDeliveryDate.Time, delivered)
	}
	if updated.TotalAmount != ords[0].TotalAmount {
		t.Errorf("TotalAmount = %v, want untouched %v", updated.TotalAmount, ords[0].TotalAmount)
	}

	if _, err = repo.UpdateOrder(ctx, "missing", "u1", order.UpdateOrder{}); err != order.ErrNotFound {
		t.Errorf("UpdateOrder(missing) error = %v, want %v", err, order.ErrNotFound)
	}
	if _, err = repo.UpdateOrder(ctx, ords[0].ID, "u2", order.UpdateOrder{}); err != order.ErrNotFound {
		t.Errorf("UpdateOrder(wrong owner) error = %v, want %v", err, order.ErrNotFound)
	}
}
