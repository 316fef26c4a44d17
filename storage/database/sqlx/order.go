package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/order"
)

// "order" needs quoting; it is a reserved word.
const (
	orderTable   = `"order"`
	orderColumns = "id, user_id, total_amount, status, delivery_address, tracking_number, estimated_delivery, actual_delivery_date, notes, created_at, updated_at"
)

type orderRow struct {
	ID                 string      `db:"id"`
	UserID             string      `db:"user_id"`
	TotalAmount        float64     `db:"total_amount"`
	Status             string      `db:"status"`
	DeliveryAddress    null.String `db:"delivery_address"`
	TrackingNumber     null.String `db:"tracking_number"`
	EstimatedDelivery  null.Time   `db:"estimated_delivery"`
	ActualDeliveryDate null.Time   `db:"actual_delivery_date"`
	Notes              null.String `db:"notes"`
	CreatedAt          time.Time   `db:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at"`
}

func (row orderRow) unpack() order.Order {
	return order.Order{
		ID:                 row.ID,
		UserID:             row.UserID,
		TotalAmount:        row.TotalAmount,
		Status:             row.Status,
		DeliveryAddress:    row.DeliveryAddress,
		TrackingNumber:     row.TrackingNumber,
		EstimatedDelivery:  row.EstimatedDelivery,
		ActualDeliveryDate: row.ActualDeliveryDate,
		Notes:              row.Notes,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

type orderRepository struct {
	db *sqlx.DB
}

var _ order.Repository = (*orderRepository)(nil) // interface compliance check

func NewOrderRepository(db *sqlx.DB) *orderRepository {
	return &orderRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to order.ErrNotFound
func (repo orderRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return order.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo orderRepository) QueryOrders(ctx context.Context, ownerID string, ordering []core.DBOrdering, limit int) ([]order.Order, error) {
	q := "SELECT " + orderColumns + " FROM " + orderTable + " WHERE user_id = $1"
	if len(ordering) > 0 {
		orderList := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			orderList = append(orderList, ord.String())
		}
		q += " ORDER BY " + strings.Join(orderList, ", ")
	}
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	var rows []orderRow
	if err := repo.db.SelectContext(ctx, &rows, q, ownerID); err != nil {
		return nil, errors.Wrap(err, "querying orders")
	}

	ords := make([]order.Order, 0, len(rows))
	for _, row := range rows {
		ords = append(ords, row.unpack())
	}
	return ords, nil
}

func (repo orderRepository) CreateOrder(ctx context.Context, ord order.Order) (order.Order, error) {
	q := `INSERT INTO ` + orderTable + ` (id, user_id, total_amount, status, delivery_address, estimated_delivery, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + orderColumns
	var row orderRow
	err := repo.db.GetContext(ctx, &row, q,
		uuid.New().String(), ord.UserID, ord.TotalAmount, ord.Status, ord.DeliveryAddress,
		ord.EstimatedDelivery, ord.Notes, ord.CreatedAt.UTC(), ord.UpdatedAt.UTC())
	if err != nil {
		return order.Order{}, errors.Wrap(err, "inserting order")
	}
	return row.unpack(), nil
}

func (repo orderRepository) UpdateOrder(ctx context.Context, id, ownerID string, changes order.UpdateOrder) (order.Order, error) {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}
	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if changes.TotalAmount.Valid {
		set("total_amount", changes.TotalAmount)
	}
	if changes.Status.Valid {
		set("status", changes.Status)
	}
	if changes.DeliveryAddress.Valid {
		set("delivery_address", changes.DeliveryAddress)
	}
	if changes.TrackingNumber.Valid {
		set("tracking_number", changes.TrackingNumber)
	}
	if changes.EstimatedDelivery.Valid {
		set("estimated_delivery", changes.EstimatedDelivery)
	}
	if changes.ActualDeliveryDate.Valid {
		set("actual_delivery_date", changes.ActualDeliveryDate)
	}
	if changes.Notes.Valid {
		set("notes", changes.Notes)
	}

	args = append(args, id, ownerID)
	q := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		orderTable, strings.Join(sets, ", "), len(args)-1, len(args), orderColumns,
	)

	var row orderRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		return order.Order{}, repo.trapNoRowsErr(err, "updating order")
	}
	return row.unpack(), nil
}
