package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/activity"
)

const activityColumns = "id, user_id, type, title, description, status, metadata, created_at, updated_at"

type activityRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Type        string         `db:"type"`
	Title       string         `db:"title"`
	Description null.String    `db:"description"`
	Status      string         `db:"status"`
	Metadata    types.JSONText `db:"metadata"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (row activityRow) unpack() (activity.Activity, error) {
	act := activity.Activity{
		ID:          row.ID,
		UserID:      row.UserID,
		Type:        row.Type,
		Title:       row.Title,
		Description: row.Description,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &act.Metadata); err != nil {
			return activity.Activity{}, errors.Wrap(err, "unpacking activity metadata")
		}
	}
	return act, nil
}

func packMetadata(md map[string]interface{}) (types.JSONText, error) {
	if md == nil {
		md = map[string]interface{}{}
	}
	data, err := json.Marshal(md)
	if err != nil {
		return nil, errors.Wrap(err, "packing metadata")
	}
	return data, nil
}

type activityRepository struct {
	db *sqlx.DB
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *sqlx.DB) *activityRepository {
	return &activityRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to activity.ErrNotFound
func (repo activityRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return activity.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo activityRepository) QueryActivities(ctx context.Context, ownerID string, ordering []core.DBOrdering, limit int) ([]activity.Activity, error) {
	q := "SELECT " + activityColumns + " FROM activity WHERE user_id = $1"
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

	var rows []activityRow
	if err := repo.db.SelectContext(ctx, &rows, q, ownerID); err != nil {
		return nil, errors.Wrap(err, "querying activities")
	}

	acts := make([]activity.Activity, 0, len(rows))
	for _, row := range rows {
		act, err := row.unpack()
		if err != nil {
			return nil, err
		}
		acts = append(acts, act)
	}
	return acts, nil
}

func (repo activityRepository) CreateActivity(ctx context.Context, act activity.Activity) (activity.Activity, error) {
	md, err := packMetadata(act.Metadata)
	if err != nil {
		return activity.Activity{}, err
	}

	q := `INSERT INTO activity (id, user_id, type, title, description, status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + activityColumns
	var row activityRow
	err = repo.db.GetContext(ctx, &row, q,
		uuid.New().String(), act.UserID, act.Type, act.Title, act.Description, act.Status, md,
		act.CreatedAt.UTC(), act.UpdatedAt.UTC())
	if err != nil {
		return activity.Activity{}, errors.Wrap(err, "inserting activity")
	}
	return row.unpack()
}

func (repo activityRepository) UpdateActivity(ctx context.Context, id, ownerID string, changes activity.UpdateActivity) (activity.Activity, error) {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}
	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if changes.Title.Valid {
		set("title", changes.Title)
	}
	if changes.Description.Valid {
		set("description", changes.Description)
	}
	if changes.Status.Valid {
		set("status", changes.Status)
	}
	if changes.Metadata != nil {
		md, err := packMetadata(changes.Metadata)
		if err != nil {
			return activity.Activity{}, err
		}
		set("metadata", md)
	}

	args = append(args, id, ownerID)
	q := fmt.Sprintf(
		"UPDATE activity SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), activityColumns,
	)

	var row activityRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		return activity.Activity{}, repo.trapNoRowsErr(err, "updating activity")
	}
	return row.unpack()
}
