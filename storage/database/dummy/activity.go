package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/activity"
)

type activityRepository struct {
	db *activityTable
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *DB) *activityRepository {
	return &activityRepository{db: db.activity}
}

func (repo *activityRepository) query(ownerID string) []activity.Activity {
	res := make([]activity.Activity, 0, len(repo.db.t))
	for _, act := range repo.db.t {
		if act.UserID == ownerID {
			res = append(res, *act)
		}
	}
	return res
}

func (repo *activityRepository) QueryActivities(_ context.Context, ownerID string, ordering []core.DBOrdering, limit int) ([]activity.Activity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	acts := repo.query(ownerID)
	for _, ord := range ordering {
		if ord.Field == "created_at" {
			sort.SliceStable(acts, func(i, j int) bool {
				if ord.Ascending {
					return acts[i].CreatedAt.Before(acts[j].CreatedAt)
				}
				return acts[i].CreatedAt.After(acts[j].CreatedAt)
			})
		}
	}
	if limit > 0 && len(acts) > limit {
		acts = acts[:limit]
	}
	return acts, nil
}

func (repo *activityRepository) CreateActivity(_ context.Context, act activity.Activity) (activity.Activity, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	act.ID = uuid.New().String()
	now := time.Now().UTC()
	if act.CreatedAt.IsZero() {
		act.CreatedAt = now
	}
	if act.UpdatedAt.IsZero() {
		act.UpdatedAt = now
	}
	repo.db.t[act.ID] = &act
	return act, nil
}

func (repo *activityRepository) UpdateActivity(_ context.Context, id, ownerID string, changes activity.UpdateActivity) (activity.Activity, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	act, ok := repo.db.t[id]
	if !ok || act.UserID != ownerID {
		return activity.Activity{}, activity.ErrNotFound
	}

	if changes.Title.Valid {
		act.Title = changes.Title.String
	}
	if changes.Description.Valid {
		act.Description = changes.Description
	}
	if changes.Status.Valid {
		act.Status = changes.Status.String
	}
	if changes.Metadata != nil {
		act.Metadata = changes.Metadata
	}
	act.UpdatedAt = time.Now().UTC()
	return *act, nil
}
