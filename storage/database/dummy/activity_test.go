package dummydb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/activity"
)

func newActivityRepo(t *testing.T) *activityRepository {
	t.Helper()
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return NewActivityRepository(db)
}

func seedActivities(t *testing.T, repo *activityRepository, uid string, n int) []activity.Activity {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	acts := make([]activity.Activity, 0, n)
	for i := 0; i < n; i++ {
		act, err := repo.CreateActivity(ctx, activity.Activity{
			UserID:    uid,
			Type:      activity.TypeRequest,
			Title:     fmt.Sprintf("activity %d", i+1),
			Status:    activity.StatusCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateActivity() error = %v", err)
		}
		acts = append(acts, act)
	}
	return acts
}

func Test_activityRepository_QueryActivities(t *testing.T) {
	repo := newActivityRepo(t)
	ctx := context.Background()
	mine := seedActivities(t, repo, "u1", 5)
	seedActivities(t, repo, "u2", 3)

	desc := []core.DBOrdering{{Field: "created_at"}}

	got, err := repo.QueryActivities(ctx, "u1", desc, 0)
	if err != nil {
		t.Fatalf("QueryActivities() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len(got) = %d, want 5", len(got))
	}
	for i, act := range got {
		if act.UserID != "u1" {
			t.Errorf("got[%d].UserID = %q, want u1", i, act.UserID)
		}
		if i > 0 && got[i-1].CreatedAt.Before(act.CreatedAt) {
			t.Errorf("got[%d] out of order: want newest first", i)
		}
	}
	if got[0].ID != mine[4].ID {
		t.Errorf("got[0].ID = %q, want the newest (%q)", got[0].ID, mine[4].ID)
	}

	got, err = repo.QueryActivities(ctx, "u1", desc, 2)
	if err != nil {
		t.Fatalf("QueryActivities() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(got) = %d, want 2 (limit applied)", len(got))
	}

	got, err = repo.QueryActivities(ctx, "nobody", desc, 0)
	if err != nil {
		t.Fatalf("QueryActivities() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(got) = %d, want 0 for unknown owner", len(got))
	}
}

func Test_activityRepository_CreateActivity(t *testing.T) {
	repo := newActivityRepo(t)
	ctx := context.Background()

	act, err := repo.CreateActivity(ctx, activity.Activity{
		UserID: "u1",
		Type:   activity.TypeReminder,
		Title:  "Renew library card",
		Status: activity.StatusPending,
	})
	if err != nil {
		t.Fatalf("CreateActivity() error = %v", err)
	}
	if act.ID == "" {
		t.Error("CreateActivity() did not assign an id")
	}
	if act.CreatedAt.IsZero() || act.UpdatedAt.IsZero() {
		t.Error("CreateActivity() did not fill timestamps")
	}
}

func Test_activityRepository_UpdateActivity(t *testing.T) {
	repo := newActivityRepo(t)
	ctx := context.Background()
	acts := seedActivities(t, repo, "u1", 2)

	updated, err := repo.UpdateActivity(ctx, acts[0].ID, "u1", activity.UpdateActivity{
		Status: null.StringFrom(activity.StatusPending),
	})
	if err != nil {
		t.Fatalf("UpdateActivity() error = %v", err)
	}
	if updated.Status != activity.StatusPending {
		t.Errorf("Status = %q, want %q", updated.Status, activity.StatusPending)
	}
	if updated.Title != acts[0].Title {
		t.Errorf("Title = %q, want untouched %q", updated.Title, acts[0].Title)
	}
	if !updated.UpdatedAt.After(acts[0].UpdatedAt) {
		t.Error("UpdatedAt was not bumped")
	}

	if _, err = repo.UpdateActivity(ctx, "missing", "u1", activity.UpdateActivity{}); err != activity.ErrNotFound {
		t.Errorf("UpdateActivity(missing) error = %v, want %v", err, activity.ErrNotFound)
	}
	// another owner's activity is invisible
	if _, err = repo.UpdateActivity(ctx, acts[1].ID, "u2", activity.UpdateActivity{}); err != activity.ErrNotFound {
		t.Errorf("UpdateActivity(wrong owner) error = %v, want %v", err, activity.ErrNotFound)
	}
}
