package main

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/activity"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/order"
)

// seed inserts a handful of demo records so a fresh environment has
// something to render.
func (cli *commandLine) seed(userID string) error {
	ctx := context.Background()
	now := time.Now().UTC()

	acts := []activity.Activity{
		{
			UserID:    userID,
			Type:      activity.TypeOrder,
			Title:     "Grocery order placed",
			Status:    activity.StatusCompleted,
			Metadata:  map[string]interface{}{"items": 4},
			CreatedAt: now.Add(-48 * time.Hour),
			UpdatedAt: now.Add(-48 * time.Hour),
		},
		{
			UserID:      userID,
			Type:        activity.TypeTutoring,
			Title:       "Math tutoring session booked",
			Description: null.StringFrom("Calculus II, Thursday 4pm"),
			Status:      activity.StatusPending,
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now.Add(-24 * time.Hour),
		},
	}
	for _, act := range acts {
		if _, err := cli.actRepo.CreateActivity(ctx, act); err != nil {
			return err
		}
	}

	ords := []order.Order{
		{
			UserID:          userID,
			TotalAmount:     42.50,
			Status:          order.StatusShipped,
			DeliveryAddress: null.StringFrom("Campus West, Building 3, Room 214"),
			CreatedAt:       now.Add(-36 * time.Hour),
			UpdatedAt:       now.Add(-12 * time.Hour),
		},
		{
			UserID:      userID,
			TotalAmount: 12.00,
			Status:      order.StatusPending,
			Notes:       null.StringFrom("Leave at front desk"),
			CreatedAt:   now.Add(-2 * time.Hour),
			UpdatedAt:   now.Add(-2 * time.Hour),
		},
	}
	for _, ord := range ords {
		if _, err := cli.ordRepo.CreateOrder(ctx, ord); err != nil {
			return err
		}
	}

	return nil
}
