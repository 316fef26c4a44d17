package dummydb

import (
	"sync"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/activity"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/order"
)

// DB is an in-memory stand-in for the real database; used in dev and tests.
type (
	DB struct {
		activity *activityTable
		order    *orderTable
	}

	activityTable struct {
		t     map[string]*activity.Activity
		mutex sync.RWMutex
	}

	orderTable struct {
		t     map[string]*order.Order
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		activity: &activityTable{t: make(map[string]*activity.Activity)},
		order:    &orderTable{t: make(map[string]*order.Order)},
	}
	return db, nil
}
