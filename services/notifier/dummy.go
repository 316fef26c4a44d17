package notifysvc

import (
	"sync"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
)

// DummyNotifier records every notification; used in tests.
type DummyNotifier struct {
	mu   sync.Mutex
	sent []core.Notification
}

var _ core.Notifier = (*DummyNotifier)(nil)

func NewDummyNotifier() *DummyNotifier {
	return &DummyNotifier{}
}

func (svc *DummyNotifier) Notify(n core.Notification) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.sent = append(svc.sent, n)
}

// Sent returns a snapshot of all recorded notifications.
func (svc *DummyNotifier) Sent() []core.Notification {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	sent := make([]core.Notification, len(svc.sent))
	copy(sent, svc.sent)
	return sent
}

func (svc *DummyNotifier) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.sent = nil
}
