package notifysvc

import "github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"

type fanout []core.Notifier

// Fanout delivers every notification to all the given sinks, in order.
func Fanout(notifiers ...core.Notifier) core.Notifier {
	return fanout(notifiers)
}

func (f fanout) Notify(n core.Notification) {
	for _, svc := range f {
		svc.Notify(n)
	}
}
