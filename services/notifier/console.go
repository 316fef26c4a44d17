package notifysvc

import (
	"fmt"
	"log"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
)

// ConsoleNotifier prints notifications to a std logger; used in dev.
type ConsoleNotifier struct {
	std *log.Logger
}

var _ core.Notifier = (*ConsoleNotifier)(nil)

func NewConsoleNotifier(std *log.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{std: std}
}

func (svc *ConsoleNotifier) Notify(n core.Notification) {
	svc.std.Println(fmt.Sprintf("[%s] %s: %s", n.Level, n.Title, n.Description))
}
