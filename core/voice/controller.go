package voice

import (
	"fmt"
	"sync"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
)

// Controller states
type State int

const (
	StateIdle State = iota
	StateListening
	StateUnsupported
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateUnsupported:
		return "unsupported"
	}
	return "unknown"
}

type (
	SessionConfig struct {
		Language       string
		Continuous     bool
		InterimResults bool
	}

	// Handler receives a session's lifecycle events. OnEnd fires exactly once
	// per session, always, regardless of outcome.
	Handler struct {
		OnStart  func()
		OnResult func(transcript string)
		OnError  func(err error)
		OnEnd    func()
	}

	Session interface {
		// Stop requests the session to end. Best effort: a trailing result or
		// error event may still be delivered before OnEnd.
		Stop()
	}

	// Recognizer is the environment's speech recognition capability.
	Recognizer interface {
		// Supported reports whether recognition sessions can be created.
		Supported() bool
		// Listen opens a new single recognition session.
		Listen(cfg SessionConfig, h Handler) (Session, error)
	}
)

// Controller owns at most one recognition session and emits one transcript per
// completed utterance through the transcription callback. Recognition failures
// are surfaced to the user via the Notifier, never to the caller; the
// controller always returns to idle and remains usable.
//
// Calling Start while already listening is a no-op; the running session is
// kept. Capability is re-probed on every Start, so an unsupported environment
// is reported on each attempt and never fatal.
type Controller struct {
	rec          Recognizer
	notifier     core.Notifier
	logger       core.Logger
	lang         string
	onTranscript func(transcript string)

	mu    sync.Mutex
	state State
	gen   int // increments per Start; tags sessions so superseded ones are ignored
	sess  Session
}

func NewController(rec Recognizer, notifier core.Notifier, logger core.Logger, lang string, onTranscript func(string)) *Controller {
	return &Controller{
		rec:          rec,
		notifier:     notifier,
		logger:       logger,
		lang:         lang,
		onTranscript: onTranscript,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle stops when listening, starts otherwise.
func (c *Controller) Toggle() {
	c.mu.Lock()
	listening := c.state == StateListening
	c.mu.Unlock()

	if listening {
		c.Stop()
	} else {
		c.Start()
	}
}

// Start opens a new single-utterance, final-results-only recognition session.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.state == StateListening {
		c.mu.Unlock()
		return
	}
	if !c.rec.Supported() {
		c.state = StateUnsupported
		c.mu.Unlock()
		c.notifier.Notify(core.ErrorNotification("Not Supported", "Voice input is not supported on this device"))
		return
	}
	if c.state == StateUnsupported {
		c.state = StateIdle
	}
	c.gen++
	g := c.gen
	c.mu.Unlock()

	sess, err := c.rec.Listen(SessionConfig{
		Language:       c.lang,
		Continuous:     false,
		InterimResults: false,
	}, Handler{
		OnStart:  func() { c.onSessionStart(g) },
		OnResult: func(transcript string) { c.onSessionResult(g, transcript) },
		OnError:  func(err error) { c.onSessionError(g, err) },
		OnEnd:    func() { c.onSessionEnd(g) },
	})
	if err != nil {
		c.logger.Error("starting recognition session", err)
		c.notifier.Notify(core.ErrorNotification("Error", "Could not start voice input"))
		return
	}

	c.mu.Lock()
	if c.gen == g {
		c.sess = sess
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	// superseded while starting
	sess.Stop()
}

// Stop requests the running session to end and synchronously marks the
// controller idle. Stopping an already-idle controller is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	sess := c.sess
	if sess == nil && c.state != StateListening {
		c.mu.Unlock()
		return
	}
	c.state = StateIdle
	c.mu.Unlock()

	if sess != nil {
		sess.Stop()
	}
}

// current reports whether gen still tags the controller's active session.
func (c *Controller) current(gen int) bool {
	return c.gen == gen
}

func (c *Controller) onSessionStart(gen int) {
	c.mu.Lock()
	if !c.current(gen) {
		c.mu.Unlock()
		return
	}
	c.state = StateListening
	c.mu.Unlock()

	c.notifier.Notify(core.InfoNotification("Listening", "Speak now. Tap the microphone again to stop."))
}

func (c *Controller) onSessionResult(gen int, transcript string) {
	c.mu.Lock()
	if !c.current(gen) {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if c.onTranscript != nil {
		c.onTranscript(transcript)
	}
	c.notifier.Notify(core.SuccessNotification("Voice Captured", fmt.Sprintf("Heard: %q", transcript)))
}

func (c *Controller) onSessionError(gen int, err error) {
	c.mu.Lock()
	if !c.current(gen) {
		c.mu.Unlock()
		return
	}
	c.state = StateIdle
	c.mu.Unlock()

	c.logger.Warn("recognition error", err)
	c.notifier.Notify(core.ErrorNotification("Error", "Voice input failed. Please try again."))
}

func (c *Controller) onSessionEnd(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(gen) {
		return
	}
	c.state = StateIdle
	c.sess = nil
}
