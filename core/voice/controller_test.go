package voice

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
	notifysvc "github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/services/notifier"
)

type fakeSession struct {
	stopped int
	onStop  func()
}

func (s *fakeSession) Stop() {
	s.stopped++
	if s.onStop != nil {
		s.onStop()
	}
}

// fakeRecognizer records every Listen call and keeps the handlers around so
// tests can replay session events, including events from superseded sessions.
type fakeRecognizer struct {
	supported bool
	listenErr error

	configs  []SessionConfig
	handlers []Handler
	sessions []*fakeSession
}

func (r *fakeRecognizer) Supported() bool { return r.supported }

func (r *fakeRecognizer) Listen(cfg SessionConfig, h Handler) (Session, error) {
	if r.listenErr != nil {
		return nil, r.listenErr
	}
	sess := &fakeSession{}
	r.configs = append(r.configs, cfg)
	r.handlers = append(r.handlers, h)
	r.sessions = append(r.sessions, sess)
	return sess, nil
}

// last returns the handlers of the most recent session.
func (r *fakeRecognizer) last() Handler {
	return r.handlers[len(r.handlers)-1]
}

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

func TestControllerUnsupported(t *testing.T) {
	rec := &fakeRecognizer{supported: false}
	notifier := notifysvc.NewDummyNotifier()
	c := NewController(rec, notifier, testLogger{}, "en-US", nil)

	c.Start()
	c.Start()

	if got, want := c.State(), StateUnsupported; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
	if len(rec.handlers) != 0 {
		t.Errorf("Listen called %d times, want 0", len(rec.handlers))
	}
	// reported on every attempt
	sent := notifier.Sent()
	if len(sent) != 2 {
		t.Fatalf("len(Sent()) = %d, want 2", len(sent))
	}
	for _, n := range sent {
		if n.Level != core.NotifyError || n.Title != "Not Supported" {
			t.Errorf("notification = %+v, want Not Supported error", n)
		}
	}
}

func TestControllerUnsupportedRecovers(t *testing.T) {
	rec := &fakeRecognizer{supported: false}
	notifier := notifysvc.NewDummyNotifier()
	c := NewController(rec, notifier, testLogger{}, "en-US", nil)

	c.Start()
	if got, want := c.State(), StateUnsupported; got != want {
		t.Fatalf("State() = %v, want %v", got, want)
	}

	// capability is re-probed: once it appears, sessions open normally
	rec.supported = true
	c.Start()
	rec.last().OnStart()
	if got, want := c.State(), StateListening; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
}

func TestControllerSessionConfig(t *testing.T) {
	rec := &fakeRecognizer{supported: true}
	c := NewController(rec, notifysvc.NewDummyNotifier(), testLogger{}, "fr-FR", nil)

	c.Start()

	if len(rec.configs) != 1 {
		t.Fatalf("Listen called %d times, want 1", len(rec.configs))
	}
	cfg := rec.configs[0]
	if cfg.Language != "fr-FR" {
		t.Errorf("Language = %q, want %q", cfg.Language, "fr-FR")
	}
	if cfg.Continuous {
		t.Error("Continuous = true, want single-utterance sessions")
	}
	if cfg.InterimResults {
		t.Error("InterimResults = true, want final results only")
	}
}

func TestControllerLifecycle(t *testing.T) {
	rec := &fakeRecognizer{supported: true}
	notifier := notifysvc.NewDummyNotifier()
	var transcripts []string
	c := NewController(rec, notifier, testLogger{}, "en-US", func(tr string) {
		transcripts = append(transcripts, tr)
	})

	c.Start()
	h := rec.last()

	h.OnStart()
	if got, want := c.State(), StateListening; got != want {
		t.Errorf("after OnStart: State() = %v, want %v", got, want)
	}

	h.OnResult("hello")
	if len(transcripts) != 1 || transcripts[0] != "hello" {
		t.Errorf("transcripts = %v, want [hello]", transcripts)
	}

	h.OnEnd()
	if got, want := c.State(), StateIdle; got != want {
		t.Errorf("after OnEnd: State() = %v, want %v", got, want)
	}

	sent := notifier.Sent()
	if len(sent) != 2 {
		t.Fatalf("len(Sent()) = %d, want 2", len(sent))
	}
	if sent[0].Title != "Listening" {
		t.Errorf("sent[0].Title = %q, want Listening", sent[0].Title)
	}
	if sent[1].Title != "Voice Captured" || sent[1].Description != `Heard: "hello"` {
		t.Errorf("sent[1] = %+v, want Voice Captured / Heard: \"hello\"", sent[1])
	}
}

func TestControllerSessionError(t *testing.T) {
	rec := &fakeRecognizer{supported: true}
	notifier := notifysvc.NewDummyNotifier()
	c := NewController(rec, notifier, testLogger{}, "en-US", nil)

	c.Start()
	h := rec.last()
	h.OnStart()
	h.OnError(errors.New("no-speech"))

	if got, want := c.State(), StateIdle; got != want {
		t.Errorf("after OnError: State() = %v, want %v", got, want)
	}
	sent := notifier.Sent()
	if len(sent) != 2 {
		t.Fatalf("len(Sent()) = %d, want 2", len(sent))
	}
	if sent[1].Level != core.NotifyError || sent[1].Description != "Voice input failed. Please try again." {
		t.Errorf("sent[1] = %+v, want voice failure error", sent[1])
	}

	// still usable afterwards
	h.OnEnd()
	c.Start()
	if len(rec.handlers) != 2 {
		t.Errorf("Listen called %d times, want 2", len(rec.handlers))
	}
}

func TestControllerListenError(t *testing.T) {
	rec := &fakeRecognizer{supported: true, listenErr: errors.New("mic busy")}
	notifier := notifysvc.NewDummyNotifier()
	c := NewController(rec, notifier, testLogger{}, "en-US", nil)

	c.Start()

	if got, want := c.State(), StateIdle; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("len(Sent()) = %d, want 1", len(sent))
	}
	if sent[0].Description != "Could not start voice input" {
		t.Errorf("sent[0].Description = %q", sent[0].Description)
	}
}

func TestControllerStartWhileListening(t *testing.T) {
	rec := &fakeRecognizer{supported: true}
	c := NewController(rec, notifysvc.NewDummyNotifier(), testLogger{}, "en-US", nil)

	c.Start()
	rec.last().OnStart()
	c.Start() // no-op: the running session is kept

	if len(rec.handlers) != 1 {
		t.Errorf("Listen called %d times, want 1", len(rec.handlers))
	}
	if got, want := c.State(), StateListening; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
}

func TestControllerStop(t *testing.T) {
	rec := &fakeRecognizer{supported: true}
	c := NewController(rec, notifysvc.NewDummyNotifier(), testLogger{}, "en-US", nil)

	c.Stop() // idle: no-op
	if len(rec.sessions) != 0 {
		t.Fatal("Stop on an idle controller must not touch the recognizer")
	}

	c.Start()
	h := rec.last()
	h.OnStart()
	c.Stop()

	// the controller is idle immediately, before the session winds down
	if got, want := c.State(), StateIdle; got != want {
		t.Errorf("after Stop: State() = %v, want %v", got, want)
	}
	if rec.sessions[0].stopped != 1 {
		t.Errorf("session.stopped = %d, want 1", rec.sessions[0].stopped)
	}
	h.OnEnd()
	if got, want := c.State(), StateIdle; got != want {
		t.Errorf("after OnEnd: State() = %v, want %v", got, want)
	}
}

func TestControllerToggle(t *testing.T) {
	rec := &fakeRecognizer{supported: true}
	c := NewController(rec, notifysvc.NewDummyNotifier(), testLogger{}, "en-US", nil)

	c.Toggle() // idle -> start
	rec.last().OnStart()
	if got, want := c.State(), StateListening; got != want {
		t.Fatalf("State() = %v, want %v", got, want)
	}

	c.Toggle() // listening -> stop
	if got, want := c.State(), StateIdle; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
	if rec.sessions[0].stopped != 1 {
		t.Errorf("session.stopped = %d, want 1", rec.sessions[0].stopped)
	}
}

func TestControllerSupersededSessionIgnored(t *testing.T) {
	rec := &fakeRecognizer{supported: true}
	notifier := notifysvc.NewDummyNotifier()
	var transcripts []string
	c := NewController(rec, notifier, testLogger{}, "en-US", func(tr string) {
		transcripts = append(transcripts, tr)
	})

	c.Start()
	old := rec.last()
	old.OnStart()
	c.Stop()
	rec.last().OnEnd()
	notifier.Reset()

	c.Start()
	fresh := rec.last()
	fresh.OnStart()

	// late events from the first session must not disturb the second
	old.OnResult("stale words")
	old.OnError(errors.New("aborted"))
	old.OnEnd()

	if len(transcripts) != 0 {
		t.Errorf("transcripts = %v, want none from the superseded session", transcripts)
	}
	if got, want := c.State(), StateListening; got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
	for _, n := range notifier.Sent() {
		if n.Title != "Listening" {
			t.Errorf("unexpected notification from superseded session: %+v", n)
		}
	}

	fresh.OnResult("fresh words")
	if len(transcripts) != 1 || transcripts[0] != "fresh words" {
		t.Errorf("transcripts = %v, want [fresh words]", transcripts)
	}
}
