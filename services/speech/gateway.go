package speechsvc

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/voice"
)

var ErrNoGateway = errors.New("speech gateway not configured")

const (
	dialTimeout  = 10 * time.Second
	writeTimeout = 5 * time.Second
)

// GatewayRecognizer creates recognition sessions against a speech-gateway
// websocket endpoint. One websocket connection per session; the gateway
// streams lifecycle events back as JSON frames.
type GatewayRecognizer struct {
	conf   core.SpeechConfig
	logger core.Logger
}

var _ voice.Recognizer = (*GatewayRecognizer)(nil)

func NewGatewayRecognizer(conf *core.Config, logger core.Logger) *GatewayRecognizer {
	return &GatewayRecognizer{conf: conf.Speech, logger: logger}
}

func (r *GatewayRecognizer) Supported() bool {
	return r.conf.GatewayURL != ""
}

type (
	controlFrame struct {
		Op             string `json:"op"` // start | stop
		Language       string `json:"language,omitempty"`
		Continuous     bool   `json:"continuous"`
		InterimResults bool   `json:"interim_results"`
	}

	eventFrame struct {
		Event      string `json:"event"` // start | result | error | end
		Transcript string `json:"transcript,omitempty"`
		Message    string `json:"message,omitempty"`
	}
)

func (r *GatewayRecognizer) Listen(cfg voice.SessionConfig, h voice.Handler) (voice.Session, error) {
	if !r.Supported() {
		return nil, ErrNoGateway
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	conn, _, err := websocket.Dial(ctx, r.conf.GatewayURL, nil)
	cancel()
	if err != nil {
		return nil, errors.Wrap(err, "dialing speech gateway")
	}

	ctx, cancel = context.WithTimeout(context.Background(), writeTimeout)
	err = wsjson.Write(ctx, conn, controlFrame{
		Op:             "start",
		Language:       cfg.Language,
		Continuous:     cfg.Continuous,
		InterimResults: cfg.InterimResults,
	})
	cancel()
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "")
		return nil, errors.Wrap(err, "starting recognition")
	}

	sess := &gatewaySession{conn: conn, handler: h, logger: r.logger}
	go sess.readLoop()
	return sess, nil
}

type gatewaySession struct {
	conn    *websocket.Conn
	handler voice.Handler
	logger  core.Logger

	stopOnce sync.Once
	endOnce  sync.Once
}

func (s *gatewaySession) readLoop() {
	defer s.end()
	for {
		var ev eventFrame
		if err := wsjson.Read(context.Background(), s.conn, &ev); err != nil {
			return
		}
		switch ev.Event {
		case "start":
			if s.handler.OnStart != nil {
				s.handler.OnStart()
			}
		case "result":
			if s.handler.OnResult != nil {
				s.handler.OnResult(ev.Transcript)
			}
		case "error":
			if s.handler.OnError != nil {
				s.handler.OnError(errors.New(ev.Message))
			}
		case "end":
			return
		default:
			s.logger.Debug("unknown speech gateway event: " + ev.Event)
		}
	}
}

// end closes the connection and fires OnEnd exactly once, whatever tore the
// session down.
func (s *gatewaySession) end() {
	_ = s.conn.Close(websocket.StatusNormalClosure, "")
	s.endOnce.Do(func() {
		if s.handler.OnEnd != nil {
			s.handler.OnEnd()
		}
	})
}

func (s *gatewaySession) Stop() {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := wsjson.Write(ctx, s.conn, controlFrame{Op: "stop"}); err != nil {
			// the read loop will notice the broken connection and end the session
			s.logger.Debug("stopping recognition session", err)
		}
		cancel()
	})
}
