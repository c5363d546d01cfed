package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"partyline/internal/domain"
	"partyline/internal/protocol"
	"partyline/internal/protocol/handshake"
	"partyline/internal/protocol/input"
	"partyline/internal/protocol/output"
	"partyline/internal/protocol/router"
)

// PassThroughFunc receives server messages the client does not interpret.
type PassThroughFunc func(res router.Result)

// Session is one authenticated conversation with the contract server.
type Session struct {
	id     uuid.UUID
	cfg    Config
	conn   domain.Conn
	log    zerolog.Logger
	pubkey string

	handshake *handshake.Handler
	builder   *input.Builder
	decoder   *output.Decoder
	router    *router.Router

	readyOnce sync.Once
	ready     chan struct{}

	outMu         sync.Mutex
	out           io.Writer
	onPassThrough PassThroughFunc
}

// Option configures a Session.
type Option func(*Session)

// WithOutput sets where decoded output lines are written. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithLogger sets the session logger. Defaults to a disabled logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithPassThrough registers a callback for pass-through messages.
func WithPassThrough(fn PassThroughFunc) Option {
	return func(s *Session) { s.onPassThrough = fn }
}

// New returns a Session speaking for id over conn.
func New(cfg Config, id domain.Identity, conn domain.Conn, opts ...Option) *Session {
	def := DefaultConfig()
	if cfg.LivenessInterval <= 0 {
		cfg.LivenessInterval = def.LivenessInterval
	}
	if cfg.MaxLedgerSeqno == 0 {
		cfg.MaxLedgerSeqno = def.MaxLedgerSeqno
	}

	s := &Session{
		id:     uuid.New(),
		cfg:    cfg,
		conn:   conn,
		log:    zerolog.Nop(),
		pubkey: id.PublicKeyEncoded(),
		out:    io.Discard,
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("session_id", s.id.String()).Logger()

	s.handshake = handshake.New(id)
	s.builder = input.New(id, input.WithClock(cfg.Clock), input.WithMaxPayloadBytes(cfg.MaxPayloadBytes))
	s.decoder = output.NewDecoder()
	s.router = router.New(s.handshake, s.decoder)
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Ready is closed once the first challenge response has been sent.
func (s *Session) Ready() <-chan struct{} { return s.ready }

// Watermark returns the last surfaced output record.
func (s *Session) Watermark() output.Watermark { return s.decoder.Watermark() }

// Run processes inbound messages until ctx is done, the connection fails, or
// a fatal protocol error occurs.
func (s *Session) Run(ctx context.Context) error {
	s.log.Debug().Msg("session started")
	for {
		msg, err := s.conn.Receive(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("receive: %w", err)
		}
		if err := s.handle(ctx, msg); err != nil {
			return err
		}
	}
}

// handle processes one inbound message. Only fatal errors are returned.
func (s *Session) handle(ctx context.Context, msg []byte) error {
	res, err := s.router.Route(msg)
	if err != nil {
		if protocol.IsFatal(err) {
			s.log.Error().Err(err).Str("kind", res.Kind.String()).Msg("fatal protocol error")
			return err
		}
		s.log.Warn().Err(err).Str("type", res.Type).Str("kind", res.Kind.String()).Msg("discarding message")
		return nil
	}

	switch res.Kind {
	case router.KindHandshake:
		s.log.Info().Str("pubkey", s.pubkey).Msg("received challenge, sending response")
		if err := s.conn.Send(ctx, res.Reply); err != nil {
			return fmt.Errorf("send challenge response: %w", err)
		}
		s.readyOnce.Do(func() {
			close(s.ready)
			s.log.Info().Msg("handshake complete")
		})
	case router.KindOutput:
		s.writeLines(res.Lines)
	case router.KindPassThrough:
		if s.onPassThrough != nil {
			s.onPassThrough(res)
		} else {
			s.log.Info().Str("type", res.Type).RawJSON("body", res.Raw).Msg("server message")
		}
	}
	return nil
}

func (s *Session) writeLines(lines []string) {
	if len(lines) == 0 {
		return
	}
	s.outMu.Lock()
	defer s.outMu.Unlock()
	for _, l := range lines {
		if _, err := fmt.Fprintln(s.out, l); err != nil {
			s.log.Warn().Err(err).Msg("write output line")
			return
		}
	}
}

// Submit signs payload into a contract_input and sends it.
func (s *Session) Submit(ctx context.Context, payload []byte) error {
	env, err := s.builder.Build(payload, s.cfg.MaxLedgerSeqno)
	if err != nil {
		return err
	}
	raw, err := protocol.Encode(env)
	if err != nil {
		return err
	}
	return s.conn.Send(ctx, raw)
}

// SendMessage posts text to the party line.
func (s *Session) SendMessage(ctx context.Context, text string) error {
	return s.Submit(ctx, input.MessageInput(text))
}

// RequestStatus sends an unsigned stat request.
func (s *Session) RequestStatus(ctx context.Context) error {
	raw, err := protocol.Encode(input.BuildStatusRequest())
	if err != nil {
		return err
	}
	return s.conn.Send(ctx, raw)
}

// StartLiveness sends the liveness input now and then every
// Config.LivenessInterval until ctx is done or stop is called. stop waits for
// the loop to exit. Send failures are logged; a signing failure ends the loop.
func (s *Session) StartLiveness(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.livenessLoop(ctx)
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}

func (s *Session) livenessLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.LivenessInterval)
	defer ticker.Stop()
	for {
		if err := s.Submit(ctx, input.LivenessInput()); err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, protocol.ErrSigningFailure) {
				s.log.Error().Err(err).Msg("liveness stopped")
				return
			}
			s.log.Warn().Err(err).Msg("liveness send failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
