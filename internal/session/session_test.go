package session

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"partyline/internal/crypto"
	"partyline/internal/domain"
	"partyline/internal/protocol"
	"partyline/internal/protocol/input"
	"partyline/internal/protocol/output"
	"partyline/internal/protocol/router"
)

// fakeConn is an in-memory domain.Conn. Inbound messages are queued with
// push; outbound messages are collected in sent.
type fakeConn struct {
	in chan []byte

	mu      sync.Mutex
	sent    [][]byte
	sendErr error
	notify  chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 16), notify: make(chan struct{}, 64)}
}

func (c *fakeConn) push(msg string) { c.in <- []byte(msg) }

func (c *fakeConn) Receive(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg, ok := <-c.in:
		if !ok {
			return nil, io.EOF
		}
		return msg, nil
	}
}

func (c *fakeConn) Send(_ context.Context, msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, append([]byte(nil), msg...))
	select {
	case c.notify <- struct{}{}:
	default:
	}
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) sentMessages() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.sent...)
}

var _ domain.Conn = (*fakeConn)(nil)

// syncBuffer is a goroutine-safe output sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newIdentity(t *testing.T) domain.Identity {
	t.Helper()
	id, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	return id
}

func outputMsg(slots ...[]byte) string {
	return fmt.Sprintf(`{"type":"contract_output","content":"%s"}`, hex.EncodeToString(output.EncodeBatch(slots...)))
}

func slot(n int, text string) []byte {
	return output.EncodeRecord([4]byte{0, 0, 0, byte(n)}, [8]byte{byte(n)}, text)
}

func runAsync(ctx context.Context, s *Session) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	return done
}

func TestRun_HandshakeThenOutput(t *testing.T) {
	id := newIdentity(t)
	conn := newFakeConn()
	out := &syncBuffer{}
	s := New(DefaultConfig(), id, conn, WithOutput(out))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := runAsync(ctx, s)

	conn.push(`{"version":"0.1","type":"public_challenge","challenge":"beef"}`)
	select {
	case <-s.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("handshake never completed")
	}

	conn.push(outputMsg(slot(1, "one"), slot(2, "two")))
	conn.push(`{"type":"contract_output","content":"73"}`)
	conn.push(outputMsg(slot(2, "two"), slot(3, "three")))
	conn.push(`not json`)
	conn.push(`{"type":"mystery"}`)
	conn.push(outputMsg(slot(3, "three")))
	close(conn.in)

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "receive") {
			t.Fatalf("want receive error at EOF, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}

	want := "0100000000000000: one\n0200000000000000: two\n0300000000000000: three\n"
	if got := out.String(); got != want {
		t.Fatalf("output:\n%s\nwant:\n%s", got, want)
	}

	sent := conn.sentMessages()
	if len(sent) != 1 {
		t.Fatalf("want 1 reply, got %d", len(sent))
	}
	var resp protocol.ChallengeResponse
	if err := protocol.DecodeJSON(sent[0], &resp); err != nil {
		t.Fatalf("reply: %v", err)
	}
	sig, _ := hex.DecodeString(resp.Sig)
	if resp.Challenge != "beef" || !crypto.VerifyEd25519(id.Public, []byte("beef"), sig) {
		t.Fatalf("bad challenge response %+v", resp)
	}
	if s.Watermark().Line != "0300000000000000: three" {
		t.Fatalf("watermark=%+v", s.Watermark())
	}
}

func TestRun_SigningFailureIsFatal(t *testing.T) {
	conn := newFakeConn()
	s := New(DefaultConfig(), domain.Identity{}, conn)
	conn.push(`{"type":"public_challenge","challenge":"aa"}`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); !errors.Is(err, protocol.ErrSigningFailure) {
		t.Fatalf("want ErrSigningFailure, got %v", err)
	}
	if len(conn.sentMessages()) != 0 {
		t.Fatal("nothing should be sent after a signing failure")
	}
}

func TestRun_ReplySendFailureEndsRun(t *testing.T) {
	conn := newFakeConn()
	conn.sendErr = errors.New("broken pipe")
	s := New(DefaultConfig(), newIdentity(t), conn)
	conn.push(`{"type":"public_challenge","challenge":"aa"}`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); err == nil || !strings.Contains(err.Error(), "broken pipe") {
		t.Fatalf("want send error, got %v", err)
	}
	select {
	case <-s.Ready():
		t.Fatal("Ready fired although the response was never sent")
	default:
	}
}

func TestRun_ContextCancel(t *testing.T) {
	s := New(DefaultConfig(), newIdentity(t), newFakeConn())
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, s)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRun_PassThroughCallback(t *testing.T) {
	conn := newFakeConn()
	got := make(chan router.Result, 1)
	s := New(DefaultConfig(), newIdentity(t), conn, WithPassThrough(func(res router.Result) { got <- res }))
	conn.push(`{"type":"stat_resp","lcl":"7-ab"}`)
	close(conn.in)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.Run(ctx)
	select {
	case res := <-got:
		if res.Type != protocol.TypeStatResp || string(res.Raw) != `{"type":"stat_resp","lcl":"7-ab"}` {
			t.Fatalf("res=%+v", res)
		}
	default:
		t.Fatal("pass-through callback not invoked")
	}
}

func TestSubmit_SendsSignedEnvelope(t *testing.T) {
	id := newIdentity(t)
	conn := newFakeConn()
	cfg := DefaultConfig()
	cfg.MaxLedgerSeqno = 77
	cfg.Clock = func() time.Time { return time.UnixMilli(1000) }
	s := New(cfg, id, conn)

	if err := s.SendMessage(context.Background(), "hello"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if err := s.RequestStatus(context.Background()); err != nil {
		t.Fatalf("RequestStatus: %v", err)
	}
	sent := conn.sentMessages()
	if len(sent) != 2 {
		t.Fatalf("want 2 messages, got %d", len(sent))
	}

	var env protocol.SignedInputEnvelope
	if err := protocol.DecodeJSON(sent[0], &env); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	c, raw, err := input.OpenContent(env)
	if err != nil {
		t.Fatalf("OpenContent: %v", err)
	}
	if c.Nonce != "1000" || c.MaxLedgerSeqno != 77 || c.Input != hex.EncodeToString([]byte("mhello")) {
		t.Fatalf("container=%+v", c)
	}
	sig, _ := hex.DecodeString(env.Sig)
	if !crypto.VerifyEd25519(id.Public, raw, sig) {
		t.Fatal("envelope signature does not verify")
	}
	if string(sent[1]) != `{"type":"stat"}` {
		t.Fatalf("stat=%s", sent[1])
	}
}

func TestStartLiveness_SendsUntilStopped(t *testing.T) {
	conn := newFakeConn()
	cfg := DefaultConfig()
	cfg.LivenessInterval = 10 * time.Millisecond
	s := New(cfg, newIdentity(t), conn)

	stop := s.StartLiveness(context.Background())
	for i := 0; i < 3; i++ {
		select {
		case <-conn.notify:
		case <-time.After(5 * time.Second):
			stop()
			t.Fatalf("liveness send %d never happened", i+1)
		}
	}
	stop()
	n := len(conn.sentMessages())
	time.Sleep(50 * time.Millisecond)
	if after := len(conn.sentMessages()); after != n {
		t.Fatalf("liveness kept sending after stop: %d -> %d", n, after)
	}

	var env protocol.SignedInputEnvelope
	if err := protocol.DecodeJSON(conn.sentMessages()[0], &env); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	c, _, err := input.OpenContent(env)
	if err != nil {
		t.Fatalf("OpenContent: %v", err)
	}
	if c.Input != hex.EncodeToString([]byte("v0")) {
		t.Fatalf("liveness input=%q", c.Input)
	}
}

func TestStartLiveness_StopsOnContextCancel(t *testing.T) {
	conn := newFakeConn()
	cfg := DefaultConfig()
	cfg.LivenessInterval = time.Hour
	s := New(cfg, newIdentity(t), conn)

	ctx, cancel := context.WithCancel(context.Background())
	stop := s.StartLiveness(ctx)
	select {
	case <-conn.notify:
	case <-time.After(5 * time.Second):
		t.Fatal("initial liveness send never happened")
	}
	cancel()
	stopped := make(chan struct{})
	go func() { stop(); close(stopped) }()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("liveness loop did not exit on cancel")
	}
}
