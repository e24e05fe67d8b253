package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// fakePusher is a minimal Channels server. Frames the client sends are
// pushed to in; frames written to out are sent to the client.
type fakePusher struct {
	srv  *httptest.Server
	in   chan pusherEvent
	out  chan string
	path chan string
}

func newFakePusher(t *testing.T) *fakePusher {
	t.Helper()
	fp := &fakePusher{in: make(chan pusherEvent, 16), out: make(chan string, 16), path: make(chan string, 1)}
	fp.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fp.path <- r.URL.String()
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"pusher:connection_established","data":"{\"socket_id\":\"123.456\",\"activity_timeout\":120}"}`))
		go func() {
			for msg := range fp.out {
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
					return
				}
			}
		}()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev pusherEvent
			if json.Unmarshal(data, &ev) == nil {
				fp.in <- ev
			}
		}
	}))
	t.Cleanup(func() {
		close(fp.out)
		fp.srv.Close()
	})
	return fp
}

func (fp *fakePusher) client() *PusherClient {
	return NewPusherClient(PusherConfig{
		Key:      "app-key",
		Host:     strings.TrimPrefix(fp.srv.URL, "http://"),
		Insecure: true,
	})
}

func (fp *fakePusher) expect(t *testing.T, event string) pusherEvent {
	t.Helper()
	select {
	case ev := <-fp.in:
		if ev.Event != event {
			t.Fatalf("expected %s, got %s", event, ev.Event)
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", event)
	}
	return pusherEvent{}
}

func TestPusherURL(t *testing.T) {
	p := NewPusherClient(PusherConfig{Key: "ab79b520a9a82017626a", Cluster: "ap1"})
	want := "wss://ws-ap1.pusher.com/app/ab79b520a9a82017626a?client=quizline-go&protocol=7&version=1.0.0"
	if got := p.URL(); got != want {
		t.Fatalf("URL() = %q, want %q", got, want)
	}
}

func TestPusherSubscribeAndReceive(t *testing.T) {
	fp := newFakePusher(t)
	p := fp.client()
	defer p.Close()

	// subscribed before connecting: sent once the socket is established
	early, err := p.Subscribe("quiz.1")
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Connect(ctx); err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	if p.SocketID() != "123.456" {
		t.Fatalf("unexpected socket id %q", p.SocketID())
	}
	if path := <-fp.path; !strings.HasPrefix(path, "/app/app-key?") || !strings.Contains(path, "protocol=7") {
		t.Fatalf("unexpected dial path %q", path)
	}
	ev := fp.expect(t, "pusher:subscribe")
	if string(ev.Data) != `{"channel":"quiz.1"}` {
		t.Fatalf("unexpected subscribe data %s", ev.Data)
	}

	svc := NewService(p)
	ch, err := svc.SubscribeToQuiz(42)
	if err != nil {
		t.Fatalf("SubscribeToQuiz error: %v", err)
	}
	fp.expect(t, "pusher:subscribe")

	got := make(chan LeaderboardChangedEvent, 1)
	OnLeaderboardChanged(ch, func(ev LeaderboardChangedEvent) { got <- ev })
	ready := make(chan struct{}, 1)
	ch.Bind("pusher:subscription_succeeded", func([]byte) { ready <- struct{}{} })

	fp.out <- `{"event":"pusher_internal:subscription_succeeded","channel":"quiz.42","data":"{}"}`
	fp.out <- `{"event":"leaderboard.changed","channel":"quiz.42","data":"{\"topUsers\":[{\"id\":1,\"quiz_id\":42,\"user_id\":9,\"score\":70}]}"}`
	fp.out <- `{"event":"leaderboard.changed","channel":"quiz.1","data":"{\"topUsers\":[]}"}`

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatalf("subscription_succeeded not dispatched")
	}
	select {
	case ev := <-got:
		if len(ev.TopUsers) != 1 || ev.TopUsers[0].Score != 70 {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("leaderboard event not dispatched")
	}
	if early.Name() != "quiz.1" {
		t.Fatalf("unexpected early channel %q", early.Name())
	}

	svc.UnsubscribeFromQuiz("42")
	ev = fp.expect(t, "pusher:unsubscribe")
	if string(ev.Data) != `{"channel":"quiz.42"}` {
		t.Fatalf("unexpected unsubscribe data %s", ev.Data)
	}
}

func TestPusherAnswersPing(t *testing.T) {
	fp := newFakePusher(t)
	p := fp.client()
	defer p.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Connect(ctx); err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	fp.out <- `{"event":"pusher:ping","data":{}}`
	fp.expect(t, "pusher:pong")
}

func TestPusherClosesWhenPingGoesUnanswered(t *testing.T) {
	fp := newFakePusher(t)
	p := fp.client()
	p.activityTimeout = 50 * time.Millisecond
	p.pongTimeout = 100 * time.Millisecond
	defer p.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Connect(ctx); err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	// the server advertises 120s; the shorter client timeout is kept
	p.mu.Lock()
	activity := p.activityTimeout
	p.mu.Unlock()
	if activity != 50*time.Millisecond {
		t.Fatalf("activity timeout raised to %s", activity)
	}

	fp.expect(t, "pusher:ping")
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("client still open after unanswered ping")
	}
	if _, err := p.Subscribe("quiz.1"); err != ErrClosed {
		t.Fatalf("expected ErrClosed after keepalive failure, got %v", err)
	}
}

func TestPusherClosed(t *testing.T) {
	p := NewPusherClient(PusherConfig{Key: "k", Cluster: "ap1"})
	if err := p.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if _, err := p.Subscribe("quiz.1"); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := p.Connect(context.Background()); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestEventPayload(t *testing.T) {
	if got := string(eventPayload(json.RawMessage(`"{\"a\":1}"`))); got != `{"a":1}` {
		t.Fatalf("string payload not unwrapped: %s", got)
	}
	if got := string(eventPayload(json.RawMessage(`{"a":1}`))); got != `{"a":1}` {
		t.Fatalf("object payload changed: %s", got)
	}
}
