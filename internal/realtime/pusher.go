package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	neturl "net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pusherProtocol = "7"
	clientName     = "quizline-go"
	clientVersion  = "1.0.0"

	defaultActivityTimeout = 120 * time.Second
	defaultPongTimeout     = 30 * time.Second
)

var ErrClosed = errors.New("realtime: client closed")

type PusherConfig struct {
	Key     string
	Cluster string
	// Host overrides ws-<cluster>.pusher.com, e.g. for a self-hosted server.
	Host string
	// Insecure dials ws:// instead of wss://.
	Insecure bool
	Dialer   *websocket.Dialer
}

// pusherEvent is the frame shape used in both directions.
type pusherEvent struct {
	Event   string          `json:"event"`
	Channel string          `json:"channel,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// PusherClient speaks the Pusher Channels websocket protocol. Subscriptions
// made before Connect are sent once the connection is established. It does
// not reconnect.
type PusherClient struct {
	cfg PusherConfig

	mu              sync.Mutex
	conn            *websocket.Conn
	channels        map[string]*pusherChannel
	socketID        string
	activityTimeout time.Duration
	pongTimeout     time.Duration
	lastActivity    time.Time
	closed          bool

	writeMu     sync.Mutex
	established chan struct{}
	once        sync.Once
	done        chan struct{}
}

func NewPusherClient(cfg PusherConfig) *PusherClient {
	return &PusherClient{
		cfg:             cfg,
		channels:        map[string]*pusherChannel{},
		activityTimeout: defaultActivityTimeout,
		pongTimeout:     defaultPongTimeout,
		established:     make(chan struct{}),
		done:            make(chan struct{}),
	}
}

// URL is the websocket endpoint for the configured app key.
func (p *PusherClient) URL() string {
	scheme := "wss"
	if p.cfg.Insecure {
		scheme = "ws"
	}
	host := p.cfg.Host
	if host == "" {
		host = "ws-" + p.cfg.Cluster + ".pusher.com"
	}
	q := neturl.Values{}
	q.Set("protocol", pusherProtocol)
	q.Set("client", clientName)
	q.Set("version", clientVersion)
	return fmt.Sprintf("%s://%s/app/%s?%s", scheme, host, neturl.PathEscape(p.cfg.Key), q.Encode())
}

// Connect dials and blocks until the server confirms the connection.
func (p *PusherClient) Connect(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.conn != nil {
		p.mu.Unlock()
		return errors.New("realtime: already connected")
	}
	p.mu.Unlock()

	dialer := p.cfg.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: 5 * time.Second, Proxy: http.ProxyFromEnvironment}
	}
	c, resp, err := dialer.DialContext(ctx, p.URL(), nil)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			log.Printf("pusher: dial failed: %s %s", resp.Status, string(body))
		} else {
			log.Printf("pusher: dial failed: %v", err)
		}
		return err
	}

	p.mu.Lock()
	p.conn = c
	p.lastActivity = time.Now()
	p.mu.Unlock()
	go p.reader(c)

	select {
	case <-p.established:
		go p.keepalive()
		return nil
	case <-p.done:
		return errors.New("realtime: connection closed before it was established")
	case <-ctx.Done():
		_ = p.Close()
		return ctx.Err()
	}
}

func (p *PusherClient) SocketID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.socketID
}

// Done is closed when the read loop exits.
func (p *PusherClient) Done() <-chan struct{} { return p.done }

func (p *PusherClient) Subscribe(name string) (Channel, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	if ch, ok := p.channels[name]; ok {
		p.mu.Unlock()
		return ch, nil
	}
	ch := newPusherChannel(name)
	p.channels[name] = ch
	ready := p.socketID != ""
	p.mu.Unlock()

	if ready {
		if err := p.send("pusher:subscribe", map[string]string{"channel": name}); err != nil {
			p.mu.Lock()
			delete(p.channels, name)
			p.mu.Unlock()
			return nil, err
		}
	}
	return ch, nil
}

// Unsubscribe drops the channel and its bindings.
func (p *PusherClient) Unsubscribe(name string) {
	p.mu.Lock()
	_, ok := p.channels[name]
	delete(p.channels, name)
	ready := p.socketID != "" && !p.closed
	p.mu.Unlock()
	if !ok || !ready {
		return
	}
	if err := p.send("pusher:unsubscribe", map[string]string{"channel": name}); err != nil {
		log.Printf("pusher: unsubscribe %s: %v", name, err)
	}
}

func (p *PusherClient) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	c := p.conn
	p.mu.Unlock()
	if c == nil {
		return nil
	}
	p.writeMu.Lock()
	_ = c.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	p.writeMu.Unlock()
	return c.Close()
}

func (p *PusherClient) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *PusherClient) send(event string, data any) error {
	p.mu.Lock()
	c := p.conn
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if c == nil {
		return errors.New("realtime: not connected")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	b, err := json.Marshal(pusherEvent{Event: event, Data: raw})
	if err != nil {
		return err
	}
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return c.WriteMessage(websocket.TextMessage, b)
}

func (p *PusherClient) reader(c *websocket.Conn) {
	defer close(p.done)
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			if !p.isClosed() {
				log.Println("pusher: read:", err)
			}
			p.mu.Lock()
			p.closed = true
			p.mu.Unlock()
			_ = c.Close()
			return
		}
		p.mu.Lock()
		p.lastActivity = time.Now()
		p.mu.Unlock()

		var ev pusherEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Printf("pusher: bad frame: %v", err)
			continue
		}
		p.handle(ev)
	}
}

func (p *PusherClient) handle(ev pusherEvent) {
	switch ev.Event {
	case "pusher:connection_established":
		var info struct {
			SocketID        string `json:"socket_id"`
			ActivityTimeout int    `json:"activity_timeout"`
		}
		if err := json.Unmarshal(eventPayload(ev.Data), &info); err != nil {
			log.Printf("pusher: bad connection_established: %v", err)
			return
		}
		p.mu.Lock()
		p.socketID = info.SocketID
		// the shorter of the client and server timeouts wins
		if d := time.Duration(info.ActivityTimeout) * time.Second; d > 0 && d < p.activityTimeout {
			p.activityTimeout = d
		}
		names := make([]string, 0, len(p.channels))
		for name := range p.channels {
			names = append(names, name)
		}
		p.mu.Unlock()
		for _, name := range names {
			if err := p.send("pusher:subscribe", map[string]string{"channel": name}); err != nil {
				log.Printf("pusher: subscribe %s: %v", name, err)
			}
		}
		p.once.Do(func() { close(p.established) })
	case "pusher:ping":
		if err := p.send("pusher:pong", struct{}{}); err != nil {
			log.Printf("pusher: pong: %v", err)
		}
	case "pusher:pong":
	case "pusher:error":
		log.Printf("pusher: server error: %s", string(eventPayload(ev.Data)))
	default:
		if ev.Channel == "" {
			return
		}
		p.mu.Lock()
		ch := p.channels[ev.Channel]
		p.mu.Unlock()
		if ch == nil {
			return
		}
		name := ev.Event
		if name == "pusher_internal:subscription_succeeded" {
			name = "pusher:subscription_succeeded"
		}
		ch.dispatch(name, eventPayload(ev.Data))
	}
}

// keepalive pings after a quiet activity timeout and closes the socket if
// nothing comes back within the pong timeout.
func (p *PusherClient) keepalive() {
	p.mu.Lock()
	pongTimeout := p.pongTimeout
	p.mu.Unlock()
	for {
		p.mu.Lock()
		wait := p.activityTimeout - time.Since(p.lastActivity)
		p.mu.Unlock()
		if wait > 0 {
			select {
			case <-p.done:
				return
			case <-time.After(wait):
			}
			continue
		}
		if err := p.send("pusher:ping", struct{}{}); err != nil {
			return
		}
		pinged := time.Now()
		select {
		case <-p.done:
			return
		case <-time.After(pongTimeout):
		}
		p.mu.Lock()
		stale := p.lastActivity.Before(pinged)
		p.mu.Unlock()
		if stale {
			log.Printf("pusher: no pong within %s, closing", pongTimeout)
			_ = p.Close()
			return
		}
	}
}

// eventPayload unwraps Pusher's string-encoded data field.
func eventPayload(raw json.RawMessage) []byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return []byte(s)
		}
	}
	return raw
}

type pusherChannel struct {
	name     string
	mu       sync.RWMutex
	handlers map[string][]func([]byte)
}

func newPusherChannel(name string) *pusherChannel {
	return &pusherChannel{name: name, handlers: map[string][]func([]byte){}}
}

func (c *pusherChannel) Name() string { return c.name }

func (c *pusherChannel) Bind(event string, fn func(data []byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], fn)
}

func (c *pusherChannel) Unbind(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, event)
}

func (c *pusherChannel) dispatch(event string, data []byte) {
	c.mu.RLock()
	hs := append([]func([]byte){}, c.handlers[event]...)
	c.mu.RUnlock()
	for _, h := range hs {
		h(data)
	}
}

var _ ChannelProvider = (*PusherClient)(nil)
