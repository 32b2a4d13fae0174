package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/stellarlinkco/lawclerk/internal/artifact"
	"github.com/stellarlinkco/lawclerk/internal/bus"
	"github.com/stellarlinkco/lawclerk/internal/config"
)

const webChannelName = "web"

// CaseHandler runs the full case pipeline synchronously and returns the
// response payload for the HTTP API. Wired in by the gateway before Start.
type CaseHandler func(ctx context.Context, userID, prompt string, files []string) (any, error)

type wsMessage struct {
	Type    string   `json:"type"`
	Content string   `json:"content,omitempty"`
	Files   []string `json:"files,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	id   string
}

type caseRequest struct {
	UserID string   `json:"user_id"`
	Prompt string   `json:"prompt"`
	Files  []string `json:"files,omitempty"`
}

// WebChannel is the HTTP/WebSocket intake surface: POST /api/case for a
// synchronous structured result, /ws for conversational intake, plus
// artifact downloads and a health probe.
type WebChannel struct {
	BaseChannel
	host    string
	port    int
	store   artifact.Store
	handler CaseHandler
	server  *http.Server
	clients sync.Map
	nextID  atomic.Int64
}

func NewWebChannel(cfg config.WebConfig, gwCfg config.GatewayConfig, b *bus.MessageBus, store artifact.Store) (*WebChannel, error) {
	port := gwCfg.Port
	if port == 0 {
		port = config.DefaultPort
	}
	return &WebChannel{
		BaseChannel: NewBaseChannel(webChannelName, b, cfg.AllowFrom),
		host:        gwCfg.Host,
		port:        port,
		store:       store,
	}, nil
}

// SetCaseHandler wires the synchronous pipeline entry point.
func (w *WebChannel) SetCaseHandler(h CaseHandler) { w.handler = h }

func (w *WebChannel) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/case", w.handleCase)
	mux.HandleFunc("GET /api/health", w.handleHealth)
	mux.Handle("GET /api/artifact/", http.StripPrefix("/api/artifact/",
		http.FileServer(http.Dir(w.store.Root()))))
	mux.HandleFunc("/ws", w.handleWS)

	w.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", w.host, w.port),
		Handler: mux,
	}

	go func() {
		log.Printf("[web] listening on %s", w.server.Addr)
		if err := w.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[web] server error: %v", err)
		}
	}()

	return nil
}

func (w *WebChannel) handleCase(wr http.ResponseWriter, r *http.Request) {
	if w.handler == nil {
		http.Error(wr, "case handler not configured", http.StatusServiceUnavailable)
		return
	}

	var req caseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(wr, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Prompt == "" {
		http.Error(wr, "user_id and prompt are required", http.StatusBadRequest)
		return
	}
	if !w.IsAllowed(req.UserID) {
		http.Error(wr, "forbidden", http.StatusForbidden)
		return
	}

	resp, err := w.handler(r.Context(), req.UserID, req.Prompt, req.Files)
	if err != nil {
		log.Printf("[web] case pipeline error: %v", err)
		http.Error(wr, err.Error(), http.StatusInternalServerError)
		return
	}

	wr.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(wr).Encode(resp); err != nil {
		log.Printf("[web] encode response: %v", err)
	}
}

func (w *WebChannel) handleHealth(wr http.ResponseWriter, r *http.Request) {
	wr.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(wr).Encode(map[string]string{
		"status":  "healthy",
		"message": "lawclerk is running",
	})
}

func (w *WebChannel) handleWS(wr http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(wr, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("[web] websocket accept error: %v", err)
		return
	}

	clientID := fmt.Sprintf("web-%d", w.nextID.Add(1))
	client := &wsClient{conn: conn, id: clientID}
	w.clients.Store(clientID, client)
	log.Printf("[web] client connected: %s", clientID)

	defer func() {
		w.clients.Delete(clientID)
		conn.CloseNow()
		log.Printf("[web] client disconnected: %s", clientID)
	}()

	for {
		_, data, err := conn.Read(r.Context())
		if err != nil {
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type != "case" || msg.Content == "" {
			continue
		}
		if !w.IsAllowed(clientID) {
			log.Printf("[web] rejected message from %s", clientID)
			continue
		}

		w.bus.Inbound <- bus.InboundMessage{
			Channel:   webChannelName,
			SenderID:  clientID,
			ChatID:    clientID,
			Content:   msg.Content,
			Files:     msg.Files,
			Timestamp: time.Now(),
		}
	}
}

func (w *WebChannel) Send(msg bus.OutboundMessage) error {
	data, err := json.Marshal(wsMessage{
		Type:    "result",
		Content: msg.Content,
	})
	if err != nil {
		return err
	}

	write := func(c *wsClient) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.conn.Write(ctx, websocket.MessageText, data)
	}

	if client, ok := w.clients.Load(msg.ChatID); ok {
		write(client.(*wsClient))
		return nil
	}

	// No matching client: broadcast (reminders for disconnected sessions
	// end up here).
	w.clients.Range(func(key, value any) bool {
		write(value.(*wsClient))
		return true
	})
	return nil
}

func (w *WebChannel) Stop() error {
	if w.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.server.Shutdown(ctx)
}
