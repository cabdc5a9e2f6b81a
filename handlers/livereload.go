package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/ZacxDev/go-html-pages/config"
	"github.com/gorilla/websocket"
)

// LiveReloadPath is where pages served in development open their reload
// socket.
const LiveReloadPath = "/__htmlpages/ws"

const liveReloadClient = `
(function () {
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var socket = new WebSocket(scheme + location.host + "` + LiveReloadPath + `");
  socket.onmessage = function (event) {
    if (event.data === "reload") {
      location.reload();
    }
  };
})();
`

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local dev server, any origin may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub keeps the open reload sockets and tells them when to refresh.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		logger:  logger,
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("live reload upgrade failed", "error", err)
		return
	}
	h.register(conn)
	defer h.unregister(conn)

	// Clients never send anything, reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends message to every connected page. Clients that fail to
// receive it are dropped.
func (h *Hub) Broadcast(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		err := client.WriteMessage(websocket.TextMessage, []byte(message))
		if err != nil {
			h.logger.Debug("dropping live reload client", "error", err)
			client.Close()
			delete(h.clients, client)
		}
	}
}

// Clients reports how many pages are connected.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
}

func liveReloadTag() config.Tag {
	return config.Tag{Tag: "script", Children: liveReloadClient, InjectTo: "body"}
}
