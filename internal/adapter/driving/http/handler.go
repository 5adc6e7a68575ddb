package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/yehuda888/aicreatedapp/internal/adapter/driven/gateway/ws"
	"github.com/yehuda888/aicreatedapp/internal/config"
	"github.com/yehuda888/aicreatedapp/internal/core/service"
)

type Handler struct {
	RelayService *service.RelayService
	CallService  *service.CallService
	Hub          *ws.Hub
	Config       *config.Config

	upgrader websocket.Upgrader
}

func NewHandler(relayService *service.RelayService, callService *service.CallService, hub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		RelayService: relayService,
		CallService:  callService,
		Hub:          hub,
		Config:       cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			// TODO: only for dev
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	fs := http.FileServer(http.Dir(h.Config.Server.StaticDir))
	r.Handle("/*", fs)

	r.Get("/ws", h.ServeWS)
	r.Get("/ice-servers", h.ServeICEServers)

	return r
}

// ServeICEServers hands browsers the STUN/TURN list to build their
// RTCPeerConnection config from.
func (h *Handler) ServeICEServers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Config.PeerICEServers()); err != nil {
		log.Error().Err(err).Msg("Error writing ice servers")
	}
}
