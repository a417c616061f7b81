package relay

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// Server is the HTTP surface of the relay: a health probe, a room
// listing, and the websocket endpoint participants join through.
type Server struct {
	hub      *Hub
	store    RoomStore
	logger   *log.Logger
	router   chi.Router
	upgrader websocket.Upgrader
}

// NewServer creates a relay server backed by the given room store.
func NewServer(store RoomStore, logger *log.Logger) *Server {
	s := &Server{
		hub:    NewHub(store, logger),
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Participants are terminal clients, not browsers; origin
			// checks do not apply.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/healthz", s.handleHealth)
		r.Get("/rooms", s.handleListRooms)
		r.Delete("/rooms/{roomID}", s.handleDeleteRoom)
	})

	// The websocket route carries long-lived connections and stays
	// outside the timeout middleware.
	r.Get("/rooms/{roomID}", s.handleJoin)

	s.router = r
	return s
}

// Handler returns the relay's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list rooms failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list rooms"})
		return
	}
	if rooms == nil {
		rooms = []RoomInfo{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if err := s.store.Delete(r.Context(), roomID); err != nil {
		s.logger.Error("delete room failed", "room", roomID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "delete room"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	room, err := s.hub.Room(r.Context(), roomID)
	if err != nil {
		s.logger.Error("load room failed", "room", roomID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "load room"})
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		s.logger.Debug("upgrade failed", "room", roomID, "err", err)
		return
	}

	room.Serve(conn)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
