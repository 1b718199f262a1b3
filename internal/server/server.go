package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/notarialabs/intake/internal/catalog"
	"github.com/notarialabs/intake/internal/config"
	"github.com/notarialabs/intake/internal/conversation"
	"github.com/notarialabs/intake/internal/extract"
	"github.com/notarialabs/intake/internal/generate"
	"github.com/notarialabs/intake/internal/middleware"
	"github.com/notarialabs/intake/internal/store"
)

// Server wires the conversation engine, the extractor registry and the
// chat store behind the HTTP and WebSocket endpoints.
type Server struct {
	cfg      *config.Config
	store    *store.Store
	engine   *conversation.Engine
	registry *extract.Registry
	catalogo *catalog.Catalog
	upgrader websocket.Upgrader

	// locks serializes turns per chat; the engine itself is stateless.
	locks sync.Map
}

func New(cfg *config.Config, st *store.Store, eng *conversation.Engine, reg *extract.Registry, cat *catalog.Catalog) *Server {
	return &Server{
		cfg:      cfg,
		store:    st,
		engine:   eng,
		registry: reg,
		catalogo: cat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	middleware.Register(router)

	router.HandleFunc("/health", s.health).Methods("GET")
	router.HandleFunc("/chats", s.createChat).Methods("POST")
	router.HandleFunc("/chats/{id}", s.getChat).Methods("GET")
	router.HandleFunc("/chats/{id}/messages", s.postMessage).Methods("POST")
	router.HandleFunc("/chats/{id}/preview", s.preview).Methods("GET")
	router.HandleFunc("/chats/{id}/stream", s.stream).Methods("GET")

	// Configuration API
	router.PathPrefix("/configure").Handler(config.NewConfigAPI(s.cfg, s.catalogo).Router())
	return router
}

func (s *Server) chatLock(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createChatRequest struct {
	Usuario string `json:"usuario"`
}

func (s *Server) createChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}
	}
	if req.Usuario == "" {
		req.Usuario = "anonimo"
	}

	chat, err := s.store.CrearChat(r.Context(), req.Usuario)
	if err != nil {
		log.Printf("crear chat: %v", err)
		http.Error(w, "could not create chat", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

func (s *Server) getChat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	chat, err := s.store.ObtenerChat(r.Context(), id)
	if errors.Is(err, store.ErrChatNotFound) {
		http.Error(w, "chat not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("obtener chat %s: %v", id, err)
		http.Error(w, "could not load chat", http.StatusInternalServerError)
		return
	}

	mensajes, err := s.store.ListarMensajes(r.Context(), id)
	if err != nil {
		log.Printf("listar mensajes %s: %v", id, err)
		http.Error(w, "could not load chat", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"chat":     chat,
		"mensajes": mensajes,
	})
}

type messageRequest struct {
	Mensaje string `json:"mensaje"`
}

// turnResponse is the result of one conversation turn.
type turnResponse struct {
	ChatID         string `json:"chat_id"`
	Respuesta      string `json:"respuesta"`
	Estado         string `json:"estado"`
	TipoContrato   string `json:"tipo_contrato,omitempty"`
	CodigoContrato string `json:"codigo_contrato,omitempty"`
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Mensaje == "" {
		http.Error(w, "mensaje is required", http.StatusBadRequest)
		return
	}

	resp, err := s.runTurn(r, id, req.Mensaje)
	if err != nil {
		writeTurnError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// runTurn executes one engine turn under the chat lock and persists the
// updated context plus both sides of the exchange. A malformed signer
// payload is answered in-band: the engine's retry prompt is stored and
// returned like any other reply.
func (s *Server) runTurn(r *http.Request, chatID, mensaje string) (turnResponse, error) {
	ctx := r.Context()

	mu := s.chatLock(chatID)
	mu.Lock()
	defer mu.Unlock()

	chat, err := s.store.ObtenerChat(ctx, chatID)
	if err != nil {
		return turnResponse{}, err
	}
	convo := chat.Contexto

	reply, err := s.engine.HandleTurn(ctx, &convo, mensaje)
	if err != nil {
		var malformed *conversation.MalformedSignersError
		if !errors.As(err, &malformed) || reply == "" {
			return turnResponse{}, err
		}
		log.Printf("chat %s: %v", chatID, err)
	}

	if err := s.store.GuardarMensaje(ctx, chatID, "usuario", mensaje); err != nil {
		return turnResponse{}, err
	}
	if err := s.store.GuardarContexto(ctx, chatID, &convo); err != nil {
		return turnResponse{}, err
	}
	if err := s.store.GuardarMensaje(ctx, chatID, "sistema", reply); err != nil {
		return turnResponse{}, err
	}

	return turnResponse{
		ChatID:         chatID,
		Respuesta:      reply,
		Estado:         string(convo.Estado),
		TipoContrato:   convo.TipoContrato,
		CodigoContrato: convo.CodigoContrato,
	}, nil
}

// preview materializes the contract context for rendering. Entering it in
// generando_contrato advances the conversation to esperando_aprobacion_formal,
// so the transition is persisted.
func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	mu := s.chatLock(id)
	mu.Lock()
	defer mu.Unlock()

	chat, err := s.store.ObtenerChat(ctx, id)
	if errors.Is(err, store.ErrChatNotFound) {
		http.Error(w, "chat not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("obtener chat %s: %v", id, err)
		http.Error(w, "could not load chat", http.StatusInternalServerError)
		return
	}
	convo := chat.Contexto

	limpio, plantilla, err := generate.Preliminar(ctx, s.registry, s.catalogo, &convo)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if err := s.store.GuardarContexto(ctx, id, &convo); err != nil {
		log.Printf("guardar contexto %s: %v", id, err)
		http.Error(w, "could not persist chat", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"chat_id":         id,
		"estado":          string(convo.Estado),
		"plantilla":       plantilla,
		"contexto_limpio": limpio,
	})
}

// streamFrame is one WebSocket frame on /chats/{id}/stream. Replies are
// delivered as a run of delta frames followed by a single done frame.
type streamFrame struct {
	Delta          string `json:"delta,omitempty"`
	Done           bool   `json:"done,omitempty"`
	Estado         string `json:"estado,omitempty"`
	TipoContrato   string `json:"tipo_contrato,omitempty"`
	CodigoContrato string `json:"codigo_contrato,omitempty"`
	Error          string `json:"error,omitempty"`
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := s.store.ObtenerChat(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			http.Error(w, "chat not found", http.StatusNotFound)
			return
		}
		log.Printf("obtener chat %s: %v", id, err)
		http.Error(w, "could not load chat", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	delay := s.cfg.StreamDelay()
	for {
		var req messageRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("chat %s: websocket: %v", id, err)
			}
			return
		}
		if req.Mensaje == "" {
			continue
		}

		resp, err := s.runTurn(r, id, req.Mensaje)
		if err != nil {
			log.Printf("chat %s: %v", id, err)
			if werr := conn.WriteJSON(streamFrame{Done: true, Error: userTurnError(err)}); werr != nil {
				return
			}
			continue
		}

		// The context is already committed; pacing only affects delivery.
		for chunk := range conversation.Stream(r.Context(), resp.Respuesta, delay) {
			if err := conn.WriteJSON(streamFrame{Delta: chunk}); err != nil {
				return
			}
		}
		done := streamFrame{
			Done:           true,
			Estado:         resp.Estado,
			TipoContrato:   resp.TipoContrato,
			CodigoContrato: resp.CodigoContrato,
		}
		if err := conn.WriteJSON(done); err != nil {
			return
		}
	}
}

func writeTurnError(w http.ResponseWriter, chatID string, err error) {
	var unknown *conversation.UnknownStateError
	switch {
	case errors.Is(err, store.ErrChatNotFound):
		http.Error(w, "chat not found", http.StatusNotFound)
	case errors.As(err, &unknown):
		log.Printf("chat %s: %v", chatID, err)
		http.Error(w, userTurnError(err), http.StatusConflict)
	default:
		log.Printf("chat %s: %v", chatID, err)
		http.Error(w, userTurnError(err), http.StatusInternalServerError)
	}
}

// userTurnError maps internal turn failures to a Spanish-language message
// safe to surface to the end user.
func userTurnError(err error) string {
	var unknown *conversation.UnknownStateError
	if errors.As(err, &unknown) {
		return "La conversación quedó en un estado desconocido. Por favor inicia un nuevo chat."
	}
	if errors.Is(err, store.ErrChatNotFound) {
		return "No se encontró la conversación."
	}
	return "Ocurrió un problema procesando tu mensaje. Por favor inténtalo de nuevo."
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// HTTPServer builds the http.Server for the configured listen address.
func (s *Server) HTTPServer() *http.Server {
	timeout := 15 * time.Second
	if d, err := time.ParseDuration(s.cfg.Intake.Server.Timeout); err == nil && d > 0 {
		timeout = d
	}
	return &http.Server{
		Addr:         s.cfg.Intake.Server.Addr,
		Handler:      s.Router(),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  60 * time.Second,
	}
}
