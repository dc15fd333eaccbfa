/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Charades game sessions.
//
// Each game ID gets its own Hub, which owns one charades.Game. Every screen
// connected to the same game ID sees the same state; the first one to connect
// is the host and is the only one allowed to change settings or reset.
//
// Routes:
// - $path redirects to a new random game ID
// - $path/:gameid serves the page
// - $path/:gameid/ws is the live channel for that game
// - $path/:gameid/qr is a PNG QR code linking to the game
//
// Idle games are reaped after --session-timeout.

package main

import (
	"crypto/rand"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/charades/games/charades"
)

// Messages coming from clients
type ClientMessage struct {
	Type   string           `json:"type"`             // "configure", "start_turn", "begin", "next", "back", "end_turn", "abort", "continue", "reset"
	Config *charades.Config `json:"config,omitempty"` // configure
}

// SessionInfoMessage is sent immediately on connect.
type SessionInfoMessage struct {
	Type   string `json:"type"` // "session_info"
	GameID string `json:"game_id"`
	IsHost bool   `json:"is_host"`
}

// GameStateMessage carries a full snapshot, for (re)drawing every screen.
type GameStateMessage struct {
	Type       string         `json:"type"` // "game_state"
	State      charades.State `json:"state"`
	Categories []string       `json:"categories"`
}

// TurnMessage carries the live turn: "turn_start", "word" and "tick".
type TurnMessage struct {
	Type string             `json:"type"`
	Turn charades.TurnState `json:"turn"`
}

type TurnEndMessage struct {
	Type     string              `json:"type"` // "turn_end"
	Result   charades.TurnResult `json:"result"`
	Progress charades.Progress   `json:"progress"`
}

type GameOverMessage struct {
	Type    string          `json:"type"` // "game_over"
	Winners []charades.Team `json:"winners"`
	Teams   []charades.Team `json:"teams"`
}

// SimpleMessage is for errors and notices.
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	clientID string
}

type request struct {
	client *Client
	msg    ClientMessage
}

type Hub struct {
	id   string
	cfg  *Config
	data *charades.Dataset
	opts []charades.Option

	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	requests chan request
	done     chan struct{}

	mu sync.RWMutex

	game       *charades.Game
	hostID     string
	createdAt  time.Time
	lastActive time.Time
}

func newHub(cfg *Config, gameID string, data *charades.Dataset, opts ...charades.Option) (*Hub, error) {
	game, err := charades.New(cfg.gameDefaults(), data, opts...)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	return &Hub{
		id:         gameID,
		cfg:        cfg,
		data:       data,
		opts:       opts,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		requests:   make(chan request),
		done:       make(chan struct{}),
		game:       game,
		createdAt:  now,
		lastActive: now,
	}, nil
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()

			if h.hostID == "" {
				h.hostID = c.clientID
			}

			h.clients[c] = true

			h.sendLocked(c, SessionInfoMessage{
				Type:   "session_info",
				GameID: h.id,
				IsHost: c.clientID == h.hostID,
			})
			h.sendLocked(c, h.gameStateLocked())

			if turn, live := h.game.Turn(); live {
				h.sendLocked(c, TurnMessage{Type: "word", Turn: turn})
			}

			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

			h.mu.Unlock()

		case req := <-h.requests:
			h.handle(req)
		}
	}
}

// handle applies one client message to the game and tells every screen
// what changed.
func (h *Hub) handle(req request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	c := req.client
	game := h.game

	switch req.msg.Type {
	case "configure":
		if c.clientID != h.hostID {
			h.sendLocked(c, SimpleMessage{Type: "error", Message: "Only the host can change the settings."})

			return
		}
		if req.msg.Config == nil {
			return
		}

		next, err := charades.New(*req.msg.Config, h.data, h.opts...)
		if err != nil {
			h.sendLocked(c, SimpleMessage{Type: "error", Message: err.Error()})

			return
		}

		game.AbortTurn()
		h.game = next

		h.cfg.log.Info().Str("game", h.id).Interface("config", *req.msg.Config).Msg("GAMES: Reconfigured")

		h.broadcastLocked(h.gameStateLocked())

	case "start_turn":
		if game.Progress().GameOver {
			h.broadcastGameOverLocked()

			return
		}

		turn, err := game.StartTurn()
		if err != nil {
			msg := err.Error()
			if errors.Is(err, charades.ErrNoData) {
				msg = "No categories are available with the current restriction."
			}
			h.broadcastLocked(SimpleMessage{Type: "error", Message: msg})

			return
		}

		h.broadcastLocked(TurnMessage{Type: "turn_start", Turn: turn})

	case "begin":
		err := game.BeginTimer(
			func(s charades.TurnState) { h.onTick(game, s) },
			func(r charades.TurnResult) { h.onExpire(game, r) },
		)
		if err != nil {
			h.sendLocked(c, SimpleMessage{Type: "error", Message: err.Error()})
		}

	case "next":
		turn, more, err := game.AdvanceWord()
		if err != nil {
			h.sendLocked(c, SimpleMessage{Type: "error", Message: err.Error()})

			return
		}

		h.broadcastLocked(TurnMessage{Type: "word", Turn: turn})

		if !more {
			h.endTurnLocked(game)
		}

	case "back":
		turn, _, err := game.GoBack()
		if err != nil {
			h.sendLocked(c, SimpleMessage{Type: "error", Message: err.Error()})

			return
		}

		h.broadcastLocked(TurnMessage{Type: "word", Turn: turn})

	case "end_turn":
		h.endTurnLocked(game)

	case "abort":
		game.AbortTurn()
		h.broadcastLocked(h.gameStateLocked())

	case "continue":
		if p := game.AdvanceScheduler(); p.GameOver {
			h.cfg.log.Info().Str("game", h.id).Msg("GAMES: Finished")
			h.broadcastGameOverLocked()

			return
		}

		h.broadcastLocked(h.gameStateLocked())

	case "reset":
		if c.clientID != h.hostID {
			h.sendLocked(c, SimpleMessage{Type: "error", Message: "Only the host can reset the game."})

			return
		}

		game.Reset()
		h.broadcastLocked(h.gameStateLocked())
	}
}

func (h *Hub) endTurnLocked(game *charades.Game) {
	result, err := game.EndTurn()
	if err != nil {
		return
	}

	h.cfg.log.Info().Str("game", h.id).Int("team", result.ScoringTeam).Int("points", result.TurnPoints).Msg("GAMES: Turn ended")

	h.broadcastLocked(TurnEndMessage{Type: "turn_end", Result: result, Progress: game.Progress()})
}

func (h *Hub) onTick(game *charades.Game, s charades.TurnState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.game != game {
		return
	}

	h.broadcastLocked(TurnMessage{Type: "tick", Turn: s})
}

func (h *Hub) onExpire(game *charades.Game, r charades.TurnResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.game != game {
		return
	}

	h.lastActive = time.Now()

	h.cfg.log.Info().Str("game", h.id).Int("team", r.ScoringTeam).Int("points", r.TurnPoints).Msg("GAMES: Time ran out")

	h.broadcastLocked(TurnEndMessage{Type: "turn_end", Result: r, Progress: game.Progress()})
}

func (h *Hub) gameStateLocked() GameStateMessage {
	return GameStateMessage{
		Type:       "game_state",
		State:      h.game.Snapshot(),
		Categories: h.data.Names(),
	}
}

func (h *Hub) broadcastGameOverLocked() {
	h.broadcastLocked(GameOverMessage{
		Type:    "game_over",
		Winners: h.game.Winner(),
		Teams:   h.game.Teams(),
	})
}

// sendLocked assumes h.mu is already held.
func (h *Hub) sendLocked(c *Client, msg any) {
	if !h.clients[c] {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		h.sendLocked(client, msg)
	}
}

// closeAll stops the game and disconnects all clients of this hub.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.game.AbortTurn()

	for c := range h.clients {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, c)
	}

	close(h.done)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const clientCookieName = "charades_id"

func getOrSetClientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(clientCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     clientCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	cfg         *Config
	data        *charades.Dataset
	hubs        map[string]*Hub
	idleTimeout time.Duration
}

func newGameManager(cfg *Config, data *charades.Dataset) *GameManager {
	gm := &GameManager{
		cfg:         cfg,
		data:        data,
		hubs:        make(map[string]*Hub),
		idleTimeout: cfg.sessionTimeout,
	}

	if gm.idleTimeout > 0 {
		go gm.reaperLoop()
	}

	return gm
}

func (gm *GameManager) getHub(gameID string) (*Hub, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub, nil
	}

	hub, err := newHub(gm.cfg, gameID, gm.data)
	if err != nil {
		return nil, err
	}

	gm.hubs[gameID] = hub

	go hub.run()

	gm.cfg.log.Info().Str("game", gameID).Msg("GAMES: Started")

	return hub, nil
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)

	for range ticker.C {
		gm.reap(time.Now().Add(-gm.idleTimeout))
	}
}

func (gm *GameManager) reap(cutoff time.Time) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		hub.mu.RLock()
		last := hub.lastActive
		hub.mu.RUnlock()

		if last.Before(cutoff) {
			delete(gm.hubs, id)
			go hub.closeAll()

			gm.cfg.log.Info().Str("game", id).Msg("GAMES: Reaped idle game")
		}
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)

			return
		}

		clientID := getOrSetClientID(w, r)

		hub, err := gm.getHub(gameID)
		if err != nil {
			cfg.log.Error().Err(err).Str("game", gameID).Msg("GAMES: Unable to start game")
			http.Error(w, "unable to start game", http.StatusInternalServerError)

			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			cfg.log.Warn().Err(err).Str("game", gameID).Msg("GAMES: Upgrade failed")

			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 32),
			clientID: clientID,
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			_ = conn.Close()

			return
		}

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "configure", "start_turn", "begin", "next", "back", "end_turn", "abort", "continue", "reset":
			select {
			case h.requests <- request{client: c, msg: msg}:
			case <-h.done:
				return
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)

			return
		}

		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		path := strings.TrimSuffix(r.URL.Path, "/qr")
		url := scheme + "://" + r.Host + path

		const qrSize = 320

		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)

		_, _ = w.Write(png)
	}
}

func serveGamePage(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		data, err := assets.ReadFile("assets/index.html")
		if err != nil {
			http.Error(w, "page unavailable", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)

		_ = getOrSetClientID(w, r)

		_, err = w.Write(data)
		if err != nil {
			reportError(errs, err)
		}
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()

		cfg.log.Info().Msgf("GAMES: Created game %s/%s", path, gameID)

		http.Redirect(w, r, cfg.prefix+path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

func registerCharadesGame(cfg *Config, path string, words *WordList, mux *httprouter.Router, errs chan<- error) {
	gm := newGameManager(cfg, words.Dataset())

	mux.GET(cfg.prefix+path, redirectNewGame(cfg, path, gm))

	mux.GET(cfg.prefix+path+"/:gameid", serveGamePage(cfg, errs))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))

	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler(cfg))
}
