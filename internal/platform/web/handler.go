package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/fruit-rush/internal/core"
	"github.com/vovakirdan/fruit-rush/internal/fruit"
	"github.com/vovakirdan/fruit-rush/internal/logging"
	"github.com/vovakirdan/fruit-rush/internal/registry"
	"github.com/vovakirdan/fruit-rush/internal/storage"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
	defaultPlayer  = "guest"
)

var errUnexpectedGame = errors.New("web: registered game does not expose snapshots")

// HandlerConfig configures the WebSocket handler.
type HandlerConfig struct {
	// TickRate overrides the game's ticks per second when positive.
	TickRate int

	// Game options applied to every connection.
	ConfigPath string
	Difficulty string

	// Store receives finished runs. May be nil.
	Store  *storage.Store
	Logger *log.Logger

	// OutboxSize bounds the frames queued per connection.
	OutboxSize int

	// Seed fixes the session seed when non-zero. Zero seeds from the clock.
	Seed int64
}

// playable is the part of *fruit.Game a connection drives.
type playable interface {
	registry.Game
	Snapshot() fruit.Snapshot
	TickRate() int
}

// clientMessage is a control message sent by the browser.
type clientMessage struct {
	Type      string `json:"type" msgpack:"type"`
	Direction string `json:"direction,omitempty" msgpack:"direction,omitempty"`
}

// action maps the message to the input action it stands for.
func (m clientMessage) action() (core.Action, bool) {
	switch m.Type {
	case "start":
		return core.ActionConfirm, true
	case "restart":
		return core.ActionRestart, true
	case "help":
		return core.ActionHelp, true
	case "direction":
		d, ok := fruit.ParseDirection(strings.ToLower(m.Direction))
		if !ok {
			return core.ActionNone, false
		}
		return d.Action(), true
	}
	return core.ActionNone, false
}

// Handler upgrades requests to WebSocket connections, each playing its own game.
type Handler struct {
	config   HandlerConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
	sessions *Sessions
}

// NewHandler creates a handler. The store is shared and never closed here.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: NewSessions(),
	}
}

// Sessions returns the number of live connections.
func (h *Handler) Sessions() int {
	return h.sessions.Count()
}

// CloseAll ends every live connection.
func (h *Handler) CloseAll() {
	h.sessions.CloseAll()
}

// Handle serves /ws?name=<player>&codec=json|msgpack.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	codec, err := CodecByName(query.Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	player := strings.TrimSpace(query.Get("name"))
	if player == "" {
		player = defaultPlayer
	}
	logger := h.logger.With("player", player, "remote", r.RemoteAddr)

	game, err := h.newGame(logger)
	if err != nil {
		logger.Error("cannot create game", "error", err)
		http.Error(w, "cannot create game", http.StatusInternalServerError)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("upgrade failed", "error", err)
		return
	}

	box := h.sessions.Open(h.config.OutboxSize)
	defer h.sessions.Remove(box)

	s := &session{
		ws:      ws,
		game:    game,
		codec:   codec,
		box:     box,
		store:   h.config.Store,
		player:  player,
		logger:  logger,
		pending: core.NewInputFrame(),
	}

	logger.Info("session started", "codec", codec.Name())
	s.run(r.Context())
	logger.Info("session ended", "ticks", game.State().Ticks, "dropped", box.Dropped())
}

func (h *Handler) newGame(logger *log.Logger) (playable, error) {
	g, err := registry.Create(fruit.GameID, registry.Options{
		ConfigPath: h.config.ConfigPath,
		Difficulty: h.config.Difficulty,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	game, ok := g.(playable)
	if !ok {
		return nil, errUnexpectedGame
	}

	seed := h.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.Reset(core.RuntimeConfig{TickRate: h.config.TickRate, Seed: seed})
	return game, nil
}

// session is one connection. The tick goroutine is the only one touching
// the game; the reader only deposits actions into pending.
type session struct {
	ws     *websocket.Conn
	game   playable
	codec  Codec
	box    *Outbox
	store  *storage.Store
	player string
	logger *log.Logger

	mu      sync.Mutex
	pending core.InputFrame

	saved bool
}

func (s *session) run(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	s.publish()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.tickLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		s.writeLoop(ctx)
		// Unblocks the reader when the writer stops first.
		s.ws.Close()
	}()

	s.readLoop()
	cancel()
	s.box.Close()
	wg.Wait()
}

func (s *session) tickLoop(ctx context.Context) {
	rate := max(1, s.game.TickRate())
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.box.Done():
			return
		case <-ticker.C:
			s.step()
		}
	}
}

// step advances the game with the actions received since the previous tick.
func (s *session) step() {
	s.mu.Lock()
	in := s.pending
	s.pending = core.NewInputFrame()
	s.mu.Unlock()

	st := s.game.Step(in).State
	if !st.GameOver {
		s.saved = false
	} else if !s.saved {
		s.saveRun(st)
		s.saved = true
	}

	s.publish()
}

func (s *session) publish() {
	data, err := s.codec.Marshal(s.game.Snapshot())
	if err != nil {
		s.logger.Error("cannot encode snapshot", "error", err)
		return
	}
	s.box.Send(data)
}

func (s *session) saveRun(st core.GameState) {
	if s.store == nil || st.Score <= 0 {
		return
	}
	run := storage.RunRecord{
		GameID: s.game.ID(),
		Player: s.player,
		Score:  st.Score,
		Ticks:  st.Ticks,
	}
	for _, it := range st.Items {
		run.Items = append(run.Items, storage.RunItem{Item: it.Name, Count: it.Count, Points: it.Points})
	}
	if _, err := s.store.SaveRun(run); err != nil {
		s.logger.Warn("could not save run", "error", err)
		return
	}
	s.logger.Info("run saved", "score", run.Score)
}

func (s *session) writeLoop(ctx context.Context) {
	mt := s.codec.MessageType()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.box.Done():
			return
		case frame := <-s.box.Frames():
			_ = s.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.ws.WriteMessage(mt, frame); err != nil {
				s.logger.Debug("write failed", "error", err)
				return
			}
		}
	}
}

func (s *session) readLoop() {
	s.ws.SetReadLimit(maxMessageSize)
	for {
		mt, data, err := s.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("connection closed", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := decodeClient(mt, data, &msg); err != nil {
			s.logger.Warn("malformed message", "error", err)
			continue
		}
		a, ok := msg.action()
		if !ok {
			s.logger.Warn("unknown message", "type", msg.Type, "direction", msg.Direction)
			continue
		}

		s.mu.Lock()
		s.pending.Set(a)
		s.mu.Unlock()
	}
}
