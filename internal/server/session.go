package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kapu/pokedex-ja-go/internal/constants"
	"github.com/kapu/pokedex-ja-go/internal/domain"
	"github.com/kapu/pokedex-ja-go/internal/service/game"
	"github.com/kapu/pokedex-ja-go/pkg/errors"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client actions accepted on /ws/game.
const (
	ActionQuizStart     = "quiz.start"
	ActionQuizHint      = "quiz.hint"
	ActionQuizAnswer    = "quiz.answer"
	ActionQuizSurrender = "quiz.surrender"
	ActionDuelStart     = "duel.start"
	ActionDuelChoose    = "duel.choose"
)

type ClientMessage struct {
	Action string `json:"action"`
	Answer string `json:"answer,omitempty"`
	Side   string `json:"side,omitempty"`
}

type ServerMessage struct {
	Type  string           `json:"type"`
	Quiz  *domain.QuizView `json:"quiz,omitempty"`
	Duel  *domain.DuelView `json:"duel,omitempty"`
	Code  string           `json:"code,omitempty"`
	Error string           `json:"error,omitempty"`
}

// session owns the current quiz and duel round of one connection. Only the
// session goroutine touches it.
type session struct {
	id     uuid.UUID
	rng    game.Rand
	quiz   *domain.QuizRound
	duel   *domain.DuelRound
	logger *zap.Logger
}

func (s *Server) game(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.New()
	sess := &session{
		id:     id,
		rng:    s.deps.NewRand(id),
		logger: s.logger.With(zap.String("session", id.String())),
	}
	sess.logger.Info("Game session opened")
	defer sess.logger.Info("Game session closed")

	// cancelled when the peer goes away, which aborts any in-flight fetch
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	conn.SetReadLimit(constants.WebSocketConfig.ReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongTimeout))
	})

	incoming := make(chan []byte)
	go func() {
		defer cancel()
		defer close(incoming)
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					sess.logger.Debug("WebSocket read error", zap.Error(err))
				}
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(constants.WebSocketConfig.PongTimeout))
			select {
			case incoming <- payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	ping := time.NewTicker(constants.WebSocketConfig.PongTimeout / 2)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			deadline := time.Now().Add(constants.WebSocketConfig.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case payload, ok := <-incoming:
			if !ok {
				return
			}
			reply := s.dispatch(ctx, sess, payload)
			if ctx.Err() != nil {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(constants.WebSocketConfig.WriteTimeout))
			if err := conn.WriteJSON(reply); err != nil {
				sess.logger.Debug("WebSocket write failed", zap.Error(err))
				return
			}
		}
	}
}

func (s *Server) dispatch(ctx context.Context, sess *session, payload []byte) ServerMessage {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return errorMessage(errors.NewValidationError("message must be a JSON object", "payload", len(payload)))
	}

	switch msg.Action {
	case ActionQuizStart:
		round, err := s.deps.Quiz.StartRound(ctx, sess.rng)
		if err != nil {
			return errorMessage(err)
		}
		sess.quiz = &round
		return quizMessage(round)

	case ActionQuizHint, ActionQuizAnswer, ActionQuizSurrender:
		if sess.quiz == nil {
			return errorMessage(errors.NewValidationError("no quiz round in progress", "action", msg.Action))
		}
		round := *sess.quiz
		switch msg.Action {
		case ActionQuizHint:
			round = round.RevealHint()
		case ActionQuizAnswer:
			round = round.SubmitAnswer(msg.Answer)
		case ActionQuizSurrender:
			round = round.Surrender()
		}
		sess.quiz = &round
		return quizMessage(round)

	case ActionDuelStart:
		round, err := s.deps.Duel.StartRound(ctx, sess.rng)
		if err != nil {
			return errorMessage(err)
		}
		sess.duel = &round
		return duelMessage(round)

	case ActionDuelChoose:
		if sess.duel == nil {
			return errorMessage(errors.NewValidationError("no duel round in progress", "action", msg.Action))
		}
		round, err := sess.duel.Choose(domain.DuelSide(msg.Side))
		if err != nil {
			return errorMessage(err)
		}
		sess.duel = &round
		return duelMessage(round)

	default:
		return errorMessage(errors.NewValidationError("unknown action", "action", msg.Action))
	}
}

func quizMessage(round domain.QuizRound) ServerMessage {
	view := round.View()
	return ServerMessage{Type: "quiz", Quiz: &view}
}

func duelMessage(round domain.DuelRound) ServerMessage {
	view := round.View()
	return ServerMessage{Type: "duel", Duel: &view}
}

func errorMessage(err error) ServerMessage {
	_, code := classify(err)
	return ServerMessage{Type: "error", Code: code, Error: err.Error()}
}
