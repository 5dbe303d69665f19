package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/service"
)

var errInvalidPayload = errors.New("invalid payload")

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	BestMove(w http.ResponseWriter, r *http.Request)
	AnalyzeMoves(w http.ResponseWriter, r *http.Request)

	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)

	JoinLobby(w http.ResponseWriter, r *http.Request)
	LeaveLobby(w http.ResponseWriter, r *http.Request)
	GetPlayer(w http.ResponseWriter, r *http.Request)
	RemovePlayerGame(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger *slog.Logger

	botService         service.BotService
	gameService        service.GameService
	multiplayerService service.MultiplayerService
}

func NewHandlers(
	logger *slog.Logger,
	botService service.BotService,
	gameService service.GameService,
	multiplayerService service.MultiplayerService,
) Handlers {
	return &handlers{
		logger:             logger.With("component", "rest"),
		botService:         botService,
		gameService:        gameService,
		multiplayerService: multiplayerService,
	}
}

type positionRequest struct {
	Board []string `json:"board"`
	Mark  string   `json:"mark,omitempty"`
}

type createGameRequest struct {
	Mark  string `json:"mark"`
	Level string `json:"level"`
}

// turnRequest leaves PlayerID empty for bot games.
type turnRequest struct {
	Row      *int   `json:"row"`
	Col      *int   `json:"col"`
	PlayerID string `json:"player_id,omitempty"`
}

type joinRequest struct {
	PlayerID string `json:"player_id,omitempty"`
	Name     string `json:"name,omitempty"`
}

type joinResponse struct {
	Player *entity.Player `json:"player"`
	Game   *entity.Game   `json:"game"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// BestMove answers with the move the bot would play in the posted position.
func (that *handlers) BestMove(w http.ResponseWriter, r *http.Request) {
	board, mark, err := decodePosition(r)
	if err != nil {
		that.writeError(w, err)
		return
	}

	level := r.URL.Query().Get("level")
	if level == "" {
		level = entity.LevelHard
	}

	move, err := that.botService.ChooseMove(r.Context(), board, mark, level)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, move)
}

// AnalyzeMoves answers with the exact score of every legal move.
func (that *handlers) AnalyzeMoves(w http.ResponseWriter, r *http.Request) {
	board, mark, err := decodePosition(r)
	if err != nil {
		that.writeError(w, err)
		return
	}

	moves, err := that.botService.ScoreMoves(board, mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"moves": moves})
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var payload createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeError(w, errInvalidPayload)
		return
	}

	mark, err := entity.ParseMark(payload.Mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	if payload.Level == "" {
		payload.Level = entity.LevelHard
	}

	game, err := that.gameService.CreateGame(r.Context(), mark, payload.Level)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// MakeTurn plays against the bot, or as player_id in a multiplayer game.
func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var payload turnRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Row == nil || payload.Col == nil {
		that.writeError(w, errInvalidPayload)
		return
	}

	gameID := chi.URLParam(r, "id")
	move := entity.Move{Row: *payload.Row, Col: *payload.Col}

	var (
		game *entity.Game
		err  error
	)
	if payload.PlayerID != "" {
		game, err = that.multiplayerService.MakeTurn(r.Context(), gameID, payload.PlayerID, move)
	} else {
		game, err = that.gameService.MakeTurn(r.Context(), gameID, move)
	}
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// JoinLobby queues the player, a new one when player_id is empty, and answers with the game once paired.
func (that *handlers) JoinLobby(w http.ResponseWriter, r *http.Request) {
	var payload joinRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeError(w, errInvalidPayload)
		return
	}

	player, game, err := that.multiplayerService.Join(r.Context(), payload.PlayerID, payload.Name)
	if err != nil {
		that.writeError(w, err)
		return
	}

	status := http.StatusOK
	if game == nil {
		status = http.StatusAccepted
	}

	writeJSON(w, status, joinResponse{Player: player, Game: game})
}

func (that *handlers) LeaveLobby(w http.ResponseWriter, r *http.Request) {
	if err := that.multiplayerService.Leave(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) GetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := that.multiplayerService.GetPlayer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

func (that *handlers) RemovePlayerGame(w http.ResponseWriter, r *http.Request) {
	if err := that.multiplayerService.RemoveGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodePosition reads a board and the mark to move. Without a mark the side to move is derived from the board.
func decodePosition(r *http.Request) (entity.Board, entity.Cell, error) {
	var payload positionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return entity.Board{}, entity.EmptyCell, errInvalidPayload
	}

	board, err := entity.ParseBoardRows(payload.Board)
	if err != nil {
		return entity.Board{}, entity.EmptyCell, err
	}

	if payload.Mark == "" {
		mark, err := board.NextMark()
		if err != nil {
			return entity.Board{}, entity.EmptyCell, err
		}
		return board, mark, nil
	}

	mark, err := entity.ParseMark(payload.Mark)
	if err != nil {
		return entity.Board{}, entity.EmptyCell, err
	}

	return board, mark, nil
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, errInvalidPayload),
		errors.Is(err, apperror.ErrInvalidSymbol),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrInvalidPosition),
		errors.Is(err, apperror.ErrUnknownLevel),
		errors.Is(err, apperror.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotInGame):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrAlreadyInGame),
		errors.Is(err, apperror.ErrAlreadyWaiting),
		errors.Is(err, apperror.ErrNotWaiting):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrNoLegalMove):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
