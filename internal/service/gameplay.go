package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/config"
	"github.com/rocketscienceinc/fourinarow-backend/internal/connect4"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/scheduler"
)

type GamePlayService interface {
	JoinQueue(ctx context.Context, connectionID, displayName string) error
	MakeMove(ctx context.Context, connectionID string, column int) error
	Rejoin(ctx context.Context, connectionID, displayName string) error
	Disconnect(ctx context.Context, connectionID string)
	FetchLeaderboard(ctx context.Context, connectionID string)

	Run(ctx context.Context)
}

// gameRecorder - fire-and-forget sink for completed games.
type gameRecorder interface {
	Submit(game *entity.Game)
}

type leaderboardReader interface {
	Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

// gamePlayService - serializes every client event and timer callback that touches game state.
type gamePlayService struct {
	logger *slog.Logger
	conf   config.Game

	mu          sync.Mutex
	registry    *GameRegistry
	queue       *MatchmakingQueue
	timers      *scheduler.Scheduler
	botService  BotService
	notifier    Notifier
	recorder    gameRecorder
	leaderboard leaderboardReader
}

func NewGamePlayService(
	logger *slog.Logger,
	conf config.Game,
	registry *GameRegistry,
	queue *MatchmakingQueue,
	timers *scheduler.Scheduler,
	botService BotService,
	notifier Notifier,
	recorder gameRecorder,
	leaderboard leaderboardReader,
) GamePlayService {
	that := &gamePlayService{
		logger:      logger.With("component", "gameplay"),
		conf:        conf,
		registry:    registry,
		queue:       queue,
		timers:      timers,
		botService:  botService,
		notifier:    notifier,
		recorder:    recorder,
		leaderboard: leaderboard,
	}

	queue.OnBotGame(that.startBotGame)

	return that
}

// JoinQueue - queues the player or starts a game with the longest waiting one.
func (that *gamePlayService) JoinQueue(_ context.Context, connectionID, displayName string) error {
	log := that.logger.With("method", "JoinQueue", "connectionID", connectionID)

	name, err := normalizeDisplayName(displayName)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if game, ok := that.registry.ByDisplayName(name); ok {
		if game.IsOngoing() {
			return fmt.Errorf("%w: %s", apperror.ErrAlreadyInGame, name)
		}

		that.registry.Retire(game.ID)
		log.Info("previous finished game retired", "gameID", game.ID, "displayName", name)
	}

	if game, ok := that.registry.ByConnection(connectionID); ok && game.IsOngoing() {
		return fmt.Errorf("%w: connection %s", apperror.ErrAlreadyInGame, connectionID)
	}

	result, err := that.queue.Enqueue(newHumanPlayer(connectionID, name))
	if err != nil {
		return err
	}

	if result == nil {
		that.notifier.Send(connectionID, EventWaitingForOpponent, WaitingPayload{
			Message:   "Waiting for an opponent...",
			TimeoutMs: that.conf.MatchmakingTimeout.Milliseconds(),
		})
		return nil
	}

	that.notifier.Join(connectionID, result.Game.ID)
	that.notifier.Join(result.OpponentConnectionID, result.Game.ID)
	that.notifier.Broadcast(result.Game.ID, EventGameUpdate, result.Game.Clone())

	return nil
}

// startBotGame - invoked by the matchmaking queue once the fallback game exists.
func (that *gamePlayService) startBotGame(game *entity.Game) {
	that.mu.Lock()
	defer that.mu.Unlock()

	human := game.Players[0]

	that.notifier.Join(human.ConnectionID, game.ID)
	that.notifier.Broadcast(game.ID, EventGameUpdate, game.Clone())

	if game.IsBotTurn() {
		that.scheduleBotMove(game.ID)
	}
}

// MakeMove - validates and applies a human move.
func (that *gamePlayService) MakeMove(_ context.Context, connectionID string, column int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.registry.ByConnection(connectionID)
	if !ok {
		return apperror.ErrNoActiveGame
	}

	player := game.PlayerByConnection(connectionID)
	if player == nil {
		return apperror.ErrUnknownPlayer
	}

	if game.CurrentPlayerID != player.ID {
		return apperror.ErrNotYourTurn
	}

	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !connect4.IsValidMove(game.Board, column) {
		return fmt.Errorf("%w: column %d", apperror.ErrInvalidMove, column)
	}

	if err := that.applyMove(game, player.ID, column); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	return nil
}

// applyMove - places the piece, resolves the outcome and notifies the room.
func (that *gamePlayService) applyMove(game *entity.Game, playerID string, column int) error {
	piece, ok := game.PieceOf(playerID)
	if !ok {
		return apperror.ErrUnknownPlayer
	}

	board, row, err := connect4.ApplyMove(game.Board, column, piece)
	if err != nil {
		return err
	}

	game.Board = board

	isWin := connect4.CheckWin(board, row, column, piece)
	if isWin || connect4.CheckDraw(board) {
		winnerID := ""
		if isWin {
			winnerID = playerID
		}

		game.Finish(winnerID)
		that.timers.Cancel(disconnectKey(game.ID))

		snapshot := game.Clone()
		that.notifier.Broadcast(game.ID, EventGameUpdate, snapshot)
		that.timers.Schedule(gameEndKey(game.ID), that.conf.GameEndDelay, func() {
			that.concludeGame(snapshot)
		})

		that.logger.Info("game ended", "gameID", game.ID, "winnerID", winnerID)

		return nil
	}

	game.CurrentPlayerID = game.NextPlayerID()
	that.notifier.Broadcast(game.ID, EventGameUpdate, game.Clone())

	if game.IsBotTurn() {
		that.scheduleBotMove(game.ID)
	}

	return nil
}

// concludeGame - announces the final state and hands the game to persistence.
func (that *gamePlayService) concludeGame(snapshot *entity.Game) {
	that.notifier.Broadcast(snapshot.ID, EventGameEnd, snapshot)
	that.recorder.Submit(snapshot)
}

func (that *gamePlayService) scheduleBotMove(gameID string) {
	that.timers.Schedule(botMoveKey(gameID), that.conf.BotMoveDelay, func() {
		that.playBotMove(gameID)
	})
}

func (that *gamePlayService) playBotMove(gameID string) {
	log := that.logger.With("method", "playBotMove", "gameID", gameID)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.registry.ByID(gameID)
	if !ok || !game.IsOngoing() || !game.IsBotTurn() {
		log.Debug("bot move skipped, game state changed")
		return
	}

	column, err := that.botService.ChooseMove(game)
	if err != nil {
		log.Error("bot failed to choose a move", "error", err)
		return
	}

	if err = that.applyMove(game, entity.BotPlayerID, column); err != nil {
		log.Error("bot failed to make move", "column", column, "error", err)
	}
}

// Disconnect - drops a queued player, or arms the forfeit timer of an in-progress game.
func (that *gamePlayService) Disconnect(_ context.Context, connectionID string) {
	log := that.logger.With("method", "Disconnect", "connectionID", connectionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.queue.Dequeue(connectionID) {
		log.Info("player left the queue")
	}

	game, ok := that.registry.ByConnection(connectionID)
	if !ok || !game.IsOngoing() {
		return
	}

	player := game.PlayerByConnection(connectionID)
	if player == nil || player.IsBot() {
		return
	}

	if _, dropped := game.ReconnectDeadline(player.ID); dropped {
		return
	}

	deadline := time.Now().Add(that.conf.ReconnectTimeout)
	game.MarkDisconnected(player.ID, deadline)

	if game.DisconnectedPlayerID != "" {
		log.Info("forfeit timer already armed, keeping the first deadline", "gameID", game.ID)
	} else {
		that.armForfeit(game, player.ID, deadline)
	}

	log.Info("player disconnected from game", "gameID", game.ID, "displayName", player.DisplayName)

	opponent := game.Opponent(player.ID)
	if opponent == nil || opponent.IsBot() {
		return
	}

	that.notifyDisconnected(opponent.ConnectionID, player, that.conf.ReconnectTimeout)
}

// armForfeit - schedules the forfeit of playerID, a callback from an earlier arm is ignored.
func (that *gamePlayService) armForfeit(game *entity.Game, playerID string, deadline time.Time) {
	game.DisconnectToken++
	game.DisconnectedPlayerID = playerID
	game.DisconnectDeadline = &deadline

	gameID, token := game.ID, game.DisconnectToken
	that.timers.Schedule(disconnectKey(gameID), time.Until(deadline), func() {
		that.forfeit(gameID, playerID, token)
	})
}

func (that *gamePlayService) notifyDisconnected(connectionID string, player *entity.Player, remaining time.Duration) {
	remaining = max(remaining, 0)

	that.notifier.Send(connectionID, EventPlayerDisconnected, PlayerDisconnectedPayload{
		DisplayName:     player.DisplayName,
		ReconnectTimeMs: remaining.Milliseconds(),
		Message: fmt.Sprintf("%s has disconnected. They have %d seconds to rejoin.",
			player.DisplayName, int(remaining.Seconds())),
	})
}

// Rejoin - binds a returning player to the new connection and replays the game state.
func (that *gamePlayService) Rejoin(_ context.Context, connectionID, displayName string) error {
	log := that.logger.With("method", "Rejoin", "connectionID", connectionID)

	name, err := normalizeDisplayName(displayName)
	if err != nil {
		return apperror.ErrNoRecoverableGame
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.registry.ByDisplayName(name)
	if !ok {
		return apperror.ErrNoRecoverableGame
	}

	player := game.PlayerByName(name)
	if player == nil {
		return apperror.ErrNoRecoverableGame
	}

	if err = that.registry.UpdateSocket(player.ID, connectionID); err != nil {
		return fmt.Errorf("failed to rebind connection: %w", err)
	}

	game.MarkReconnected(player.ID)

	opponent := game.Opponent(player.ID)
	opponentDeadline, opponentDropped := time.Time{}, false
	if opponent != nil && !opponent.IsBot() && game.IsOngoing() {
		opponentDeadline, opponentDropped = game.ReconnectDeadline(opponent.ID)
	}

	if game.DisconnectedPlayerID == player.ID {
		that.timers.Cancel(disconnectKey(game.ID))
		game.DisconnectDeadline = nil
		game.DisconnectedPlayerID = ""

		if opponentDropped {
			that.armForfeit(game, opponent.ID, opponentDeadline)
		}
	}

	that.notifier.Join(connectionID, game.ID)
	that.notifier.Send(connectionID, EventGameRejoined, game.Clone())

	log.Info("player rejoined", "gameID", game.ID, "displayName", name)

	switch {
	case opponentDropped:
		that.notifyDisconnected(connectionID, opponent, time.Until(opponentDeadline))
	case opponent != nil && !opponent.IsBot() && game.IsOngoing():
		that.notifier.Send(opponent.ConnectionID, EventPlayerReconnected, PlayerReconnectedPayload{
			DisplayName: name,
		})
	}

	return nil
}

// forfeit - ends the game in favour of the remaining participant.
func (that *gamePlayService) forfeit(gameID, playerID string, token uint64) {
	log := that.logger.With("method", "forfeit", "gameID", gameID)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.registry.ByID(gameID)
	if !ok || !game.IsOngoing() || game.DisconnectedPlayerID != playerID || game.DisconnectToken != token {
		log.Debug("forfeit skipped, game state changed")
		return
	}

	forfeited := game.PlayerByID(playerID)
	winner := game.Opponent(playerID)
	if forfeited == nil || winner == nil {
		log.Error("forfeit participants not found", "playerID", playerID)
		return
	}

	game.Finish(winner.ID)
	that.timers.Cancel(botMoveKey(game.ID))

	snapshot := game.Clone()
	that.recorder.Submit(snapshot)

	that.notifier.Broadcast(game.ID, EventGameForfeit, ForfeitPayload{
		GameID:               game.ID,
		WinnerID:             winner.ID,
		ForfeitedDisplayName: forfeited.DisplayName,
		Message:              fmt.Sprintf("%s did not reconnect in time. %s wins!", forfeited.DisplayName, winner.DisplayName),
	})

	log.Info("game forfeited", "forfeited", forfeited.DisplayName, "winner", winner.DisplayName)
}

// FetchLeaderboard - sends the top players to the requesting connection.
func (that *gamePlayService) FetchLeaderboard(ctx context.Context, connectionID string) {
	entries, err := that.leaderboard.Top(ctx, that.conf.LeaderboardSize)
	if err != nil {
		that.logger.Error("failed to fetch leaderboard", "connectionID", connectionID, "error", err)
		entries = []entity.LeaderboardEntry{}
	}

	that.notifier.Send(connectionID, EventLeaderboardUpdate, LeaderboardPayload{Entries: entries})
}

// Run - periodically sweeps expired games until ctx is done, then disarms every timer.
func (that *gamePlayService) Run(ctx context.Context) {
	ticker := time.NewTicker(that.conf.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			that.timers.Stop()
			return
		case now := <-ticker.C:
			that.mu.Lock()
			that.registry.Sweep(now, that.conf.EndedGameTTL, that.conf.MaxGameAge)
			that.mu.Unlock()
		}
	}
}
