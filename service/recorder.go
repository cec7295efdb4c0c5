package service

import (
	"context"
	"time"

	"go-splendor/engine"
	"go-splendor/entities"
	"go-splendor/repository"
	"go-splendor/session"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// RoomStore 房间数据存储（Redis）
type RoomStore interface {
	SaveRoomInfo(ctx context.Context, info entities.RoomInfo) error
	GetRoomInfo(ctx context.Context, roomID string) (*entities.RoomInfo, error)
	SetGameStatus(ctx context.Context, roomID string, status entities.RoomStatus) error
	SetLastAction(ctx context.Context, roomID string, action repository.LastAction) error
	GetLastActions(ctx context.Context, roomID string) (map[string]repository.LastAction, error)
	DeleteRoom(ctx context.Context, roomID string) error
	IncrWin(ctx context.Context, player string) error
	Leaderboard(ctx context.Context, n int) ([]repository.WinCount, error)
}

// ResultArchive 对局结果归档（MySQL）
type ResultArchive interface {
	SaveResult(ctx context.Context, rec repository.GameRecord) error
}

const defaultStoreTimeout = 2 * time.Second

// Recorder 把牌桌事件写入存储。存储失败只记日志，不影响对局
type Recorder struct {
	store   RoomStore
	archive ResultArchive
	log     *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

var _ session.Observer = (*Recorder)(nil)

// NewRecorder archive 可以为 nil
func NewRecorder(store RoomStore, archive ResultArchive, log *zap.Logger) *Recorder {
	return &Recorder{
		store:   store,
		archive: archive,
		log:     log,
		timeout: defaultStoreTimeout,
		now:     time.Now,
	}
}

func (r *Recorder) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *Recorder) StatusChanged(roomID string, status entities.RoomStatus) {
	ctx, cancel := r.withTimeout()
	defer cancel()
	if err := r.store.SetGameStatus(ctx, roomID, status); err != nil {
		r.log.Warn("⚠️ 保存房间状态失败", zap.String("roomID", roomID), zap.String("status", string(status)), zap.Error(err))
	}
}

func (r *Recorder) ActionApplied(roomID string, seat int, player string, action engine.Action) {
	ctx, cancel := r.withTimeout()
	defer cancel()
	err := r.store.SetLastAction(ctx, roomID, repository.LastAction{
		Action:   action.String(),
		PlayerID: player,
		Seat:     seat,
		At:       r.now(),
	})
	if err != nil {
		r.log.Warn("⚠️ 保存最近动作失败", zap.String("roomID", roomID), zap.String("playerID", player), zap.Error(err))
	}
}

func (r *Recorder) GameFinished(result session.GameResult) {
	ctx, cancel := r.withTimeout()
	defer cancel()

	err := r.store.IncrWin(ctx, result.Winner)
	if r.archive != nil {
		err = multierr.Append(err, r.archive.SaveResult(ctx, repository.GameRecord{
			RoomID:     result.RoomID,
			Winner:     result.Winner,
			WinnerSeat: result.WinnerSeat,
			Players:    result.Players,
			StartedAt:  result.StartedAt,
			FinishedAt: result.FinishedAt,
		}))
	}
	if err != nil {
		r.log.Error("❌ 保存对局结果失败",
			zap.String("roomID", result.RoomID),
			zap.Errors("errors", multierr.Errors(err)))
		return
	}
	r.log.Info("🏆 对局结果已保存", zap.String("roomID", result.RoomID), zap.String("winner", result.Winner))
}
