package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

const createGameResults = `CREATE TABLE IF NOT EXISTS game_results (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_id VARCHAR(32) NOT NULL,
	winner VARCHAR(64) NOT NULL,
	winner_seat INT NOT NULL,
	players JSON NOT NULL,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	INDEX idx_winner (winner)
)`

const insertGameResult = `INSERT INTO game_results
	(room_id, winner, winner_seat, players, started_at, finished_at)
	VALUES (?, ?, ?, ?, ?, ?)`

// GameRecord 一局结束后的归档记录
type GameRecord struct {
	RoomID     string
	Winner     string
	WinnerSeat int
	Players    interface{}
	StartedAt  time.Time
	FinishedAt time.Time
}

// ResultArchive 对局结果归档到 MySQL
type ResultArchive struct {
	db *sql.DB
}

// OpenMySQL parseTime 由 DSN 决定
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("打开 MySQL 失败: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("MySQL 连接失败: %w", err)
	}
	zap.L().Info("✅ MySQL 连接成功")
	return db, nil
}

func NewResultArchive(db *sql.DB) *ResultArchive {
	return &ResultArchive{db: db}
}

func (a *ResultArchive) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, createGameResults); err != nil {
		return fmt.Errorf("创建 game_results 表失败: %w", err)
	}
	return nil
}

func (a *ResultArchive) SaveResult(ctx context.Context, rec GameRecord) error {
	players, err := json.Marshal(rec.Players)
	if err != nil {
		return fmt.Errorf("序列化玩家结果失败: %w", err)
	}
	_, err = a.db.ExecContext(ctx, insertGameResult,
		rec.RoomID, rec.Winner, rec.WinnerSeat, string(players),
		rec.StartedAt.UTC(), rec.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("保存对局结果失败: %w", err)
	}
	return nil
}
