package session

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room already exists")
	ErrMissingName  = errors.New("room and name are required")
	ErrSeatOnline   = errors.New("player is already connected")
	ErrSeatClaimed  = errors.New("seat belongs to another identity")
	ErrGameFinished = errors.New("game is already over")
	ErrRoomFull     = errors.New("room is full")
)

// Rejection 被拒绝的请求：Err 供调用方用 errors.Is 判断，Reason 原样发给客户端
type Rejection struct {
	Reason string
	Err    error
}

func (r *Rejection) Error() string { return r.Err.Error() }
func (r *Rejection) Unwrap() error { return r.Err }

// Reject 用面向玩家的文案包装 err
func Reject(err error, format string, args ...any) error {
	return &Rejection{Reason: fmt.Sprintf(format, args...), Err: err}
}

// UserMessage 发给客户端的错误文案
func UserMessage(err error) string {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason
	}
	return err.Error()
}
