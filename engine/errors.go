package engine

import "errors"

var (
	// ErrInvariant 调用方违反约定（执行未校验的非法动作等），不是玩家可修正的错误
	ErrInvariant = errors.New("engine invariant violated")
	// ErrPhase 回合阶段顺序不对
	ErrPhase = errors.New("operation not allowed in current turn phase")
	// ErrGameOver 游戏已结束
	ErrGameOver = errors.New("game is over")
)

// ValidationError 玩家可修正的非法动作，Reason 直接展示给玩家
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidationError 判断是否为玩家可修正的错误
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
