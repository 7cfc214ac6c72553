package apperror

import "errors"

var (
	ErrRoomNotFound = errors.New("room does not exist")
	ErrRoomFull     = errors.New("room is full")
	ErrRoomNotReady = errors.New("room is not ready")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrIllegalMove  = errors.New("illegal move")
)
