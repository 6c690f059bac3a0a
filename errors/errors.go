package errors

import "fmt"

var (
	ErrInvalidCommand = fmt.Errorf("invalid command")
	ErrUserNotFound   = fmt.Errorf("user not found")
	ErrRoomNotFound   = fmt.Errorf("room not found")
)
