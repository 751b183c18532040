package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("invalid message")
	ErrUnknownSender       = errors.New("sender is not in the room")
	ErrDuplicateName       = errors.New("participant name already in use")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrForbidden           = errors.New("message belongs to another participant")
)

// StoreError 包裝資料庫錯誤，Op 標示失敗的操作
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
