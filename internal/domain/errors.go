package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrStoreRead          = errors.New("store read failed")
	ErrStoreWrite         = errors.New("store write failed")
	ErrMailDispatch       = errors.New("mail dispatch failed")
	ErrChannelUnavailable = errors.New("channel unavailable")
	ErrInvalidToken       = errors.New("invalid continuation token")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidResponse    = errors.New("invalid response")
)
