package services

import "errors"

var (
	ErrInvalidTicketType   = errors.New("invalid ticket type")
	ErrInsufficientTickets = errors.New("insufficient tickets")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCooldownActive      = errors.New("free ticket cooldown active")
	ErrPoolUnavailable     = errors.New("prize pool unavailable")
)
