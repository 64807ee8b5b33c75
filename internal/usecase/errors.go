package usecase

import "errors"

type ErrKind int

const (
	KindValidation ErrKind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInsufficientStock
	KindPersistence
)

// Usecase層のエラー。HTTPステータスへの変換はhandler側
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewUnauthorizedError(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NewForbiddenError(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewInsufficientStockError(message string) error {
	return &Error{Kind: KindInsufficientStock, Message: message}
}

func NewPersistenceError(message string) error {
	return &Error{Kind: KindPersistence, Message: message}
}

func AsAppError(err error) (*Error, bool) {
	var ae *Error
	ok := errors.As(err, &ae)
	return ae, ok
}

// 認証済みリクエスタ
type Requester struct {
	ID      int64
	IsAdmin bool
}
