package apperr

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибку для вызывающей стороны
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindConfiguration   Kind = "configuration"
	KindUpstream        Kind = "upstream"
	KindNetwork         Kind = "network"
	KindInternal        Kind = "internal"
)

// DefaultUpstreamMessage - сообщение, если провайдер не прислал своего
const DefaultUpstreamMessage = "Conversion failed"

// Error - нормализованная ошибка шлюза и клиентов.
// Message можно показывать пользователю, Err - только в логи.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// Upstream - провайдер сам сообщил об ошибке
func Upstream(code, message string) *Error {
	if message == "" {
		message = DefaultUpstreamMessage
	}
	return &Error{Kind: KindUpstream, Message: message, Code: code}
}

func Network(message string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: message, Err: err}
}

// New - для ошибок, восстановленных из JSON ответа API
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf возвращает тип ошибки (KindInternal для чужих ошибок)
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf возвращает текст для пользователя
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

func IsConfiguration(err error) bool {
	return KindOf(err) == KindConfiguration
}

func IsUpstream(err error) bool {
	return KindOf(err) == KindUpstream
}

func IsNetwork(err error) bool {
	return KindOf(err) == KindNetwork
}
