package client

import (
	"github.com/go-faster/errors"
)

// ErrorKind - класс ошибки ответа сервера.
type ErrorKind int

const (
	// KindTransport - запрос не дошел до сервера или ответ не прочитан.
	KindTransport ErrorKind = iota + 1
	// KindNonJSON - сервер ответил не JSON (обычно HTML-страница ошибки).
	KindNonJSON
	// KindApplication - JSON-ответ с success:false.
	KindApplication
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindNonJSON:
		return "non-json"
	case KindApplication:
		return "application"
	}
	return "unknown"
}

// ResponseError - ошибка, текст которой можно показать пользователю как есть.
type ResponseError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *ResponseError) Error() string {
	return e.Message
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

var (
	// ErrSubmitInProgress - форма уже отправляется.
	ErrSubmitInProgress = errors.New("запрос уже выполняется")
	// ErrCancelled - пользователь не подтвердил действие.
	ErrCancelled = errors.New("действие отменено")
	// ErrNotSupported - у сущности нет нужного эндпоинта.
	ErrNotSupported = errors.New("операция не поддерживается")
)

// ReportedError - ошибка, о которой пользователь уже уведомлен.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// UserMessage возвращает текст ошибки для уведомления.
func UserMessage(err error) string {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}
