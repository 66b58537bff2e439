package client

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"fitclub/internal/domain/entity"
)

const (
	// maxErrorText - сколько символов тела не-JSON ответа попадает в сообщение.
	maxErrorText   = 300
	nonJSONMessage = "Сервер вернул не-JSON"
)

// Result - разобранный JSON-ответ сервера.
type Result struct {
	Status  int
	Success bool
	Message string
	Error   string

	fields map[string]json.RawMessage
}

// IsJSON сообщает, доверяет ли клиент телу ответа с таким Content-Type.
func IsJSON(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "application/json") || strings.Contains(ct, "application/problem+json")
}

// ParseResponse читает и закрывает тело ответа. Тип содержимого проверяется
// до разбора: не-JSON ответ превращается в ResponseError с началом текста тела.
func ParseResponse(resp *http.Response) (*Result, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResponseError{
			Kind:    KindTransport,
			Status:  resp.StatusCode,
			Message: "ошибка чтения ответа: " + err.Error(),
			Err:     err,
		}
	}

	if !IsJSON(resp.Header.Get("Content-Type")) {
		return nil, &ResponseError{
			Kind:    KindNonJSON,
			Status:  resp.StatusCode,
			Message: nonJSONText(body),
		}
	}

	return decodeResult(resp.StatusCode, body)
}

func decodeResult(status int, body []byte) (*Result, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		if err == nil {
			err = errors.New("ожидался JSON-объект")
		}
		return nil, &ResponseError{
			Kind:    KindNonJSON,
			Status:  status,
			Message: "некорректный JSON в ответе сервера",
			Err:     err,
		}
	}

	r := &Result{Status: status, fields: fields}
	_ = json.Unmarshal(fields["success"], &r.Success)
	_ = json.Unmarshal(fields["message"], &r.Message)
	_ = json.Unmarshal(fields["error"], &r.Error)
	return r, nil
}

func nonJSONText(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return nonJSONMessage
	}
	if runes := []rune(text); len(runes) > maxErrorText {
		text = string(runes[:maxErrorText])
	}
	return text
}

// Raw возвращает сырое значение поля ответа.
func (r *Result) Raw(key string) (json.RawMessage, bool) {
	v, ok := r.fields[key]
	if !ok || string(v) == "null" {
		return nil, false
	}
	return v, true
}

// Decode разбирает поле ответа в v.
func (r *Result) Decode(key string, v any) error {
	raw, ok := r.Raw(key)
	if !ok {
		return errors.Errorf("в ответе нет поля %q", key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "поле %q", key)
	}
	return nil
}

// Err превращает неуспешный ответ в ошибку с текстом сервера или запасным.
func (r *Result) Err(fallback string) error {
	return &ResponseError{
		Kind:    KindApplication,
		Status:  r.Status,
		Message: entity.Message(r.Error, fallback),
	}
}

// Text возвращает сообщение сервера или запасное.
func (r *Result) Text(fallback string) string {
	return entity.Message(r.Message, fallback)
}
