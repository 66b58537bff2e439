package client

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(status int, contentType, body string) *http.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponse_JSON(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantSuccess bool
		wantMessage string
		wantError   string
	}{
		{
			name:        "success with message",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"success":true,"message":"Удалено"}`,
			wantSuccess: true,
			wantMessage: "Удалено",
		},
		{
			name:        "application error",
			status:      http.StatusConflict,
			contentType: "application/json; charset=utf-8",
			body:        `{"success":false,"error":"есть связанные записи"}`,
			wantError:   "есть связанные записи",
		},
		{
			name:        "problem json",
			status:      http.StatusBadRequest,
			contentType: "Application/Problem+JSON",
			body:        `{"success":false,"error":"bad"}`,
			wantError:   "bad",
		},
		{
			name:        "no success field",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"zones":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseResponse(response(tt.status, tt.contentType, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)
			assert.Equal(t, tt.wantError, res.Error)
		})
	}
}

func TestParseResponse_NonJSON(t *testing.T) {
	long := "<html>" + strings.Repeat("ошибка ", 200) + "</html>"

	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{name: "short html", contentType: "text/html", body: "<h1>502 Bad Gateway</h1>", want: "<h1>502 Bad Gateway</h1>"},
		{name: "empty body", contentType: "text/plain", body: "   ", want: "Сервер вернул не-JSON"},
		{name: "no content type", contentType: "", body: `{"success":true}`, want: `{"success":true}`},
		{name: "long html truncated", contentType: "text/html", body: long, want: string([]rune(long)[:300])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(response(http.StatusInternalServerError, tt.contentType, tt.body))
			require.Error(t, err)

			var re *ResponseError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, KindNonJSON, re.Kind)
			assert.Equal(t, tt.want, re.Message)
			assert.LessOrEqual(t, utf8.RuneCountInString(re.Message), 300)
		})
	}
}

func TestParseResponse_MalformedJSON(t *testing.T) {
	_, err := ParseResponse(response(http.StatusOK, "application/json", `<html>oops`))
	require.Error(t, err)

	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, KindNonJSON, re.Kind)

	_, err = ParseResponse(response(http.StatusOK, "application/json", `[1,2]`))
	require.Error(t, err)
}

func TestResult(t *testing.T) {
	res, err := ParseResponse(response(http.StatusOK, "application/json",
		`{"success":false,"zone":{"ID":3},"missing":null}`))
	require.NoError(t, err)

	var zone struct{ ID int }
	require.NoError(t, res.Decode("zone", &zone))
	assert.Equal(t, 3, zone.ID)

	assert.Error(t, res.Decode("missing", &zone))
	assert.Error(t, res.Decode("nope", &zone))

	err = res.Err("Не удалось получить зону")
	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, KindApplication, re.Kind)
	assert.Equal(t, "Не удалось получить зону", re.Message)
	assert.Equal(t, "Готово", res.Text("Готово"))
}

func TestUserMessage(t *testing.T) {
	wrapped := errors.Wrap(&ResponseError{Kind: KindApplication, Message: "есть связанные записи"}, "удаление")
	assert.Equal(t, "есть связанные записи", UserMessage(wrapped))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
