package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"fitclub/internal/app/client/config"
)

// API - HTTP-граница панели.
type API interface {
	// Send выполняет запрос и разбирает JSON-ответ. form может быть nil.
	Send(ctx context.Context, method, path string, form *Form) (*Result, error)
	// Download получает двоичный ресурс (фото).
	Download(ctx context.Context, path string) (*Download, error)
	// Document получает HTML-страницу списка.
	Document(ctx context.Context, path string) (*goquery.Document, error)
}

// Download - двоичный ответ сервера.
type Download struct {
	ContentType string
	Data        []byte
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func newHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	base, err := url.Parse(cfg.ServerURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("некорректный адрес сервера: %q", cfg.ServerURL)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &httpClient{
		client:    client,
		log:       log,
		baseURL:   strings.TrimRight(cfg.ServerURL, "/"),
		userAgent: "FitClub-CLI/1.0",
	}, nil
}

// HealthCheck проверяет, что сервер отвечает
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/", nil, "", "text/html")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return errors.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}
	return nil
}

func (h *httpClient) Send(ctx context.Context, method, path string, form *Form) (*Result, error) {
	var (
		body        io.Reader
		contentType string
	)
	if form != nil {
		var err error
		body, contentType, err = form.encode()
		if err != nil {
			return nil, errors.Wrap(err, "подготовка запроса")
		}
	}

	resp, err := h.doRequest(ctx, method, path, body, contentType, "application/json")
	if err != nil {
		return nil, err
	}

	res, err := ParseResponse(resp)
	if err != nil {
		h.log.Debug("Ответ не разобран",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"error", err,
		)
		return nil, err
	}

	h.log.Debug("Получен ответ",
		"method", method,
		"path", path,
		"status", res.Status,
		"success", res.Success,
	)
	return res, nil
}

func (h *httpClient) Download(ctx context.Context, path string) (*Download, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, path, nil, "", "*/*")
	if err != nil {
		return nil, err
	}

	ct := resp.Header.Get("Content-Type")
	if IsJSON(ct) {
		// JSON вместо картинки - это всегда отказ сервера
		res, err := ParseResponse(resp)
		if err != nil {
			return nil, err
		}
		return nil, res.Err("Фото не найдено")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResponseError{Kind: KindTransport, Status: resp.StatusCode, Message: "ошибка чтения ответа: " + err.Error(), Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ResponseError{Kind: KindNonJSON, Status: resp.StatusCode, Message: nonJSONText(data)}
	}
	return &Download{ContentType: ct, Data: data}, nil
}

func (h *httpClient) Document(ctx context.Context, path string) (*goquery.Document, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, path, nil, "", "text/html")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return nil, &ResponseError{Kind: KindNonJSON, Status: resp.StatusCode, Message: nonJSONText(data)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "разбор страницы")
	}
	return doc, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body io.Reader, contentType, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания запроса")
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
		"request_id", requestID,
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &ResponseError{
			Kind:    KindTransport,
			Message: "сервер недоступен: " + err.Error(),
			Err:     err,
		}
	}
	return resp, nil
}
