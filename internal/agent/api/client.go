// Package api содержит HTTP-клиент для сервера usuarios.
//
// Клиент инкапсулирует базовый URL сервера, токен оператора и настроенный
// http.Client, предоставляя JSON-запросы (POST/GET/DELETE) и типизированные
// методы над коллекцией usuarios.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - Не 2xx превращаются в *APIError, который errors.Is сопоставляет
//     с ошибками из internal/shared/errors.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-usuarios/internal/shared/models"
)

// DefaultTimeout — таймаут http.Client по умолчанию.
const DefaultTimeout = 10 * time.Second

// Client реализует HTTP-клиент для общения с сервером usuarios.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option настраивает Client.
type Option func(*Client)

// WithToken задаёт токен оператора для изменяющих запросов.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithHTTPClient подменяет http.Client (например, httptest.Server.Client()).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithInsecureTLS отключает проверку сертификата сервера.
// Только для локальной разработки с самоподписанным сертификатом.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // только для dev
		}
	}
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// baseURL — адрес сервера, например "http://127.0.0.1:8080".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError — ответ сервера со статусом не 2xx.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server: %d %s", e.Status, e.Message)
}

// Unwrap сопоставляет HTTP-статус с общей ошибкой.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return serr.ErrInvalidInput
	case http.StatusUnauthorized, http.StatusForbidden:
		return serr.ErrUnauthorized
	case http.StatusNotFound:
		return serr.ErrNotFound
	case http.StatusConflict:
		return serr.ErrDuplicateCedula
	default:
		return serr.ErrInternal
	}
}

// readAPIErrorBody читает тело ответа сервера и возвращает *APIError.
//
// Если тело — models.ErrorResponse, берётся поле error; иначе сам текст;
// пустое тело заменяется на res.Status.
func readAPIErrorBody(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	var er models.ErrorResponse
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &er) == nil && er.Error != "" {
		msg = er.Error
	}
	if msg == "" {
		msg = res.Status
	}
	return &APIError{Status: res.StatusCode, Message: msg}
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// resp == nil — ничего не делает. Пустое тело (io.EOF) не ошибка.
// Числа декодируются как json.Number.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	err := dec.Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, req, resp any) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		r.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIErrorBody(res)
	}

	// 204/пустое тело — ок
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}

// PostJSON выполняет POST, сериализуя req в JSON; resp (если не nil)
// заполняется из JSON-ответа.
func (c *Client) PostJSON(ctx context.Context, path string, req, resp any) error {
	return c.do(ctx, http.MethodPost, path, req, resp)
}

// GetJSON выполняет GET и (опционально) декодирует JSON-ответ.
func (c *Client) GetJSON(ctx context.Context, path string, resp any) error {
	return c.do(ctx, http.MethodGet, path, nil, resp)
}

// DeleteJSON выполняет DELETE и (опционально) декодирует JSON-ответ.
func (c *Client) DeleteJSON(ctx context.Context, path string, resp any) error {
	return c.do(ctx, http.MethodDelete, path, nil, resp)
}
