// Package emailcheck реализует клиента внешнего сервиса проверки email.
//
// Сервис (mailboxlayer-совместимый API) сообщает корректность формата,
// наличие MX-записей и одноразовость адреса. Любой сбой самого сервиса —
// сеть, статус, битый JSON — трактуется как "адрес неприемлем": внешний
// простой не должен молча пропускать непроверенные адреса.
package emailcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ravenmx/calculator-service/internal/lib/sl"
)

// Client — HTTP-клиент сервиса проверки email.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient создаёт клиента проверки email.
func NewClient(apiKey, apiURL string, log *slog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// checkResponse — ответ API проверки email.
type checkResponse struct {
	Email       string `json:"email"`
	FormatValid bool   `json:"format_valid"`
	MXFound     bool   `json:"mx_found"`
	Disposable  bool   `json:"disposable"`
}

// IsEmailAcceptable сообщает, пригоден ли адрес для регистрации:
// корректный формат, найденные MX-записи и не одноразовый домен.
// При недоступности внешней проверки возвращает false.
func (c *Client) IsEmailAcceptable(ctx context.Context, email string) bool {
	const op = "emailcheck.IsEmailAcceptable"

	resp, err := c.check(ctx, email)
	if err != nil {
		c.log.Error("email check unavailable, rejecting",
			slog.String("op", op), sl.Err(err))
		return false
	}
	return resp.FormatValid && resp.MXFound && !resp.Disposable
}

func (c *Client) check(ctx context.Context, email string) (*checkResponse, error) {
	const op = "emailcheck.check"

	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("email", email)
	params.Set("smtp", "1")
	params.Set("format", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var result checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
