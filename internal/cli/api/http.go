package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client: HTTP-клиент CLI. В тестах может быть заменён.
var Client = &http.Client{Timeout: 15 * time.Second}

// Error: неуспешный ответ сервера.
type Error struct {
	Status int
	Detail string
	Field  string
}

func (e *Error) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Field, msg, e.Status)
	}
	return fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
}

// DoJSON отправляет запрос с JSON-телом (если payload не nil). Непустой token уходит как Bearer.
func DoJSON(ctx context.Context, method, endpoint string, payload any, token string) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return do(req)
}

// PostForm отправляет application/x-www-form-urlencoded.
func PostForm(ctx context.Context, endpoint string, form url.Values) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return do(req)
}

func do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := Client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, body, nil
}

// ErrorFromResponse собирает *Error из тела ответа вида {"detail","field"}.
func ErrorFromResponse(resp *http.Response, body []byte) error {
	e := &Error{Status: resp.StatusCode}
	var payload struct {
		Detail string `json:"detail"`
		Field  string `json:"field"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Detail = payload.Detail
		e.Field = payload.Field
	} else {
		e.Detail = strings.TrimSpace(string(body))
	}
	return e
}
