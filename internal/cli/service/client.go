package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"GroceryWise/internal/cli/api"
	"GroceryWise/internal/cli/repo"
	"GroceryWise/internal/config"
	"GroceryWise/internal/model"
)

// ErrNotLoggedIn: для команды нужен сохранённый токен.
var ErrNotLoggedIn = errors.New("not logged in, run 'login' first")

// Client: юзкейсы CLI поверх REST API GroceryWise.
type Client struct {
	baseURL string
	tokens  repo.TokenStore
}

func NewClient(cfg *config.Config, tokens repo.TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.ServerURL, "/") + cfg.APIPrefix,
		tokens:  tokens,
	}
}

// ItemPatch: изменяемые поля позиции; nil не отправляется.
type ItemPatch struct {
	Name     *string `json:"name,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

func (c *Client) token() (string, error) {
	tok, err := c.tokens.Load()
	if err != nil || tok == "" {
		return "", ErrNotLoggedIn
	}
	return tok, nil
}

// call выполняет авторизованный запрос и декодирует ответ в out (если не nil).
func (c *Client) call(ctx context.Context, method, path string, payload, out any, want int) error {
	tok, err := c.token()
	if err != nil {
		return err
	}
	resp, body, err := api.DoJSON(ctx, method, c.endpoint(path), payload, tok)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w (session expired?): %v", ErrNotLoggedIn, api.ErrorFromResponse(resp, body))
	}
	if resp.StatusCode != want {
		return api.ErrorFromResponse(resp, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Register создаёт аккаунт; входа не выполняет.
func (c *Client) Register(ctx context.Context, email, password string) (*model.User, error) {
	payload := map[string]string{"email": email, "password": password}
	resp, body, err := api.DoJSON(ctx, http.MethodPost, c.endpoint("/auth/register"), payload, "")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, api.ErrorFromResponse(resp, body)
	}
	var u model.User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &u, nil
}

// Login получает access token и сохраняет его.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := url.Values{"username": {email}, "password": {password}}
	resp, body, err := api.PostForm(ctx, c.endpoint("/auth/login"), form)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.ErrorFromResponse(resp, body)
	}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tok); err != nil || tok.AccessToken == "" {
		return errors.New("no access token in response")
	}
	if err := c.tokens.Save(tok.AccessToken); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	return nil
}

// Logout забывает сохранённый токен. Сервер состояния сессии не хранит.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Whoami проверяет сохранённый токен и возвращает его владельца.
func (c *Client) Whoami(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.call(ctx, http.MethodGet, "/auth/test-token", nil, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	payload := map[string]string{"current_password": current, "new_password": newPassword}
	return c.call(ctx, http.MethodPut, "/users/me/password", payload, nil, http.StatusOK)
}

// Unregister удаляет аккаунт вместе со списком и забывает токен.
func (c *Client) Unregister(ctx context.Context) error {
	if err := c.call(ctx, http.MethodDelete, "/users/me", nil, nil, http.StatusNoContent); err != nil {
		return err
	}
	return c.tokens.Clear()
}

func (c *Client) ListItems(ctx context.Context, skip, limit int) ([]model.GroceryItem, error) {
	q := url.Values{"skip": {strconv.Itoa(skip)}, "limit": {strconv.Itoa(limit)}}
	var items []model.GroceryItem
	if err := c.call(ctx, http.MethodGet, "/groceries/?"+q.Encode(), nil, &items, http.StatusOK); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddItem(ctx context.Context, name string, quantity int, status string) (*model.GroceryItem, error) {
	payload := map[string]any{"name": name, "quantity": quantity}
	if status != "" {
		payload["status"] = status
	}
	var it model.GroceryItem
	if err := c.call(ctx, http.MethodPost, "/groceries/", payload, &it, http.StatusCreated); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) GetItem(ctx context.Context, id int64) (*model.GroceryItem, error) {
	var it model.GroceryItem
	if err := c.call(ctx, http.MethodGet, itemPath(id), nil, &it, http.StatusOK); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) EditItem(ctx context.Context, id int64, patch ItemPatch) (*model.GroceryItem, error) {
	var it model.GroceryItem
	if err := c.call(ctx, http.MethodPut, itemPath(id), patch, &it, http.StatusOK); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, itemPath(id), nil, nil, http.StatusNoContent)
}

func itemPath(id int64) string {
	return "/groceries/" + strconv.FormatInt(id, 10)
}
