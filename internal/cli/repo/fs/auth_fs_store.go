package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"GroceryWise/internal/cli/repo"
)

// ErrNoToken: токен ещё не сохранён (пользователь не входил).
var ErrNoToken = errors.New("not logged in")

// AuthFSStore: файловое хранилище bearer-токена для CLI.
type AuthFSStore struct {
	Path string
}

var _ repo.TokenStore = AuthFSStore{}

func NewAuthFSStore(path string) AuthFSStore {
	return AuthFSStore{Path: path}
}

// Save сохраняет токен в файл с правами 0600, создавая каталог при необходимости.
func (s AuthFSStore) Save(token string) error {
	if s.Path == "" {
		return errors.New("token file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token), 0o600)
}

// Load читает токен из файла.
func (s AuthFSStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Clear удаляет файл токена; отсутствие файла не ошибка.
func (s AuthFSStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
