package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong: bcrypt не принимает пароли длиннее 72 байт.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

const maxPasswordBytes = 72

// Hasher хеширует и проверяет пароли через bcrypt.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher с заданной стоимостью bcrypt.
// Значения вне допустимого диапазона заменяются на bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash возвращает самоописывающий хеш (алгоритм, cost и соль внутри строки).
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify сравнивает пароль с хешем за постоянное время.
// Битый хеш даёт false, а не ошибку.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
