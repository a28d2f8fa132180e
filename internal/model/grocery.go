package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// GroceryStatus: состояние позиции списка покупок.
type GroceryStatus string

const (
	StatusPending   GroceryStatus = "pending"
	StatusPurchased GroceryStatus = "purchased"
)

// ParseGroceryStatus проверяет строковый тег статуса.
func ParseGroceryStatus(s string) (GroceryStatus, error) {
	st := GroceryStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown grocery status %q", s)
	}
	return st, nil
}

// Valid сообщает, является ли значение одним из допустимых тегов.
func (s GroceryStatus) Valid() bool {
	return s == StatusPending || s == StatusPurchased
}

func (s GroceryStatus) String() string { return string(s) }

// UnmarshalJSON принимает только известные теги.
func (s *GroceryStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("grocery status must be a string: %w", err)
	}
	st, err := ParseGroceryStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// GroceryItem: позиция списка покупок, принадлежащая одному пользователю.
type GroceryItem struct {
	ID       int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string        `gorm:"not null;index" json:"name"`
	Quantity int           `gorm:"not null" json:"quantity"`
	Status   GroceryStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	OwnerID  int64         `gorm:"not null;index" json:"owner_id"` // ссылка на users.id

	// Связи
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
