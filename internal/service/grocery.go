package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"GroceryWise/internal/model"
	"GroceryWise/internal/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// GroceryPatch: частичное обновление позиции; nil означает «не менять».
type GroceryPatch struct {
	Name     *string
	Quantity *int
	Status   *model.GroceryStatus
}

// Empty сообщает, что патч ничего не меняет.
func (p GroceryPatch) Empty() bool {
	return p.Name == nil && p.Quantity == nil && p.Status == nil
}

// GroceryService управляет позициями списка покупок и проверяет владение.
type GroceryService struct {
	repo   repo.GroceryRepository
	logger *zap.SugaredLogger
}

func NewGroceryService(r repo.GroceryRepository, logger *zap.SugaredLogger) *GroceryService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &GroceryService{repo: r, logger: logger}
}

// Create добавляет позицию владельцу. Пустой статус означает pending.
func (s *GroceryService) Create(ctx context.Context, ownerID int64, name string, quantity int, status model.GroceryStatus) (*model.GroceryItem, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, Invalid("quantity", "must be greater than 0")
	}
	if status == "" {
		status = model.StatusPending
	}
	if !status.Valid() {
		return nil, Invalid("status", "must be one of: pending, purchased")
	}

	item := &model.GroceryItem{Name: name, Quantity: quantity, Status: status, OwnerID: ownerID}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create grocery item: %w", err)
	}
	return item, nil
}

// List возвращает страницу позиций владельца в порядке создания.
func (s *GroceryService) List(ctx context.Context, ownerID int64, offset, limit int) ([]model.GroceryItem, error) {
	if offset < 0 {
		return nil, Invalid("skip", "must be greater than or equal to 0")
	}
	if limit < 0 {
		return nil, Invalid("limit", "must be greater than or equal to 0")
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if limit == 0 {
		return []model.GroceryItem{}, nil
	}
	items, err := s.repo.ListByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list grocery items: %w", err)
	}
	if items == nil {
		items = []model.GroceryItem{}
	}
	return items, nil
}

// Get возвращает позицию, если она принадлежит пользователю.
func (s *GroceryService) Get(ctx context.Context, userID, id int64) (*model.GroceryItem, error) {
	return s.owned(ctx, userID, id)
}

// Update применяет патч к своей позиции. Пустой патч возвращает позицию без изменений.
func (s *GroceryService) Update(ctx context.Context, userID, id int64, patch GroceryPatch) (*model.GroceryItem, error) {
	updates := make(map[string]any, 3)
	if patch.Name != nil {
		name, err := validateName(*patch.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return nil, Invalid("quantity", "must be greater than 0")
		}
		updates["quantity"] = *patch.Quantity
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, Invalid("status", "must be one of: pending, purchased")
		}
		updates["status"] = *patch.Status
	}

	item, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return item, nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update grocery item: %w", err)
	}
	return updated, nil
}

// Delete удаляет свою позицию.
func (s *GroceryService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete grocery item: %w", err)
	}
	return nil
}

// owned загружает позицию и проверяет владельца: чужая даёт ErrForbidden, отсутствующая: ErrNotFound.
func (s *GroceryService) owned(ctx context.Context, userID, id int64) (*model.GroceryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && item == nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get grocery item: %w", err)
	}
	if item.OwnerID != userID {
		s.logger.Warnw("grocery item access denied", "item_id", id, "user_id", userID)
		return nil, ErrForbidden
	}
	return item, nil
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", Invalid("name", "must not be empty")
	}
	return name, nil
}
