package repo

import (
	"context"

	"GroceryWise/internal/model"

	"gorm.io/gorm"
)

// GroceryRepository: хранилище позиций списка покупок.
// Владение здесь не проверяется: это делает сервис.
type GroceryRepository interface {
	Create(ctx context.Context, item *model.GroceryItem) error
	// ListByOwner возвращает позиции владельца по возрастанию id; за концом: пустой срез.
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.GroceryItem, error)
	GetByID(ctx context.Context, id int64) (*model.GroceryItem, error)
	// Update применяет только переданные колонки и возвращает свежую запись.
	Update(ctx context.Context, id int64, updates map[string]any) (*model.GroceryItem, error)
	Delete(ctx context.Context, id int64) error
}

type groceryRepo struct {
	db *gorm.DB
}

// NewGroceryRepository создаёт реализацию репозитория для GroceryItem.
func NewGroceryRepository(db *gorm.DB) GroceryRepository {
	return &groceryRepo{db: db}
}

func (r *groceryRepo) Create(ctx context.Context, item *model.GroceryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *groceryRepo) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.GroceryItem, error) {
	items := make([]model.GroceryItem, 0)
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *groceryRepo) GetByID(ctx context.Context, id int64) (*model.GroceryItem, error) {
	var it model.GroceryItem
	if err := r.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *groceryRepo) Update(ctx context.Context, id int64, updates map[string]any) (*model.GroceryItem, error) {
	if len(updates) > 0 {
		tx := r.db.WithContext(ctx).Model(&model.GroceryItem{ID: id}).Updates(updates)
		if tx.Error != nil {
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *groceryRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.GroceryItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
