package todo

import (
	"context"
	"errors"

	domain "github.com/example/todo-app/domain/todo"
	"gorm.io/gorm"
)

// ownedBy is the ownership filter. Every lookup and mutation goes through it
// so another user's item is indistinguishable from a missing one.
const ownedBy = "id = ? AND user_id = ?"

// Store persists items. Lookups and mutations are scoped to a user.
type Store interface {
	List(ctx context.Context, userID string) ([]domain.Item, error)
	Find(ctx context.Context, userID string, id int64) (*domain.Item, error)
	Insert(ctx context.Context, item *domain.Item) error
	Save(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, userID string, id int64) error
}

// GormStore is a Store backed by GORM.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// List returns the user's items in ascending id order.
func (s *GormStore) List(ctx context.Context, userID string) ([]domain.Item, error) {
	items := make([]domain.Item, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

// Find returns the item matching both id and owner.
func (s *GormStore) Find(ctx context.Context, userID string, id int64) (*domain.Item, error) {
	var item domain.Item
	result := s.db.WithContext(ctx).Where(ownedBy, id, userID).Take(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

// Insert stores a new item and fills in its id.
func (s *GormStore) Insert(ctx context.Context, item *domain.Item) error {
	return s.db.WithContext(ctx).Omit("User").Create(item).Error
}

// Save writes every mutable column, including nulls.
func (s *GormStore) Save(ctx context.Context, item *domain.Item) error {
	result := s.db.WithContext(ctx).
		Model(&domain.Item{}).
		Where(ownedBy, item.ID, item.UserID).
		Updates(map[string]any{
			"title":        item.Title,
			"is_complete":  item.IsComplete,
			"complete_by":  item.CompleteBy,
			"completed_on": item.CompletedOn,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the item matching both id and owner.
func (s *GormStore) Delete(ctx context.Context, userID string, id int64) error {
	result := s.db.WithContext(ctx).Where(ownedBy, id, userID).Delete(&domain.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
