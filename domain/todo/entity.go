package todo

import (
	"time"

	"github.com/example/todo-app/domain/user"
)

// Item is a to-do entry owned by exactly one user.
// CompletedOn is non-nil if and only if IsComplete is true.
type Item struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"not null;type:text" json:"title"`
	IsComplete  bool       `gorm:"not null" json:"isComplete"`
	CompleteBy  *time.Time `json:"completeBy"`
	CompletedOn *time.Time `json:"completedOn"`
	UserID      string     `gorm:"not null;index;type:text" json:"-"`
	User        *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the Item entity.
func (Item) TableName() string {
	return "todo_items"
}

// CreateRequest is the payload for a new item.
type CreateRequest struct {
	Title      string     `json:"title"`
	IsComplete bool       `json:"isComplete"`
	CompleteBy *time.Time `json:"completeBy"`
}

// UpdateRequest carries a partial update. Omitted fields keep their stored value.
type UpdateRequest struct {
	Title       Optional[string]    `json:"title,omitzero"`
	IsComplete  Optional[bool]      `json:"isComplete,omitzero"`
	CompleteBy  Optional[time.Time] `json:"completeBy,omitzero"`
	CompletedOn Optional[time.Time] `json:"completedOn,omitzero"`
}
