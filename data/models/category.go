package models

// Category groups events. Deleting a category cascades to its events.
type Category struct {
	ID          int64  `json:"id" db:"id" readOnly:"true"`
	Name        string `validate:"required,max=100" json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

func (Category) TableName() string {
	return "categories"
}

func (c Category) GetID() int64 {
	return c.ID
}

func (c Category) EmptySlice() interface{} {
	return &[]Category{}
}
