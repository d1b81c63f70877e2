package models

// Group is a named role container. The names "Admin", "Organizer" and
// "Participant" are conventions interpreted by the auth package, not
// enforced by the schema.
type Group struct {
	ID   int64  `json:"id" db:"id" readOnly:"true"`
	Name string `validate:"required,max=150" json:"name" db:"name"`
}

func (Group) TableName() string {
	return "groups"
}

func (g Group) GetID() int64 {
	return g.ID
}

func (g Group) EmptySlice() interface{} {
	return &[]Group{}
}
