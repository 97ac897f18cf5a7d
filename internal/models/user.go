package models

// User represents an account that owns cases.
type User struct {
	ID        int64  `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	Email     string `db:"email" json:"email"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}
