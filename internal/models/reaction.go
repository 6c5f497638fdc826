package models

import "time"

// Reaction - реакция пользователя на объект (статью, комментарий и т.п.).
// Кортеж (reactable_type, reactable_id, user_id, type) уникален.
type Reaction struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	ReactableType string    `db:"reactable_type" json:"reactable_type"`
	ReactableID   int64     `db:"reactable_id" json:"reactable_id"`
	Type          string    `db:"type" json:"type"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Target возвращает ссылку на объект, к которому относится реакция.
func (r *Reaction) Target() Ref {
	return Ref{Type: r.ReactableType, ID: r.ReactableID}
}
