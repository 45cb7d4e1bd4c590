package mysql

import (
	"content-backend/internal/model"
	"database/sql"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	query := `SELECT id, username, avatar_url, created_at FROM users WHERE id = ?`

	var user model.User
	err := r.db.QueryRow(query, id).Scan(&user.ID, &user.Username, &user.AvatarURL, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, classify(err)
	}
	return &user, nil
}
