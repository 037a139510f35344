package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateUser inserts a user synchronously: registration must observe
// uniqueness failures immediately.
func (s *Store) CreateUser(record UserRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := s.userExists(tx, record.Username, record.Email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("username or email already taken")
	}

	query := `INSERT INTO users (user_id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.Exec(query,
		record.UserID, record.Username, record.Email,
		record.PasswordHash, record.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return tx.Commit()
}

func (s *Store) userExists(tx *sql.Tx, username, email string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE username = ?`
	args := []interface{}{username}
	if email != "" {
		query = `SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`
		args = append(args, email)
	}
	if err := tx.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

func (s *Store) GetUserByID(userID string) (*UserRecord, error) {
	return s.getUser(`SELECT user_id, username, email, password_hash, created_at, last_login_at
		FROM users WHERE user_id = ?`, userID)
}

func (s *Store) GetUserByUsername(username string) (*UserRecord, error) {
	return s.getUser(`SELECT user_id, username, email, password_hash, created_at, last_login_at
		FROM users WHERE username = ?`, username)
}

func (s *Store) GetUserByEmail(email string) (*UserRecord, error) {
	return s.getUser(`SELECT user_id, username, email, password_hash, created_at, last_login_at
		FROM users WHERE email = ?`, email)
}

func (s *Store) getUser(query string, arg interface{}) (*UserRecord, error) {
	var u UserRecord
	err := s.db.QueryRow(query, arg).Scan(
		&u.UserID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return &u, nil
}

func (s *Store) DeleteUser(userID string) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE user_id = ?`, userID)
	return err
}

func (s *Store) UpdateUserPassword(userID string, passwordHash string) error {
	_, err := s.db.Exec(`UPDATE users SET password_hash = ? WHERE user_id = ?`, passwordHash, userID)
	return err
}

// UpdateUserLastLoginSync updates the last login timestamp for a user
func (s *Store) UpdateUserLastLoginSync(userID string, loginTime time.Time) error {
	_, err := s.db.Exec(`UPDATE users SET last_login_at = ? WHERE user_id = ?`, loginTime, userID)
	return err
}

func (s *Store) GetAllUsers() ([]UserRecord, error) {
	rows, err := s.db.Query(`SELECT user_id, username, email, password_hash, created_at, last_login_at
		FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var users []UserRecord
	for rows.Next() {
		var u UserRecord
		if err := rows.Scan(&u.UserID, &u.Username, &u.Email, &u.PasswordHash,
			&u.CreatedAt, &u.LastLoginAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return users, nil
}
