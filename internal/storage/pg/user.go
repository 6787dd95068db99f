package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkrasnov/backoffice/internal/domain"
	internal_errors "github.com/dkrasnov/backoffice/internal/errors"
)

const userColumns = `id, email, username, password_hash, first_name, last_name,
	address, occupation, organization, role, is_active, is_locked, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (domain.User, error) {
	var u domain.User
	var username, address, occupation, organization sql.NullString
	err := row.Scan(&u.Id, &u.Email, &username, &u.PassHash, &u.FirstName, &u.LastName,
		&address, &occupation, &organization, &u.Role, &u.IsActive, &u.IsLocked, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.Username = username.String
	u.Address = address.String
	u.Occupation = occupation.String
	u.Organization = organization.String
	return u, nil
}

// UserByEmail fetches a user for login. Lookup is case-insensitive on email.
func (s *Storage) UserByEmail(email string) (domain.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = $1", strings.ToLower(email))
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user by email: %w", err)
	}
	return u, nil
}

func (s *Storage) User(id string) (domain.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = $1", id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (s *Storage) Users() ([]domain.User, error) {
	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SaveUser inserts a new user. Email and username uniqueness violations map
// to specific, user-actionable conflict errors.
func (s *Storage) SaveUser(user domain.User) (domain.User, error) {
	if user.Id == "" {
		user.Id = uuid.NewString()
	}
	row := s.db.QueryRow(`
		INSERT INTO users(id, email, username, password_hash, first_name, last_name,
			address, occupation, organization, role, is_active, is_locked)
		VALUES($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12)
		RETURNING `+userColumns,
		user.Id, strings.ToLower(user.Email), user.Username, user.PassHash, user.FirstName, user.LastName,
		user.Address, user.Occupation, user.Organization, user.Role, user.IsActive, user.IsLocked)
	saved, err := scanUser(row)
	if err != nil {
		if conflictErr := userConflict(err); conflictErr != nil {
			return domain.User{}, conflictErr
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return saved, nil
}

// UpdateUser rewrites a user record. An empty PassHash keeps the stored hash.
func (s *Storage) UpdateUser(user domain.User) (domain.User, error) {
	row := s.db.QueryRow(`
		UPDATE users
		SET email = $2, username = NULLIF($3, ''),
			password_hash = COALESCE(NULLIF($4, ''), password_hash),
			first_name = $5, last_name = $6,
			address = NULLIF($7, ''), occupation = NULLIF($8, ''), organization = NULLIF($9, ''),
			role = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		user.Id, strings.ToLower(user.Email), user.Username, user.PassHash, user.FirstName, user.LastName,
		user.Address, user.Occupation, user.Organization, user.Role)
	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		if conflictErr := userConflict(err); conflictErr != nil {
			return domain.User{}, conflictErr
		}
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

// SetUserActive flips the active flag. Inactive users cannot log in but the
// record is kept.
func (s *Storage) SetUserActive(id string, active bool) (domain.User, error) {
	row := s.db.QueryRow(`
		UPDATE users SET is_active = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, active)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to toggle user status: %w", err)
	}
	return u, nil
}

// DeleteUser removes a user and returns the deleted record. Deletion is
// irreversible; a missing record is a 404, not a no-op.
func (s *Storage) DeleteUser(id string) (domain.User, error) {
	row := s.db.QueryRow("DELETE FROM users WHERE id = $1 RETURNING "+userColumns, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to delete user: %w", err)
	}
	return u, nil
}

// EnsureUser upserts a seeded account by email (first-boot seeding).
func (s *Storage) EnsureUser(user domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if user.Id == "" {
		user.Id = uuid.NewString()
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO users(id, email, password_hash, first_name, last_name, role, is_active, is_locked)
			VALUES($1, $2, $3, $4, $5, $6, TRUE, TRUE)
			ON CONFLICT (email) DO UPDATE
			SET password_hash = EXCLUDED.password_hash,
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				role = EXCLUDED.role,
				is_active = TRUE,
				is_locked = TRUE,
				updated_at = now()`,
			user.Id, strings.ToLower(user.Email), user.PassHash, user.FirstName, user.LastName, user.Role)
		if err != nil {
			return fmt.Errorf("failed to upsert seeded user: %w", err)
		}
		return nil
	})
}

// userConflict maps a unique violation on users to the specific constraint
// that was hit, so the client gets an actionable message.
func userConflict(err error) error {
	if !isUniqueViolation(err) {
		return nil
	}
	msg := "Email is already registered"
	if strings.Contains(err.Error(), "username") {
		msg = "Username is already registered"
	}
	return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}
