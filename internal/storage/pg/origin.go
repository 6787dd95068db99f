package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/dkrasnov/backoffice/internal/domain"
	internal_errors "github.com/dkrasnov/backoffice/internal/errors"
)

const uniqueViolation = "23505"

// ListOrigins returns all trusted origins with their display metadata.
func (s *Storage) ListOrigins() ([]domain.TrustedOrigin, error) {
	rows, err := s.db.Query(`
		SELECT id, url, display_name, is_locked, created_at, updated_at
		FROM allowed_hosts
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query allowed hosts: %w", err)
	}
	defer rows.Close()

	var origins []domain.TrustedOrigin
	for rows.Next() {
		var o domain.TrustedOrigin
		if err := rows.Scan(&o.Id, &o.Url, &o.DisplayName, &o.IsLocked, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allowed host: %w", err)
		}
		origins = append(origins, o)
	}
	return origins, rows.Err()
}

// ListOriginUrls returns just the origin strings. This is the cache-load
// query performed at startup and after every mutation.
func (s *Storage) ListOriginUrls() ([]string, error) {
	rows, err := s.db.Query("SELECT url FROM allowed_hosts")
	if err != nil {
		return nil, fmt.Errorf("failed to query allowed host urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan allowed host url: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func (s *Storage) Origin(id int64) (domain.TrustedOrigin, error) {
	var o domain.TrustedOrigin
	err := s.db.QueryRow(`
		SELECT id, url, display_name, is_locked, created_at, updated_at
		FROM allowed_hosts WHERE id = $1`, id).
		Scan(&o.Id, &o.Url, &o.DisplayName, &o.IsLocked, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TrustedOrigin{}, &internal_errors.ErrorWithStatusCode{Message: "Allowed host not found", StatusCode: http.StatusNotFound}
		}
		return domain.TrustedOrigin{}, fmt.Errorf("failed to query allowed host: %w", err)
	}
	return o, nil
}

func (s *Storage) SaveOrigin(url, displayName string, locked bool) (domain.TrustedOrigin, error) {
	var o domain.TrustedOrigin
	err := s.db.QueryRow(`
		INSERT INTO allowed_hosts(url, display_name, is_locked)
		VALUES($1, $2, $3)
		RETURNING id, url, display_name, is_locked, created_at, updated_at`,
		url, displayName, locked).
		Scan(&o.Id, &o.Url, &o.DisplayName, &o.IsLocked, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.TrustedOrigin{}, &internal_errors.ErrorWithStatusCode{Message: "This host is already registered", StatusCode: http.StatusBadRequest}
		}
		return domain.TrustedOrigin{}, fmt.Errorf("failed to insert allowed host: %w", err)
	}
	return o, nil
}

func (s *Storage) UpdateOrigin(id int64, url, displayName string) (domain.TrustedOrigin, error) {
	var o domain.TrustedOrigin
	err := s.db.QueryRow(`
		UPDATE allowed_hosts
		SET url = $2, display_name = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, url, display_name, is_locked, created_at, updated_at`,
		id, url, displayName).
		Scan(&o.Id, &o.Url, &o.DisplayName, &o.IsLocked, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TrustedOrigin{}, &internal_errors.ErrorWithStatusCode{Message: "Allowed host not found", StatusCode: http.StatusNotFound}
		}
		if isUniqueViolation(err) {
			return domain.TrustedOrigin{}, &internal_errors.ErrorWithStatusCode{Message: "This host is already registered", StatusCode: http.StatusBadRequest}
		}
		return domain.TrustedOrigin{}, fmt.Errorf("failed to update allowed host: %w", err)
	}
	return o, nil
}

// DeleteOrigin removes a trusted origin and returns the deleted record.
func (s *Storage) DeleteOrigin(id int64) (domain.TrustedOrigin, error) {
	var o domain.TrustedOrigin
	err := s.db.QueryRow(`
		DELETE FROM allowed_hosts WHERE id = $1
		RETURNING id, url, display_name, is_locked, created_at, updated_at`, id).
		Scan(&o.Id, &o.Url, &o.DisplayName, &o.IsLocked, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TrustedOrigin{}, &internal_errors.ErrorWithStatusCode{Message: "Allowed host not found", StatusCode: http.StatusNotFound}
		}
		return domain.TrustedOrigin{}, fmt.Errorf("failed to delete allowed host: %w", err)
	}
	return o, nil
}

// EnsureOrigin upserts a system-seeded origin (first-boot seeding).
func (s *Storage) EnsureOrigin(url, displayName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO allowed_hosts(url, display_name, is_locked)
			VALUES($1, $2, TRUE)
			ON CONFLICT (url) DO UPDATE
			SET display_name = EXCLUDED.display_name, is_locked = TRUE, updated_at = now()`,
			url, displayName)
		if err != nil {
			return fmt.Errorf("failed to upsert seeded allowed host: %w", err)
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
