package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	internal_errors "github.com/dkrasnov/backoffice/internal/errors"
)

// DeveloperProfileRecord is the raw profile row before markdown rendering.
type DeveloperProfileRecord struct {
	UserId       string
	Email        string
	FirstName    string
	LastName     string
	Occupation   string
	Organization string
	Intro        string
	TagLine      string
	AvatarUrl    string
}

// DeveloperProfile returns the single public profile (the first user that
// has one).
func (s *Storage) DeveloperProfile() (DeveloperProfileRecord, error) {
	var p DeveloperProfileRecord
	var occupation, organization, intro, tagLine, avatarUrl sql.NullString
	err := s.db.QueryRow(`
		SELECT u.id, u.email, u.first_name, u.last_name, u.occupation, u.organization,
			p.intro, p.tag_line, u.avatar_url
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.user_id
		LIMIT 1`).
		Scan(&p.UserId, &p.Email, &p.FirstName, &p.LastName, &occupation, &organization,
			&intro, &tagLine, &avatarUrl)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DeveloperProfileRecord{}, &internal_errors.ErrorWithStatusCode{Message: "Developer profile not found", StatusCode: http.StatusNotFound}
		}
		return DeveloperProfileRecord{}, fmt.Errorf("failed to query developer profile: %w", err)
	}
	p.Occupation = occupation.String
	p.Organization = organization.String
	p.Intro = intro.String
	p.TagLine = tagLine.String
	p.AvatarUrl = avatarUrl.String
	return p, nil
}
