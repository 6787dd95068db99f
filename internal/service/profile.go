package service

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/dkrasnov/backoffice/internal/storage/pg"
)

type ProfileService interface {
	DeveloperProfile() (DeveloperProfile, error)
}

type ProfileStorage interface {
	DeveloperProfile() (pg.DeveloperProfileRecord, error)
}

// DeveloperProfile is the public landing-page payload. IntroHtml is rendered
// from the stored markdown and sanitized before it leaves the API.
type DeveloperProfile struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Occupation   string `json:"occupation,omitempty"`
	Organization string `json:"organization,omitempty"`
	TagLine      string `json:"tagLine,omitempty"`
	IntroHtml    string `json:"introHtml,omitempty"`
	AvatarUrl    string `json:"avatarUrl,omitempty"`
}

type Profile struct {
	storage  ProfileStorage
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

func NewProfile(storage ProfileStorage) *Profile {
	return &Profile{
		storage:  storage,
		markdown: goldmark.New(),
		policy:   bluemonday.UGCPolicy(),
	}
}

func (p *Profile) DeveloperProfile() (DeveloperProfile, error) {
	record, err := p.storage.DeveloperProfile()
	if err != nil {
		return DeveloperProfile{}, err
	}

	profile := DeveloperProfile{
		Email:        record.Email,
		FirstName:    record.FirstName,
		LastName:     record.LastName,
		Occupation:   record.Occupation,
		Organization: record.Organization,
		TagLine:      record.TagLine,
		AvatarUrl:    record.AvatarUrl,
	}

	if record.Intro != "" {
		var buf bytes.Buffer
		if err := p.markdown.Convert([]byte(record.Intro), &buf); err != nil {
			return DeveloperProfile{}, err
		}
		profile.IntroHtml = p.policy.Sanitize(buf.String())
	}

	return profile, nil
}
