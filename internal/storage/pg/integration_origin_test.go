package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/dkrasnov/backoffice/internal/errors"
)

func TestIntegrationOriginLifecycle(t *testing.T) {
	s := requireStorage(t)

	saved, err := s.SaveOrigin("https://lifecycle.example.com", "Lifecycle", false)
	require.NoError(t, err)
	require.NotZero(t, saved.Id)
	assert.False(t, saved.IsLocked)
	assert.False(t, saved.CreatedAt.IsZero())

	urls, err := s.ListOriginUrls()
	require.NoError(t, err)
	assert.Contains(t, urls, "https://lifecycle.example.com")

	_, err = s.SaveOrigin("https://lifecycle.example.com", "Duplicate", false)
	require.Error(t, err)
	assert.True(t, internal_errors.IsConflict(err))

	updated, err := s.UpdateOrigin(saved.Id, "https://renamed.example.com", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "https://renamed.example.com", updated.Url)
	assert.Equal(t, "Renamed", updated.DisplayName)

	fetched, err := s.Origin(saved.Id)
	require.NoError(t, err)
	assert.Equal(t, updated.Url, fetched.Url)

	deleted, err := s.DeleteOrigin(saved.Id)
	require.NoError(t, err)
	assert.Equal(t, "https://renamed.example.com", deleted.Url)

	_, err = s.Origin(saved.Id)
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestIntegrationEnsureOriginIdempotent(t *testing.T) {
	s := requireStorage(t)

	require.NoError(t, s.EnsureOrigin("https://seeded.example.com", "Seeded"))
	require.NoError(t, s.EnsureOrigin("https://seeded.example.com", "Seeded again"))

	origins, err := s.ListOrigins()
	require.NoError(t, err)

	var seen int
	for _, o := range origins {
		if o.Url == "https://seeded.example.com" {
			seen++
			assert.True(t, o.IsLocked, "seeded origins are locked")
			assert.Equal(t, "Seeded again", o.DisplayName)
		}
	}
	assert.Equal(t, 1, seen, "upsert must not create a second row")
}
