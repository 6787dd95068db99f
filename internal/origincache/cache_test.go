package origincache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOriginStorage struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (m *mockOriginStorage) ListOriginUrls() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.urls, nil
}

func (m *mockOriginStorage) set(urls []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = urls
	m.err = err
}

func TestCache_Update(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		storage := &mockOriginStorage{urls: []string{"https://a.test", "https://b.test"}}
		cache := New(storage)

		err := cache.Update()
		require.NoError(t, err)

		assert.True(t, cache.IsAllowed("https://a.test"))
		assert.True(t, cache.IsAllowed("https://b.test"))
		assert.False(t, cache.IsAllowed("https://evil.test"))
		assert.Equal(t, 2, cache.Size())
	})

	t.Run("update with error", func(t *testing.T) {
		storage := &mockOriginStorage{err: assert.AnError}
		cache := New(storage)

		err := cache.Update()
		assert.Error(t, err)
	})

	t.Run("update replaces snapshot wholesale", func(t *testing.T) {
		storage := &mockOriginStorage{urls: []string{"https://a.test"}}
		cache := New(storage)
		require.NoError(t, cache.Update())

		storage.set([]string{"https://b.test"}, nil)
		require.NoError(t, cache.Update())

		assert.False(t, cache.IsAllowed("https://a.test"))
		assert.True(t, cache.IsAllowed("https://b.test"))
	})

	t.Run("failed refresh preserves last-known-good set", func(t *testing.T) {
		storage := &mockOriginStorage{urls: []string{"https://a.test"}}
		cache := New(storage)
		require.NoError(t, cache.Update())

		storage.set(nil, assert.AnError)
		assert.Error(t, cache.Update())

		// Trust is neither cleared nor widened.
		assert.True(t, cache.IsAllowed("https://a.test"))
		assert.False(t, cache.IsAllowed("https://b.test"))
	})
}

func TestCache_IsAllowed(t *testing.T) {
	storage := &mockOriginStorage{urls: []string{"https://app.example.com"}}
	cache := New(storage)
	require.NoError(t, cache.Update())

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"absent origin is always allowed", "", true},
		{"trusted origin", "https://app.example.com", true},
		{"untrusted origin", "https://other.example.com", false},
		{"case differs from stored entry", "https://APP.example.com", false},
		{"scheme differs from stored entry", "http://app.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, cache.IsAllowed(tt.origin))
		})
	}
}

// The cache answers stale until the next Update: a store mutation alone must
// not change what the authorizer reports.
func TestCache_StaleUntilRefreshed(t *testing.T) {
	storage := &mockOriginStorage{urls: []string{"https://a.test"}}
	cache := New(storage)
	require.NoError(t, cache.Update())

	storage.set([]string{"https://a.test", "https://new.example.com"}, nil)

	assert.False(t, cache.IsAllowed("https://new.example.com"), "must be stale before refresh")

	require.NoError(t, cache.Update())
	assert.True(t, cache.IsAllowed("https://new.example.com"))
}

func TestCache_EmptyBeforeLoad(t *testing.T) {
	cache := New(&mockOriginStorage{})

	assert.False(t, cache.IsAllowed("https://a.test"))
	assert.True(t, cache.IsAllowed(""), "absent origin allowed even pre-load")
}

func TestCache_ConcurrentReaders(t *testing.T) {
	storage := &mockOriginStorage{urls: []string{"https://a.test"}}
	cache := New(storage)
	require.NoError(t, cache.Update())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				cache.IsAllowed("https://a.test")
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = cache.Update()
			}
		}()
	}
	wg.Wait()

	assert.True(t, cache.IsAllowed("https://a.test"))
}
