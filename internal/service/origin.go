package service

import (
	"net/http"

	"github.com/dkrasnov/backoffice/internal/domain"
	internal_errors "github.com/dkrasnov/backoffice/internal/errors"
	"github.com/dkrasnov/backoffice/internal/logger"
)

type OriginService interface {
	Origins() ([]domain.TrustedOrigin, error)
	Create(url, displayName string) (domain.TrustedOrigin, error)
	Update(id int64, url, displayName string) (domain.TrustedOrigin, error)
	Delete(id int64) (domain.TrustedOrigin, error)
}

type OriginStorage interface {
	ListOrigins() ([]domain.TrustedOrigin, error)
	Origin(id int64) (domain.TrustedOrigin, error)
	SaveOrigin(url, displayName string, locked bool) (domain.TrustedOrigin, error)
	UpdateOrigin(id int64, url, displayName string) (domain.TrustedOrigin, error)
	DeleteOrigin(id int64) (domain.TrustedOrigin, error)
}

// OriginCache is refreshed synchronously inside every mutation path, keeping
// the per-request check free of I/O.
type OriginCache interface {
	Update() error
}

type Origin struct {
	storage OriginStorage
	cache   OriginCache
}

func NewOrigin(storage OriginStorage, cache OriginCache) *Origin {
	return &Origin{storage: storage, cache: cache}
}

func (o *Origin) Origins() ([]domain.TrustedOrigin, error) {
	return o.storage.ListOrigins()
}

func (o *Origin) Create(url, displayName string) (domain.TrustedOrigin, error) {
	normalized, err := domain.NormalizeOrigin(url)
	if err != nil {
		return domain.TrustedOrigin{}, err
	}

	created, err := o.storage.SaveOrigin(normalized, displayName, false)
	if err != nil {
		return domain.TrustedOrigin{}, err
	}

	o.refresh("create", created.Url)
	return created, nil
}

func (o *Origin) Update(id int64, url, displayName string) (domain.TrustedOrigin, error) {
	normalized, err := domain.NormalizeOrigin(url)
	if err != nil {
		return domain.TrustedOrigin{}, err
	}

	updated, err := o.storage.UpdateOrigin(id, normalized, displayName)
	if err != nil {
		return domain.TrustedOrigin{}, err
	}

	o.refresh("update", updated.Url)
	return updated, nil
}

func (o *Origin) Delete(id int64) (domain.TrustedOrigin, error) {
	existing, err := o.storage.Origin(id)
	if err != nil {
		return domain.TrustedOrigin{}, err
	}
	if existing.IsLocked {
		return domain.TrustedOrigin{}, &internal_errors.ErrorWithStatusCode{
			Message:    "This host is locked and cannot be deleted",
			StatusCode: http.StatusBadRequest,
		}
	}

	deleted, err := o.storage.DeleteOrigin(id)
	if err != nil {
		return domain.TrustedOrigin{}, err
	}

	o.refresh("delete", deleted.Url)
	return deleted, nil
}

// refresh rebuilds the cache after a committed mutation. The mutation is not
// rolled back on refresh failure: the last-known-good snapshot stays live
// and the next successful refresh converges.
func (o *Origin) refresh(op, url string) {
	if err := o.cache.Update(); err != nil {
		logger.Log.Error("origin mutation committed but cache refresh failed",
			"component", "origin_cache",
			"op", op,
			"url", url,
			"error", err)
	}
}
