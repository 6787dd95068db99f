package setup

import (
	"github.com/dkrasnov/backoffice/internal/config"
	"github.com/dkrasnov/backoffice/internal/handler"
	"github.com/dkrasnov/backoffice/internal/jwt"
	"github.com/dkrasnov/backoffice/internal/middleware"
	"github.com/dkrasnov/backoffice/internal/origincache"
	"github.com/dkrasnov/backoffice/internal/service"
	"github.com/dkrasnov/backoffice/internal/storage/pg"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	OriginCache    *origincache.Cache
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
}

// SetupDependencies wires storage, services, the origin cache and handlers.
// The origin cache is constructed but NOT loaded here: the blocking first
// load belongs to the boot sequence, before the listener binds.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	originCache := origincache.New(storage)

	auth := service.NewAuth(storage, jwtService)
	origins := service.NewOrigin(storage, originCache)
	users := service.NewUser(storage)
	profile := service.NewProfile(storage)

	h := handler.New(auth, origins, users, profile, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		OriginCache:    originCache,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService),
	}, nil
}
