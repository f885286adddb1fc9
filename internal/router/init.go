package router

import (
	"inkpress/internal/application"
	"inkpress/internal/container"
	pginfra "inkpress/internal/infrastructure/postgres"
	handlers "inkpress/internal/interface/http"
	"inkpress/internal/router/modules"
	"inkpress/pkg/helpers"
)

// InitModules wires repositories, services, guards and handlers from the
// container singletons and registers every feature module on the registry.
// Call once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	postRepo := pginfra.NewPostRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	authSvc := application.NewAuthService(userRepo, helpers.BcryptHasher{}, container.GetJWT(), logger)
	if pub := container.GetRabbitPub(); pub != nil {
		authSvc.Emails = pub
	}
	authSvc.GCS = container.GetGCS()
	authSvc.GCSBucket = cfg.GCSBucket

	postSvc := application.NewPostService(postRepo, logger)
	postSvc.ES = container.GetES()
	postSvc.ESPostsIndex = cfg.ESPostsIndex

	commentSvc := application.NewCommentService(commentRepo, postRepo, application.SystemClock{}, logger)

	postGuard := application.NewPostOwnershipGuard(postRepo)
	commentGuard := application.NewCommentOwnershipGuard(commentRepo, postRepo)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	postHandler := handlers.NewPostHandler(postSvc, logger)
	commentHandler := handlers.NewCommentHandler(commentSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewPostModule(postHandler, commentHandler, container.GetJWT(), postGuard))
	r.Add(modules.NewCommentModule(commentHandler, container.GetJWT(), commentGuard))
}
