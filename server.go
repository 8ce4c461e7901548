package yoga

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/uptrace/bun"
)

// Server bundles the fiber app with the services behind it
type Server struct {
	App      *fiber.App
	Repo     RepositoryManager
	Tokens   TokenService
	Auther   *Auther
	Sessions *SessionService
}

// NewServer wires repositories, services and routes on a new fiber app
func NewServer(cfg *BaseConfig, db *bun.DB, logger Logger) *Server {
	if logger == nil {
		logger = defLogger{}
	}

	repo := NewRepositoryManager(db)
	repo.MustValidate()

	hasher := NewHasher(cfg.BcryptCost)
	tokens := NewTokenServiceFromConfig(cfg, WithTokenLogger(logger))
	provider := NewUserProvider(repo.Users()).WithHasher(hasher).WithLogger(logger)
	auther := NewAuthenticator(provider, tokens).WithLogger(logger)

	sessionService := NewSessionService(repo.Sessions(), repo.Users()).WithLogger(logger)
	mapper := NewSessionMapper(repo.Teachers(), repo.Users())

	app := fiber.New(fiber.Config{
		AppName:               "yoga-api",
		ErrorHandler:          NewErrorHandler(logger),
		DisableStartupMessage: !cfg.Debug,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.GetCORSOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if cfg.Debug {
		app.Use(fiberlogger.New())
	}
	app.Use(AuthMiddleware(cfg, tokens, provider, logger))

	RegisterRoutes(app, DefaultRoutes(), RequireAuth(cfg),
		NewAuthController(auther, NewRegisterUserHandler(repo, hasher).WithLogger(logger)).WithLogger(logger),
		NewSessionController(sessionService, mapper),
		NewTeacherController(NewTeacherService(repo.Teachers())),
		NewUserController(NewUserService(repo.Users()).WithLogger(logger), cfg.GetContextKey()),
	)

	return &Server{
		App:      app,
		Repo:     repo,
		Tokens:   tokens,
		Auther:   auther,
		Sessions: sessionService,
	}
}
