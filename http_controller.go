package yoga

import (
	"github.com/gofiber/fiber/v2"
)

// Routes holds the mount points of the API
type Routes struct {
	Prefix   string
	Auth     string
	Sessions string
	Teachers string
	Users    string
}

// DefaultRoutes mirrors the /api/* layout clients expect
func DefaultRoutes() Routes {
	return Routes{
		Prefix:   "/api",
		Auth:     "/auth",
		Sessions: "/session",
		Teachers: "/teacher",
		Users:    "/user",
	}
}

// RegisterRoutes mounts every controller under routes.Prefix. requireAuth
// guards everything except the auth endpoints.
func RegisterRoutes(app fiber.Router, routes Routes, requireAuth fiber.Handler, ac *AuthController, sc *SessionController, tc *TeacherController, uc *UserController) {
	api := app.Group(routes.Prefix)

	auth := api.Group(routes.Auth)
	auth.Post("/login", ac.Login)
	auth.Post("/register", ac.Register)

	sessions := api.Group(routes.Sessions, requireAuth)
	sessions.Get("/", sc.List)
	sessions.Get("/:id", sc.Get)
	sessions.Post("/", sc.Create)
	sessions.Put("/:id", sc.Update)
	sessions.Delete("/:id", sc.Delete)
	sessions.Post("/:id/participate/:userId", sc.Participate)
	sessions.Delete("/:id/participate/:userId", sc.NoLongerParticipate)

	teachers := api.Group(routes.Teachers, requireAuth)
	teachers.Get("/", tc.List)
	teachers.Get("/:id", tc.Get)

	users := api.Group(routes.Users, requireAuth)
	users.Get("/:id", uc.Get)
	users.Delete("/:id", uc.Delete)
}

// AuthController serves login and registration
type AuthController struct {
	auther   *Auther
	register *RegisterUserHandler
	logger   Logger
}

func NewAuthController(auther *Auther, register *RegisterUserHandler) *AuthController {
	return &AuthController{auther: auther, register: register, logger: defLogger{}}
}

func (a *AuthController) WithLogger(l Logger) *AuthController {
	if l != nil {
		a.logger = l
	}
	return a
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return err
	}

	res, err := a.auther.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(res)
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	var req SignupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if _, err := a.register.Execute(c.UserContext(), RegisterUserMessage{SignupRequest: req}); err != nil {
		a.logger.Debug("registration failed", "error", err)
		return err
	}

	return c.JSON(MessageResponse{Message: MessageUserRegistered})
}

// SessionController serves /api/session
type SessionController struct {
	service *SessionService
	mapper  SessionMapper
}

func NewSessionController(service *SessionService, mapper SessionMapper) *SessionController {
	return &SessionController{service: service, mapper: mapper}
}

func (s *SessionController) List(c *fiber.Ctx) error {
	records, err := s.service.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(SessionsToDTO(records))
}

func (s *SessionController) Get(c *fiber.Ctx) error {
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(SessionToDTO(record))
}

func (s *SessionController) Create(c *fiber.Ctx) error {
	record, err := s.entityFromBody(c)
	if err != nil {
		return err
	}

	created, err := s.service.Create(c.UserContext(), record)
	if err != nil {
		return err
	}
	return c.JSON(SessionToDTO(created))
}

func (s *SessionController) Update(c *fiber.Ctx) error {
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	record, err := s.entityFromBody(c)
	if err != nil {
		return err
	}

	updated, err := s.service.Update(c.UserContext(), id, record)
	if err != nil {
		return err
	}
	return c.JSON(SessionToDTO(updated))
}

func (s *SessionController) Delete(c *fiber.Ctx) error {
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if err := s.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *SessionController) Participate(c *fiber.Ctx) error {
	id, userID, err := parseParticipation(c)
	if err != nil {
		return err
	}

	if err := s.service.Participate(c.UserContext(), id, userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *SessionController) NoLongerParticipate(c *fiber.Ctx) error {
	id, userID, err := parseParticipation(c)
	if err != nil {
		return err
	}

	if err := s.service.NoLongerParticipate(c.UserContext(), id, userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *SessionController) entityFromBody(c *fiber.Ctx) (*Session, error) {
	var dto SessionDTO
	if err := parseBody(c, &dto); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	return s.mapper.ToEntity(c.UserContext(), &dto)
}

func parseParticipation(c *fiber.Ctx) (int64, int64, error) {
	id, err := ParseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := ParseID(c, "userId")
	if err != nil {
		return 0, 0, err
	}
	return id, userID, nil
}

// TeacherController serves /api/teacher
type TeacherController struct {
	service *TeacherService
}

func NewTeacherController(service *TeacherService) *TeacherController {
	return &TeacherController{service: service}
}

func (t *TeacherController) List(c *fiber.Ctx) error {
	records, err := t.service.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(TeachersToDTO(records))
}

func (t *TeacherController) Get(c *fiber.Ctx) error {
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	record, err := t.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(TeacherToDTO(record))
}

// UserController serves /api/user
type UserController struct {
	service    *UserService
	contextKey string
}

func NewUserController(service *UserService, contextKey string) *UserController {
	return &UserController{service: service, contextKey: contextKey}
}

func (u *UserController) Get(c *fiber.Ctx) error {
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	record, err := u.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(UserToDTO(record))
}

func (u *UserController) Delete(c *fiber.Ctx) error {
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	principal, _ := PrincipalFromFiber(c, u.contextKey)
	if err := u.service.Delete(c.UserContext(), principal, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}
