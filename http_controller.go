package auth

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// AuthControllerRoutes are the paths the controller mounts
type AuthControllerRoutes struct {
	Login  string
	Logout string
}

// AuthController exposes the login entry point and the sign-out route
type AuthController struct {
	Debug  bool
	Logger Logger
	Auther *RouteAuthenticator
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(l Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = l
		return c
	}
}

func WithControllerRoutes(routes *AuthControllerRoutes) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Routes = routes
		return c
	}
}

func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

// NewAuthController will create a controller bound to the given route authenticator
func NewAuthController(auther *RouteAuthenticator, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Auther: auther,
		Routes: &AuthControllerRoutes{
			Login:  DefaultLoginRoute,
			Logout: "/logout",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing RouteAuthenticator in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the controller on a fiber app
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Get(controller.Routes.Logout, controller.LogOut)
}

// LoginRequest payload
type LoginRequest struct {
	Hallticket string `form:"hallticket" json:"hallticket"`
	DOB        string `form:"dob" json:"dob"`
}

// GetHallticket returns the hall ticket number
func (r LoginRequest) GetHallticket() string {
	return r.Hallticket
}

// GetDOB returns the submitted date of birth
func (r LoginRequest) GetDOB() string {
	return r.DOB
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Hallticket,
			validation.Required,
			validation.Length(1, 64),
		),
		validation.Field(
			&r.DOB,
			validation.Required,
			validation.Date(dobInputLayout),
		),
	)
}

func (a *AuthController) LoginPost(ctx *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := ctx.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload: %v", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse login payload",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMissingCredential.Message,
		})
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	if err := a.Auther.Login(ctx, payload); err != nil {
		return a.renderLoginError(ctx, err)
	}

	redirect := a.Auther.GetRedirect(ctx, "/")

	return ctx.Redirect(redirect, fiber.StatusSeeOther)
}

func (a *AuthController) LogOut(ctx *fiber.Ctx) error {
	a.Auther.Logout(ctx)
	return ctx.Redirect(a.Routes.Login, fiber.StatusTemporaryRedirect)
}

func (a *AuthController) renderLoginError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusUnauthorized
	message := ErrInvalidCredential.Message

	switch {
	case IsMissingCredentialError(err):
		status = fiber.StatusBadRequest
		message = ErrMissingCredential.Message
	case IsConcurrentSessionError(err):
		status = fiber.StatusConflict
		message = ErrConcurrentSession.Message
	case IsInvalidCredentialError(err):
		status = fiber.StatusUnauthorized
		message = ErrInvalidCredential.Message
	case IsIssuanceFailedError(err):
		status = fiber.StatusServiceUnavailable
		message = ErrIssuanceFailed.Message
	default:
		var richErr *errors.Error
		if errors.As(err, &richErr) && richErr.Category == errors.CategoryValidation {
			status = fiber.StatusBadRequest
			message = richErr.Message
		} else {
			status = fiber.StatusInternalServerError
			message = "authentication failed"
		}
	}

	return ctx.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
