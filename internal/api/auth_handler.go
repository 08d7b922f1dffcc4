package api

import (
	"github.com/labstack/echo/v4"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	activity    *service.ActivityService
}

func NewAuthHandler(authService *service.AuthService, activity *service.ActivityService) *AuthHandler {
	return &AuthHandler{authService: authService, activity: activity}
}

// Login authenticates and binds the user to the session --> POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	login := struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}{}
	if err := c.Bind(&login); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	user, err := h.authService.Authenticate(c.Request().Context(), login.Email, login.Password)
	if err != nil {
		return errorJSON(c, err)
	}

	sess := CurrentSession(c)
	sess.Data.UserID = user.ID
	sess.Data.Username = user.Username
	sess.Data.IsAdmin = user.IsAdmin
	sess.Flash("success", "Welcome back!")
	if err := sess.Save(); err != nil {
		return errorJSON(c, err)
	}

	h.activity.Log(&user.ID, user.Username, "LOGIN", "", c.RealIP(), c.Request().UserAgent())

	return c.JSON(200, map[string]any{"message": "Welcome back!", "user": user})
}

// Register creates an account --> POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	reg := struct {
		Username        string `json:"username" form:"username"`
		Email           string `json:"email" form:"email"`
		Password        string `json:"password" form:"password"`
		ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	}{}
	if err := c.Bind(&reg); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if reg.ConfirmPassword != "" && reg.Password != reg.ConfirmPassword {
		return c.JSON(400, map[string]string{"error": "Passwords do not match"})
	}

	user, err := h.authService.Register(c.Request().Context(), reg.Username, reg.Email, reg.Password)
	if err != nil {
		return errorJSON(c, err)
	}

	h.activity.Log(&user.ID, user.Username, "REGISTER", "", c.RealIP(), c.Request().UserAgent())

	return c.JSON(201, map[string]any{"message": "Registration successful! Please login.", "user": user})
}

// Logout destroys the session --> POST /auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := CurrentSession(c)
	if sess != nil {
		if err := sess.Destroy(); err != nil {
			logger.Error().Err(err).Msg("Error destroying session")
		}
	}
	return c.JSON(200, map[string]string{"message": "Logged out"})
}

// Token issues a JWT for API clients --> POST /api/auth/token
func (h *AuthHandler) Token(c echo.Context) error {
	login := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&login); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	user, err := h.authService.Authenticate(c.Request().Context(), login.Email, login.Password)
	if err != nil {
		return errorJSON(c, err)
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]string{"token": token})
}
