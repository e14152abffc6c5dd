package http

import (
	"net/http"
	"strings"

	"github.com/Miraines/ChirpChat/auth-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/ChirpChat/auth-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/ChirpChat/auth-service/internal/app/auth/service"
	"github.com/Miraines/ChirpChat/auth-service/internal/app/auth/token"
	customErrors "github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc          service.Service
	tokens       *token.Util
	log          *zap.Logger
	cookieDomain string
	secureCookie bool
}

func NewHandler(svc service.Service, tokens *token.Util, log *zap.Logger, cookieDomain string, secureCookie bool) *Handler {
	return &Handler{
		svc:          svc,
		tokens:       tokens,
		log:          log,
		cookieDomain: cookieDomain,
		secureCookie: secureCookie,
	}
}

// Register wires the auth routes onto the given group.
func (h *Handler) Register(g *gin.RouterGroup, guard gin.HandlerFunc) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.PUT("/update-profile", guard, h.UpdateProfile)
	g.GET("/check", guard, h.Check)
}

func (h *Handler) Signup(c *gin.Context) {
	var body dto.SignupDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user data"})
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), body)
	if err != nil {
		h.fail(c, "signup", err)
		return
	}

	if err := h.issueSession(c, user.ID.Hex()); err != nil {
		h.fail(c, "signup", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user data"})
		return
	}

	user, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		h.fail(c, "login", err)
		return
	}

	if err := h.issueSession(c, user.ID.Hex()); err != nil {
		h.fail(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Logout clears the session cookie. Succeeds whether or not a session existed.
func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - no user"})
		return
	}

	var body dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Profile pic is required"})
		return
	}

	updated, err := h.svc.UpdateProfile(c.Request.Context(), user.ID, body)
	if err != nil {
		h.fail(c, "update-profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(updated))
}

// Check reflects whatever user the guard resolved.
func (h *Handler) Check(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - no user"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *Handler) issueSession(c *gin.Context, userID string) error {
	tok, err := h.tokens.Issue(userID)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, tok, int(h.tokens.TTL().Seconds()))
	return nil
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", h.cookieDomain, h.secureCookie, true)
}

// fail maps an error kind to its HTTP status. Internal detail stays in the log,
// never in the response body.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": argumentMessage(err)})
	case customErrors.IsAlreadyExists(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
	case customErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case customErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - invalid token"})
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"message": "Unauthorized - user not found"})
	default:
		h.log.Error("request failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func argumentMessage(err error) string {
	return strings.TrimPrefix(err.Error(), customErrors.ErrInvalidArgument.Error()+": ")
}
