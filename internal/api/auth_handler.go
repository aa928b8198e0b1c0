package api

import (
	"net/http"

	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/metrics"
	"github.com/escartian/FitByte/internal/service"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler holds the account and session dependencies.
type AuthHandler struct {
	authService service.AuthService
	sessions    *service.SessionCodec
	cookie      CookieConfig
	metrics     *metrics.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, sessions *service.SessionCodec, cookie CookieConfig, metricsManager *metrics.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookie:      cookie,
		metrics:     metricsManager,
	}
}

// --- Request/Response Structs ---

// RegisterRequest fields are validated by the service so errors come back in a fixed order.
type RegisterRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
	DateOfBirth  string `json:"dateOfBirth"`
	Age          *int   `json:"age"`
	Gender       string `json:"gender"`
}

type LoginRequest struct {
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

type UserResponse struct {
	User domain.UserInfo `json:"user"`
}

// --- Handler Methods ---

// Register creates a new account. It does not log the user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
		DateOfBirth:  req.DateOfBirth,
		Age:          req.Age,
		Gender:       req.Gender,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.CounterRegistrations.Inc()
	c.JSON(http.StatusCreated, UserResponse{User: user})
}

// Login authenticates and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.EmailAddress, req.Password)
	if err != nil {
		h.metrics.CounterLogins.WithLabelValues("failure").Inc()
		respondError(c, err)
		return
	}

	h.metrics.CounterLogins.WithLabelValues("success").Inc()
	h.setSessionCookie(c, token, int(h.sessions.Expiration().Seconds()))
	c.JSON(http.StatusOK, UserResponse{User: user})
}

// Logout clears the session cookie. It succeeds for anonymous callers too.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the profile of the session user, including the workout history.
func (h *AuthHandler) Me(c *gin.Context) {
	session, _ := getSession(c)
	user, err := h.authService.GetProfile(c.Request.Context(), session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{User: user})
}

// DeleteUser removes the session user's own account.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	session, _ := getSession(c)
	if c.Param("id") != session.ID.Hex() {
		respondError(c, service.ErrUnauthorized)
		return
	}

	user, err := h.authService.RemoveUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user removed", "user": user})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
