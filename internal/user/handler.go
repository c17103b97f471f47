package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forkful/recipe-api/internal/auth"
	"github.com/forkful/recipe-api/internal/httputil"
	"github.com/forkful/recipe-api/internal/logging"
)

// RateLimiter defines the rate limiting operations the handler depends on
type RateLimiter interface {
	CheckIPRateLimit(ctx context.Context, ip, purpose string) (bool, error)
	RecordIPRequest(ctx context.Context, ip, purpose string) error
}

// Handler contains HTTP handlers for account endpoints
type Handler struct {
	service         *Service
	tokenService    auth.TokenService
	rateLimiter     RateLimiter
	logger          *logging.Logger
	isProduction    bool
	sessionDuration time.Duration
}

func NewHandler(
	service *Service,
	tokenService auth.TokenService,
	rateLimiter RateLimiter,
	logger *logging.Logger,
	isProduction bool,
	sessionDuration time.Duration,
) *Handler {
	return &Handler{
		service:         service,
		tokenService:    tokenService,
		rateLimiter:     rateLimiter,
		logger:          logger,
		isProduction:    isProduction,
		sessionDuration: sessionDuration,
	}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Fullname:  u.Fullname,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Signup handles account creation
// @Summary      Sign up
// @Description  Create a new account and start a session
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup fields"
// @Success      200 {object} httputil.Envelope
// @Failure      400 {object} httputil.Envelope "Validation error or duplicate email"
// @Router       /api/user/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ip := getClientIP(r)
	exceeded, err := h.rateLimiter.CheckIPRateLimit(r.Context(), ip, "signup")
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("IP rate limit exceeded for signup", "ip", ip)
		httputil.RespondError(w, "too many requests, please try again later", http.StatusTooManyRequests)
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid signup request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.rateLimiter.RecordIPRequest(r.Context(), ip, "signup"); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}

	newUser, err := h.service.Register(r.Context(), req.Fullname, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			logger.Warn("signup failed: email already exists")
			httputil.RespondError(w, "user with this email already exists", http.StatusBadRequest)
		case errors.Is(err, ErrFullnameRequired),
			errors.Is(err, ErrEmailRequired),
			errors.Is(err, ErrPasswordRequired),
			errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrInvalidEmailFormat):
			logger.Warn("signup failed: validation error", "error", err.Error())
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		default:
			logger.Error("signup failed: internal error", "error", err.Error())
			httputil.RespondError(w, "failed to sign up", http.StatusInternalServerError)
		}
		return
	}

	if err := h.startSession(w, newUser.ID); err != nil {
		logger.Error("failed to create session token", "error", err.Error())
		httputil.RespondError(w, "failed to sign up", http.StatusInternalServerError)
		return
	}

	logger.Info("user signed up successfully", "user_id", newUser.ID)

	httputil.RespondData(w, "new user signed up successfully", toUserResponse(newUser), http.StatusOK)
}

// Login handles user login
// @Summary      Log in
// @Description  Authenticate with email and password and start a session
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} httputil.Envelope
// @Failure      400 {object} httputil.Envelope "Invalid credentials"
// @Router       /api/user/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ip := getClientIP(r)
	exceeded, err := h.rateLimiter.CheckIPRateLimit(r.Context(), ip, "login")
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("IP rate limit exceeded for login", "ip", ip)
		httputil.RespondError(w, "too many requests, please try again later", http.StatusTooManyRequests)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.rateLimiter.RecordIPRequest(r.Context(), ip, "login"); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}

	existingUser, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			httputil.RespondError(w, "invalid email or password", http.StatusBadRequest)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondError(w, "failed to login", http.StatusInternalServerError)
		return
	}

	if err := h.startSession(w, existingUser.ID); err != nil {
		logger.Error("failed to create session token", "error", err.Error())
		httputil.RespondError(w, "failed to login", http.StatusInternalServerError)
		return
	}

	logger.Info("user logged in successfully", "user_id", existingUser.ID)

	httputil.RespondData(w, "user logged in successfully", toUserResponse(existingUser), http.StatusOK)
}

// Logout handles user logout
// @Summary      Log out
// @Description  Clear the session cookie
// @Tags         user
// @Produce      json
// @Success      200 {object} httputil.Envelope
// @Router       /api/user/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	auth.ClearSessionCookie(w, h.isProduction)

	logger.Info("user logged out successfully")

	httputil.RespondData(w, "logged out successfully", nil, http.StatusOK)
}

// Me returns the currently authenticated user
// @Summary      Current user
// @Description  Resolve the session to the current account
// @Tags         user
// @Produce      json
// @Success      200 {object} httputil.Envelope
// @Failure      401 {object} httputil.Envelope "Missing or invalid session"
// @Router       /api/user/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	currentUser, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("session resolved to unknown user", "user_id", userID)
			httputil.RespondError(w, "user not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to load current user", "error", err.Error())
		httputil.RespondError(w, "failed to load current user", http.StatusInternalServerError)
		return
	}

	httputil.RespondData(w, "current user", toUserResponse(currentUser), http.StatusOK)
}

// startSession mints a session token and writes it as the session cookie
func (h *Handler) startSession(w http.ResponseWriter, userID uuid.UUID) error {
	token, err := h.tokenService.CreateToken(userID, h.sessionDuration)
	if err != nil {
		return err
	}
	auth.SetSessionCookie(w, token, h.isProduction, h.sessionDuration)
	return nil
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (behind proxy/load balancer)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback to RemoteAddr
	ip := r.RemoteAddr
	// RemoteAddr format is "IP:port", extract just the IP
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
