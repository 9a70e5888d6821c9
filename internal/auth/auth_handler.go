package auth

import (
	"net/http"
	"strings"

	"github.com/Satyam6458/HR-Management/internal/shared/apperror"
	"github.com/Satyam6458/HR-Management/internal/shared/contextutil"
	"github.com/Satyam6458/HR-Management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	AccessTokenCookie = "access_token"
	clientTypeHeader  = "X-Client-Type"
)

type Handler struct {
	service       Service
	secureCookies bool
	cookieMaxAge  int
	logger        *zap.Logger
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, cookieMaxAge: 3600, logger: l}
}

// WithCookies configures the access_token cookie set for web clients.
func (h *Handler) WithCookies(secure bool, maxAgeSeconds int) *Handler {
	h.secureCookies = secure
	if maxAgeSeconds > 0 {
		h.cookieMaxAge = maxAgeSeconds
	}
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.logger.Warn("auth request rejected",
			zap.String("path", c.FullPath()),
			zap.String("code", httpErr.Code),
			zap.String("message", httpErr.Message),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWebClient(c) {
		h.setAccessCookie(c, res.Token, h.cookieMaxAge)
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) EmployeeLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.EmployeeLogin(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if res.Token != "" && isWebClient(c) {
		h.setAccessCookie(c, res.Token, h.cookieMaxAge)
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID := contextutil.GetUserID(c.Request.Context())
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	res, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setAccessCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (h *Handler) setAccessCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func isWebClient(c *gin.Context) bool {
	return strings.EqualFold(strings.TrimSpace(c.GetHeader(clientTypeHeader)), "web")
}
