package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"boxoffice/internal/config"
	"boxoffice/internal/failure"
	"boxoffice/internal/utils"
	"boxoffice/internal/validate"
)

// SessionHandler issues and inspects terminal sessions.  A session is a
// signed JWT naming the desk; there are no user accounts, a desk opens a
// session at the start of the day and works with it until it lapses.
type SessionHandler struct {
	Cfg config.Config
}

func NewSessionHandler(cfg config.Config) *SessionHandler {
	return &SessionHandler{Cfg: cfg}
}

// ----- DTOs -----

type openSessionReq struct {
	Name     string `json:"name" validate:"required,min=1,max=64"`
	Role     string `json:"role"`
	AdminKey string `json:"adminKey"`
}

type terminalPart struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
type sessionPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type sessionResp struct {
	Terminal terminalPart `json:"terminal"`
	Session  sessionPart  `json:"session"`
}

// Open handles POST /api/session.  It registers a desk terminal under a
// fresh ID and returns a signed session token.  The ADMIN role
// additionally requires the admin key, verified against the configured
// bcrypt hash; when no hash is configured admin sessions are disabled.
func (h *SessionHandler) Open(c echo.Context) error {
	var req openSessionReq
	if err := c.Bind(&req); err != nil {
		return failure.Validation("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return err
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = utils.RoleTerminal
	}
	if role != utils.RoleTerminal && role != utils.RoleAdmin {
		return failure.Validation("role must be TERMINAL or ADMIN")
	}
	if role == utils.RoleAdmin {
		if h.Cfg.AdminKeyHash == "" {
			return failure.Forbidden("admin sessions are disabled")
		}
		if !utils.VerifyAdminKey(h.Cfg.AdminKeyHash, req.AdminKey) {
			return failure.Unauthorized("invalid admin key")
		}
	}

	id := uuid.NewString()
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, id, req.Name, role, h.Cfg.SessionTTLMin)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sessionResp{
		Terminal: terminalPart{ID: id, Name: req.Name, Role: role},
		Session:  sessionPart{Token: tok.Token, Expires: tok.Exp},
	})
}

// Current handles GET /api/session.  It echoes the identity carried by
// the presented token so a desk can verify what it is running as.
func (h *SessionHandler) Current(c echo.Context) error {
	id, name, err := sessionTerminal(c)
	if err != nil {
		return err
	}
	role, _ := c.Get("role").(string)
	return c.JSON(http.StatusOK, echo.Map{
		"terminal": terminalPart{ID: id, Name: name, Role: role},
	})
}
