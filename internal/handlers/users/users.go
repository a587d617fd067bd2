package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Guiladg/wacookieexpress/internal/apperr"
	"github.com/Guiladg/wacookieexpress/internal/middleware"
	"github.com/Guiladg/wacookieexpress/internal/models"
	"github.com/Guiladg/wacookieexpress/internal/stores"
	"github.com/Guiladg/wacookieexpress/internal/user"
)

type CreateUserRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Phone    string  `json:"phone"`
	Password *string `json:"password"`
	Role     string  `json:"role"`
}

// ListResponse carries a page of users plus the data the client table
// needs to render paging controls.
type ListResponse struct {
	Records      []models.User `json:"records"`
	TotalRecords int64         `json:"totalRecords"`
	Page         int           `json:"page"`
	PageSize     int           `json:"pageSize"`
	Order        string        `json:"order"`
}

// UserHandler implements the admin-only user CRUD.
type UserHandler struct {
	Users           stores.UserStore
	Hasher          user.PasswordHasher
	DefaultPageSize int
	Production      bool
	Log             *zap.SugaredLogger
}

func NewUserHandler(users stores.UserStore, hasher user.PasswordHasher, defaultPageSize int, production bool, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{
		Users:           users,
		Hasher:          hasher,
		DefaultPageSize: defaultPageSize,
		Production:      production,
		Log:             log,
	}
}

func (h *UserHandler) respond(c *gin.Context, err error) {
	status, msg := apperr.Render(err, h.Production)
	if status >= http.StatusInternalServerError {
		h.Log.Errorw("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"message": msg})
}

// List returns a page of users sorted by any of the public columns.
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, err := strconv.Atoi(c.Query("size"))
	if err != nil || pageSize <= 0 {
		pageSize = h.DefaultPageSize
	}
	sort := c.DefaultQuery("sort", "phone")
	order := c.DefaultQuery("order", "asc")

	records, err := h.Users.List(page*pageSize, pageSize, sort, order)
	if err != nil {
		h.respond(c, apperr.Database("could not list users", err))
		return
	}

	total, err := h.Users.Count()
	if err != nil {
		h.respond(c, apperr.Database("could not count users", err))
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Records:      records,
		TotalRecords: total,
		Page:         page,
		PageSize:     pageSize,
		Order:        sort + " " + order,
	})
}

// Get returns a single user by id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.respond(c, apperr.BadRequest("invalid id"))
		return
	}

	u, err := h.Users.FindByID(uint(id))
	if err != nil {
		h.respond(c, apperr.NotFound("Registro no encontrado."))
		return
	}

	c.JSON(http.StatusOK, u)
}

// Create adds a user. Phone numbers are unique across the table.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, apperr.BadRequest("invalid request"))
		return
	}

	if _, err := h.Users.FindByPhone(req.Phone); err == nil {
		h.respond(c, apperr.BadRequest("Ya existe un usuario registrado con este número de teléfono."))
		return
	}

	hashed, err := h.Hasher.Hash([]byte(req.Password))
	if err != nil {
		h.respond(c, apperr.Internal("could not hash password", err))
		return
	}

	u := &models.User{
		Phone:        req.Phone,
		PasswordHash: string(hashed),
		Role:         req.Role,
	}
	if err := h.Users.Create(u); err != nil {
		h.respond(c, apperr.Database("could not create user", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record":  u,
		"message": "Usuario creado con exito.",
	})
}

// Update edits a user's phone, role or password.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.respond(c, apperr.BadRequest("invalid id"))
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, apperr.BadRequest("invalid request"))
		return
	}

	u, err := h.Users.FindByID(uint(id))
	if err != nil {
		h.respond(c, apperr.NotFound("Registro no encontrado."))
		return
	}

	if req.Phone != "" && req.Phone != u.Phone {
		if _, err := h.Users.FindByPhone(req.Phone); err == nil {
			h.respond(c, apperr.BadRequest("Ya existe un usuario registrado con este número de teléfono."))
			return
		}
		u.Phone = req.Phone
	}
	if req.Role != "" {
		u.Role = req.Role
	}
	if req.Password != nil {
		hashed, err := h.Hasher.Hash([]byte(*req.Password))
		if err != nil {
			h.respond(c, apperr.Internal("could not hash password", err))
			return
		}
		u.PasswordHash = string(hashed)
	}

	if err := h.Users.Update(u); err != nil {
		h.respond(c, apperr.Database("could not save user", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record":  u,
		"message": "Usuario modificado con exito.",
	})
}

// Delete removes a user. The active user cannot delete itself.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.respond(c, apperr.BadRequest("invalid id"))
		return
	}

	if claims, ok := middleware.Claims(c); ok && claims.ID == uint(id) {
		h.respond(c, apperr.Conflict("No puede eliminarse el usuario activo."))
		return
	}

	u, err := h.Users.FindByID(uint(id))
	if err != nil {
		h.respond(c, apperr.NotFound("Registro no encontrado."))
		return
	}

	if err := h.Users.Delete(u); err != nil {
		h.respond(c, apperr.Database("Error en la base de datos.", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record":  u,
		"message": "Usuario eliminado con éxito.",
	})
}
