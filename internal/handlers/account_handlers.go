package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"giftmart/internal/common"
	"giftmart/internal/models"
	"giftmart/internal/repositories"
	"giftmart/internal/services"
)

type AccountHandlers struct {
	accountService services.AccountServiceInterface
	roleRepo       repositories.RoleRepository
}

func NewAccountHandlers(accountService services.AccountServiceInterface, roleRepo repositories.RoleRepository) *AccountHandlers {
	return &AccountHandlers{accountService: accountService, roleRepo: roleRepo}
}

// ListRoles handles GET /api/roles
func (h *AccountHandlers) ListRoles(c echo.Context) error {
	roles, err := h.roleRepo.List(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, roles)
}

// Signup handles POST /api/auth/signup
func (h *AccountHandlers) Signup(c echo.Context) error {
	var req struct {
		Email    string  `json:"email"`
		Password string  `json:"password"`
		FullName string  `json:"full_name"`
		Phone    *string `json:"phone"`
		Address  *string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	account, err := h.accountService.CreateAccount(c.Request().Context(), req.Email, req.Password, req.FullName, req.Phone, req.Address)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusCreated, account)
}

// Login handles POST /api/auth/login
func (h *AccountHandlers) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	resp, err := h.accountService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, resp)
}

// GetAccount handles GET /api/accounts/:id
func (h *AccountHandlers) GetAccount(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	account, err := h.accountService.GetAccount(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, account)
}

// ListAccounts handles GET /api/accounts
func (h *AccountHandlers) ListAccounts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	limit, offset := common.ValidatePaginationParams(page, limit)

	accounts, err := h.accountService.ListAccounts(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendData(c, http.StatusOK, accounts)
}

// UpdateAccount handles PUT /api/accounts/:id
func (h *AccountHandlers) UpdateAccount(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	var upd models.AccountUpdate
	if err := c.Bind(&upd); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	account, err := h.accountService.UpdateAccount(c.Request().Context(), id, &upd)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, account, "Account updated")
}

// DeleteAccount handles DELETE /api/accounts/:id
func (h *AccountHandlers) DeleteAccount(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.accountService.DeleteAccount(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return common.SendMessage(c, http.StatusOK, nil, "Account deleted")
}
