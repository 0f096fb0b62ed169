package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "oficina_motos/internal/adapter/http/dto/request"
	response "oficina_motos/internal/adapter/http/dto/response"
	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/usecase"
	"oficina_motos/internal/usecase/interfaces"
	"oficina_motos/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidBudgetPayload = pkg.NewDomainErrorSimple("INVALID_BUDGET_INPUT", "Invalid budget payload", http.StatusBadRequest)
)

// BudgetHandler exposes budget persistence and the approval workflow.
type BudgetHandler struct {
	budgets  usecase.IBudgetUseCase
	workflow usecase.IBudgetWorkflowUseCase
}

func NewBudgetHandler(budgets usecase.IBudgetUseCase, workflow usecase.IBudgetWorkflowUseCase) *BudgetHandler {
	return &BudgetHandler{budgets: budgets, workflow: workflow}
}

// CreateBudget godoc
// @Summary      Create a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        budget  body      request.CreateBudgetRequest  true  "Budget"
// @Success      201     {object}  response.BudgetResponse
// @Failure      400     {object}  pkg.HTTPError
// @Failure      404     {object}  pkg.HTTPError
// @Router       /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var payload request.CreateBudgetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidBudgetPayload)
		return
	}
	in, err := payload.ToInput()
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}

	budget, err := h.budgets.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromBudget(budget))
}

// ListBudgets godoc
// @Summary      List budgets
// @Tags         budgets
// @Produce      json
// @Param        clientRef  query     string  false  "Client id"
// @Param        status     query     string  false  "pendente, aprovado or rejeitado"
// @Success      200        {array}   response.BudgetResponse
// @Failure      400        {object}  pkg.HTTPError
// @Router       /budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	filter := interfaces.BudgetFilter{ClientRef: c.Query("clientRef")}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := entities.ParseBudgetStatus(raw)
		if err != nil {
			writeError(c, mapBudgetError(request.ErrInvalidStatusValue))
			return
		}
		filter.Status = status
	}

	budgets, err := h.budgets.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudgets(budgets))
}

// GetBudget godoc
// @Summary      Get a budget with its decoded items
// @Tags         budgets
// @Produce      json
// @Param        id   path      string  true  "Budget id"
// @Success      200  {object}  response.BudgetResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budget, err := h.budgets.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(budget))
}

// UpdateBudget godoc
// @Summary      Partially update a pending budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id      path      string                       true  "Budget id"
// @Param        budget  body      request.UpdateBudgetRequest  true  "Fields to change"
// @Success      200     {object}  response.BudgetResponse
// @Failure      400     {object}  pkg.HTTPError
// @Failure      404     {object}  pkg.HTTPError
// @Failure      409     {object}  pkg.HTTPError
// @Router       /budgets/{id} [patch]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	var payload request.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidBudgetPayload)
		return
	}
	in, err := payload.ToInput()
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}

	budget, err := h.budgets.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(budget))
}

// DeleteBudget godoc
// @Summary      Delete a budget
// @Tags         budgets
// @Param        id   path  string  true  "Budget id"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Router       /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.budgets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// ApproveBudget godoc
// @Summary      Approve a pending budget and open its service order
// @Tags         budgets
// @Produce      json
// @Param        id   path      string  true  "Budget id"
// @Success      200  {object}  response.ApproveBudgetResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /budgets/{id}/approve [post]
func (h *BudgetHandler) ApproveBudget(c *gin.Context) {
	order, err := h.workflow.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.ApproveBudgetResponse{BudgetID: order.BudgetRef, OrderRef: order.Code})
}

// RejectBudget godoc
// @Summary      Reject a pending budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id      path      string                       true  "Budget id"
// @Param        reason  body      request.RejectBudgetRequest  true  "Reason"
// @Success      200     {object}  response.RejectBudgetResponse
// @Failure      400     {object}  pkg.HTTPError
// @Failure      422     {object}  pkg.HTTPError
// @Router       /budgets/{id}/reject [post]
func (h *BudgetHandler) RejectBudget(c *gin.Context) {
	// An empty reason is checked by the workflow, after the status.
	var payload request.RejectBudgetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidBudgetPayload)
		return
	}

	budget, err := h.workflow.Reject(c.Request.Context(), c.Param("id"), payload.Reason)
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.RejectBudgetResponse{BudgetID: budget.ID})
}

// ConvertBudget godoc
// @Summary      Convert a pending budget into a service order
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Budget id"
// @Param        payload  body      request.ConvertBudgetRequest  true  "Order fields"
// @Success      201      {object}  response.ServiceOrderResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Router       /budgets/{id}/convert [post]
func (h *BudgetHandler) ConvertBudget(c *gin.Context) {
	var payload request.ConvertBudgetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, mapBudgetError(usecase.ErrInvalidActingUser))
		return
	}

	order, err := h.workflow.ConvertToOrder(c.Request.Context(), c.Param("id"), usecase.ConvertInput{
		ActingUserRef: payload.ActingUserRef,
		Title:         payload.Title,
		ExtraNotes:    payload.ExtraNotes,
	})
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromServiceOrder(order))
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapBudgetError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBudgetID),
		errors.Is(err, usecase.ErrInvalidClientRef),
		errors.Is(err, usecase.ErrInvalidExpiry),
		errors.Is(err, usecase.ErrInvalidBudgetValue),
		errors.Is(err, usecase.ErrInvalidBudgetStatus),
		errors.Is(err, request.ErrInvalidExpiryFormat),
		errors.Is(err, request.ErrInvalidStatusValue):
		return pkg.NewKindError(pkg.KindInvalidArgument, "INVALID_REQUEST", err.Error())
	case errors.Is(err, usecase.ErrInvalidBudgetItems):
		return pkg.NewKindError(pkg.KindInvalidArgument, "INVALID_BUDGET_ITEMS", err.Error())
	case errors.Is(err, usecase.ErrClientRefImmutable):
		return pkg.NewKindError(pkg.KindInvalidArgument, "CLIENT_REF_IMMUTABLE", "client_ref cannot be changed")
	case errors.Is(err, usecase.ErrRejectionReasonRequired):
		return pkg.NewKindError(pkg.KindInvalidArgument, "REJECTION_REASON_REQUIRED", "A rejection reason is required")
	case errors.Is(err, usecase.ErrInvalidActingUser):
		return pkg.NewKindError(pkg.KindInvalidArgument, "ACTING_USER_REQUIRED", "actingUserRef is required")
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewKindError(pkg.KindNotFound, "BUDGET_NOT_FOUND", "Budget not found")
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewKindError(pkg.KindNotFound, "CLIENT_NOT_FOUND", "Client not found")
	case errors.Is(err, usecase.ErrPartNotFound):
		return pkg.NewKindError(pkg.KindNotFound, "PART_NOT_FOUND", err.Error())
	case errors.Is(err, usecase.ErrBudgetOrderLinked):
		return pkg.NewKindError(pkg.KindConflict, "BUDGET_ORDER_LINKED", "Budget is linked to a service order")
	case errors.Is(err, usecase.ErrBudgetNotEditable):
		return pkg.NewKindError(pkg.KindConflict, "BUDGET_NOT_EDITABLE", "Budget is no longer pending")
	case errors.Is(err, usecase.ErrBudgetNotPending):
		return pkg.NewKindError(pkg.KindFailedPrecondition, "BUDGET_NOT_PENDING", "Budget is not pending")
	case errors.Is(err, usecase.ErrNoMotorcycle):
		return pkg.NewKindError(pkg.KindFailedPrecondition, "NO_MOTORCYCLE", "Client has no registered motorcycle")
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
