package handlers

import (
	"errors"
	nethttp "net/http"
	"strconv"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/repository"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/service"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/transport/http/middleware"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/transport/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommandHandler serves the write side: product catalog and order placement.
type CommandHandler struct {
	product service.ProductService
	order   service.OrderService
}

func NewCommandHandler(product service.ProductService, order service.OrderService) *CommandHandler {
	return &CommandHandler{
		product: product,
		order:   order,
	}
}

type createProductRequest struct {
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Price    *float64 `json:"price" binding:"required,gte=0"`
	Stock    *int     `json:"stock" binding:"required,gte=0"`
}

func (h *CommandHandler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, err.Error())
		return
	}

	product, err := h.product.Create(c.Request.Context(), req.Name, req.Category, *req.Price, *req.Stock)
	if err != nil {
		response.RespondError(c, nethttp.StatusInternalServerError, "create failed")
		return
	}
	response.RespondOK(c, nethttp.StatusCreated, gin.H{"productId": product.ID}, nil)
}

type orderItemRequest struct {
	ProductID string   `json:"productId" binding:"required,uuid"`
	Quantity  int      `json:"quantity" binding:"required,gt=0"`
	Price     *float64 `json:"price" binding:"omitempty,gte=0"`
}

type createOrderRequest struct {
	CustomerID string             `json:"customerId" binding:"required,uuid"`
	Items      []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (h *CommandHandler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, "invalid customerId")
		return
	}
	lines := make([]repository.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			response.RespondError(c, nethttp.StatusBadRequest, "invalid productId")
			return
		}
		lines = append(lines, repository.OrderLine{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	idempotencyKey := c.GetString(middleware.IdempotencyKeyCtx)
	requestHash := c.GetString(middleware.IdempotencyHashCtx)

	order, alreadyExist, err := h.order.Create(c.Request.Context(), customerID, lines, idempotencyKey, requestHash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			response.RespondError(c, nethttp.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrInsufficientStock):
			response.RespondError(c, nethttp.StatusConflict, err.Error())
		case errors.Is(err, repository.ErrIdempotencyKeyConflict):
			response.RespondError(c, nethttp.StatusConflict, "idempotency key conflicts with request")
		default:
			response.RespondError(c, nethttp.StatusInternalServerError, "order failed")
		}
		return
	}
	if alreadyExist {
		response.RespondOK(c, nethttp.StatusOK, gin.H{"orderId": order.ID}, nil)
		return
	}
	response.RespondOK(c, nethttp.StatusCreated, gin.H{"orderId": order.ID}, nil)
}

func (h *CommandHandler) getProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, "invalid id")
		return
	}

	product, err := h.product.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.RespondError(c, nethttp.StatusNotFound, "not found")
			return
		}
		response.RespondError(c, nethttp.StatusInternalServerError, "get failed")
		return
	}
	response.RespondOK(c, nethttp.StatusOK, product, nil)
}

func (h *CommandHandler) listProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	cursor := c.Query("cursor")

	products, nextCursor, err := h.product.List(c.Request.Context(), limit, cursor)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCursor) {
			response.RespondError(c, nethttp.StatusBadRequest, "invalid cursor")
			return
		}
		response.RespondError(c, nethttp.StatusInternalServerError, "list failed")
		return
	}
	meta := &response.Meta{NextCursor: nextCursor}
	response.RespondOK(c, nethttp.StatusOK, products, meta)
}

func (h *CommandHandler) health(c *gin.Context) {
	response.RespondOK(c, nethttp.StatusOK, gin.H{"status": "ok"}, nil)
}
