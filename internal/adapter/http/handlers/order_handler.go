package handlers

import (
	"log"
	"net/http"

	request "ecommerce_api/internal/adapter/http/dto/request"
	response "ecommerce_api/internal/adapter/http/dto/response"
	"ecommerce_api/internal/adapter/http/middleware"
	"ecommerce_api/internal/usecase"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles HTTP requests for customer orders.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder godoc
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        email  query  string                true  "Customer email"
// @Param        order  body   request.OrderRequest  true  "Order"
// @Success      201  {object}  response.OrderResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var query request.CreateOrderQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, errInvalidOrderQuery)
		return
	}
	var payload request.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[order][handler] invalid create payload email=%s err=%v", query.Email, err)
		writeError(c, errInvalidOrderPayload)
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), query.Email, payload.ProductCodes, payload.PaymentMethod(), payload.ShippingEntity())
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(created))
}

// ListOrders godoc
// @Summary      List orders, list a customer's orders, or get one order
// @Description  No query lists every order, ?email= lists one customer, ?email=&orderId= returns a single order.
// @Tags         orders
// @Produce      json
// @Param        email    query  string  false  "Customer email"
// @Param        orderId  query  string  false  "Order ID"
// @Success      200  {array}   response.OrderResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var query request.OrderQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, errInvalidOrderQuery)
		return
	}

	ctx := c.Request.Context()
	switch {
	case query.Email == "" && query.OrderID == "":
		orders, err := h.usecase.ListAll(ctx)
		if err != nil {
			h.fail(c, "list-all", err)
			return
		}
		c.JSON(http.StatusOK, response.FromOrders(orders))
	case query.OrderID == "":
		orders, err := h.usecase.ListByCustomer(ctx, query.Email)
		if err != nil {
			h.fail(c, "list", err)
			return
		}
		c.JSON(http.StatusOK, response.FromOrders(orders))
	default:
		o, err := h.usecase.Get(ctx, query.Email, query.OrderID)
		if err != nil {
			h.fail(c, "get", err)
			return
		}
		c.JSON(http.StatusOK, response.FromOrder(o))
	}
}

// DeleteOrder godoc
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Param        email    query  string  true  "Customer email"
// @Param        orderId  query  string  true  "Order ID"
// @Success      200  {object}  response.OrderResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	var query request.OrderQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, errInvalidOrderQuery)
		return
	}

	deleted, err := h.usecase.Delete(c.Request.Context(), query.Email, query.OrderID)
	if err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(deleted))
}

func (h *OrderHandler) fail(c *gin.Context, op string, err error) {
	appErr := mapOrderError(err)
	log.Printf("[order][handler] %s failed status=%d request_id=%s err=%v", op, appErr.HTTPStatus, middleware.GetRequestID(c), err)
	writeError(c, appErr)
}
