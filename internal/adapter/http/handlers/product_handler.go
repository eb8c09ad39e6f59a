package handlers

import (
	"log"
	"net/http"
	"strings"

	request "ecommerce_api/internal/adapter/http/dto/request"
	response "ecommerce_api/internal/adapter/http/dto/response"
	"ecommerce_api/internal/adapter/http/middleware"
	"ecommerce_api/internal/domain/entities"
	"ecommerce_api/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	usecase usecase.IProductUseCase
}

func NewProductHandler(uc usecase.IProductUseCase) *ProductHandler {
	return &ProductHandler{usecase: uc}
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        X-Actor-Email  header  string                  false  "Actor of the change"
// @Param        product        body    request.ProductRequest  true   "Product"
// @Success      201  {object}  response.ProductResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var payload request.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[product][handler] invalid create payload err=%v", err)
		writeError(c, errInvalidProductPayload)
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), requestMeta(c), payload.ToEntity())
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromProduct(created))
}

// UpdateProduct godoc
// @Summary      Replace the mutable fields of a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path    string                  true  "Product id"
// @Param        product  body    request.ProductRequest  true  "Product"
// @Success      200  {object}  response.ProductResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var payload request.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[product][handler] invalid update payload id=%s err=%v", c.Param("id"), err)
		writeError(c, errInvalidProductPayload)
		return
	}

	updated, err := h.usecase.Update(c.Request.Context(), requestMeta(c), c.Param("id"), payload.ToEntity())
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, response.FromProduct(updated))
}

// DeleteProduct godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  response.ProductResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	deleted, err := h.usecase.Delete(c.Request.Context(), requestMeta(c), c.Param("id"))
	if err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.JSON(http.StatusOK, response.FromProduct(deleted))
}

// GetProduct godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.ProductResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromProduct(p))
}

// ListProducts godoc
// @Summary      List products or look one up by code
// @Description  Returns every product, or the single product matching ?code=.
// @Tags         products
// @Produce      json
// @Param        code  query     string  false  "Product code"
// @Success      200   {array}   response.ProductResponse
// @Failure      404   {object}  pkg.HTTPError
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	if code, ok := c.GetQuery("code"); ok {
		p, err := h.usecase.GetByCode(c.Request.Context(), code)
		if err != nil {
			h.fail(c, "get-by-code", err)
			return
		}
		c.JSON(http.StatusOK, response.FromProduct(p))
		return
	}

	products, err := h.usecase.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromProducts(products))
}

func (h *ProductHandler) fail(c *gin.Context, op string, err error) {
	appErr := mapProductError(err)
	log.Printf("[product][handler] %s failed status=%d request_id=%s err=%v", op, appErr.HTTPStatus, middleware.GetRequestID(c), err)
	writeError(c, appErr)
}

func requestMeta(c *gin.Context) entities.RequestMeta {
	return entities.RequestMeta{
		RequestID:  middleware.GetRequestID(c),
		ActorEmail: strings.TrimSpace(c.GetHeader(middleware.HeaderActorEmail)),
	}
}
