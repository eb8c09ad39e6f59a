package request

import (
	"ecommerce_api/internal/domain/entities"
)

type ShippingRequest struct {
	Type    string `json:"type" binding:"required,oneof=URGENT ECONOMIC"`
	Carrier string `json:"carrier" binding:"required,oneof=CORREIOS FEDEX"`
}

// OrderRequest is the body of POST /orders. The customer comes from the
// email query parameter.
type OrderRequest struct {
	ProductCodes []string        `json:"product_codes" binding:"required,min=1,dive,required"`
	Payment      string          `json:"payment" binding:"required,oneof=CASH DEBIT_CARD CREDIT_CARD"`
	Shipping     ShippingRequest `json:"shipping"`
}

func (r OrderRequest) PaymentMethod() entities.PaymentMethod {
	return entities.PaymentMethod(r.Payment)
}

func (r OrderRequest) ShippingEntity() entities.Shipping {
	return entities.Shipping{
		Type:    entities.ShippingType(r.Shipping.Type),
		Carrier: entities.Carrier(r.Shipping.Carrier),
	}
}

// CreateOrderQuery identifies the customer placing an order.
type CreateOrderQuery struct {
	Email string `form:"email" binding:"required,email"`
}

// OrderQuery selects orders for GET and DELETE. GET accepts an empty query
// (all orders); DELETE needs both fields, checked by the use case.
type OrderQuery struct {
	Email   string `form:"email" binding:"omitempty,email"`
	OrderID string `form:"orderId"`
}
