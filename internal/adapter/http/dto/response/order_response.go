package response

import (
	"time"

	"ecommerce_api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type OrderedProductResponse struct {
	Code  string          `json:"code"`
	Price decimal.Decimal `json:"price"`
}

type BillingResponse struct {
	Payment    string          `json:"payment"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type ShippingResponse struct {
	Type    string `json:"type"`
	Carrier string `json:"carrier"`
}

type OrderResponse struct {
	OrderID       string                   `json:"order_id"`
	CustomerEmail string                   `json:"customer_email"`
	CreatedAt     time.Time                `json:"created_at"`
	Products      []OrderedProductResponse `json:"products"`
	Billing       BillingResponse          `json:"billing"`
	Shipping      ShippingResponse         `json:"shipping"`
}

func FromOrder(o entities.Order) OrderResponse {
	products := make([]OrderedProductResponse, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, OrderedProductResponse{Code: p.Code, Price: p.Price})
	}
	return OrderResponse{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
		CreatedAt:     o.CreatedAt,
		Products:      products,
		Billing: BillingResponse{
			Payment:    string(o.Billing.PaymentMethod),
			TotalPrice: o.Billing.TotalPrice,
		},
		Shipping: ShippingResponse{
			Type:    string(o.Shipping.Type),
			Carrier: string(o.Shipping.Carrier),
		},
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
