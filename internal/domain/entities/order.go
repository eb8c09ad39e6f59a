package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "CASH"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodDebitCard, PaymentMethodCreditCard:
		return true
	}
	return false
}

type ShippingType string

const (
	ShippingTypeUrgent   ShippingType = "URGENT"
	ShippingTypeEconomic ShippingType = "ECONOMIC"
)

type Carrier string

const (
	CarrierCorreios Carrier = "CORREIOS"
	CarrierFedex    Carrier = "FEDEX"
)

// OrderedProduct is the frozen copy of a product taken when the order was
// created. It is never refreshed from the catalog.
type OrderedProduct struct {
	Code  string          `json:"code"`
	Price decimal.Decimal `json:"price"`
}

type Billing struct {
	PaymentMethod PaymentMethod   `json:"payment"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

type Shipping struct {
	Type    ShippingType `json:"type"`
	Carrier Carrier      `json:"carrier"`
}

func (s Shipping) Valid() bool {
	switch s.Type {
	case ShippingTypeUrgent, ShippingTypeEconomic:
	default:
		return false
	}
	switch s.Carrier {
	case CarrierCorreios, CarrierFedex:
		return true
	}
	return false
}

// Order is an immutable billing record.
//
// Storage model (DynamoDB):
//   - PK: pk (customer email)
//   - SK: sk (order id)
//
// Billing.TotalPrice is the exact sum of Products[i].Price at creation time.
type Order struct {
	CustomerEmail string           `json:"customer_email"`
	ID            string           `json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	Products      []OrderedProduct `json:"products"`
	Billing       Billing          `json:"billing"`
	Shipping      Shipping         `json:"shipping"`
}

// SnapshotProducts copies code and price of every product, keeping the input
// order, and returns the copies with their exact sum.
func SnapshotProducts(products []Product) ([]OrderedProduct, decimal.Decimal) {
	snapshots := make([]OrderedProduct, 0, len(products))
	total := decimal.Zero
	for _, p := range products {
		snapshots = append(snapshots, OrderedProduct{Code: p.Code, Price: p.Price})
		total = total.Add(p.Price)
	}
	return snapshots, total
}
