package response

import (
	"ecommerce_api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID    string          `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Model string          `json:"model,omitempty"`
	URL   string          `json:"url,omitempty"`
	Price decimal.Decimal `json:"price"`
}

func FromProduct(p entities.Product) ProductResponse {
	return ProductResponse{
		ID:    p.ID,
		Code:  p.Code,
		Name:  p.Name,
		Model: p.Model,
		URL:   p.URL,
		Price: p.Price,
	}
}

func FromProducts(products []entities.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}
