package request

import (
	"strings"

	"ecommerce_api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ProductRequest is the body of product create and update calls. Code is
// only read on create; a product never changes its code.
type ProductRequest struct {
	Code  string           `json:"code"`
	Name  string           `json:"name" binding:"required"`
	Model string           `json:"model"`
	URL   string           `json:"url" binding:"omitempty,url"`
	Price *decimal.Decimal `json:"price" binding:"required"`
}

func (r ProductRequest) ToEntity() entities.Product {
	p := entities.Product{
		Code:  strings.TrimSpace(r.Code),
		Name:  strings.TrimSpace(r.Name),
		Model: strings.TrimSpace(r.Model),
		URL:   strings.TrimSpace(r.URL),
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	return p
}
