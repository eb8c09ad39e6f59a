package entities

import "github.com/shopspring/decimal"

// Product is a catalog item persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (code-index): code
//
// ID and Code never change after creation. Name, Model, URL and Price are
// replaced as a whole by an update.
type Product struct {
	ID    string          `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Model string          `json:"model"`
	URL   string          `json:"url"`
	Price decimal.Decimal `json:"price"`
}
