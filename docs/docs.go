// Package docs holds the OpenAPI document served under /swagger.
// Keep it in step with the handler annotations; `swag init -g cmd/api/main.go`
// rebuilds it from them.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products or look one up by code",
                "parameters": [
                    {"type": "string", "description": "Product code", "name": "code", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/response.ProductResponse"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [
                    {"type": "string", "description": "Actor of the change", "name": "X-Actor-Email", "in": "header"},
                    {"description": "Product", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.ProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Update a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Actor of the change", "name": "X-Actor-Email", "in": "header"},
                    {"description": "Product", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.ProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Actor of the change", "name": "X-Actor-Email", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders, list a customer's orders, or get one order",
                "parameters": [
                    {"type": "string", "description": "Customer email", "name": "email", "in": "query"},
                    {"type": "string", "description": "Order ID", "name": "orderId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/response.OrderResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order",
                "parameters": [
                    {"type": "string", "description": "Customer email", "name": "email", "in": "query", "required": true},
                    {"description": "Order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.OrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Cancel an order",
                "parameters": [
                    {"type": "string", "description": "Customer email", "name": "email", "in": "query", "required": true},
                    {"type": "string", "description": "Order ID", "name": "orderId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "pkg.HTTPError": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/pkg.HTTPErrorBody"}
            }
        },
        "pkg.HTTPErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "request.ProductRequest": {
            "type": "object",
            "required": ["name", "price"],
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "model": {"type": "string"},
                "url": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "request.ShippingRequest": {
            "type": "object",
            "required": ["type", "carrier"],
            "properties": {
                "type": {"type": "string", "enum": ["URGENT", "ECONOMIC"]},
                "carrier": {"type": "string", "enum": ["CORREIOS", "FEDEX"]}
            }
        },
        "request.OrderRequest": {
            "type": "object",
            "required": ["product_codes", "payment", "shipping"],
            "properties": {
                "product_codes": {"type": "array", "items": {"type": "string"}},
                "payment": {"type": "string", "enum": ["CASH", "DEBIT_CARD", "CREDIT_CARD"]},
                "shipping": {"$ref": "#/definitions/request.ShippingRequest"}
            }
        },
        "response.ProductResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "model": {"type": "string"},
                "url": {"type": "string"},
                "price": {"type": "string"}
            }
        },
        "response.OrderResponse": {
            "type": "object",
            "properties": {
                "order_id": {"type": "string"},
                "customer_email": {"type": "string"},
                "created_at": {"type": "string"},
                "products": {"type": "array", "items": {"type": "object"}},
                "billing": {"type": "object"},
                "shipping": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "E-commerce API",
	Description:      "Product catalog and order placement backed by DynamoDB.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
