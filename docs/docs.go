// Package docs registers the gstbill OpenAPI document with swag.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/customers": {
            "get": {"tags": ["customers"], "summary": "List customers", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "List of customers"}}},
            "post": {"tags": ["customers"], "summary": "Create a customer", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Customer created"}, "400": {"description": "Validation error"}}}
        },
        "/customers/bulk": {
            "post": {"tags": ["customers"], "summary": "Bulk insert customers", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Customers imported"}}}
        },
        "/customers/import": {
            "post": {"tags": ["customers"], "summary": "Import customers from a file", "consumes": ["multipart/form-data"], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Customers imported"}}}
        },
        "/customers/clear-all": {
            "delete": {"tags": ["customers"], "summary": "Delete all customers", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "All customers deleted"}}}
        },
        "/customers/{id}": {
            "get": {"tags": ["customers"], "summary": "Get customer by ID", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Customer details"}, "404": {"description": "Customer not found"}}},
            "put": {"tags": ["customers"], "summary": "Update a customer", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Customer updated"}}},
            "delete": {"tags": ["customers"], "summary": "Delete a customer", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Customer deleted"}, "409": {"description": "Customer has invoices"}}}
        },
        "/hsn": {
            "get": {"tags": ["hsn"], "summary": "List HSN codes", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "HSN codes"}}},
            "post": {"tags": ["hsn"], "summary": "Register an HSN code", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "HSN code created"}, "409": {"description": "HSN code already exists"}}}
        },
        "/hsn/code/{code}": {
            "get": {"tags": ["hsn"], "summary": "Get an HSN code", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "HSN code"}}}
        },
        "/hsn/{id}": {
            "delete": {"tags": ["hsn"], "summary": "Delete an HSN code", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "HSN code deleted"}}}
        },
        "/invoices": {
            "get": {"tags": ["invoices"], "summary": "List invoices", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Invoices"}}},
            "post": {"tags": ["invoices"], "summary": "Create an invoice", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Invoice created"}, "409": {"description": "Invoice number already taken; retryable"}, "502": {"description": "Rate or customer lookup failed"}}}
        },
        "/invoices/preview": {
            "post": {"tags": ["invoices"], "summary": "Preview invoice totals", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Computed totals"}}}
        },
        "/invoices/export": {
            "get": {"tags": ["invoices"], "summary": "Export invoice register", "produces": ["text/csv"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "CSV file"}}}
        },
        "/invoices/next/{series}": {
            "get": {"tags": ["invoices"], "summary": "Next invoice number", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Next number"}}}
        },
        "/invoices/type/{type}": {
            "get": {"tags": ["invoices"], "summary": "List invoices of one type", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Invoices"}}}
        },
        "/invoices/{id}": {
            "get": {"tags": ["invoices"], "summary": "Get invoice by ID", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Invoice with lines and customer"}}},
            "put": {"tags": ["invoices"], "summary": "Update an invoice", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Invoice updated"}}},
            "delete": {"tags": ["invoices"], "summary": "Delete an invoice", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Invoice deleted"}}}
        },
        "/invoices/{id}/print": {
            "get": {"tags": ["invoices"], "summary": "Printable invoice", "produces": ["text/html"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "HTML print view"}}}
        },
        "/invoices/{id}/envelope": {
            "get": {"tags": ["invoices"], "summary": "Printable envelope", "produces": ["text/html"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "HTML envelope"}}}
        },
        "/invoices/{id}/pdf": {
            "get": {"tags": ["invoices"], "summary": "Download invoice PDF", "produces": ["application/pdf"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Invoice PDF"}}}
        },
        "/invoices/{id}/archive": {
            "post": {"tags": ["invoices"], "summary": "Archive invoice PDF", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Archived"}, "503": {"description": "Storage not configured"}}}
        },
        "/invoices/{id}/email": {
            "post": {"tags": ["invoices"], "summary": "Email invoice to customer", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Sent"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "GST Billing API",
	Description:      "Customers, HSN rates and GST invoices with automatic numbering.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
