// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with `swag init -g cmd/server/main.go -o internal/docs`.
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
        "/import": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["import-export"],
                "summary": "Import workbook",
                "parameters": [
                    {"type": "file", "description": "Workbook (.xlsx)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ImportResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ImportResult"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ImportResult"}}
                }
            }
        },
        "/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["import-export"],
                "summary": "Export workbook",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/categories": {
            "get": {"produces": ["application/json"], "tags": ["portfolio"], "summary": "List categories", "responses": {"200": {"description": "OK"}}}
        },
        "/assets": {
            "get": {"produces": ["application/json"], "tags": ["portfolio"], "summary": "List assets", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["portfolio"], "summary": "Create asset", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/assets/{id}": {
            "delete": {
                "tags": ["portfolio"],
                "summary": "Delete asset",
                "parameters": [{"type": "integer", "description": "Asset ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/snapshots": {
            "get": {"produces": ["application/json"], "tags": ["portfolio"], "summary": "List snapshots", "responses": {"200": {"description": "OK"}}}
        },
        "/asset-values": {
            "get": {
                "produces": ["application/json"],
                "tags": ["portfolio"],
                "summary": "List asset values",
                "parameters": [
                    {"type": "integer", "name": "category_id", "in": "query"},
                    {"type": "integer", "name": "snapshot_id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Dashboard overview",
                "parameters": [{"type": "string", "name": "currency", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Portfolio history",
                "parameters": [{"type": "string", "name": "currency", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/price-change": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Price change analysis",
                "parameters": [
                    {"type": "integer", "name": "start", "in": "query", "required": true},
                    {"type": "integer", "name": "end", "in": "query", "required": true},
                    {"type": "string", "name": "currency", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "integer", "name": "top", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/forecast": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Linear forecast",
                "parameters": [{"type": "integer", "name": "periods", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reconciliation": {
            "get": {"produces": ["application/json"], "tags": ["analytics"], "summary": "Summary reconciliation", "responses": {"200": {"description": "OK"}}}
        },
        "/exchange-rates": {
            "get": {"produces": ["application/json"], "tags": ["exchange-rates"], "summary": "Latest rate per currency", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["exchange-rates"], "summary": "Upsert exchange rate", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/exchange-rates/refresh": {
            "post": {"produces": ["application/json"], "tags": ["exchange-rates"], "summary": "Refresh exchange rates", "responses": {"200": {"description": "OK"}}}
        },
        "/exchange-rates/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exchange-rates"],
                "summary": "Exchange rate history",
                "parameters": [
                    {"type": "string", "name": "currency", "in": "query", "required": true},
                    {"type": "string", "name": "start", "in": "query"},
                    {"type": "string", "name": "end", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/cash-flows": {
            "get": {"produces": ["application/json"], "tags": ["cash-flows"], "summary": "List cash flows", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["cash-flows"], "summary": "Create cash flow", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/cash-flows/{id}": {
            "delete": {
                "tags": ["cash-flows"],
                "summary": "Delete cash flow",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "models.ImportResult": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "stats": {"$ref": "#/definitions/models.ImportStats"},
                "success": {"type": "boolean"}
            }
        },
        "models.ImportStats": {
            "type": "object",
            "properties": {
                "assets": {"type": "integer"},
                "categories": {"type": "integer"},
                "snapshots": {"type": "integer"},
                "summaries": {"type": "integer"},
                "values": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Portfolio Tracker API",
	Description:      "Family portfolio tracker: workbook import/export, valuation and analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
