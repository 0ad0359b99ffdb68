// Package docs registers the Swagger spec for the HTTP API.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/leaderboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["leaderboard"],
                "summary": "Get the collection leaderboard",
                "parameters": [
                    {"type": "boolean", "name": "listings", "in": "query", "description": "Attach active listings to each record"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object"}}
                }
            }
        },
        "/api/collections/{slug}/chart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["collections"],
                "summary": "Get chart data for a collection",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "path", "required": true},
                    {"type": "string", "name": "mode", "in": "query", "description": "Shaping mode (stride, daily, raw)"},
                    {"type": "string", "name": "window", "in": "query", "description": "Time window (day, week, month, all)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object"}}
                }
            }
        },
        "/api/collections/{slug}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["collections"],
                "summary": "Get summary stats for a collection",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"type": "object"}}
                }
            }
        },
        "/api/collections/{slug}/listed": {
            "get": {
                "produces": ["application/json"],
                "tags": ["collections"],
                "summary": "Get active listings for a collection",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object"}}
                }
            }
        },
        "/api/collections/{slug}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["collections"],
                "summary": "Get archived history for a collection",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object"}}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Floorboard API",
	Description:      "NFT collection analytics: leaderboard, floor charts, and listings for Sei collections.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
