// Package docs is the swag registration for the front server's HTTP surface.
// Regenerate with: swag init -g cmd/main.go
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
        "/articles": {
            "get": {
                "description": "Serves the single HTML page for every client route. The page opens /ws?path=<current path>.",
                "produces": ["text/html"],
                "tags": ["pages"],
                "summary": "App shell",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "string"}
                        }
                    }
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Upgrades to a WebSocket bound to one browser tab. Inbound {\"type\",\"data\"} messages drive the tab; outbound frames are {\"type\":\"view\"|\"redirect\"|\"error\"}.",
                "tags": ["pages"],
                "summary": "Tab channel",
                "parameters": [
                    {
                        "type": "string",
                        "example": "/articles",
                        "description": "Client path the tab starts on",
                        "name": "path",
                        "in": "query"
                    }
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Travel Journal",
	Description:      "Front server for the travel article site: app shell, per-tab live channel, health and metrics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
