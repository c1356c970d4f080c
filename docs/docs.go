// Package docs holds the OpenAPI description served at /docs. It follows the
// layout swag init emits for the annotations in cmd/api and internal/api/handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Scoracle"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Returns API name, version, status, the exported tables, and available optimizations.",
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "API root info",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns basic health status and timestamp.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        },
        "/health/cache": {
            "get": {
                "description": "Returns response cache statistics, including shared tier hits when Redis is configured.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Cache health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        },
        "/tables/{table}": {
            "get": {
                "description": "Returns the columns and rows of one exported table. Empty cells are null.",
                "produces": ["application/json"],
                "tags": ["tables"],
                "summary": "Exported table",
                "parameters": [
                    {
                        "enum": ["games", "team_stats", "player_stats"],
                        "type": "string",
                        "description": "Table name",
                        "name": "table",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Only rows of this game",
                        "name": "gameId",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handler.TableResponse"}
                    },
                    "304": {
                        "description": "Not modified"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/respond.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/respond.ErrorResponse"}
                    }
                }
            }
        },
        "/games/{gameID}": {
            "get": {
                "description": "Returns one game row with its team and player statistics rows.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Game box score",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Game ID",
                        "name": "gameID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handler.GameResponse"}
                    },
                    "304": {
                        "description": "Not modified"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/respond.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/respond.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.GameResponse": {
            "type": "object",
            "properties": {
                "game": {"type": "object", "additionalProperties": true},
                "players": {
                    "type": "array",
                    "items": {"type": "object", "additionalProperties": true}
                },
                "teams": {
                    "type": "array",
                    "items": {"type": "object", "additionalProperties": true}
                }
            }
        },
        "handler.TableResponse": {
            "type": "object",
            "properties": {
                "columns": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "count": {"type": "integer"},
                "rows": {
                    "type": "array",
                    "items": {"type": "object", "additionalProperties": true}
                },
                "table": {"type": "string"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "detail": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Scoracle Boxscores API",
	Description:      "Serves the exported NBA games, team statistics and player statistics tables as JSON, with ETag revalidation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
