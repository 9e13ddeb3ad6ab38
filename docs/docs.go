// Package docs содержит описание API для swagger UI
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
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/api/v1/service-logs": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["service-logs"],
                "summary": "Submit a service status report",
                "parameters": [
                    {
                        "description": "Service status report",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.SubmitServiceLogRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/v1/service-logs/heatmap": {
            "get": {
                "produces": ["application/json"],
                "tags": ["service-logs"],
                "summary": "Neighborhood heatmap for a day",
                "parameters": [
                    {"type": "string", "description": "electricity or water", "name": "service_type", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "GeoJSON FeatureCollection"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/network/assets": {
            "get": {
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "tags": ["network"],
                "summary": "List network nodes and lines",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/network/layers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["network"],
                "summary": "Display layer as GeoJSON",
                "responses": {"200": {"description": "GeoJSON FeatureCollection"}}
            }
        },
        "/api/v1/network/nodes": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["network"],
                "summary": "Create network node",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/v1/network/nodes/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["network"],
                "summary": "Update network node",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["network"],
                "summary": "Delete network node",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/network/lines": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["network"],
                "summary": "Create network line",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/v1/network/lines/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["network"],
                "summary": "Update network line",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["network"],
                "summary": "Delete network line",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/zones": {
            "get": {
                "tags": ["zones"],
                "summary": "List neighborhood zones",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["zones"],
                "summary": "Create neighborhood zone",
                "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/v1/zones/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["zones"],
                "summary": "Update neighborhood zone",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["zones"],
                "summary": "Delete neighborhood zone",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/problem-reports": {
            "get": {
                "tags": ["problem-reports"],
                "summary": "List problem reports",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["problem-reports"],
                "summary": "Report an infrastructure problem",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "definitions": {
        "dto.SubmitServiceLogRequest": {
            "type": "object",
            "required": ["service_type", "status", "neighborhood"],
            "properties": {
                "service_type": {"type": "string", "enum": ["electricity", "water"]},
                "status": {"type": "string", "enum": ["available", "cut_off"]},
                "neighborhood": {"type": "string"},
                "log_date": {"type": "string", "example": "2025-03-10"},
                "quality": {"type": "string"},
                "notes": {"type": "string"},
                "arrival_time": {"type": "string"},
                "departure_time": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Infrastructure Status Service API",
	Description:      "Сервис статуса коммунальных услуг и инженерных сетей города.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
