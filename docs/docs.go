// Package docs holds the OpenAPI description served at /swagger. It follows
// the layout produced by swag init and is kept in sync with the godoc
// annotations in internal/handler/api_handler.go.
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
        "/characters": {
            "get": {
                "description": "Returns the caller's characters with the same filters, sorting and paging as the character list page.",
                "produces": ["application/json"],
                "tags": ["characters"],
                "summary": "List my characters",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive substring of the name", "name": "search", "in": "query"},
                    {"type": "string", "description": "Case-insensitive substring of the house name", "name": "house", "in": "query"},
                    {"type": "string", "description": "Case-insensitive substring of the role name", "name": "role", "in": "query"},
                    {"type": "string", "description": "Case-insensitive substring of the strength name", "name": "strength", "in": "query"},
                    {"type": "integer", "description": "Minimum age, inclusive", "name": "age_more_than", "in": "query"},
                    {"type": "integer", "description": "Maximum age, inclusive", "name": "age_less_than", "in": "query"},
                    {
                        "enum": ["name", "age", "death", "nickname", "animal", "symbol", "created_at", "updated_at"],
                        "type": "string",
                        "description": "Sort column",
                        "name": "sort_column",
                        "in": "query"
                    },
                    {"enum": ["asc", "desc"], "type": "string", "description": "Sort direction", "name": "sort_order", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PaginatedCharacterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/taxonomies/{kind}": {
            "get": {
                "description": "Returns every house, role or strength ordered by name.",
                "produces": ["application/json"],
                "tags": ["taxonomies"],
                "summary": "List taxonomy options",
                "parameters": [
                    {"enum": ["houses", "roles", "strengths"], "type": "string", "description": "Taxonomy kind", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/character.Option"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "character.Option": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "handler.CharacterResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Harry Potter"},
                "house": {"type": "string", "example": "Gryffindor"},
                "role": {"type": "string", "example": "Student"},
                "strength": {"type": "string", "example": "Bravery"},
                "animal": {"type": "string", "example": "Stag"},
                "symbol": {"type": "string"},
                "nickname": {"type": "string", "example": "The Boy Who Lived"},
                "age": {"type": "integer", "example": 17},
                "death": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "An error message"}
            }
        },
        "handler.PaginatedCharacterResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.CharacterResponse"}},
                "meta": {"$ref": "#/definitions/pagination.Meta"}
            }
        },
        "pagination.Meta": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Character Vault API",
	Description:      "Read access to the logged-in user's characters and the house, role and strength lists.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
