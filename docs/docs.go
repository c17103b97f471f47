// Package docs registers the Swagger specification served at /swagger/* in development.
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
    "paths": {
        "/api/user/signup": {
            "post": {
                "tags": ["user"],
                "summary": "Sign up",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/user/login": {
            "post": {
                "tags": ["user"],
                "summary": "Log in",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/user/logout": {
            "post": {
                "tags": ["user"],
                "summary": "Log out",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/user/me": {
            "get": {
                "tags": ["user"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/recipe/by-ingredients": {
            "post": {
                "tags": ["recipe"],
                "summary": "Search by ingredients",
                "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/api/recipe/by-name": {
            "post": {
                "tags": ["recipe"],
                "summary": "Search by name",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/recipe/save": {
            "post": {
                "tags": ["recipe"],
                "summary": "Save a recipe",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/recipe/saved": {
            "get": {
                "tags": ["recipe"],
                "summary": "List saved recipes",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/recipe/update/{id}": {
            "put": {
                "tags": ["recipe"],
                "summary": "Update a saved recipe",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/recipe/delete/{id}": {
            "delete": {
                "tags": ["recipe"],
                "summary": "Delete a saved recipe",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Forkful Recipe API",
	Description:      "Recipe discovery backend: session auth, ingredient and name search, saved recipes with ratings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
