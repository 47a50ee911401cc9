// Package docs holds the swagger document served at /swagger.
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
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in and obtain a JWT",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/diagnostics/{id}/questions": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["diagnostics"],
                "summary": "Student view of a diagnostic battery",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/diagnostics/{id}/start": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["diagnostics"],
                "summary": "Start a diagnostic session",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/diagnostics/{id}/result": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["diagnostics"],
                "summary": "Latest persisted diagnostic result",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/diagnostics/sessions/{sessionId}/answer": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diagnostics"],
                "summary": "Select an answer for a question",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/diagnostics/sessions/{sessionId}/skip": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diagnostics"],
                "summary": "Skip the current question",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/diagnostics/sessions/{sessionId}/next": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["diagnostics"],
                "summary": "Advance to the next question",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/diagnostics/sessions/{sessionId}/finalize": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["diagnostics"],
                "summary": "Finalize the session and compute results",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/progress/completions": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Record a completion fact",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/modules/{id}/progress": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Module progress percentage",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/courses": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List published courses",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/courses/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Course detail with modules and lessons",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/courses/{id}/progress": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Course progress with next-lesson pointer",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/courses/{id}/next-lesson": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Next lesson to study in a course",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/teacher/diagnostics": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["diagnostics-authoring"],
                "summary": "List diagnostics",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diagnostics-authoring"],
                "summary": "Create a diagnostic",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/teacher/diagnostics/{id}/publish": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["diagnostics-authoring"],
                "summary": "Publish a diagnostic",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/teacher/diagnostics/{id}/questions": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["diagnostics-authoring"],
                "summary": "List questions with answer keys",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diagnostics-authoring"],
                "summary": "Add a question to a diagnostic",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/teacher/diagnostics/questions/{questionId}": {
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["diagnostics-authoring"],
                "summary": "Delete a question",
                "parameters": [{"type": "integer", "name": "questionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/teacher/courses": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog-authoring"],
                "summary": "Create a course",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/teacher/modules": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog-authoring"],
                "summary": "Create a module",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/teacher/lessons": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog-authoring"],
                "summary": "Create a lesson",
                "responses": {"201": {"description": "Created"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Tutoria API",
	Description:      "Backend for the Tutoria PK-12 tutoring platform: diagnostic assessments and course progress.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
