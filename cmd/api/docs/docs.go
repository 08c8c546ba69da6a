// Package docs registers the OpenAPI description of the quiz API with swag.
// It follows the layout `swag init -g cmd/api/main.go` produces, so it can be
// regenerated from the handler annotations.
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
        "/check-quiz/{quizId}": {
            "post": {
                "description": "Compares the submitted choices with the stored answer for one question and reveals the answer.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Check an answer",
                "parameters": [
                    {"type": "string", "description": "Quiz ID", "name": "quizId", "in": "path", "required": true},
                    {"description": "Submitted choices", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CheckQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CheckQuizResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.CheckQuizErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.CheckQuizErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.CheckQuizErrorResponse"}}
                }
            }
        },
        "/get-quizzes": {
            "get": {
                "description": "Generates multiple choice questions per topic. Answers are kept server side under the returned quizId.",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Generate a quiz batch",
                "parameters": [
                    {"type": "integer", "default": 5, "description": "Number of HTML questions", "name": "totalHtml", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Number of Javascript questions", "name": "totalJs", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Number of CSS questions", "name": "totalCss", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizzesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Question": {
            "type": "object",
            "properties": {
                "question": {"type": "string"},
                "choices": {"type": "array", "items": {"type": "string"}},
                "level": {"type": "string", "enum": ["Beginner", "Elementary", "Intermediate", "Above Intermediate", "Advanced", "Proficient"]},
                "type": {"type": "string"}
            }
        },
        "domain.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "value": {}
            }
        },
        "dto.CheckQuizErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "dto.CheckQuizRequest": {
            "type": "object",
            "properties": {
                "choices": {"type": "array", "items": {"type": "integer"}},
                "index": {"type": "integer"}
            }
        },
        "dto.CheckQuizResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "answer": {"$ref": "#/definitions/dto.RevealedAnswer"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "cache": {"type": "string"}
            }
        },
        "dto.QuizzesData": {
            "type": "object",
            "properties": {
                "questions": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}},
                "quizId": {"type": "string"}
            }
        },
        "dto.QuizzesResponse": {
            "description": "Generated quiz batch without answers",
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/dto.QuizzesData"}
            }
        },
        "dto.RevealedAnswer": {
            "type": "object",
            "properties": {
                "correct": {"type": "array", "items": {"type": "integer"}},
                "explanation": {"type": "string"},
                "choices": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.ValidationError"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Quiz API",
	Description:      "Generates HTML, CSS and Javascript multiple choice quizzes and checks answers against server-held keys.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
