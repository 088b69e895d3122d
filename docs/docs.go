// Package docs registers the Swagger document served under /v1/swagger.
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
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Degraded", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Get interview session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.SessionView"}}
                }
            }
        },
        "/session/consent": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Record data-collection consent",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.ConsentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.SessionView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/session/candidate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Submit candidate details",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Candidate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.SessionView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/session/question": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Get the question awaiting an answer",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.QuestionView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/session/answers": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Answer the current question",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.AnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.SessionView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/session/evaluation/retry": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Retry a failed evaluation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.SessionView"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/session/clear": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Clear the conversation",
                "parameters": [
                    {"name": "request", "in": "body", "schema": {"$ref": "#/definitions/v1.ClearRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.SessionView"}}
                }
            }
        },
        "/session/settings": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Override provider settings for this session",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.SettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.SessionView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/candidates/form-options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["candidates"],
                "summary": "Candidate form choices",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.FormOptions"}}
                }
            }
        },
        "/candidates/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "text/csv"],
                "tags": ["candidates"],
                "summary": "Export the anonymized candidate log",
                "parameters": [
                    {"type": "string", "description": "xlsx (default) or csv", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {},
                "request_id": {"type": "string"}
            }
        },
        "v1.ConsentRequest": {
            "type": "object",
            "required": ["accepted"],
            "properties": {"accepted": {"type": "boolean"}}
        },
        "v1.AnswerRequest": {
            "type": "object",
            "properties": {"answer": {"type": "string"}}
        },
        "v1.ClearRequest": {
            "type": "object",
            "properties": {"retain_consent": {"type": "boolean"}}
        },
        "v1.SettingsRequest": {
            "type": "object",
            "properties": {
                "provider": {"type": "string", "enum": ["groq", "openai", "gemini"]},
                "model": {"type": "string"},
                "api_key": {"type": "string"}
            }
        },
        "v1.QuestionView": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "total": {"type": "integer"},
                "question": {"type": "string"}
            }
        },
        "v1.SessionView": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["awaiting_consent", "awaiting_form", "asking_questions", "evaluating", "done", "declined"]},
                "consent": {"type": "boolean"},
                "candidate": {"$ref": "#/definitions/domain.Candidate"},
                "total_questions": {"type": "integer"},
                "current_question": {"$ref": "#/definitions/v1.QuestionView"},
                "answers": {"type": "array", "items": {"$ref": "#/definitions/v1.AnswerView"}},
                "result": {"$ref": "#/definitions/domain.EvaluationResult"},
                "last_error": {"type": "string"},
                "settings": {
                    "type": "object",
                    "properties": {
                        "provider": {"type": "string"},
                        "model": {"type": "string"},
                        "custom_api_key": {"type": "boolean"}
                    }
                },
                "llm_configured": {"type": "boolean"},
                "updated_at": {"type": "string"}
            }
        },
        "v1.AnswerView": {
            "type": "object",
            "properties": {"q": {"type": "string"}, "a": {"type": "string"}}
        },
        "domain.EvaluationResult": {
            "type": "object",
            "properties": {
                "results": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "question": {"type": "string"},
                            "score": {"type": "integer"},
                            "feedback": {"type": "string"}
                        }
                    }
                },
                "final_average_score": {"type": "number"}
            }
        },
        "domain.Candidate": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "years_exp": {"type": "integer", "minimum": 0, "maximum": 80},
                "desired_positions": {"type": "array", "items": {"type": "string"}},
                "location": {"type": "string"},
                "tech_stack": {"type": "array", "items": {"type": "string"}},
                "linkedin": {"type": "string"},
                "github": {"type": "string"},
                "preferred_location": {"type": "string"},
                "fresher": {
                    "type": "object",
                    "properties": {
                        "degree": {"type": "string"},
                        "domain": {"type": "string"},
                        "cgpa": {"type": "string"},
                        "marks_12th": {"type": "string"},
                        "marks_10th": {"type": "string"}
                    }
                },
                "experience": {
                    "type": "object",
                    "properties": {
                        "last_company": {"type": "string"},
                        "years_in_company": {"type": "integer", "minimum": 0, "maximum": 50},
                        "position_in_company": {"type": "string"}
                    }
                }
            }
        },
        "domain.FormOptions": {
            "type": "object",
            "properties": {
                "job_roles": {"type": "array", "items": {"type": "string"}},
                "common_skills": {"type": "array", "items": {"type": "string"}},
                "max_years_exp": {"type": "integer"},
                "max_years_in_company": {"type": "integer"}
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
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Hiring Assistant API",
	Description:      "Screening chatbot that collects candidate details, asks generated technical questions and scores the answers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
