package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Alanjal Marks API",
        "description": "Admin dashboard backend for student assessment marks",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Marks", "description": "Derived mark totals and bulk clear"},
        {"name": "Sessions", "description": "Staged bulk-edit sessions"},
        {"name": "Rewards", "description": "Shared student reward flags"},
        {"name": "Preferences", "description": "Per-user week/class selection"},
        {"name": "Roster", "description": "Classes and teaching weeks"},
        {"name": "Settings", "description": "Scoring-external toggles"}
    ],
    "paths": {
        "/marks": {
            "get": {
                "tags": ["Marks"],
                "summary": "List students with derived totals and performance levels",
                "parameters": [
                    {"name": "phase", "in": "query", "type": "integer"},
                    {"name": "domain", "in": "query", "type": "string"},
                    {"name": "week_id", "in": "query", "type": "string"},
                    {"name": "class_id", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "performance", "in": "query", "type": "string"},
                    {"name": "min_score", "in": "query", "type": "number"},
                    {"name": "max_score", "in": "query", "type": "number"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/marks/clear": {
            "post": {
                "tags": ["Marks"],
                "summary": "Clear one surface's scores for a class in a week",
                "parameters": [
                    {"name": "phase", "in": "query", "type": "integer"},
                    {"name": "domain", "in": "query", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClearScoresRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Open a bulk-edit session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BeginSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/stage": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Stage one cell edit",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Session expired"}
                }
            }
        },
        "/sessions/{id}/fill": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Fill one column for many students",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FillRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/preview": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Preview derived totals with staged edits applied",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/commit": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Submit staged edits in one bulk save",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Server of record rejected the save"},
                    "504": {"description": "Server of record timed out"}
                }
            }
        },
        "/sessions/{id}": {
            "delete": {
                "tags": ["Sessions"],
                "summary": "Discard a session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/rewards": {
            "get": {
                "tags": ["Rewards"],
                "summary": "Read the full reward map",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rewards/sets": {
            "get": {
                "tags": ["Rewards"],
                "summary": "Read per-flag student id sets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rewards/{studentId}": {
            "get": {
                "tags": ["Rewards"],
                "summary": "Read one student's reward flags",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Rewards"],
                "summary": "Overwrite one student's reward flags",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetRewardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rewards/{studentId}/toggle": {
            "post": {
                "tags": ["Rewards"],
                "summary": "Toggle one reward flag for a student",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleRewardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/preferences": {
            "get": {
                "tags": ["Preferences"],
                "summary": "Read the saved week/class selection",
                "parameters": [
                    {"name": "semester", "in": "query", "type": "integer"},
                    {"name": "quarter", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Preferences"],
                "summary": "Save the week/class selection",
                "parameters": [
                    {"name": "semester", "in": "query", "type": "integer"},
                    {"name": "quarter", "in": "query", "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetPreferenceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Roster"],
                "summary": "List classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/weeks": {
            "get": {
                "tags": ["Roster"],
                "summary": "List teaching weeks for a semester",
                "parameters": [
                    {"name": "semester", "in": "query", "type": "integer"},
                    {"name": "quarter", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Read current settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ClearScoresRequest": {
            "type": "object",
            "required": ["week_id", "class_id"],
            "properties": {
                "week_id": {"type": "string"},
                "class_id": {"type": "string"}
            }
        },
        "BeginSessionRequest": {
            "type": "object",
            "required": ["phase", "domain"],
            "properties": {
                "phase": {"type": "integer"},
                "domain": {"type": "string"},
                "week_id": {"type": "string"},
                "seed": {"type": "boolean"}
            }
        },
        "StageRequest": {
            "type": "object",
            "required": ["student_id", "field"],
            "properties": {
                "student_id": {"type": "string"},
                "field": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "FillRequest": {
            "type": "object",
            "required": ["field", "value", "student_ids"],
            "properties": {
                "field": {"type": "string"},
                "value": {"type": "string"},
                "student_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "SetRewardRequest": {
            "type": "object",
            "properties": {
                "badge": {"type": "boolean"},
                "certificate": {"type": "boolean"},
                "comment": {"type": "boolean"}
            }
        },
        "ToggleRewardRequest": {
            "type": "object",
            "required": ["flag"],
            "properties": {
                "flag": {"type": "string", "enum": ["badge", "certificate", "comment"]}
            }
        },
        "SetPreferenceRequest": {
            "type": "object",
            "properties": {
                "week_id": {"type": "string"},
                "class_id": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "warnings": {"type": "array", "items": {"type": "string"}},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
