// Package docs is generated by swaggo/swag from the controller annotations.
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
        "/admin/login": {
            "post": {
                "description": "Checks the back-office credentials and sets the HttpOnly admin_auth session cookie.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin log in",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.SuccessResponse"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/admin/logout": {
            "post": {
                "description": "Clears the admin_auth session cookie.",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.SuccessResponse"}}
                }
            }
        },
        "/contact": {
            "post": {
                "description": "Forwards the message to the operations mailbox with reply-to set to the sender.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Send a contact message",
                "parameters": [
                    {"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ContactRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.SuccessResponse"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "429": {"description": "code: rate_limited", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/demo-requests": {
            "get": {
                "security": [{"AdminKey": []}],
                "description": "One page of ten requests, newest first. search matches name or email case-insensitively; an unknown status is ignored.",
                "produces": ["application/json"],
                "tags": ["demo-requests"],
                "summary": "List demo requests",
                "parameters": [
                    {"type": "integer", "description": "Page (1-based)", "name": "page", "in": "query"},
                    {"type": "string", "description": "Substring of name or email", "name": "search", "in": "query"},
                    {"type": "string", "description": "new, contacted or responded", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DemoRequestPage"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Public form. Validates the input, verifies the captcha in production, rejects a second request from the same email within 24 hours, stores the request, then notifies operations and syncs the sheet in the background.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["demo-requests"],
                "summary": "Request a demo",
                "parameters": [
                    {"description": "Demo request", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SubmitDemoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/helpers.SuccessResponse"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "403": {"description": "code: captcha_failed", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "429": {"description": "code: rate_limited", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/demo-requests/bulk-delete": {
            "post": {
                "security": [{"AdminKey": []}],
                "description": "Ids that no longer exist are skipped.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["demo-requests"],
                "summary": "Delete several demo requests",
                "parameters": [
                    {"description": "Ids to delete", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.BulkDeleteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.SuccessResponse"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/demo-requests/export": {
            "get": {
                "security": [{"AdminKey": []}],
                "description": "All requests, newest first. Accepts the admin key as the X-Admin-Key header or the key query parameter.",
                "produces": ["text/csv"],
                "tags": ["demo-requests"],
                "summary": "Export demo requests as CSV",
                "parameters": [
                    {"type": "string", "description": "Admin key", "name": "key", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "demo_requests.csv", "schema": {"type": "file"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/demo-requests/stats": {
            "get": {
                "security": [{"AdminKey": []}],
                "description": "One row per UTC day with at least one request, oldest first.",
                "produces": ["application/json"],
                "tags": ["demo-requests"],
                "summary": "Demo requests per day",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.DailyCount"}}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/demo-requests/{id}": {
            "delete": {
                "security": [{"AdminKey": []}],
                "produces": ["application/json"],
                "tags": ["demo-requests"],
                "summary": "Delete a demo request",
                "parameters": [
                    {"type": "string", "description": "Demo request ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.SuccessResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"AdminKey": []}],
                "description": "Set the follow-up status and/or the internal notes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["demo-requests"],
                "summary": "Update a demo request",
                "parameters": [
                    {"type": "string", "description": "Demo request ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateDemoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.DemoRequest"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and store check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.HealthResponse"}},
                    "503": {"description": "code: unavailable", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/news": {
            "get": {
                "description": "Public feed, newest first.",
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "List news",
                "parameters": [
                    {"type": "integer", "description": "Page (1-based)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (default 5, max 50)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "update, research, release, announcement or all", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.NewsPage"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"AdminKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Create a news post",
                "parameters": [
                    {"description": "News post", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.NewsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.NewsItem"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/news/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Get a news post",
                "parameters": [
                    {"type": "string", "description": "News ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.NewsItem"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"AdminKey": []}],
                "description": "Title and content are required; an omitted date keeps the stored one.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Replace a news post",
                "parameters": [
                    {"type": "string", "description": "News ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "News post", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.NewsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.NewsItem"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"AdminKey": []}],
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Delete a news post",
                "parameters": [
                    {"type": "string", "description": "News ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.SuccessResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/timeline": {
            "get": {
                "description": "All milestones by date, then display order.",
                "produces": ["application/json"],
                "tags": ["timeline"],
                "summary": "List timeline milestones",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.TimelineItem"}}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"AdminKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["timeline"],
                "summary": "Create a timeline milestone",
                "parameters": [
                    {"description": "Milestone", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.TimelineRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.TimelineItem"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/timeline/{id}": {
            "put": {
                "security": [{"AdminKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["timeline"],
                "summary": "Replace a timeline milestone",
                "parameters": [
                    {"type": "string", "description": "Milestone ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Milestone", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.TimelineRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TimelineItem"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"AdminKey": []}],
                "produces": ["application/json"],
                "tags": ["timeline"],
                "summary": "Delete a timeline milestone",
                "parameters": [
                    {"type": "string", "description": "Milestone ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.SuccessResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "code: internal_error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.BulkDeleteRequest": {
            "type": "object",
            "properties": {"ids": {"type": "array", "items": {"type": "string"}}}
        },
        "controllers.ContactRequest": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "userEmail": {"type": "string"}}
        },
        "controllers.HealthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "controllers.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.NewsRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "content": {"type": "string"},
                "date": {"type": "string"},
                "slug": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "controllers.SubmitDemoRequest": {
            "type": "object",
            "properties": {
                "captchaToken": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "purpose": {"type": "string"}
            }
        },
        "controllers.TimelineRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "description": {"type": "string"},
                "order": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "controllers.UpdateDemoRequest": {
            "type": "object",
            "properties": {"notes": {"type": "string"}, "status": {"type": "string"}}
        },
        "domain.DailyCount": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "day": {"type": "string"}}
        },
        "domain.DemoRequest": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "ip": {"type": "string"},
                "name": {"type": "string"},
                "notes": {"type": "string"},
                "purpose": {"type": "string"},
                "status": {"type": "string", "enum": ["new", "contacted", "responded"]}
            }
        },
        "domain.DemoRequestPage": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.DemoRequest"}},
                "pages": {"type": "integer"}
            }
        },
        "domain.NewsItem": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "enum": ["update", "research", "release", "announcement"]},
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "date": {"type": "string"},
                "id": {"type": "string"},
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.NewsPage": {
            "type": "object",
            "properties": {
                "news": {"type": "array", "items": {"$ref": "#/definitions/domain.NewsItem"}},
                "page": {"type": "integer"},
                "pages": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "domain.TimelineItem": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "order": {"type": "integer"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "helpers.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "error": {"type": "string"}}
        },
        "helpers.SuccessResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        }
    },
    "securityDefinitions": {
        "AdminKey": {
            "type": "apiKey",
            "name": "X-Admin-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NeuroBiomark API",
	Description:      "Demo requests, news, timeline and the admin back office.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
