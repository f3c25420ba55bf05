package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Wasel API",
        "description": "Restaurant availability and ordering backend",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Restaurants", "description": "Restaurant records and schedules"},
        {"name": "Availability", "description": "Derived open/closed status"},
        {"name": "Orders", "description": "Order placement and lifecycle"},
        {"name": "Exports", "description": "Schedule exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/restaurants": {
            "get": {
                "tags": ["Restaurants"],
                "summary": "List restaurants",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "vendor_id", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Restaurants"],
                "summary": "Register a restaurant",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRestaurantRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/restaurants/{id}": {
            "get": {
                "tags": ["Restaurants"],
                "summary": "Fetch a restaurant record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Restaurants"],
                "summary": "Delete a restaurant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/restaurants/{id}/status": {
            "get": {
                "tags": ["Availability"],
                "summary": "Derived availability status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "at", "in": "query", "type": "string", "description": "RFC3339 instant to evaluate at"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/restaurants/{id}/eligibility": {
            "get": {
                "tags": ["Availability"],
                "summary": "Order eligibility decision",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "at", "in": "query", "type": "string", "description": "RFC3339 instant to evaluate at"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/restaurants/{id}/schedule": {
            "put": {
                "tags": ["Restaurants"],
                "summary": "Update availability schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/restaurants/{id}/close": {
            "post": {
                "tags": ["Restaurants"],
                "summary": "Temporarily close a restaurant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/TemporaryCloseRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/restaurants/{id}/reopen": {
            "post": {
                "tags": ["Restaurants"],
                "summary": "Clear a temporary closure",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/restaurants/{id}/orders": {
            "get": {
                "tags": ["Orders"],
                "summary": "List a restaurant's orders",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/orders": {
            "post": {
                "tags": ["Orders"],
                "summary": "Place an order",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlaceOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Restaurant not accepting orders"}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "tags": ["Orders"],
                "summary": "Fetch an order",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/orders/{id}/status": {
            "put": {
                "tags": ["Orders"],
                "summary": "Advance an order along its lifecycle",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateOrderStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Transition not allowed"}
                }
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Enqueue a schedule export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Fetch an export job",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/download/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a completed export",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "Restaurant": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "vendor_id": {"type": "string"},
                "name": {"type": "string"},
                "name_ar": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "is_open": {"type": "boolean"},
                "is_temporarily_closed": {"type": "boolean"},
                "temporary_close_reason": {"type": "string"},
                "opening_time": {"type": "string"},
                "closing_time": {"type": "string"},
                "working_days": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "RestaurantStatus": {
            "type": "object",
            "properties": {
                "restaurant_id": {"type": "string"},
                "is_open": {"type": "boolean"},
                "next_open_time": {"type": "string"},
                "close_time": {"type": "string"},
                "message": {"type": "string"},
                "status_color": {"type": "string", "enum": ["green", "yellow", "red"]},
                "checked_at": {"type": "string"}
            }
        },
        "OrderEligibility": {
            "type": "object",
            "properties": {
                "restaurant_id": {"type": "string"},
                "can_order": {"type": "boolean"},
                "message": {"type": "string"},
                "checked_at": {"type": "string"}
            }
        },
        "Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "restaurant_id": {"type": "string"},
                "customer_id": {"type": "string"},
                "status": {"type": "string"},
                "total": {"type": "number"},
                "note": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateRestaurantRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "name_ar": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "vendor_id": {"type": "string"},
                "opening_time": {"type": "string"},
                "closing_time": {"type": "string"},
                "working_days": {"type": "string"}
            },
            "required": ["name"]
        },
        "UpdateScheduleRequest": {
            "type": "object",
            "properties": {
                "is_open": {"type": "boolean"},
                "opening_time": {"type": "string"},
                "closing_time": {"type": "string"},
                "working_days": {"type": "string"}
            }
        },
        "TemporaryCloseRequest": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"}
            }
        },
        "PlaceOrderRequest": {
            "type": "object",
            "properties": {
                "restaurant_id": {"type": "string"},
                "total": {"type": "number"},
                "note": {"type": "string"}
            },
            "required": ["restaurant_id", "total"]
        },
        "UpdateOrderStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            },
            "required": ["status"]
        },
        "CreateExportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["format"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
