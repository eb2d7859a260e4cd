package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Enlistment API",
        "description": "Course-enlistment backend: eligibility resolution, selection cart and one-time finalization",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Student session tokens"},
        {"name": "Students", "description": "Profile and study plan"},
        {"name": "Subjects", "description": "Eligible subject catalog"},
        {"name": "Cart", "description": "Pre-finalization selection cart"},
        {"name": "Enlistments", "description": "One-time finalization and SER export"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a student",
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/me": {
            "get": {
                "tags": ["Students"],
                "summary": "Current student profile with enlistment status",
                "responses": {
                    "200": {"description": "Profile", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/me/study-plan": {
            "get": {
                "tags": ["Students"],
                "summary": "Finalized enlistment with subject schedule",
                "responses": {
                    "200": {"description": "Study plan", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/subjects/eligible": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Subjects the student may enlist in this semester",
                "responses": {
                    "200": {"description": "Eligible subjects", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/subjects/{code}": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Subject details with requisites and sections",
                "responses": {
                    "200": {"description": "Details", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown subject", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cart": {
            "get": {
                "tags": ["Cart"],
                "summary": "Current selection cart",
                "responses": {
                    "200": {"description": "Cart", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Cart"],
                "summary": "Empty the cart",
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/api/v1/cart/items": {
            "post": {
                "tags": ["Cart"],
                "summary": "Add a subject/section pair to the cart",
                "responses": {
                    "200": {"description": "Updated cart", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid selection", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/enlistments": {
            "post": {
                "tags": ["Enlistments"],
                "summary": "Finalize the one-time enlistment",
                "responses": {
                    "201": {"description": "Enlistment record", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already enlisted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/enlistments/current": {
            "get": {
                "tags": ["Enlistments"],
                "summary": "The student's finalized enlistment",
                "responses": {
                    "200": {"description": "Enlistment record", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Not enlisted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/enlistments/current/ser": {
            "get": {
                "tags": ["Enlistments"],
                "summary": "Printable Student Enlistment Record",
                "responses": {
                    "200": {"description": "SER document"},
                    "409": {"description": "Not enlisted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
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
