package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ClassKit Scheduler API",
        "description": "Conflict-aware schedule variant generation, catalog imports, and exports",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedules", "description": "Variant generation, conflict inspection, exports"},
        {"name": "Imports", "description": "Roster CSV and portal HTML catalog imports"},
        {"name": "Catalogs", "description": "Stored course catalog management"},
        {"name": "Metrics", "description": "Runtime counters"}
    ],
    "paths": {
        "/schedules/variants": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Generate ranked schedule variants",
                "description": "Runs the conflict-aware variant search and returns diverse variants ordered best first, with the recommendation explained.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateVariantsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid or empty selection", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Malformed clock time", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "504": {"description": "Generation timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/conflicts": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Inspect pairwise conflicts across a course selection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConflictReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/export": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Export a chosen schedule as CSV or PDF",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportScheduleRequest"}}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "Document attachment"}
                }
            }
        },
        "/imports/roster": {
            "post": {
                "tags": ["Imports"],
                "summary": "Import a roster CSV export as a course catalog",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "name", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/imports/portal": {
            "post": {
                "tags": ["Imports"],
                "summary": "Import an offered-courses portal page as a course catalog",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "name", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Malformed upload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalogs": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "List stored catalogs",
                "parameters": [
                    {"name": "source", "in": "query", "type": "string", "enum": ["roster", "portal", "manual"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalogs"],
                "summary": "Store a manually assembled course catalog",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCatalogRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalogs/{id}": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "Fetch a catalog with its candidate sets",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Catalogs"],
                "summary": "Rename a catalog or replace its candidate sets",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCatalogRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Catalogs"],
                "summary": "Delete a stored catalog",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/metrics/snapshot": {
            "get": {
                "tags": ["Metrics"],
                "summary": "Aggregated runtime counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SystemMetrics"}}
                }
            }
        }
    },
    "definitions": {
        "TimeSlot": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "timeStart": {"type": "string"},
                "timeEnd": {"type": "string"},
                "type": {"type": "string", "enum": ["Theory", "Lab"]},
                "room": {"type": "string"}
            },
            "required": ["day", "timeStart", "timeEnd"]
        },
        "Section": {
            "type": "object",
            "properties": {
                "sectionId": {"type": "string"},
                "courseTitle": {"type": "string"},
                "status": {"type": "string"},
                "enrolledCount": {"type": "integer"},
                "capacity": {"type": "integer"},
                "slots": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/TimeSlot"}
                }
            },
            "required": ["sectionId"]
        },
        "CourseSelection": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "sections": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Section"}
                }
            },
            "required": ["title", "sections"]
        },
        "GenerateVariantsRequest": {
            "type": "object",
            "description": "Supply courses inline or reference a stored catalog by ID.",
            "properties": {
                "catalogId": {"type": "string"},
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CourseSelection"}
                }
            }
        },
        "ConflictReportRequest": {
            "type": "object",
            "properties": {
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CourseSelection"}
                }
            },
            "required": ["courses"]
        },
        "ExportScheduleRequest": {
            "type": "object",
            "properties": {
                "sections": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Section"}
                },
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["sections", "format"]
        },
        "CreateCatalogRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "source": {"type": "string", "enum": ["roster", "portal", "manual"]},
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CourseSelection"}
                }
            },
            "required": ["name", "courses"]
        },
        "UpdateCatalogRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CourseSelection"}
                }
            }
        },
        "SystemMetrics": {
            "type": "object",
            "properties": {
                "cacheHitRatio": {"type": "number"},
                "cacheHits": {"type": "integer"},
                "cacheMisses": {"type": "integer"},
                "requestsTotal": {"type": "integer"},
                "averageRequestDurationMs": {"type": "number"},
                "generationsTotal": {"type": "integer"},
                "averageGenerationMs": {"type": "number"},
                "goroutines": {"type": "integer"},
                "generatedAt": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"}
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
