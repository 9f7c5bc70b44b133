// Package docs holds the OpenAPI document of the HTTP API, built from the
// swag annotations of cmd/server and internal/interfaces/http/handler.
//
// Regenerate with:
//
//	swag init -g cmd/server/main.go -o docs --parseDependency --parseInternal
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/imports/ubl-orders": {
            "post": {
                "description": "Imports a UBL 2.x Order or RequestForQuotation. The document is the raw request body or the \"file\" part of a multipart form. With match_customer the customer party is resolved against the partner directory.",
                "consumes": [
                    "application/xml",
                    "text/xml",
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "imports"
                ],
                "summary": "Import a UBL order document",
                "operationId": "importUBLOrder",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Match the customer party against the partner directory",
                        "name": "match_customer",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Original filename of a raw body upload",
                        "name": "X-Filename",
                        "in": "header"
                    },
                    {
                        "type": "file",
                        "description": "UBL document (multipart uploads)",
                        "name": "file",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.ImportResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.Response"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/dto.Response"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/dto.Response"
                        }
                    },
                    "415": {
                        "description": "Unsupported Media Type",
                        "schema": {
                            "$ref": "#/definitions/dto.Response"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/dto.Response"
                        }
                    },
                    "501": {
                        "description": "Not Implemented",
                        "schema": {
                            "$ref": "#/definitions/dto.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/imports/ubl-orders/detect": {
            "post": {
                "description": "Returns the document type (order or rfq) without parsing the content",
                "consumes": [
                    "application/xml",
                    "text/xml",
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "imports"
                ],
                "summary": "Detect the type of a UBL document",
                "operationId": "detectUBLDocument",
                "parameters": [
                    {
                        "type": "file",
                        "description": "UBL document (multipart uploads)",
                        "name": "file",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/dto.DetectResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.Response"
                        }
                    },
                    "415": {
                        "description": "Unsupported Media Type",
                        "schema": {
                            "$ref": "#/definitions/dto.Response"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports the service version, the served importers and the state of each dependency",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "Health check",
                "operationId": "getHealth",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/dto.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.DetectResponse": {
            "type": "object",
            "properties": {
                "doc_type": {
                    "type": "string"
                },
                "document": {
                    "type": "string"
                }
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ErrorDetail"
                    }
                },
                "message": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "importers": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "status": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                }
            }
        },
        "dto.ImportResponse": {
            "type": "object",
            "properties": {
                "archive_key": {
                    "type": "string"
                },
                "contact_id": {
                    "type": "string"
                },
                "customer_id": {
                    "type": "string"
                },
                "doc_type": {
                    "type": "string"
                },
                "importer": {
                    "type": "string"
                },
                "line_count": {
                    "type": "integer"
                },
                "match_strategy": {
                    "type": "string"
                },
                "order": {
                    "$ref": "#/definitions/trade.CanonicalOrder"
                },
                "total_untaxed": {
                    "type": "number"
                }
            }
        },
        "dto.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "trade.Address": {
            "type": "object",
            "properties": {
                "city": {
                    "type": "string"
                },
                "country_code": {
                    "type": "string"
                },
                "state_code": {
                    "type": "string"
                },
                "street": {
                    "type": "string"
                },
                "street2": {
                    "type": "string"
                },
                "zip": {
                    "type": "string"
                }
            }
        },
        "trade.CanonicalOrder": {
            "type": "object",
            "properties": {
                "company": {
                    "$ref": "#/definitions/trade.Party"
                },
                "currency": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "delivery_detail": {
                    "$ref": "#/definitions/trade.DeliveryDetail"
                },
                "doc_type": {
                    "type": "string"
                },
                "incoterm": {
                    "$ref": "#/definitions/trade.Incoterm"
                },
                "invoice_to": {
                    "$ref": "#/definitions/trade.Party"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/trade.OrderLine"
                    }
                },
                "note": {
                    "type": "string"
                },
                "order_ref": {
                    "type": "string"
                },
                "partner": {
                    "$ref": "#/definitions/trade.Party"
                },
                "ship_to": {
                    "$ref": "#/definitions/trade.Party"
                },
                "ubl_version": {
                    "type": "string"
                }
            }
        },
        "trade.DeliveryDetail": {
            "type": "object",
            "properties": {
                "commitment_date": {
                    "type": "string"
                },
                "period_end": {
                    "type": "string"
                },
                "period_start": {
                    "type": "string"
                }
            }
        },
        "trade.Incoterm": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                }
            }
        },
        "trade.OrderLine": {
            "type": "object",
            "properties": {
                "price_unit": {
                    "type": "number"
                },
                "product": {
                    "$ref": "#/definitions/trade.Product"
                },
                "qty": {
                    "type": "number"
                },
                "uom": {
                    "type": "string"
                }
            }
        },
        "trade.Party": {
            "type": "object",
            "properties": {
                "address": {
                    "$ref": "#/definitions/trade.Address"
                },
                "contact": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "id_numbers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/trade.PartyIdentifier"
                    }
                },
                "name": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "ref": {
                    "type": "string"
                },
                "vat": {
                    "type": "string"
                },
                "website": {
                    "type": "string"
                }
            }
        },
        "trade.PartyIdentifier": {
            "type": "object",
            "properties": {
                "scheme_id": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                }
            }
        },
        "trade.Product": {
            "type": "object",
            "properties": {
                "barcode": {
                    "type": "string"
                },
                "buyer_code": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
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
	Title:            "UBL Order Import API",
	Description:      "Imports UBL 2.x Order and RequestForQuotation documents into canonical orders and matches their customer against the partner directory.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
