// Package docs Nearby Service API.
//
// Поиск заправок и парковок Сеула рядом с точкой и их ранжирование
// по цене, расстоянию или выгоде поездки.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "description": "200, если все снимки загружены и не пусты; иначе 503 со статусом degraded",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/v1/stats": {
            "get": {
                "description": "Возвращает счётчики заправок и парковок в БД и состояние снимков в памяти этого инстанса",
                "produces": ["application/json"],
                "tags": ["Statistics"],
                "summary": "Get data statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.SuccessResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/domain.Statistics"}}}
                            ]
                        }
                    },
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/{kind}/nearby": {
            "get": {
                "description": "Возвращает заправки или парковки в радиусе от точки, по возрастанию расстояния. Пока данные не загружены, отвечает 503 DATA_UNAVAILABLE.",
                "produces": ["application/json"],
                "tags": ["Nearby"],
                "summary": "Сущности в радиусе",
                "parameters": [
                    {"enum": ["fuel", "parking"], "type": "string", "description": "Вид сущностей", "name": "kind", "in": "path", "required": true},
                    {"type": "number", "description": "Широта центра", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Долгота центра", "name": "lng", "in": "query", "required": true},
                    {"type": "number", "default": 3, "description": "Радиус поиска в км", "name": "radius_km", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.SuccessResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.NearbyResponse"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/{kind}/search": {
            "get": {
                "description": "Ищет сущности в радиусе и упорядочивает их по режиму: price (дешевле выше), distance (ближе выше) или value (выгода заправки с учётом поездки). Дополнительно возвращает лучшую сущность каждого режима.",
                "produces": ["application/json"],
                "tags": ["Nearby"],
                "summary": "Ранжированный поиск рядом",
                "parameters": [
                    {"enum": ["fuel", "parking"], "type": "string", "description": "Вид сущностей", "name": "kind", "in": "path", "required": true},
                    {"type": "number", "description": "Широта центра", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Долгота центра", "name": "lng", "in": "query", "required": true},
                    {"type": "number", "default": 3, "description": "Радиус поиска в км", "name": "radius_km", "in": "query"},
                    {"enum": ["price", "distance", "value", "efficiency"], "type": "string", "default": "price", "description": "Режим ранжирования", "name": "mode", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.SuccessResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.SearchResponse"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.GeoPoint": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lng": {"type": "number"}
            }
        },
        "domain.Entity": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string", "enum": ["fuel", "parking"]},
                "name": {"type": "string"},
                "brand": {"type": "string"},
                "address": {"type": "string"},
                "location": {"$ref": "#/definitions/domain.GeoPoint"},
                "price": {"type": "number"},
                "attributes": {"type": "object", "additionalProperties": true}
            }
        },
        "domain.CostBenefit": {
            "type": "object",
            "properties": {
                "total_savings": {"type": "number"},
                "travel_cost": {"type": "number"},
                "net_savings": {"type": "number"},
                "is_worth_it": {"type": "boolean"}
            }
        },
        "domain.NearbyResult": {
            "type": "object",
            "properties": {
                "entity": {"$ref": "#/definitions/domain.Entity"},
                "distance_meters": {"type": "number"}
            }
        },
        "domain.RankedEntry": {
            "type": "object",
            "properties": {
                "entity": {"$ref": "#/definitions/domain.Entity"},
                "distance_meters": {"type": "number"},
                "cost_benefit": {"$ref": "#/definitions/domain.CostBenefit"}
            }
        },
        "domain.Winners": {
            "type": "object",
            "properties": {
                "lowest_price": {"$ref": "#/definitions/domain.RankedEntry"},
                "closest": {"$ref": "#/definitions/domain.RankedEntry"},
                "best_value": {"$ref": "#/definitions/domain.RankedEntry"}
            }
        },
        "domain.KindCounts": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "with_coords": {"type": "integer"},
                "geocoded": {"type": "integer"}
            }
        },
        "domain.SnapshotInfo": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "ready": {"type": "boolean"},
                "version": {"type": "string"},
                "entities": {"type": "integer"},
                "with_location": {"type": "integer"},
                "with_price": {"type": "integer"},
                "loaded_at": {"type": "string"}
            }
        },
        "domain.Statistics": {
            "type": "object",
            "properties": {
                "database": {"type": "object", "additionalProperties": {"$ref": "#/definitions/domain.KindCounts"}},
                "snapshots": {"type": "array", "items": {"$ref": "#/definitions/domain.SnapshotInfo"}},
                "generated_at": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "snapshots": {"type": "array", "items": {"$ref": "#/definitions/domain.SnapshotInfo"}}
            }
        },
        "dto.NearbyResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "center": {"$ref": "#/definitions/domain.GeoPoint"},
                "radius_meters": {"type": "number"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/domain.NearbyResult"}},
                "total": {"type": "integer"},
                "snapshot_version": {"type": "string"}
            }
        },
        "dto.SearchResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "center": {"$ref": "#/definitions/domain.GeoPoint"},
                "radius_meters": {"type": "number"},
                "mode": {"type": "string", "enum": ["price", "distance", "value"]},
                "average_price": {"type": "number"},
                "in_range": {"type": "integer"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/domain.RankedEntry"}},
                "winners": {"$ref": "#/definitions/domain.Winners"},
                "snapshot_version": {"type": "string"}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "snapshot_version": {"type": "string"},
                "cached": {"type": "boolean"},
                "time_ms": {"type": "number"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Nearby Service API",
	Description:      "Поиск заправок и парковок Сеула рядом с точкой и их ранжирование.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
