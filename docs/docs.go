// Package docs регистрирует описание REST API для swagger UI
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
        "/transactions": {
            "get": {
                "description": "Транзакции упорядочены от новых к старым",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Получить список транзакций",
                "parameters": [
                    {"type": "integer", "default": 100, "description": "Лимит результатов (максимум 500)", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Смещение", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Список транзакций", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.errorResponse"}}
                }
            },
            "post": {
                "description": "Валидирует транзакцию, оценивает риск и сохраняет ее. Если оценщик недоступен, транзакция сохраняется без оценки и возвращается с кодом 503.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Создать транзакцию",
                "parameters": [
                    {"description": "Данные транзакции", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.TransactionInput"}}
                ],
                "responses": {
                    "201": {"description": "Транзакция создана", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.errorResponse"}},
                    "503": {"description": "Оценщик недоступен, транзакция сохранена без оценки", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/transactions/generate": {
            "get": {
                "description": "Генерирует корректные входные данные для тестирования. Профиль: low, medium, high, critical.",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Сгенерировать случайную транзакцию",
                "parameters": [
                    {"type": "string", "description": "Профиль риска", "name": "profile", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Сгенерированная транзакция", "schema": {"$ref": "#/definitions/models.TransactionInput"}}
                }
            }
        },
        "/transactions/analyze": {
            "post": {
                "description": "Если transaction_id ссылается на сохраненную транзакцию, оцениваются ее атрибуты и результат записывается. Иначе оцениваются переданные атрибуты.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Проанализировать транзакцию",
                "parameters": [
                    {"description": "Атрибуты транзакции", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.TransactionInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RiskOutcome"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.errorResponse"}},
                    "503": {"description": "Оценщик недоступен", "schema": {"$ref": "#/definitions/rest.errorResponse"}}
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Получить транзакцию",
                "parameters": [
                    {"type": "string", "description": "ID транзакции", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Удалить транзакцию",
                "parameters": [
                    {"type": "string", "description": "ID транзакции", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Транзакция удалена", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.errorResponse"}}
                }
            }
        },
        "/compliance/report/{id}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["compliance"],
                "summary": "Сформировать отчет о соответствии",
                "parameters": [
                    {"type": "string", "description": "ID транзакции", "name": "id", "in": "path", "required": true},
                    {"description": "Оценка и уровень риска", "name": "params", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ReportParams"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ComplianceReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.errorResponse"}},
                    "502": {"description": "Не удалось сформировать отчет", "schema": {"$ref": "#/definitions/rest.errorResponse"}}
                }
            }
        },
        "/compliance/regulations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["compliance"],
                "summary": "Список регуляций",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/compliance/regulations/search": {
            "post": {
                "description": "Параметры передаются в query или в JSON-теле",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["compliance"],
                "summary": "Поиск по регуляциям",
                "parameters": [
                    {"type": "string", "description": "Поисковый запрос", "name": "query", "in": "query"},
                    {"type": "integer", "default": 3, "description": "Количество результатов", "name": "top_k", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Пустой запрос", "schema": {"$ref": "#/definitions/rest.errorResponse"}}
                }
            }
        },
        "/bulk/upload": {
            "post": {
                "description": "Принимает CSV, XLSX или PDF до 10 MiB и оценивает каждую транзакцию",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["bulk"],
                "summary": "Пакетная проверка выписки",
                "parameters": [
                    {"type": "file", "description": "Файл выписки", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Пользователь", "name": "user_id", "in": "formData"},
                    {"type": "string", "description": "Формат: csv, xlsx, pdf", "name": "format", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BulkUploadSummary"}},
                    "400": {"description": "Некорректный файл", "schema": {"$ref": "#/definitions/rest.errorResponse"}},
                    "413": {"description": "Файл слишком большой", "schema": {"$ref": "#/definitions/rest.errorResponse"}}
                }
            }
        },
        "/bulk/upload/report": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/pdf"],
                "tags": ["bulk"],
                "summary": "Пакетная проверка с PDF-отчетом",
                "parameters": [
                    {"type": "file", "description": "Файл выписки", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Пользователь", "name": "user_id", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "PDF-отчет", "schema": {"type": "file"}},
                    "400": {"description": "Некорректный файл", "schema": {"$ref": "#/definitions/rest.errorResponse"}},
                    "413": {"description": "Файл слишком большой", "schema": {"$ref": "#/definitions/rest.errorResponse"}},
                    "502": {"description": "Не удалось сформировать отчет", "schema": {"$ref": "#/definitions/rest.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "rest.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "models.TransactionInput": {
            "type": "object",
            "required": ["user_id", "currency", "transaction_type", "country", "merchant_type"],
            "properties": {
                "user_id": {"type": "string"},
                "amount": {"type": "number", "minimum": 0},
                "currency": {"type": "string"},
                "transaction_type": {"type": "string", "enum": ["transfer", "payment", "withdrawal", "deposit"]},
                "description": {"type": "string"},
                "sender_account": {"type": "string"},
                "recipient_account": {"type": "string"},
                "country": {"type": "string"},
                "merchant_type": {"type": "string"},
                "device_risk_score": {"type": "number", "minimum": 0, "maximum": 1},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "models.Transaction": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "amount": {"type": "number"},
                "currency": {"type": "string"},
                "transaction_type": {"type": "string"},
                "description": {"type": "string"},
                "sender_account": {"type": "string"},
                "recipient_account": {"type": "string"},
                "country": {"type": "string"},
                "merchant_type": {"type": "string"},
                "device_risk_score": {"type": "number"},
                "timestamp": {"type": "string", "format": "date-time"},
                "risk_score": {"type": "integer"},
                "risk_level": {"type": "string", "enum": ["Low", "Medium", "High", "Critical"]},
                "analyzed_at": {"type": "string", "format": "date-time"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "models.RiskOutcome": {
            "type": "object",
            "properties": {
                "transaction_id": {"type": "string"},
                "risk_score": {"type": "integer"},
                "risk_level": {"type": "string", "enum": ["Low", "Medium", "High", "Critical"]},
                "should_approve": {"type": "boolean"},
                "requires_review": {"type": "boolean"},
                "compliance_explanation": {"type": "string"},
                "factors": {"type": "array", "items": {"type": "string"}},
                "recommendations": {"type": "array", "items": {"type": "string"}},
                "analyzed_at": {"type": "string", "format": "date-time"}
            }
        },
        "models.ReportParams": {
            "type": "object",
            "required": ["risk_level"],
            "properties": {
                "risk_score": {"type": "integer", "minimum": 0, "maximum": 100},
                "risk_level": {"type": "string", "enum": ["Low", "Medium", "High", "Critical"]}
            }
        },
        "models.ComplianceReport": {
            "type": "object",
            "properties": {
                "transaction_id": {"type": "string"},
                "compliance_status": {"type": "string", "enum": ["approved", "review_required"]},
                "regulations_applied": {"type": "array", "items": {"type": "string"}},
                "violations": {"type": "array", "items": {"type": "string"}},
                "recommendations": {"type": "array", "items": {"type": "string"}},
                "llm_analysis": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "models.BulkUploadSummary": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "xlsx", "pdf"]},
                "user_id": {"type": "string"},
                "total_transactions": {"type": "integer"},
                "total_amount": {"type": "number"},
                "risk_distribution": {"type": "object", "additionalProperties": {"type": "integer"}},
                "amount_by_risk": {"type": "object", "additionalProperties": {"type": "number"}},
                "compliance_rate": {"type": "number"},
                "high_risk_count": {"type": "integer"},
                "critical_count": {"type": "integer"},
                "medium_risk_count": {"type": "integer"},
                "low_risk_count": {"type": "integer"},
                "error_count": {"type": "integer"},
                "processed_at": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FinPol Compliance API",
	Description:      "Оценка рисков транзакций и проверка соответствия требованиям AML",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
