// Package docs registers the Swagger document served at /swagger/*any.
// Keep it in sync with the handler annotations (swag init -g cmd/main.go).
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
				"produces": [
					"application/json"
				],
				"tags": [
					"system"
				],
				"summary": "Health check",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/api/register": {
			"post": {
				"description": "Creates the user and logs them in.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Register a new user",
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"description": "Credentials",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.authCredentials"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.User"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/login": {
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Log in",
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"description": "Credentials",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.loginCredentials"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.User"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/logout": {
			"post": {
				"security": [
					{
						"SessionCookie": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Log out",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/current_user": {
			"get": {
				"description": "Returns the logged-in user, or an empty object when anonymous.",
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Current user",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.User"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/accounts": {
			"get": {
				"security": [
					{
						"SessionCookie": []
					}
				],
				"description": "Returns every account owned by the caller.",
				"produces": [
					"application/json"
				],
				"tags": [
					"accounts"
				],
				"summary": "List accounts",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.Account"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"SessionCookie": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"accounts"
				],
				"summary": "Create account",
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"description": "Account",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.AccountRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Account"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "validation_error, duplicate_account_id or server_error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/accounts/{id}": {
			"put": {
				"security": [
					{
						"SessionCookie": []
					}
				],
				"description": "Replaces every field except owner and id. Never creates.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"accounts"
				],
				"summary": "Update account",
				"parameters": [
					{
						"type": "string",
						"description": "Account id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "body",
						"description": "Account",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.AccountRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Account"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"SessionCookie": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"accounts"
				],
				"summary": "Delete account",
				"parameters": [
					{
						"type": "string",
						"description": "Account id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "boolean"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/summary": {
			"get": {
				"security": [
					{
						"SessionCookie": []
					}
				],
				"description": "Totals per account type, net worth and the balance equation, recomputed on every call.",
				"produces": [
					"application/json"
				],
				"tags": [
					"summary"
				],
				"summary": "Ledger summary",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Summary"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/summary/ws": {
			"get": {
				"security": [
					{
						"SessionCookie": []
					}
				],
				"description": "Upgrades to a WebSocket and pushes {\"type\":\"summary\",\"data\":Summary} every interval (?interval=5s or ?interval_ms=5000).",
				"tags": [
					"summary"
				],
				"summary": "Live summary stream",
				"parameters": [
					{
						"type": "string",
						"description": "Go duration, 100ms..60s",
						"name": "interval",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Milliseconds, 100..60000",
						"name": "interval_ms",
						"in": "query"
					}
				],
				"responses": {
					"101": {
						"description": "Switching Protocols"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handlers.ErrorResponse": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string",
					"example": "not_found"
				},
				"error": {
					"type": "string",
					"example": "Account not found"
				}
			}
		},
		"handlers.authCredentials": {
			"type": "object",
			"required": [
				"password",
				"username"
			],
			"properties": {
				"password": {
					"type": "string",
					"example": "s3cr3t"
				},
				"username": {
					"type": "string",
					"example": "alice"
				}
			}
		},
		"handlers.loginCredentials": {
			"type": "object",
			"properties": {
				"password": {
					"type": "string",
					"example": "s3cr3t"
				},
				"username": {
					"type": "string",
					"example": "alice"
				}
			}
		},
		"handlers.AccountRequest": {
			"type": "object",
			"properties": {
				"account_id": {
					"type": "string",
					"example": "1010"
				},
				"balance": {
					"description": "Number or numeric string; anything else counts as 0.",
					"type": "number",
					"example": 1250.75
				},
				"main_account_category": {
					"type": "string",
					"example": "Current assets"
				},
				"main_account_type": {
					"type": "string",
					"enum": [
						"Asset",
						"Liabilities",
						"Equity",
						"Revenue"
					],
					"example": "Asset"
				},
				"name": {
					"type": "string",
					"example": "Checking"
				},
				"notes": {
					"type": "string",
					"example": "Main bank account"
				}
			}
		},
		"models.Account": {
			"type": "object",
			"properties": {
				"account_id": {
					"type": "string"
				},
				"balance": {
					"type": "number"
				},
				"created_at": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"main_account_category": {
					"type": "string"
				},
				"main_account_type": {
					"$ref": "#/definitions/models.AccountType"
				},
				"name": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				},
				"updated_at": {
					"type": "string"
				},
				"user": {
					"type": "integer"
				}
			}
		},
		"models.AccountType": {
			"type": "string",
			"enum": [
				"Asset",
				"Liabilities",
				"Equity",
				"Revenue"
			],
			"x-enum-varnames": [
				"AccountTypeAsset",
				"AccountTypeLiabilities",
				"AccountTypeEquity",
				"AccountTypeRevenue"
			]
		},
		"models.Summary": {
			"type": "object",
			"properties": {
				"accounts": {
					"type": "integer"
				},
				"equation_balanced": {
					"type": "boolean"
				},
				"net_worth": {
					"type": "number"
				},
				"total_assets": {
					"type": "number"
				},
				"total_equity": {
					"type": "number"
				},
				"total_liabilities": {
					"type": "number"
				},
				"total_revenue": {
					"type": "number"
				},
				"unclassified": {
					"type": "integer"
				}
			}
		},
		"models.User": {
			"type": "object",
			"properties": {
				"created_at": {
					"type": "string"
				},
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"SessionCookie": {
			"type": "apiKey",
			"name": "ledger_session",
			"in": "cookie"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Account Ledger API",
	Description:      "Personal ledger of asset, liability, equity and revenue accounts with cookie sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
