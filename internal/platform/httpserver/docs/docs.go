// Package docs registers the OpenAPI document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/elections": {
            "get": {
                "summary": "List elections the caller administers",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Create an election",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Slug taken"},
                    "422": {"description": "Invalid input"}
                }
            }
        },
        "/elections/votable": {
            "get": {
                "summary": "List elections the caller can vote in",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/elections/{slug}": {
            "get": {
                "summary": "Fetch an election by slug, subject to its publicity",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found or hidden"}
                }
            }
        },
        "/elections/{slug}/ballot": {
            "get": {
                "summary": "Fetch the ballot form for an eligible voter",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK or redirect decision"}}
            }
        },
        "/elections/{election_id}/votes": {
            "post": {
                "summary": "Cast a complete ballot",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Ballot recorded"},
                    "403": {"description": "Voting window closed"},
                    "409": {"description": "Already voted"},
                    "422": {"description": "Selections violate position rules"}
                }
            }
        },
        "/elections/{slug}/realtime": {
            "get": {
                "summary": "Near-real-time tally, anonymized while ongoing",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK or redirect decision"}}
            }
        },
        "/elections/{election_id}/voters": {
            "get": {
                "summary": "Commissioner roster view",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Add or invite a voter by email",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Email already on roster"}
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Halalan API",
	Description:      "Organizational election service: election administration, voter rosters, ballots, and live tallies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
