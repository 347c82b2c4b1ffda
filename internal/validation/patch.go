// Package validation checks outgoing patch payloads against a JSON schema
// before they reach the store, so malformed requests fail locally instead of
// surfacing as opaque store rejections.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/RachaputiVaishnavi/studio-application-flow/internal/common/errors"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/models"
)

const patchSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"projectStatus": {
			"type": "string",
			"enum": ["NEW", "ON-HOLD", "ROUND-1", "ROUND-2", "SELECTED", "REJECTED"]
		},
		"roundNotes": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"firstRound":   {"$ref": "#/definitions/noteList"},
				"secondRound":  {"$ref": "#/definitions/noteList"},
				"thirdRound":   {"$ref": "#/definitions/noteList"},
				"generalNotes": {"$ref": "#/definitions/noteList"}
			}
		},
		"evaluationChecklist": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["_id", "checked"],
				"properties": {
					"_id":     {"type": "string", "minLength": 1},
					"checked": {"type": "boolean"},
					"notes":   {"type": "string"}
				}
			}
		},
		"additionalDocuments": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"_id":    {"type": "string"},
					"name":   {"type": "string"},
					"url":    {"type": "string"},
					"type":   {"type": "string"},
					"remove": {"type": "boolean"}
				},
				"anyOf": [
					{"required": ["_id", "remove"]},
					{"required": ["name", "url"]}
				]
			}
		}
	},
	"definitions": {
		"noteList": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["text", "timestamp"],
				"properties": {
					"text":      {"type": "string", "minLength": 1},
					"timestamp": {"type": "string"}
				}
			}
		}
	}
}`

// PatchValidator validates serialized evaluation patches. The schema is
// compiled once at construction.
type PatchValidator struct {
	schema *gojsonschema.Schema
}

func NewPatchValidator() (*PatchValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(patchSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile patch schema: %w", err)
	}
	return &PatchValidator{schema: schema}, nil
}

// Validate checks the patch against the store's request contract.
func (v *PatchValidator) Validate(patch models.EvaluationPatch) error {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(patch))
	if err != nil {
		return apperrors.NewInvalidPatchError(err.Error())
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", resultErr.Field(), resultErr.Description()))
	}
	return apperrors.NewInvalidPatchError(strings.Join(details, "; "))
}
