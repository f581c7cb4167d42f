package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/TWRT/ops-dashboard/internal/service"
)

const (
	todoSchema = `{
		"type": "object",
		"required": ["title", "due_date"],
		"properties": {
			"title": {"type": "string", "minLength": 1},
			"description": {"type": "string"},
			"description_history": {"type": "string"},
			"history_note": {"type": "string"},
			"due_date": {"type": "string", "format": "date"},
			"position": {"enum": ["", "todo", "in-progress", "done"]},
			"project": {"type": "string"},
			"assignee": {"type": "string", "pattern": "^[0-9]*$"}
		}
	}`

	projectSchema = `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"description": {"type": "string"},
			"clients": {"type": "array", "items": {"type": "string"}},
			"start_date": {"anyOf": [{"const": ""}, {"type": "string", "format": "date"}]},
			"end_date": {"anyOf": [{"const": ""}, {"type": "string", "format": "date"}]}
		}
	}`

	loginSchema = `{
		"type": "object",
		"required": ["identifier", "password"],
		"properties": {
			"identifier": {"type": "string", "minLength": 1},
			"password": {"type": "string", "minLength": 1}
		}
	}`

	moveSchema = `{
		"type": "object",
		"required": ["todo_id", "position"],
		"properties": {
			"todo_id": {"type": "string", "minLength": 1},
			"position": {"enum": ["todo", "in-progress", "done"]}
		}
	}`
)

var (
	todoBody    = mustCompile("todo.json", todoSchema)
	projectBody = mustCompile("project.json", projectSchema)
	loginBody   = mustCompile("login.json", loginSchema)
	moveBody    = mustCompile("move.json", moveSchema)
)

func mustCompile(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(name, strings.NewReader(schema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(name)
}

// decodeBody validates the request body against schema, then decodes it
// into out. Validation failures wrap service.ErrInvalidInput.
func decodeBody(r *http.Request, schema *jsonschema.Schema, out any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", service.ErrInvalidInput, err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("%w: JSON error: %v", service.ErrInvalidInput, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s", service.ErrInvalidInput, schemaMessage(err))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: JSON error: %v", service.ErrInvalidInput, err)
	}
	return nil
}

// schemaMessage returns the first leaf cause, which names the offending field.
func schemaMessage(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}
