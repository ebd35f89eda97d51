package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/leaderboard.schema.json
var leaderboardSchemaJSON string

var leaderboardSchema = mustCompileSchema(leaderboardSchemaJSON, "leaderboard.schema.json")

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// SchemaError reports a leaderboard payload that does not match the expected shape.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return "leaderboard payload failed schema validation: " + e.Err.Error()
}

func (e *SchemaError) Unwrap() error { return e.Err }

// validateLeaderboard checks raw against the embedded leaderboard schema.
func validateLeaderboard(raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decoding leaderboard: %w", err)
	}
	if err := leaderboardSchema.Validate(doc); err != nil {
		return &SchemaError{Err: err}
	}
	return nil
}
