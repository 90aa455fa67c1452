package formats

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/board.schema.json
var boardSchemaJSON string

var (
	boardSchemaOnce sync.Once
	boardSchema     *jsonschema.Schema
	boardSchemaErr  error
)

// BoardSchema returns the compiled JSON schema for board files.
func BoardSchema() (*jsonschema.Schema, error) {
	boardSchemaOnce.Do(func() {
		boardSchema, boardSchemaErr = jsonschema.CompileString("board.schema.json", boardSchemaJSON)
	})
	return boardSchema, boardSchemaErr
}

// ParseJSON validates data against the board schema and parses it.
func ParseJSON(data []byte, source string) (Level, error) {
	schema, err := BoardSchema()
	if err != nil {
		return Level{}, fmt.Errorf("compile board schema: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Level{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return Level{}, fmt.Errorf("json schema: %w", err)
	}

	var doc boardDoc
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Level{}, fmt.Errorf("json decode: %w", err)
	}
	return doc.level(source)
}
