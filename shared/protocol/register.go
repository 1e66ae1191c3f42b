package protocol

import (
	"embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema resource names.
const (
	SchemaSnapshot = "snapshot.schema.json"
	SchemaWelcome  = "welcome.schema.json"
)

var (
	snapshotSchema *jsonschema.Schema
	welcomeSchema  *jsonschema.Schema
)

func init() {
	var err error
	if snapshotSchema, err = compileSchema(SchemaSnapshot); err != nil {
		panic(err)
	}
	if welcomeSchema, err = compileSchema(SchemaWelcome); err != nil {
		panic(err)
	}
}

// compileSchema loads and compiles an embedded schema.
func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	s, err := jsonschema.CompileString(name, string(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return s, nil
}
