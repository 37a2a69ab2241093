// Package schema provides the JSON Schema of print arguments documents.
//
// The schema is derived from the known field descriptors of the webprint package.
// It is stricter than [webprint.GenerateParams]: besides the known fields only
// layout object parameters ("text_*", "barcode_*", "image_*") are allowed,
// the same set that [webprint.URI.Args] accepts.
package schema

//go:generate go tool errtrace -w .

import (
	"bytes"
	"encoding/json"
	"sync"

	"braces.dev/errtrace"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"

	"github.com/ghettovoice/webprint"
)

// URL is the identifier of the schema.
const URL = "https://github.com/ghettovoice/webprint/args.schema.json"

// ObjectPattern matches names of layout object parameters.
const ObjectPattern = `^(text|barcode|image)_.+$`

var exclusivePairs = [][2]string{
	{webprint.FieldFilename, webprint.FieldFileAttach},
	{webprint.FieldSize, webprint.FieldSizeAttach},
}

// Document returns the JSON Schema of a print arguments document.
func Document() map[string]any {
	fields := webprint.Fields()
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f.Name] = fieldSchema(f)
	}

	pairs := make([]any, 0, len(exclusivePairs))
	for _, p := range exclusivePairs {
		pairs = append(pairs, map[string]any{
			"oneOf": []any{presentSchema(p[0]), presentSchema(p[1])},
		})
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         URL,
		"title":       "Brother web print arguments",
		"type":        "object",
		"properties":  props,
		"allOf":       pairs,
		"description": "Exactly one of filename/fileattach and exactly one of size/sizeattach must be provided.",
		"patternProperties": map[string]any{
			ObjectPattern: map[string]any{"type": []any{"string", "number", "boolean", "null"}},
		},
		"additionalProperties": false,
	}
}

func fieldSchema(f webprint.Field) map[string]any {
	s := map[string]any{}
	switch f.Kind {
	case webprint.KindString:
		s["type"] = []any{"string", "null"}
	case webprint.KindInt:
		s["type"] = []any{"integer", "null"}
	case webprint.KindNumber:
		s["type"] = []any{"number", "null"}
	case webprint.KindBool:
		s["type"] = []any{"boolean", "null"}
	}
	if len(f.Values) > 0 {
		enum := make([]any, 0, len(f.Values)+1)
		for _, v := range f.Values {
			enum = append(enum, v)
		}
		s["enum"] = append(enum, nil)
	}
	if f.Bounds != nil {
		s["minimum"] = f.Bounds.Min
		s["maximum"] = f.Bounds.Max
	}
	return s
}

// presentSchema matches a document where the field is set to a non-null value.
func presentSchema(name string) map[string]any {
	return map[string]any{
		"required": []any{name},
		"properties": map[string]any{
			name: map[string]any{"not": map[string]any{"type": "null"}},
		},
	}
}

// JSON returns the indented JSON encoding of [Document].
func JSON() ([]byte, error) {
	return errtrace.Wrap2(json.MarshalIndent(Document(), "", "  "))
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compile() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var data []byte
		data, compileErr = JSON()
		if compileErr != nil {
			return
		}
		c := jsonschema.NewCompiler()
		if compileErr = c.AddResource(URL, bytes.NewReader(data)); compileErr != nil {
			return
		}
		compiled, compileErr = c.Compile(URL)
	})
	return compiled, errtrace.Wrap(compileErr)
}

// Validate checks a YAML or JSON print arguments document against the schema.
// The returned error matches [webprint.ErrInvalidArgument] when the document
// does not conform.
func Validate(doc []byte) error {
	sch, err := compile()
	if err != nil {
		return errtrace.Wrap(err)
	}

	data, err := yaml.YAMLToJSON(doc)
	if err != nil {
		return errtrace.Wrap(webprint.NewInvalidArgumentError(err))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return errtrace.Wrap(webprint.NewInvalidArgumentError(err))
	}

	if err := sch.Validate(v); err != nil {
		return errtrace.Wrap(webprint.NewInvalidArgumentError(err))
	}
	return nil
}
