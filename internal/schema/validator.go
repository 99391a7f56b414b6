// Package schema validates series documents against embedded CUE
// schemas before they are parsed into the data model, so malformed
// configuration is reported with field-level messages instead of
// surfacing mid-computation.
package schema

import (
	"embed"
	"fmt"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	yamlv3 "gopkg.in/yaml.v3"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// ValidationError is one schema violation in a series document.
type ValidationError struct {
	File    string
	Message string
}

// Validator checks series documents against the embedded CUE schemas.
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator compiles the embedded schemas. A schema that fails to
// compile is skipped; validation then degrades to the loader's own
// checks rather than failing outright.
func NewValidator() *Validator {
	v := &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return v
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile(filepath.Join("schemas", entry.Name()))
		if err != nil {
			continue
		}
		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if inst.Err() != nil {
			continue
		}
		name := entry.Name()[:len(entry.Name())-len(".cue")]
		v.schemas[name] = inst.Value()
	}
	return v
}

// ValidateSeries checks a decoded series document against the series
// schema. An empty result means the document conforms.
func (v *Validator) ValidateSeries(path string, data map[string]any) []ValidationError {
	schema, ok := v.schemas["series"]
	if !ok {
		return nil
	}
	def := schema.LookupPath(cue.ParsePath("#Series"))
	if !def.Exists() {
		return nil
	}
	dataValue := v.ctx.Encode(data)
	if err := dataValue.Err(); err != nil {
		return []ValidationError{{File: path, Message: fmt.Sprintf("encoding document: %v", err)}}
	}
	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return []ValidationError{{File: path, Message: err.Error()}}
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return []ValidationError{{File: path, Message: err.Error()}}
	}
	return nil
}

// ValidateFile reads and validates one series document.
func (v *Validator) ValidateFile(path string, content []byte) []ValidationError {
	var data map[string]any
	if err := yamlv3.Unmarshal(content, &data); err != nil {
		return []ValidationError{{File: path, Message: fmt.Sprintf("parsing YAML: %v", err)}}
	}
	return v.ValidateSeries(path, data)
}
