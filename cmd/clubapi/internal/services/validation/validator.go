// Package validation checks request payloads against embedded JSON schemas
// before the gateway applies them.
package validation

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// schemaBaseURL is where embedded schemas are registered. It must be
// absolute, otherwise the compiler resolves names against the working
// directory.
const schemaBaseURL = "https://clubapi.local/schemas/"

var printer = message.NewPrinter(language.English)

// Schema names one embedded payload schema.
type Schema string

const (
	CommentCreate      Schema = "comment.create"
	CommentUpdate      Schema = "comment.update"
	RegistrationCreate Schema = "registration.create"
	MessageCreate      Schema = "message.create"
	ProfileUpdate      Schema = "profile.update"
	UserRole           Schema = "user.role"
	UserRegister       Schema = "user.register"
	UserLogin          Schema = "user.login"
)

// ContentSchema returns the create or update schema of a content kind.
func ContentSchema(kind models.Kind, update bool) Schema {
	if update {
		return Schema(string(kind) + ".update")
	}
	return Schema(string(kind) + ".create")
}

// ErrUnknownSchema is returned for a schema name with no embedded document.
var ErrUnknownSchema = errors.New("unknown payload schema")

// Validator validates decoded JSON payloads.
type Validator interface {
	// Validate returns an error wrapping auth.ErrInvalidInput when payload
	// does not satisfy the named schema.
	Validate(ctx context.Context, name Schema, payload any) error
}

// SchemaValidator implements Validator using santhosh-tekuri/jsonschema/v6
type SchemaValidator struct {
	schemaCache *lru.Cache[Schema, *jsonschema.Schema]
}

// NewSchemaValidator creates a new validator with LRU caching for compiled schemas
func NewSchemaValidator(cacheSize int) (*SchemaValidator, error) {
	cache, err := lru.New[Schema, *jsonschema.Schema](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create schema cache: %w", err)
	}
	return &SchemaValidator{schemaCache: cache}, nil
}

// MustSchemaValidator is NewSchemaValidator for wiring code and tests.
func MustSchemaValidator() *SchemaValidator {
	v, err := NewSchemaValidator(32)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks payload against the named schema. payload must be made of
// the types encoding/json produces (map[string]any, []any, float64, ...).
func (v *SchemaValidator) Validate(ctx context.Context, name Schema, payload any) error {
	schema, err := v.schema(name)
	if err != nil {
		return err
	}

	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %s", auth.ErrInvalidInput, formatValidationError(err))
	}
	return nil
}

func (v *SchemaValidator) schema(name Schema) (*jsonschema.Schema, error) {
	if cached, ok := v.schemaCache.Get(name); ok {
		return cached, nil
	}

	schema, err := compileSchema(name)
	if err != nil {
		return nil, err
	}
	v.schemaCache.Add(name, schema)
	return schema, nil
}

// compileSchema compiles an embedded schema document
func compileSchema(name Schema) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + string(name) + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)

	schemaURL := schemaBaseURL + string(name) + ".json"
	if err := compiler.AddResource(schemaURL, parsed); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}

// formatValidationError reduces a validation error to its first leaf cause,
// e.g. "validation failed at '$.title': expected string, but got number".
func formatValidationError(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}

	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	path := "$"
	var parts []string
	for _, part := range leaf.InstanceLocation {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) > 0 {
		path = "$." + strings.Join(parts, ".")
	}

	errorMsg := strings.TrimSpace(ve.Error())
	if leaf.ErrorKind != nil {
		errorMsg = leaf.ErrorKind.LocalizedString(printer)
	}
	if len(errorMsg) > 200 {
		errorMsg = errorMsg[:200] + "... (truncated)"
	}

	return fmt.Sprintf("validation failed at '%s': %s", path, errorMsg)
}

// GetCacheSize returns cache size for monitoring
func (v *SchemaValidator) GetCacheSize() int {
	return v.schemaCache.Len()
}
