package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

const schemaURL = "package.schema.json"

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one leaf failure reported by the schema.
type ValidationIssue struct {
	Path    string // JSON pointer into package.json, e.g. "/devDependencies/@hestjs~1eslint-config"
	Message string
	Keyword string // failing schema keyword, e.g. "required" or "type"
}

// String renders the issue as "path: message".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Validator checks package.json documents against a compiled schema.
type Validator struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

// NewValidator compiles the schema embedded in the binary.
func NewValidator() (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Validator{schema: schema, printer: message.NewPrinter(language.English)}, nil
}

var defaultValidator = sync.OnceValues(NewValidator)

// Validate checks raw package.json bytes with the embedded schema.
func Validate(data []byte) (*ValidationResult, error) {
	v, err := defaultValidator()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	return v.Validate(data)
}

// Validate checks data. The error return is reserved for unparsable input;
// schema violations are reported in the result.
func (v *Validator) Validate(data []byte) (*ValidationResult, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	err = v.schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &ValidationResult{Issues: v.issues(ve)}, nil
}

// issues flattens the error tree to its leaves, dropping structural
// wrappers, and orders them by location.
func (v *Validator) issues(root *jsonschema.ValidationError) []ValidationIssue {
	seen := make(map[ValidationIssue]bool)
	var out []ValidationIssue

	stack := []*jsonschema.ValidationError{root}
	for len(stack) > 0 {
		ve := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(ve.Causes) > 0 {
			stack = append(stack, ve.Causes...)
			continue
		}
		if ve.ErrorKind == nil {
			continue
		}

		kw := ve.ErrorKind.KeywordPath()
		if len(kw) == 0 {
			continue
		}
		keyword := kw[len(kw)-1]
		if keyword == "allOf" || keyword == "$ref" {
			continue
		}

		issue := ValidationIssue{
			Path:    pointer(ve.InstanceLocation),
			Message: ve.ErrorKind.LocalizedString(v.printer),
			Keyword: keyword,
		}
		if !seen[issue] {
			seen[issue] = true
			out = append(out, issue)
		}
	}

	if len(out) == 0 {
		return []ValidationIssue{{Message: root.Error()}}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out
}

// pointer renders an instance location as an RFC 6901 JSON pointer.
func pointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	esc := strings.NewReplacer("~", "~0", "/", "~1")
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(esc.Replace(t))
	}
	return b.String()
}
