package metadata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaURL is the id the embedded schema is registered under. It must be
// absolute, or the compiler resolves it against the working directory.
const schemaURL = "https://jenkins.io/schemas/modernization-metadata.json"

//go:embed schema.json
var schemaJSON []byte

// compiledSchema compiles the embedded schema on first use.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid embedded schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("invalid embedded schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// SchemaError is returned by Decode when a document does not conform to the
// metadata schema. Message holds the validator diagnostic on one line.
type SchemaError struct {
	Message string
}

func (e *SchemaError) Error() string { return e.Message }

// Decode parses a metadata document, normalizes its path field and checks it
// against the metadata schema. Documents that are not JSON or do not conform
// yield a *SchemaError.
func Decode(data []byte) (Record, error) {
	sch, err := compiledSchema()
	if err != nil {
		return Record{}, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return Record{}, &SchemaError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if obj, ok := inst.(map[string]any); ok {
		if p, ok := obj["path"].(string); ok {
			obj["path"] = NormalizePath(p)
		}
	}

	if err := sch.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return Record{}, &SchemaError{Message: diagnostic(verr)}
		}
		return Record{}, err
	}
	return recordOf(inst)
}

// recordOf converts a validated instance. The schema accepts integral floats
// such as 5.0 as integers, so numbers are rewritten before decoding.
func recordOf(inst any) (Record, error) {
	b, err := json.Marshal(integralNumbers(inst))
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Record{}, &SchemaError{Message: fmt.Sprintf("unsupported value: %v", err)}
	}
	return rec, nil
}

func integralNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = integralNumbers(e)
		}
	case []any:
		for i, e := range x {
			x[i] = integralNumbers(e)
		}
	case json.Number:
		if _, err := x.Int64(); err == nil {
			return x
		}
		f, err := x.Float64()
		if err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<63 {
			return json.Number(strconv.FormatInt(int64(f), 10))
		}
	}
	return v
}

// diagnostic renders the leaf causes of a validation error, one
// "at '<pointer>': <message>" item each, joined on a single line.
func diagnostic(verr *jsonschema.ValidationError) string {
	var leaves []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			leaves = append(leaves, fmt.Sprintf("at '%s': %s", instancePointer(e.InstanceLocation), e.BasicOutput().Error))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	return strings.Join(leaves, "; ")
}

func instancePointer(tokens []string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteByte('/')
		sb.WriteString(strings.ReplaceAll(strings.ReplaceAll(tok, "~", "~0"), "/", "~1"))
	}
	return sb.String()
}
