package jsonstore

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/runoshun/task-cli/internal/domain"
)

//go:embed tasks.schema.json
var tasksSchemaContent string

var tasksSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("tasks.schema.json", tasksSchemaContent)
})

// decode parses and validates the content of a tasks file.
func decode(content []byte) ([]*domain.Task, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	schema, err := tasksSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, schemaError(err)
	}

	var tasks []*domain.Task
	if err := json.Unmarshal(content, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	seen := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: %d", domain.ErrDuplicateTaskID, t.ID)
		}
		seen[t.ID] = true
	}

	return tasks, nil
}

// schemaError reduces a schema validation error to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if path := jsonPointerToPath(ve.InstanceLocation); path != "" {
		return fmt.Errorf("%s: %s", path, ve.Message)
	}
	return errors.New(ve.Message)
}

// jsonPointerToPath converts "/0/status" into "[0].status".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
