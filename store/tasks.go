package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"tasklist/model"
)

// Storage keys for the persisted values.
const (
	TasksKey        = "tasks"
	ThemeKey        = "darkMode"
	QuarantineKey   = "tasks.corrupt"
	tasksSchemaName = "tasks.schema.json"
)

// ErrCorruptTasks marks a stored tasks blob that is not valid JSON or does not
// match the expected shape.
var ErrCorruptTasks = errors.New("stored tasks are corrupt")

const tasksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed"],
    "properties": {
      "id": {"type": "integer"},
      "text": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compiledTasksSchema = mustCompileTasksSchema()

func mustCompileTasksSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(tasksSchemaName, strings.NewReader(tasksSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(tasksSchemaName)
}

// LoadTasks reads the tasks key. A missing key yields an empty slice.
// A blob that fails to decode or validate returns ErrCorruptTasks along with
// the raw value so callers can quarantine it.
func LoadTasks(kv KV) ([]model.Task, string, error) {
	raw, ok, err := kv.Get(TasksKey)
	if err != nil {
		return nil, "", fmt.Errorf("read tasks: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Task{}, "", nil
	}
	tasks, err := DecodeTasks([]byte(raw))
	if err != nil {
		return nil, raw, err
	}
	return tasks, raw, nil
}

// DecodeTasks validates and decodes a serialized task array. Priority is not
// part of the shape check: any value that is not a known priority decodes as
// low. Rows whose text is blank after trimming are dropped.
func DecodeTasks(data []byte) ([]model.Task, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTasks, err)
	}
	if err := compiledTasksSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptTasks, schemaMessage(err))
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTasks, err)
	}
	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			continue
		}
		t.Priority = t.Priority.Normalize()
		kept = append(kept, t)
	}
	return kept, nil
}

// SaveTasks serializes the full sequence under the tasks key.
func SaveTasks(kv KV, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return kv.Set(TasksKey, string(data))
}

// LoadTheme reads the theme key. Anything but "true" is light.
func LoadTheme(kv KV) (model.Theme, error) {
	raw, ok, err := kv.Get(ThemeKey)
	if err != nil {
		return model.ThemeLight, fmt.Errorf("read theme: %w", err)
	}
	if ok && strings.TrimSpace(raw) == "true" {
		return model.ThemeDark, nil
	}
	return model.ThemeLight, nil
}

// SaveTheme writes "true" for dark and "false" for light.
func SaveTheme(kv KV, theme model.Theme) error {
	value := "false"
	if theme == model.ThemeDark {
		value = "true"
	}
	return kv.Set(ThemeKey, value)
}

func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}
