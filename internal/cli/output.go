package cli

import (
	"encoding/json"
	"io"
	"reflect"
)

// IsJSONOutput reports whether --json was requested.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsJSONLOutput reports whether --jsonl was requested.
func IsJSONLOutput() bool {
	return jsonlOutput
}

// WriteOutput writes v as indented JSON, or one compact JSON value per line
// in JSONL mode when v is a slice.
func WriteOutput(out io.Writer, v any) error {
	if IsJSONLOutput() {
		return writeJSONLines(out, v)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeJSONLines(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Slice {
		return encoder.Encode(v)
	}
	for i := 0; i < value.Len(); i++ {
		if err := encoder.Encode(value.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}
