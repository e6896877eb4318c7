package formatter

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed summary.schema.json
var summarySchemaJSON []byte

const summarySchemaURL = "summary.schema.json"

var (
	summarySchema     *jsonschema.Schema
	summarySchemaErr  error
	summarySchemaOnce sync.Once
)

// SummarySchema returns the raw JSON Schema for the summary document
func SummarySchema() []byte {
	return append([]byte(nil), summarySchemaJSON...)
}

// ValidateSummary checks a JSON summary document against the summary schema
func ValidateSummary(doc []byte) error {
	schema, err := compiledSummarySchema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return fmt.Errorf("failed to parse summary: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("summary does not match schema: %w", err)
	}

	return nil
}

func compiledSummarySchema() (*jsonschema.Schema, error) {
	summarySchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(summarySchemaJSON))
		if err != nil {
			summarySchemaErr = fmt.Errorf("failed to parse summary schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(summarySchemaURL, doc); err != nil {
			summarySchemaErr = fmt.Errorf("failed to add summary schema resource: %w", err)
			return
		}

		summarySchema, summarySchemaErr = c.Compile(summarySchemaURL)
		if summarySchemaErr != nil {
			summarySchemaErr = fmt.Errorf("failed to compile summary schema: %w", summarySchemaErr)
		}
	})
	return summarySchema, summarySchemaErr
}
