// Package formatter renders compiled conditions for people and for DV360.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jakechorley/cb-script-builder/pkg/core/model"
)

// Summary is the JSON view of a compiled rules grid. Field order is the output key order.
type Summary struct {
	PartnerID             string       `json:"PartnerID"`
	AdvertiserID          string       `json:"AdvertiserID"`
	AggregationMethod     string       `json:"AggregationMethod"`
	ExpressionWeightPairs []weightPair `json:"ExpressionWeightPairs"`
}

// weightPair renders a condition as a single-key object {expression: weight}
type weightPair model.Condition

func (p weightPair) MarshalJSON() ([]byte, error) {
	key, err := marshalUnescaped(p.Expression)
	if err != nil {
		return nil, err
	}
	value, err := marshalUnescaped(p.Weight)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(value)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewSummary builds the JSON view. Duplicate expressions stay as separate pairs.
func NewSummary(cfg model.ScriptConfig, conditions []model.Condition) Summary {
	pairs := make([]weightPair, len(conditions))
	for i, c := range conditions {
		pairs[i] = weightPair(c)
	}
	return Summary{
		PartnerID:             cfg.PartnerID,
		AdvertiserID:          cfg.AdvertiserID,
		AggregationMethod:     cfg.AggregationMethod,
		ExpressionWeightPairs: pairs,
	}
}

// FormatJSON renders the summary with two-space indentation.
// Comparison operators are written as-is rather than as \u003e escapes.
func FormatJSON(cfg model.ScriptConfig, conditions []model.Condition) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(NewSummary(cfg, conditions)); err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}

	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

func marshalUnescaped(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
