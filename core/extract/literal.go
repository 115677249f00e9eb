package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
	json5 "github.com/yosuke-furukawa/json5/encoding/json5"
)

var errEmptyLiteral = errors.New("empty literal")

// decodeLiteral turns a JSON document, or a permissive literal such as a
// Python dict with single-quoted strings, into canonical JSON text.
//
// Decoders are tried in order: strict JSON, jsonrepair (keeps key order and
// understands Python constants) and finally JSON5. The JSON5 path re-encodes
// through a Go map, so its keys come back sorted.
func decodeLiteral(literal string) (string, error) {
	literal = strings.TrimSpace(literal)
	if literal == "" {
		return "", errEmptyLiteral
	}

	if gjson.Valid(literal) {
		return literal, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(literal)
	if repairErr == nil && gjson.Valid(repaired) {
		return repaired, nil
	}

	canonical, json5Err := decodeJSON5(literal)
	if json5Err != nil {
		return "", fmt.Errorf("literal is neither JSON, repairable JSON nor JSON5: repair error: %v, json5 error: %w", repairErr, json5Err)
	}
	return canonical, nil
}

func decodeJSON5(literal string) (string, error) {
	var value any
	if err := json5.Unmarshal([]byte(literal), &value); err != nil {
		return "", err
	}

	canonical, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(canonical), nil
}
