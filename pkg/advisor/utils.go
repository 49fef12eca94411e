package advisor

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// NormalizeStatement formats and limits the max length of SQL statements for
// logging. It removes extra whitespace, normalizes line breaks, and truncates
// if too long.
func NormalizeStatement(statement string) string {
	statement = strings.TrimSpace(statement)
	statement = regexp.MustCompile(`[\t ]+`).ReplaceAllString(statement, " ")
	statement = regexp.MustCompile(`\n\s*`).ReplaceAllString(statement, "\n")

	const maxLength = 1000
	if len(statement) > maxLength {
		return statement[:maxLength] + "..."
	}
	return statement
}

// NumberTypeRulePayload represents a payload with a number field
type NumberTypeRulePayload struct {
	Number int `json:"number"`
}

// UnmarshalNumberTypeRulePayload unmarshals a number type rule payload
func UnmarshalNumberTypeRulePayload(payload map[string]interface{}) (*NumberTypeRulePayload, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	number, ok := payload["number"]
	if !ok {
		return nil, errors.New("missing 'number' field in payload")
	}

	var num int
	switch v := number.(type) {
	case int:
		num = v
	case float64:
		num = int(v)
	default:
		return nil, errors.New("invalid number type in payload")
	}

	return &NumberTypeRulePayload{Number: num}, nil
}

// StringArrayTypeRulePayload represents a payload with a string array field
type StringArrayTypeRulePayload struct {
	List []string `json:"list"`
}

// UnmarshalStringArrayTypeRulePayload unmarshals a string array type rule payload
func UnmarshalStringArrayTypeRulePayload(payload map[string]interface{}) (*StringArrayTypeRulePayload, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	listInterface, ok := payload["list"]
	if !ok {
		return nil, errors.New("missing 'list' field in payload")
	}

	var list []string
	switch v := listInterface.(type) {
	case []interface{}:
		for _, item := range v {
			if str, ok := item.(string); ok {
				list = append(list, str)
			} else {
				return nil, errors.New("non-string item in list")
			}
		}
	case []string:
		list = v
	case nil:
		list = []string{}
	default:
		return nil, errors.New("'list' field is not an array")
	}

	return &StringArrayTypeRulePayload{List: list}, nil
}
