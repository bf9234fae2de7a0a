package uniquebots

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Variable is one named GraphQL variable. Variables are ordered: the query's
// declaration block lists them exactly in the order supplied, which is what
// the service validates against.
type Variable struct {
	Name  string
	Value any
}

// Var builds a Variable.
func Var(name string, value any) Variable {
	return Variable{Name: name, Value: value}
}

// gqlRequest is the {query, variables} body posted to the GraphQL endpoint.
type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// scalarType maps a Go value onto the GraphQL scalar declared for its
// variable. Every variable used in a query must be declared or the service
// rejects the call.
func scalarType(value any) (string, error) {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "Int", nil
	case string:
		return "String", nil
	case bool:
		return "Boolean", nil
	case float32, float64:
		return "Float", nil
	default:
		return "", fmt.Errorf("no GraphQL scalar for %T", value)
	}
}

// newRequest wraps a query body in a parameterized operation, declaring each
// variable with its inferred scalar type in supplied order.
func newRequest(body string, vars ...Variable) (*gqlRequest, error) {
	if len(vars) == 0 {
		return &gqlRequest{Query: body}, nil
	}
	decls := make([]string, 0, len(vars))
	values := make(map[string]any, len(vars))
	for _, v := range vars {
		scalar, err := scalarType(v.Value)
		if err != nil {
			return nil, fmt.Errorf("variable $%s: %w", v.Name, err)
		}
		decls = append(decls, fmt.Sprintf("$%s: %s!", v.Name, scalar))
		values[v.Name] = v.Value
	}
	return &gqlRequest{
		Query:     fmt.Sprintf("query (%s) %s", strings.Join(decls, ", "), body),
		Variables: values,
	}, nil
}

// gqlError is one entry of a GraphQL error response.
type gqlError struct {
	Message string `json:"message"`
}

// gqlEnvelope is the standard GraphQL response wrapper.
type gqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}
