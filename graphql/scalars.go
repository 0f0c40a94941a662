package graphql

import (
	"github.com/gatortrader/gatortrader-api/types"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

var decimal = newStringScalar(
	"Decimal", "The `Decimal` scalar type represents an exact decimal number, such as a price, as a string.",
	types.StringerToString, parseWith(types.StringToDecimal))

var timestamp = newStringScalar(
	"Timestamp", "The `Timestamp` scalar type represents a DateTime."+
		" The Timestamp is serialized as an RFC 3339 quoted string",
	types.TimeAsString, parseWith(types.StringToTime))

// newStringScalar creates a string based scalar with custom serialization functions
func newStringScalar(
	name string, description string, serializeFn graphql.SerializeFn, deserializeFn graphql.ParseValueFn,
) *graphql.Scalar {
	return graphql.NewScalar(graphql.ScalarConfig{
		Name:         name,
		Description:  description,
		Serialize:    serializeFn,
		ParseValue:   deserializeFn,
		ParseLiteral: parseLiteralFromStringHandler(deserializeFn),
	})
}

func parseLiteralFromStringHandler(parser graphql.ParseValueFn) graphql.ParseLiteralFn {
	return func(valueAST ast.Value) interface{} {
		switch valueAST := valueAST.(type) {
		case *ast.StringValue:
			return parser(valueAST.Value)
		}
		return nil
	}
}

// parseWith adapts a conversion function to graphql, where invalid values
// are reported as nil.
func parseWith(fn func(value interface{}) (interface{}, error)) graphql.ParseValueFn {
	return func(value interface{}) interface{} {
		result, err := fn(value)
		if err != nil {
			return nil
		}
		return result
	}
}
