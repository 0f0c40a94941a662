package config

import "github.com/iancoleman/strcase"

// NamingConvention converts between the field names used by the API payloads
// and the column names of the tables.
type NamingConvention interface {
	ToSQLColumn(name string) string
	ToJSONField(name string) string
	ToGraphQLType(name string) string
}

type defaultNaming struct {
}

func NewDefaultNaming() NamingConvention {
	return &defaultNaming{}
}

func (n *defaultNaming) ToSQLColumn(name string) string {
	return strcase.ToSnake(name)
}

func (n *defaultNaming) ToJSONField(name string) string {
	return strcase.ToLowerCamel(name)
}

func (n *defaultNaming) ToGraphQLType(name string) string {
	return strcase.ToCamel(name)
}
