// Package models provides the data structures Snowman hands to the model
// generator: query result rows, introspected tables, and naming options.
package models

// PydanticOptions controls how generated model classes are named.
type PydanticOptions struct {
	// ModelNamePrefix is prepended to every generated class name
	ModelNamePrefix string `json:"model_name_prefix"`
	// ModelNameSuffix is appended to every generated class name
	ModelNameSuffix string `json:"model_name_suffix"`
}

// ModelName applies the prefix and suffix to a base class name.
func (o PydanticOptions) ModelName(base string) string {
	return o.ModelNamePrefix + base + o.ModelNameSuffix
}

// Table describes one table or view discovered by schema introspection.
type Table struct {
	Database string   `json:"database"`
	Schema   string   `json:"schema"`
	Name     string   `json:"name"`
	Columns  []Column `json:"columns"`
}

// Column describes one column of a Table, in ordinal order.
type Column struct {
	Name     string  `json:"name"`
	DataType string  `json:"data_type"`
	Nullable bool    `json:"nullable"`
	Comment  *string `json:"comment,omitempty"`
}
