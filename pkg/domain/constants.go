package domain

// Reserved field names. They are always accepted by parameter validation.
const (
	FieldVerb      = "verb"
	FieldObject    = "object"
	FieldContext   = "context"
	FieldArgs      = "args"
	FieldDirection = "direction"
	FieldTarget    = "target"
)

// ReservedFields lists the field names every allow-list implicitly contains.
var ReservedFields = []string{FieldVerb, FieldObject, FieldContext, FieldArgs}

// IsReserved reports whether name is one of the reserved field names.
func IsReserved(name string) bool {
	for _, r := range ReservedFields {
		if r == name {
			return true
		}
	}
	return false
}

// Result prefixes used by the string contract at the pipeline boundary.
const (
	ErrorPrefix       = "Error:"
	UnknownVerbPrefix = "Unknown verb:"
)
