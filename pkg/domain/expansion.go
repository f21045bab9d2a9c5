package domain

// ExpansionType names the kinds of computed values.
type ExpansionType string

const (
	ExpandMap      ExpansionType = "map"
	ExpandEnv      ExpansionType = "env"
	ExpandShell    ExpansionType = "shell"
	ExpandFormat   ExpansionType = "format"
	ExpandCallback ExpansionType = "callback"
)

// Expansion is a named value computed ahead of template substitution.
// It is a closed set: MapExpansion, EnvExpansion, ShellExpansion,
// FormatExpansion or CallbackExpansion.
type Expansion interface {
	ExpansionName() string
	Fallback() string
	Type() ExpansionType
}

// ExpansionBase carries the fields common to every expansion.
type ExpansionBase struct {
	Name    string
	Default string
}

func (b ExpansionBase) ExpansionName() string { return b.Name }
func (b ExpansionBase) Fallback() string      { return b.Default }

// MapExpansion looks Field up in Mappings. Mappings may be flat
// (value → output) or nested per object, with an optional "default" bucket.
type MapExpansion struct {
	ExpansionBase
	Field    string
	Mappings map[string]any
}

// EnvExpansion reads an environment variable.
type EnvExpansion struct {
	ExpansionBase
	Var string
}

// ShellExpansion runs Command and captures its trimmed output.
type ShellExpansion struct {
	ExpansionBase
	Command string
}

// FormatExpansion fills {field} placeholders from the field state.
type FormatExpansion struct {
	ExpansionBase
	Template string
}

// CallbackExpansion invokes a registered callback.
type CallbackExpansion struct {
	ExpansionBase
	Callback string
}

func (MapExpansion) Type() ExpansionType      { return ExpandMap }
func (EnvExpansion) Type() ExpansionType      { return ExpandEnv }
func (ShellExpansion) Type() ExpansionType    { return ExpandShell }
func (FormatExpansion) Type() ExpansionType   { return ExpandFormat }
func (CallbackExpansion) Type() ExpansionType { return ExpandCallback }
