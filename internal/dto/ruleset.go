package dto

// RuleSetDocument is the on-disk shape of one plugin.
// It uses "mapstructure" tags to match the YAML keys; fields whose YAML shape
// varies (string or list, list or map) are kept raw and normalized by the compiler.
type RuleSetDocument struct {
	Name        string `json:"name" mapstructure:"name"`
	Version     string `json:"version" mapstructure:"version"`
	Description string `json:"description" mapstructure:"description"`

	Vocabulary VocabularyDocument         `json:"vocabulary" mapstructure:"vocabulary"`
	Grammar    map[string]GrammarDocument `json:"grammar" mapstructure:"grammar"`
	// Expectations entries are either "field", "field?" or an ExpectationDocument map.
	Expectations map[string][]any `json:"expectations" mapstructure:"expectations"`
	// Inference is a list of InferenceDocument, or a map holding it under "rules".
	Inference  any                          `json:"inference" mapstructure:"inference"`
	Validation ValidationDocument           `json:"validation" mapstructure:"validation"`
	Commands   []CommandDocument            `json:"commands" mapstructure:"commands"`
	Expansions map[string]ExpansionDocument `json:"expansions" mapstructure:"expansions"`
	Services   map[string]string            `json:"services" mapstructure:"services"`
	// Provides is a map of service name to ProviderDocument, or a plain list of names.
	Provides any             `json:"provides" mapstructure:"provides"`
	Requires []string        `json:"requires" mapstructure:"requires"`
	Context  ContextDocument `json:"context" mapstructure:"context"`
	Metadata MetaDocument    `json:"metadata" mapstructure:"metadata"`
}

type VocabularyDocument struct {
	Verbs       []string          `json:"verbs" mapstructure:"verbs"`
	Objects     []string          `json:"objects" mapstructure:"objects"`
	Directions  []string          `json:"directions" mapstructure:"directions"`
	Clauses     []string          `json:"clauses" mapstructure:"clauses"`
	VerbAliases map[string]string `json:"verb_aliases" mapstructure:"verb_aliases"`
	// TargetPatterns entries are literal strings or {regex: ...} maps.
	TargetPatterns []any `json:"target_patterns" mapstructure:"target_patterns"`
}

type GrammarDocument struct {
	Pattern       string   `json:"pattern" mapstructure:"pattern"`
	Values        []string `json:"values" mapstructure:"values"`
	Type          string   `json:"type" mapstructure:"type"`
	Transform     string   `json:"transform" mapstructure:"transform"`
	CaseSensitive bool     `json:"case_sensitive" mapstructure:"case_sensitive"`
}

type ExpectationDocument struct {
	Field    string `json:"field" mapstructure:"field"`
	Optional bool   `json:"optional" mapstructure:"optional"`
	Default  any    `json:"default" mapstructure:"default"`
	Clause   string `json:"clause" mapstructure:"clause"`
}

type InferenceDocument struct {
	When      map[string]any `json:"when" mapstructure:"when"`
	Set       map[string]any `json:"set" mapstructure:"set"`
	Transform map[string]any `json:"transform" mapstructure:"transform"`
}

type ValidationDocument struct {
	AllowedParams     map[string][]string `json:"allowed_params" mapstructure:"allowed_params"`
	AllowedDirections map[string][]string `json:"allowed_directions" mapstructure:"allowed_directions"`
}

type CommandDocument struct {
	Match map[string]any `json:"match" mapstructure:"match"`
	Exec  string         `json:"exec" mapstructure:"exec"`
	// Needs is a service name or a list of them.
	Needs     any           `json:"needs" mapstructure:"needs"`
	Hints     HintsDocument `json:"hints" mapstructure:"hints"`
	PaneHints HintsDocument `json:"pane_hints" mapstructure:"pane_hints"`
	Callback  string        `json:"callback" mapstructure:"callback"`
	// Type "plugin" together with Function is the older spelling of Callback.
	Type       string                       `json:"type" mapstructure:"type"`
	Function   string                       `json:"function" mapstructure:"function"`
	Expansions map[string]ExpansionDocument `json:"expansions" mapstructure:"expansions"`
}

type HintsDocument struct {
	Position string `json:"position" mapstructure:"position"`
	Size     string `json:"size" mapstructure:"size"`
}

type ExpansionDocument struct {
	Type     string         `json:"type" mapstructure:"type"`
	Field    string         `json:"field" mapstructure:"field"`
	Var      string         `json:"var" mapstructure:"var"`
	Cmd      string         `json:"cmd" mapstructure:"cmd"`
	Command  string         `json:"command" mapstructure:"command"`
	Template string         `json:"template" mapstructure:"template"`
	Callback string         `json:"callback" mapstructure:"callback"`
	Function string         `json:"function" mapstructure:"function"`
	Mappings map[string]any `json:"mappings" mapstructure:"mappings"`
	Default  any            `json:"default" mapstructure:"default"`
}

type ProviderDocument struct {
	Exec        string            `json:"exec" mapstructure:"exec"`
	Description string            `json:"description" mapstructure:"description"`
	Positions   map[string]string `json:"positions" mapstructure:"positions"`
}

type ContextDocument struct {
	// RequiresEnv is a variable name or a list of them.
	RequiresEnv any `json:"requires_env" mapstructure:"requires_env"`
}

type MetaDocument struct {
	Environment EnvironmentDocument `json:"environment" mapstructure:"environment"`
}

type EnvironmentDocument struct {
	Requires []string `json:"requires" mapstructure:"requires"`
	Optional []string `json:"optional" mapstructure:"optional"`
	Captures []string `json:"captures" mapstructure:"captures"`
}
