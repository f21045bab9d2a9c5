package compiler

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/ali/internal/dto"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/registry"
)

// Error reports why a rule set could not be compiled.
type Error struct {
	RuleSet string
	Section string
	Err     error
}

func (e *Error) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("rule set %q: %v", e.RuleSet, e.Err)
	}
	return fmt.Sprintf("rule set %q: %s: %v", e.RuleSet, e.Section, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Parser is responsible for converting raw plugin documents into rule sets.
type Parser struct {
	callbacks *registry.Registry
}

// NewParser creates a parser. Callback names referenced by rule sets are
// checked against callbacks; a nil registry rejects every callback.
func NewParser(callbacks *registry.Registry) *Parser {
	return &Parser{callbacks: callbacks}
}

// Parse decodes data (YAML or JSON) and compiles it. name is used when the
// document does not declare one.
func (p *Parser) Parse(name string, data []byte) (*domain.RuleSet, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &Error{RuleSet: name, Err: fmt.Errorf("failed to parse document: %w", err)}
	}
	if raw == nil {
		return nil, &Error{RuleSet: name, Err: fmt.Errorf("empty document")}
	}

	doc, err := Decode(raw)
	if err != nil {
		return nil, &Error{RuleSet: name, Err: err}
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return p.Compile(doc)
}

// Decode maps a generic document onto the typed rule-set document.
func Decode(raw map[string]any) (*dto.RuleSetDocument, error) {
	var doc dto.RuleSetDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(normalize(raw)); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// normalize turns the map[any]any values some decoders produce into map[string]any.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}

// Compile converts a decoded document into an immutable rule set.
func (p *Parser) Compile(doc *dto.RuleSetDocument) (*domain.RuleSet, error) {
	c := &compilation{parser: p, name: doc.Name}
	rs := &domain.RuleSet{
		Name:        doc.Name,
		Version:     doc.Version,
		Description: doc.Description,
		Services:    copyStrings(doc.Services),
		Requires:    append([]string(nil), doc.Requires...),
	}

	steps := []func() error{
		func() (err error) { rs.Vocabulary, err = c.vocabulary(doc.Vocabulary); return },
		func() (err error) { rs.Grammar, err = c.grammar(doc.Grammar); return },
		func() (err error) { rs.Expectations, err = c.expectations(doc.Expectations); return },
		func() (err error) { rs.Inference, err = c.inference(doc.Inference); return },
		func() (err error) { rs.Expansions, err = c.expansions("expansions", doc.Expansions); return },
		func() (err error) { rs.Commands, err = c.commands(doc.Commands); return },
		func() (err error) { rs.Provides, err = c.provides(doc.Provides); return },
		func() (err error) { rs.Activation.RequiresEnv, err = stringList(doc.Context.RequiresEnv); return },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	rs.Validation = domain.ValidationRules{
		AllowedParams:     upperKeys(doc.Validation.AllowedParams),
		AllowedDirections: directionTable(doc.Validation.AllowedDirections),
	}

	env := doc.Metadata.Environment
	rs.CaptureEnv = dedupe(append(append(append([]string(nil), env.Requires...), env.Optional...), env.Captures...))

	return rs, nil
}

type compilation struct {
	parser *Parser
	name   string
}

func (c *compilation) fail(section string, format string, args ...any) error {
	return &Error{RuleSet: c.name, Section: section, Err: fmt.Errorf(format, args...)}
}

func (c *compilation) vocabulary(doc dto.VocabularyDocument) (domain.Vocabulary, error) {
	v := domain.Vocabulary{
		Verbs:      upperAll(doc.Verbs),
		Objects:    upperAll(doc.Objects),
		Directions: lowerAll(doc.Directions),
		Clauses:    upperAll(doc.Clauses),
	}
	if len(doc.VerbAliases) > 0 {
		v.VerbAliases = make(map[string]string, len(doc.VerbAliases))
		for alias, canonical := range doc.VerbAliases {
			v.VerbAliases[strings.ToUpper(alias)] = strings.ToUpper(canonical)
		}
	}

	for i, entry := range doc.TargetPatterns {
		switch val := entry.(type) {
		case string:
			v.TargetPatterns = append(v.TargetPatterns, domain.TargetPattern{Literal: val})
		case map[string]any:
			src, _ := val["regex"].(string)
			if src == "" {
				return v, c.fail("vocabulary", "target_patterns[%d]: missing regex", i)
			}
			re, err := regexp.Compile(src)
			if err != nil {
				return v, c.fail("vocabulary", "target_patterns[%d]: %v", i, err)
			}
			v.TargetPatterns = append(v.TargetPatterns, domain.TargetPattern{Regex: re})
		default:
			return v, c.fail("vocabulary", "target_patterns[%d]: unsupported entry %T", i, entry)
		}
	}
	return v, nil
}

func (c *compilation) grammar(doc map[string]dto.GrammarDocument) (map[string]domain.GrammarRule, error) {
	if len(doc) == 0 {
		return nil, nil
	}
	rules := make(map[string]domain.GrammarRule, len(doc))
	for _, field := range sortedKeys(doc) {
		g := doc[field]
		transform, err := caseTransform(g.Transform)
		if err != nil {
			return nil, c.fail("grammar", "%s: %v", field, err)
		}

		kinds := 0
		for _, set := range []bool{g.Pattern != "", len(g.Values) > 0, g.Type != ""} {
			if set {
				kinds++
			}
		}
		if kinds > 1 {
			return nil, c.fail("grammar", "%s: pattern, values and type are mutually exclusive", field)
		}

		switch {
		case g.Pattern != "":
			re, err := regexp.Compile(`^(?:` + g.Pattern + `)$`)
			if err != nil {
				return nil, c.fail("grammar", "%s: %v", field, err)
			}
			rules[field] = domain.PatternRule{Source: g.Pattern, Pattern: re, Transform: transform}
		case len(g.Values) > 0:
			rules[field] = domain.EnumRule{
				Values:        append([]string(nil), g.Values...),
				CaseSensitive: g.CaseSensitive,
				Transform:     transform,
			}
		case g.Type != "":
			typ, err := primitiveType(g.Type)
			if err != nil {
				return nil, c.fail("grammar", "%s: %v", field, err)
			}
			rules[field] = domain.PrimitiveRule{Type: typ, Transform: transform}
		default:
			return nil, c.fail("grammar", "%s: needs one of pattern, values or type", field)
		}
	}
	return rules, nil
}

func caseTransform(s string) (domain.CaseTransform, error) {
	switch t := domain.CaseTransform(strings.ToLower(s)); t {
	case domain.TransformNone, domain.TransformLower, domain.TransformUpper, domain.TransformOriginal:
		return t, nil
	case "none":
		return domain.TransformNone, nil
	default:
		return "", fmt.Errorf("unknown transform %q", s)
	}
}

func primitiveType(s string) (domain.PrimitiveType, error) {
	switch strings.ToLower(s) {
	case "string", "str":
		return domain.PrimitiveString, nil
	case "integer", "int":
		return domain.PrimitiveInteger, nil
	case "float", "number":
		return domain.PrimitiveFloat, nil
	default:
		return "", fmt.Errorf("unknown type %q", s)
	}
}

func (c *compilation) expectations(doc map[string][]any) (map[string][]domain.Expectation, error) {
	if len(doc) == 0 {
		return nil, nil
	}
	out := make(map[string][]domain.Expectation, len(doc))
	for _, verb := range sortedKeys(doc) {
		list := make([]domain.Expectation, 0, len(doc[verb]))
		for i, entry := range doc[verb] {
			exp, err := expectation(entry)
			if err != nil {
				return nil, c.fail("expectations", "%s[%d]: %v", verb, i, err)
			}
			list = append(list, exp)
		}
		out[strings.ToUpper(verb)] = list
	}
	return out, nil
}

func expectation(entry any) (domain.Expectation, error) {
	switch val := entry.(type) {
	case string:
		field, optional := strings.CutSuffix(val, "?")
		if field == "" {
			return domain.Expectation{}, fmt.Errorf("empty field name")
		}
		return domain.Expectation{Field: field, Optional: optional}, nil
	case map[string]any:
		var doc dto.ExpectationDocument
		if err := mapstructure.WeakDecode(val, &doc); err != nil {
			return domain.Expectation{}, err
		}
		if doc.Field == "" {
			return domain.Expectation{}, fmt.Errorf("missing field")
		}
		field, optional := strings.CutSuffix(doc.Field, "?")
		_, hasDefault := val["default"]
		return domain.Expectation{
			Field:      field,
			Optional:   doc.Optional || optional,
			Default:    domain.NormalizeValue(doc.Default),
			HasDefault: hasDefault,
			Clause:     strings.ToUpper(doc.Clause),
		}, nil
	default:
		return domain.Expectation{}, fmt.Errorf("unsupported entry %T", entry)
	}
}

func (c *compilation) inference(doc any) ([]domain.InferenceRule, error) {
	if m, ok := doc.(map[string]any); ok {
		doc = m["rules"]
	}
	if doc == nil {
		return nil, nil
	}
	var docs []dto.InferenceDocument
	if err := mapstructure.WeakDecode(doc, &docs); err != nil {
		return nil, c.fail("inference", "%v", err)
	}

	rules := make([]domain.InferenceRule, 0, len(docs))
	for i, d := range docs {
		when, err := Conditions(d.When)
		if err != nil {
			return nil, c.fail("inference", "rule %d: %v", i, err)
		}
		rules = append(rules, domain.InferenceRule{
			When:      when,
			Set:       assignments(d.Set),
			Transform: assignments(d.Transform),
		})
	}
	return rules, nil
}

func assignments(m map[string]any) []domain.Assignment {
	if len(m) == 0 {
		return nil
	}
	out := make([]domain.Assignment, 0, len(m))
	for _, field := range sortedKeys(m) {
		out = append(out, domain.Assignment{Field: field, Value: domain.NormalizeValue(m[field])})
	}
	return out
}

// Conditions compiles a condition-set, sorted by field name.
func Conditions(m map[string]any) (domain.ConditionSet, error) {
	if len(m) == 0 {
		return nil, nil
	}
	set := make(domain.ConditionSet, 0, len(m))
	for _, field := range sortedKeys(m) {
		cond, err := condition(field, m[field])
		if err != nil {
			return nil, err
		}
		set = append(set, cond)
	}
	return set, nil
}

func condition(field string, expected any) (domain.Condition, error) {
	if field == domain.CondElse && domain.Truthy(expected) {
		return domain.Condition{Field: field, Op: domain.OpElse}, nil
	}

	switch val := expected.(type) {
	case nil:
		return domain.Condition{Field: field, Op: domain.OpAbsent}, nil
	case string:
		switch val {
		case domain.CondPresent:
			return domain.Condition{Field: field, Op: domain.OpPresent}, nil
		case domain.CondAbsent, domain.CondNull:
			return domain.Condition{Field: field, Op: domain.OpAbsent}, nil
		}
		if strings.HasPrefix(val, "^") {
			re, err := regexp.Compile(val)
			if err != nil {
				return domain.Condition{}, fmt.Errorf("%s: %w", field, err)
			}
			return domain.Condition{Field: field, Op: domain.OpRegex, Pattern: re}, nil
		}
		return domain.Condition{Field: field, Op: domain.OpEquals, Value: val}, nil
	case []any:
		opts := make([]any, len(val))
		for i, o := range val {
			opts[i] = domain.NormalizeValue(o)
		}
		return domain.Condition{Field: field, Op: domain.OpOneOf, Options: opts}, nil
	default:
		return domain.Condition{Field: field, Op: domain.OpEquals, Value: domain.NormalizeValue(val)}, nil
	}
}

func (c *compilation) expansions(section string, doc map[string]dto.ExpansionDocument) ([]domain.Expansion, error) {
	if len(doc) == 0 {
		return nil, nil
	}
	out := make([]domain.Expansion, 0, len(doc))
	for _, name := range sortedKeys(doc) {
		exp, err := c.expansion(name, doc[name])
		if err != nil {
			return nil, c.fail(section, "%s: %v", name, err)
		}
		out = append(out, exp)
	}
	return out, nil
}

func (c *compilation) expansion(name string, d dto.ExpansionDocument) (domain.Expansion, error) {
	base := domain.ExpansionBase{Name: name}
	if d.Default != nil {
		base.Default = domain.Stringify(d.Default)
	}

	switch strings.ToLower(d.Type) {
	case "", string(domain.ExpandMap):
		return domain.MapExpansion{ExpansionBase: base, Field: d.Field, Mappings: d.Mappings}, nil
	case string(domain.ExpandEnv):
		if d.Var == "" {
			return nil, fmt.Errorf("env expansion needs var")
		}
		return domain.EnvExpansion{ExpansionBase: base, Var: d.Var}, nil
	case string(domain.ExpandShell), "command":
		cmd := firstNonEmpty(d.Cmd, d.Command)
		if cmd == "" {
			return nil, fmt.Errorf("shell expansion needs cmd")
		}
		return domain.ShellExpansion{ExpansionBase: base, Command: cmd}, nil
	case string(domain.ExpandFormat):
		return domain.FormatExpansion{ExpansionBase: base, Template: d.Template}, nil
	case string(domain.ExpandCallback), "plugin":
		name := firstNonEmpty(d.Callback, d.Function)
		if err := c.checkCallback(name); err != nil {
			return nil, err
		}
		return domain.CallbackExpansion{ExpansionBase: base, Callback: name}, nil
	default:
		return nil, fmt.Errorf("unknown expansion type %q", d.Type)
	}
}

func (c *compilation) checkCallback(name string) error {
	if name == "" {
		return fmt.Errorf("missing callback name")
	}
	if !c.parser.callbacks.Has(name) {
		return fmt.Errorf("callback not registered: %s", name)
	}
	return nil
}

func (c *compilation) commands(docs []dto.CommandDocument) ([]domain.CommandTemplate, error) {
	out := make([]domain.CommandTemplate, 0, len(docs))
	for i, d := range docs {
		section := fmt.Sprintf("commands[%d]", i)

		match, err := Conditions(d.Match)
		if err != nil {
			return nil, c.fail(section, "%v", err)
		}
		needs, err := stringList(d.Needs)
		if err != nil {
			return nil, c.fail(section, "needs: %v", err)
		}

		cmd := domain.CommandTemplate{
			Match: match,
			Exec:  d.Exec,
			Needs: needs,
			Hints: domain.Hints{
				Position: firstNonEmpty(d.Hints.Position, d.PaneHints.Position),
				Size:     firstNonEmpty(d.Hints.Size, d.PaneHints.Size),
			},
			Callback: d.Callback,
		}
		if cmd.Callback == "" && strings.EqualFold(d.Type, "plugin") {
			cmd.Callback = d.Function
		}
		if cmd.Callback != "" {
			if err := c.checkCallback(cmd.Callback); err != nil {
				return nil, c.fail(section, "%v", err)
			}
		} else if cmd.Exec == "" {
			return nil, c.fail(section, "needs exec or callback")
		}

		if cmd.Expansions, err = c.expansions(section+".expansions", d.Expansions); err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	return out, nil
}

func (c *compilation) provides(doc any) (map[string]domain.ServiceProvider, error) {
	out := make(map[string]domain.ServiceProvider)
	switch val := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		for _, item := range val {
			name := domain.Stringify(item)
			out[name] = domain.ServiceProvider{Name: name}
		}
	case map[string]any:
		for _, name := range sortedKeys(val) {
			var p dto.ProviderDocument
			if err := mapstructure.WeakDecode(val[name], &p); err != nil {
				return nil, c.fail("provides", "%s: %v", name, err)
			}
			out[name] = domain.ServiceProvider{Name: name, Exec: p.Exec, Positions: p.Positions}
		}
	default:
		return nil, c.fail("provides", "unsupported value %T", doc)
	}
	return out, nil
}

// stringList accepts a single string or a list of them.
func stringList(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if val == "" {
			return nil, nil
		}
		return []string{val}, nil
	case []string:
		return val, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func upperKeys(m map[string][]string) map[string][]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[strings.ToUpper(k)] = append([]string(nil), v...)
	}
	return out
}

// directionTable uppercases the object keys and lowercases the directions,
// matching how objects and directions are extracted from commands.
func directionTable(m map[string][]string) map[string][]string {
	out := upperKeys(m)
	for k, v := range out {
		out[k] = lowerAll(v)
	}
	return out
}

func upperAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}

func lowerAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func copyStrings(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
