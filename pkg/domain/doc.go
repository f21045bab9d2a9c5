/*
Package domain contains the core data model of the ali interpreter.

It defines the rule-set entities loaded from plugins and the transient state
that flows through the pipeline for a single command. This package is kept
pure and free of I/O, following Hexagonal Architecture principles: loaders
build RuleSets, the runtime reads them, and nothing here executes anything.

# Key Entities

  - RuleSet: One plugin's vocabulary, grammar, expectations, inference,
    validation, command templates, expansions and services.
  - GrammarRule: Sealed sum type over PatternRule, EnumRule and PrimitiveRule.
  - Condition: A single field predicate; a ConditionSet is their conjunction.
  - CommandTemplate: A match condition-set plus an exec template or callback.
  - Expansion: Sealed sum type over the computed values merged before
    template substitution.
  - FieldState: The per-command mapping of extracted and derived fields.
*/
package domain
