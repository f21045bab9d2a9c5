/*
Package ports defines the driven ports (interfaces) of the ALI interpreter.

These interfaces decouple the rule-processing pipeline from external
implementations, so rule sets can come from disk, an embedded filesystem or
memory, and history can live in a file or in Redis.

# Key Interfaces

  - RuleSetLoader: Lists and retrieves raw rule-set definitions.
  - Watchable: Notifies about changes in the rule-set backend (hot reload).
  - ShellRunner: Captures the output of a shell command (shell expansions).
  - CommandExecutor: Runs a resolved command with the caller's terminal.
  - HistoryStore: Persists interpreted commands.
  - DispatchObserver: Receives the outcome of every dispatched command.
*/
package ports
