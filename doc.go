/*
Package ali is a declarative command interpreter. It turns short, human-oriented
commands such as "CREATE PANE LEFT" into executable shell commands, driven
entirely by rule sets loaded from plugin files.

# Concept

Every plugin declares a vocabulary (verbs, objects, directions), the grammar of
its fields, inference rules that fill in what the user left out, validation
allow-lists and an ordered list of command templates. A command travels through
a fixed pipeline:

	tokenize -> extract fields -> infer -> validate -> match command -> resolve template

Templates may reference fields, expansions (env, shell, format, map or Go
callbacks) and shared service fragments. Fragments compose in two passes, so
"{split_{direction}}" first becomes "{split_left}" and then "-h -b". A command
that needs a service is wrapped by the plugin that provides it.

# Usage

With no plugins directory the built-in plugins are used:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/ali"
	)

	func main() {
		ctx := context.Background()
		it, err := ali.New(ctx, "")
		if err != nil {
			log.Fatal(err)
		}

		cmd, err := it.Resolve(ctx, "CREATE PANE LEFT")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(cmd) // tmux split-window -h -b
	}

Dispatch folds failures into the string contract used by shell integrations:
the result is a command, or a message starting with "Error:" or "Unknown verb:".
*/
package ali
