/*
Package dsl provides a fluent builder for constructing automata in Go code.

It is an alternative to YAML or JSON definition files, useful for generated
automata, unit tests, and examples that should not depend on the filesystem.
The builder only collects the five-tuple; validation happens in Build, with
the same rules and errors as a loaded definition.

Example usage:

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/nfa/pkg/dsl"
	)

	func main() {
		b := dsl.New("ends-with-ab").Alphabet("a", "b")

		b.State("q0").Initial().
			On("a", "q0", "q1").
			On("b", "q0")

		b.State("q1").
			On("a").
			On("b", "q2")

		b.State("q2").Final()

		eng, err := b.Engine()
		if err != nil {
			panic(err)
		}
		verdict, _ := eng.AcceptsString(context.Background(), "aab", "")
		fmt.Println(verdict)
	}
*/
package dsl
