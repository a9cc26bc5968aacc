package nfa_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/pkg/domain"
)

func exampleDefinition() domain.Definition {
	return domain.Definition{
		Alphabet: []string{"a", "b"},
		States:   []string{"q0", "q1", "qf"},
		Rules: []domain.Rule{
			domain.NewRule("q0", "a", "q0", "q1"),
			domain.NewRule("q0", "b", "q0"),
			domain.NewRule("q1", "a", "-"),
			domain.NewRule("q1", "b", "qf"),
			domain.NewRule("qf", "a", "-"),
			domain.NewRule("qf", "b", "-"),
		},
		Initial: "q0",
		Finals:  []string{"qf"},
	}
}

// ExampleNew decides a few words against an automaton accepting words ending in "ab".
func ExampleNew() {
	engine, err := nfa.New(exampleDefinition())
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, word := range []string{"ab", "aa", "babab"} {
		verdict, err := engine.AcceptsString(ctx, word, "")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %s\n", word, verdict)
	}
	// Output:
	// ab: accepted
	// aa: rejected
	// babab: accepted
}

// ExampleEngine_Step feeds one symbol at a time and shows an undefined transition.
func ExampleEngine_Step() {
	engine, err := nfa.New(exampleDefinition())
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	active, _ := engine.Step(ctx, engine.Start(), "a")
	fmt.Println(active)

	_, err = engine.Step(ctx, domain.NewStateSet("q1"), "a")
	fmt.Println(errors.Is(err, domain.ErrUndefinedTransition))
	// Output:
	// {q0, q1}
	// true
}

// ExampleEngine_Trace prints every active set visited while reading a word.
func ExampleEngine_Trace() {
	engine, err := nfa.New(exampleDefinition())
	if err != nil {
		log.Fatal(err)
	}

	trace, err := engine.Trace(context.Background(), []string{"a", "b"})
	if err != nil {
		log.Fatal(err)
	}
	for _, cp := range trace.Checkpoints {
		fmt.Println(cp.Index, cp.Active)
	}
	fmt.Println(trace.Verdict)
	// Output:
	// 0 {q0}
	// 1 {q0, q1}
	// 2 {q0, qf}
	// accepted
}
