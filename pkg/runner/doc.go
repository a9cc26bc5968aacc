/*
Package runner implements the interactive console and the output handlers used
to present computations.

The console asks for the five-tuple M = (Σ, Q, δ, S, F), one production rule at a
time, and then decides words until the user types "exit". Typing "<<" starts a new
definition. Traces are presented through a TraceHandler so the same loop can drive
a terminal or a JSON-Lines consumer.

# Key Components

  - Console: the read-define-compute loop.
  - TraceHandler: decouples how traces, prompts and errors are presented.
  - TextHandler: δ* notation for terminals, with optional pacing and colors.
  - JSONHandler: one JSON record per checkpoint and outcome.

# Usage

	c := runner.NewConsole(os.Stdin, runner.NewTextHandler(os.Stdout),
		runner.WithSeparator(","),
	)
	if err := c.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
