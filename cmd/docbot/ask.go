package main

import (
	"fmt"

	"github.com/fwojciec/docbot"
)

// noAnswerMessage is printed when retrieval finds nothing to answer from.
const noAnswerMessage = "Sorry, I couldn't find anything relevant in the documentation."

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.Question)
	if docbot.ErrorCode(err) == docbot.ENOTFOUND {
		fmt.Fprintln(deps.Stdout, noAnswerMessage)
		return nil
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbot.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
