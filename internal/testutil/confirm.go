package testutil

// ScriptedConfirmer answers confirmation prompts from a fixed script and
// records every prompt it was shown.
//
// Once the script is exhausted it answers Default.
type ScriptedConfirmer struct {
	Answers []bool
	Default bool
	Prompts []string
}

// Confirm returns the next scripted answer.
func (c *ScriptedConfirmer) Confirm(message string) bool {
	c.Prompts = append(c.Prompts, message)
	if len(c.Answers) == 0 {
		return c.Default
	}
	answer := c.Answers[0]
	c.Answers = c.Answers[1:]
	return answer
}

// Always returns a confirmer that answers yes to every prompt.
func Always() *ScriptedConfirmer {
	return &ScriptedConfirmer{Default: true}
}

// Never returns a confirmer that answers no to every prompt.
func Never() *ScriptedConfirmer {
	return &ScriptedConfirmer{Default: false}
}
