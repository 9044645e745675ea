package classifier

import "context"

// Noop never produces a verdict. Reports created with it carry no automated
// analysis, which the priority engine treats as neutral.
type Noop struct{}

func (Noop) Classify(context.Context, string) (*Verdict, error) {
	return nil, nil
}
