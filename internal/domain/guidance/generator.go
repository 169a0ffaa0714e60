package guidance

import "context"

// TextGenerator is the outbound port to a large language model: prompt
// in, text out. Calls may fail or time out; callers always have a
// deterministic fallback and never hold engine locks across a call.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
