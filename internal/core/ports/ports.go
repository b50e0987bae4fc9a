package ports

import "context"

// VisionModel defines the port for image classification against a
// vision-capable language model.
type VisionModel interface {
	// Describe submits the raw image bytes together with the fixed keyword
	// instruction and returns the model's text response verbatim. Exactly one
	// attempt is made per call; retry policy belongs to the caller.
	Describe(ctx context.Context, image []byte) (string, error)
}
