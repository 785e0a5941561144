package llm

import "context"

type purposeKey struct{}

// PurposeQuestion tags question generation requests in the audit log.
const PurposeQuestion = "question-gen"

const purposeUnknown = "unknown"

// WithPurpose labels requests made with ctx for the audit log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return purposeUnknown
}
