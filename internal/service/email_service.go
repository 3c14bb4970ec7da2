package service

import "context"

// EmailNotifier delivers identity-lifecycle mail. Callers dispatch these
// fire-and-forget: a delivery failure is logged, never surfaced to the
// user-facing operation.
type EmailNotifier interface {
	SendActivationEmail(ctx context.Context, to, name, activationURL string) error
	SendActivationSuccessEmail(ctx context.Context, to, name string) error
	SendVerificationCode(ctx context.Context, to, name, code string) error
}
