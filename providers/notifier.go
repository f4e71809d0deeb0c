package providers

import (
	"context"
	"log/slog"
)

// SlogNotifier writes notifications to the structured log. Stands in for
// the host notification capability; delivery and permission handling live
// outside this system.
type SlogNotifier struct{}

func NewSlogNotifier() *SlogNotifier {
	return &SlogNotifier{}
}

func (n *SlogNotifier) Notify(ctx context.Context, title, body string) error {
	slog.Info("weather alert", "title", title, "body", body)
	return nil
}
