package notifier

import (
	"log/slog"

	"jobtrack/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes new postings to the given logger as structured
// messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that only logs. It is the fallback
// when no webhook is configured.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify writes one line per posting. Always returns nil; logging does
// not fail.
func (n *LogNotifier) Notify(postings []model.Posting) error {
	for _, p := range postings {
		n.logger.Info("new posting",
			"company", p.Company,
			"title", p.Title,
			"location", p.Location,
			"source", p.Source,
			"url", p.URL,
		)
	}
	return nil
}
