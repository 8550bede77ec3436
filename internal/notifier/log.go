package notifier

import (
	"log/slog"

	"github.com/askohli/boardscout/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes newly discovered postings to the given logger as
// structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each record via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each record with company, role, location, and link.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(records []model.JobRecord) error {
	for _, rec := range records {
		args := []any{
			"company", rec.Company,
			"role", rec.RoleMatched,
			"location", rec.LocationSearched,
			"link", rec.Link,
		}
		if rec.Title != model.NoData {
			args = append(args, "title", rec.Title)
		}
		n.logger.Info("new posting", args...)
	}
	return nil
}
