package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/askohli/boardscout/internal/model"
)

func TestFormatTelegramMessage_TitlePresent(t *testing.T) {
	rec := model.JobRecord{
		Link:             "https://job-boards.greenhouse.io/acme/jobs/123",
		Company:          "acme",
		RoleMatched:      "data analyst",
		LocationSearched: "Boston",
		FoundAt:          time.Now(),
		Title:            "Data Analyst <Growth>",
		Snippet:          model.NoData,
	}

	msg := formatTelegramMessage(rec)

	if !strings.Contains(msg, "<b>Data Analyst &lt;Growth&gt;</b>") {
		t.Errorf("title not escaped into headline: %q", msg)
	}
	if !strings.Contains(msg, rec.Link) {
		t.Errorf("message missing posting link: %q", msg)
	}
	if !strings.Contains(msg, "data analyst") {
		t.Errorf("message missing role: %q", msg)
	}
}

func TestFormatTelegramMessage_NoDataTitleFallsBackToCompany(t *testing.T) {
	rec := model.JobRecord{
		Link:             "https://job-boards.greenhouse.io/acme/jobs/123",
		Company:          "acme",
		RoleMatched:      model.UnknownRole,
		LocationSearched: "US",
		Title:            model.NoData,
		Snippet:          model.NoData,
	}

	msg := formatTelegramMessage(rec)

	if !strings.Contains(msg, "<b>Acme</b>") {
		t.Errorf("headline should fall back to the company: %q", msg)
	}
	if strings.Contains(msg, model.NoData) {
		t.Errorf("no-data sentinel leaked into the message: %q", msg)
	}
}
