package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famledger/famledger/internal/models"
)

func TestRenderEmailBody(t *testing.T) {
	reminders := []*models.Reminder{
		{Description: "Electricity", Amount: decimal.NewFromInt(250),
			DueDate: time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)},
		{Description: "Water & <Sewage>", Amount: decimal.RequireFromString("99.50"),
			DueDate: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
	}

	body, err := renderEmailBody(reminders, "₹")
	if err != nil {
		t.Fatalf("renderEmailBody: %v", err)
	}

	for _, want := range []string{"Electricity", "2024-06-12", "₹250.00", "2024-06-15", "₹99.50"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "<Sewage>") {
		t.Error("description must be HTML-escaped")
	}
	if !strings.Contains(body, "Water &amp; &lt;Sewage&gt;") {
		t.Error("expected escaped description in body")
	}
}

func TestBuildTelegramDigest(t *testing.T) {
	reminders := []*models.Reminder{
		{Description: "Rent", Amount: decimal.NewFromInt(12000),
			DueDate: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)},
	}

	text := buildTelegramDigest(reminders, "₹")
	if !strings.Contains(text, "Rent") || !strings.Contains(text, "2024-07-01") || !strings.Contains(text, "₹12000.00") {
		t.Fatalf("unexpected digest: %q", text)
	}
	if !strings.Contains(text, "(1 due soon)") {
		t.Fatalf("digest missing count: %q", text)
	}
}
