package model

import (
	"testing"
	"time"
)

func TestReportFromDataDefaults(t *testing.T) {
	start := time.Date(2024, 9, 29, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	r := ReportFromData("r1", map[string]interface{}{
		"userId":    "m1",
		"startTime": start,
		"endTime":   end,
		"location":  "Tokyo",
		"shots":     int64(50),
		"notes":     "clear skies",
		// comments absent, as on documents written before the field existed
	})

	if r.ID != "r1" || r.UserID != "m1" {
		t.Fatalf("identity fields wrong: %+v", r)
	}
	if !r.StartTime.Equal(start) || !r.EndTime.Equal(end) {
		t.Fatalf("timestamps wrong: %+v", r)
	}
	if r.Shots != 50 {
		t.Fatalf("shots wrong: %d", r.Shots)
	}
	if r.Comments != "" {
		t.Fatalf("missing comments should default to empty, got %q", r.Comments)
	}
	if r.Leader != "" {
		t.Fatalf("missing leader should default to empty, got %q", r.Leader)
	}
}

func TestReportFromDataMistypedFields(t *testing.T) {
	r := ReportFromData("r2", map[string]interface{}{
		"userId":   123,            // wrong type
		"shots":    float64(30),    // numbers may decode as float64
		"comments": []string{"no"}, // wrong type
	})

	if r.UserID != "" {
		t.Fatalf("mistyped userId should default to empty, got %q", r.UserID)
	}
	if r.Shots != 30 {
		t.Fatalf("float shots should convert, got %d", r.Shots)
	}
	if r.Comments != "" {
		t.Fatalf("mistyped comments should default to empty, got %q", r.Comments)
	}
	if !r.StartTime.IsZero() {
		t.Fatalf("missing startTime should be zero, got %v", r.StartTime)
	}
}

func TestUserFromDataAndDisplayName(t *testing.T) {
	u := UserFromData("m1", map[string]interface{}{
		"firstName": "Taro",
		"lastName":  "Yamada",
		"role":      "member",
		"leader":    "admin1",
		"grade":     "B4",
	})
	if u.DisplayName() != "Yamada Taro" {
		t.Fatalf("unexpected display name: %q", u.DisplayName())
	}
	if u.Leader != "admin1" || u.Role != RoleMember {
		t.Fatalf("fields wrong: %+v", u)
	}

	empty := UserFromData("m2", map[string]interface{}{})
	if empty.DisplayName() != "" {
		t.Fatalf("nameless user should have empty display name, got %q", empty.DisplayName())
	}
}
