package model

import (
	"time"

	"cloud.google.com/go/firestore"
)

// Report is a document in the "reports" collection. All fields except
// Comments are immutable after creation; Comments is written by the owning
// member's admin. Leader is a denormalized copy of the member's leader at
// submission time and is informational only; window queries derive the
// member set from the users collection instead of trusting it.
type Report struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Leader    string    `json:"leader"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Location  string    `json:"location"`
	Shots     int64     `json:"shots"`
	Notes     string    `json:"notes"`
	Comments  string    `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r Report) Map() map[string]interface{} {
	return map[string]interface{}{
		"userId":    r.UserID,
		"leader":    r.Leader,
		"startTime": r.StartTime,
		"endTime":   r.EndTime,
		"location":  r.Location,
		"shots":     r.Shots,
		"notes":     r.Notes,
		"comments":  r.Comments,
		"createdAt": r.CreatedAt,
	}
}

// ReportFromData decodes a raw document into a Report, defaulting missing or
// mistyped fields (comments in particular are absent on older documents).
func ReportFromData(id string, data map[string]interface{}) Report {
	return Report{
		ID:        id,
		UserID:    stringField(data, "userId"),
		Leader:    stringField(data, "leader"),
		StartTime: timeField(data, "startTime"),
		EndTime:   timeField(data, "endTime"),
		Location:  stringField(data, "location"),
		Shots:     intField(data, "shots"),
		Notes:     stringField(data, "notes"),
		Comments:  stringField(data, "comments"),
		CreatedAt: timeField(data, "createdAt"),
	}
}

func ReportFromDoc(doc *firestore.DocumentSnapshot) Report {
	return ReportFromData(doc.Ref.ID, doc.Data())
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func timeField(data map[string]interface{}, key string) time.Time {
	if v, ok := data[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func intField(data map[string]interface{}, key string) int64 {
	switch v := data[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
