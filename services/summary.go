package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"clubreport/model"
)

// DailySummary is written once per leader per day by the nightly job.
type DailySummary struct {
	Leader      string    `firestore:"leader"`
	Date        string    `firestore:"date"`
	ReportCount int       `firestore:"reportCount"`
	TotalShots  int64     `firestore:"totalShots"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

func listAdmins(ctx context.Context, fb *firestore.Client) ([]model.User, error) {
	iter := fb.Collection("users").Where("role", "==", model.RoleAdmin).Documents(ctx)
	defer iter.Stop()

	var admins []model.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		admins = append(admins, model.UserFromDoc(doc))
	}
	return admins, nil
}

// WriteDailySummaries computes per-leader report counts for day and stores
// them under dailySummaries/{leader_date}. A failure for one leader is logged
// and does not stop the others.
func WriteDailySummaries(ctx context.Context, fb *firestore.Client, day time.Time) error {
	admins, err := listAdmins(ctx, fb)
	if err != nil {
		return err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)
	date := dayStart.Format("2006-01-02")

	for _, admin := range admins {
		members, err := ListMembers(ctx, fb, admin.UID)
		if err != nil {
			log.Printf("daily summary: listing members of %s: %v", admin.UID, err)
			continue
		}

		reports, err := ListReportsByWindow(ctx, fb, MemberIDs(members), dayStart, dayEnd)
		if err != nil {
			log.Printf("daily summary: window query for %s: %v", admin.UID, err)
			continue
		}

		summary := DailySummary{
			Leader:      admin.UID,
			Date:        date,
			ReportCount: len(reports),
			CreatedAt:   time.Now(),
		}
		for _, r := range reports {
			summary.TotalShots += r.Shots
		}

		docID := fmt.Sprintf("%s_%s", admin.UID, date)
		if _, err := fb.Collection("dailySummaries").Doc(docID).Set(ctx, summary); err != nil {
			log.Printf("daily summary: writing %s: %v", docID, err)
		}
	}
	return nil
}
