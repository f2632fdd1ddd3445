package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"clubreport/connection"
	"clubreport/services"
)

func StartScheduler() {
	c := cron.New(cron.WithSeconds())

	FB, err := connection.FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}

	// 00:05 every day: summarize yesterday's reports per leader.
	_, err = c.AddFunc("0 5 0 * * *", func() {
		log.Println("Running daily summary job...")
		yesterday := time.Now().AddDate(0, 0, -1)
		if err := services.WriteDailySummaries(context.Background(), FB, yesterday); err != nil {
			log.Printf("Daily summary job failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}

	c.Start()
	log.Println("Scheduler started")

	select {}
}
