package services

import (
	"context"
	"math"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"clubreport/model"
)

// ScorePolicy maps a member's total shot count to the value plotted on the
// contribution chart. Policies must be monotonic non-decreasing and defined
// for a total of zero.
type ScorePolicy func(totalShots int64) float64

func IdentityScore(totalShots int64) float64 {
	return float64(totalShots)
}

func SqrtScore(totalShots int64) float64 {
	return 10 * math.Sqrt(float64(totalShots))
}

func LogBlendScore(totalShots int64) float64 {
	v := float64(totalShots)
	return 20*math.Log1p(v/10) + math.Sqrt(v)
}

// PolicyByName selects a policy for the chart endpoint; unknown names fall
// back to the log blend.
func PolicyByName(name string) ScorePolicy {
	switch name {
	case "identity":
		return IdentityScore
	case "sqrt":
		return SqrtScore
	default:
		return LogBlendScore
	}
}

type Contribution struct {
	MemberName string  `json:"memberName"`
	Score      float64 `json:"score"`
}

// shotTotal returns a member's shot count summed over all their reports.
type shotTotal func(ctx context.Context, uid string) (int64, error)

// scoreMembers builds one contribution entry per member in directory order.
// Members with no reports score policy(0).
func scoreMembers(ctx context.Context, members []model.User, totals shotTotal, policy ScorePolicy) ([]Contribution, error) {
	out := make([]Contribution, len(members))
	var wg sync.WaitGroup
	errs := make(chan error, len(members))

	for i, m := range members {
		wg.Add(1)
		go func(i int, m model.User) {
			defer wg.Done()
			total, err := totals(ctx, m.UID)
			if err != nil {
				errs <- err
				return
			}
			out[i] = Contribution{MemberName: m.DisplayName(), Score: policy(total)}
		}(i, m)
	}

	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}
	return out, nil
}

func sumShots(ctx context.Context, fb *firestore.Client, uid string) (int64, error) {
	iter := fb.Collection("reports").Where("userId", "==", uid).Documents(ctx)
	defer iter.Stop()

	var total int64
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, err
		}
		total += model.ReportFromDoc(doc).Shots
	}
	return total, nil
}

// Contributions computes the chart data for every member under leaderID,
// summing shots across all time and mapping the sums through policy.
func Contributions(ctx context.Context, fb *firestore.Client, leaderID string, policy ScorePolicy) ([]Contribution, error) {
	members, err := ListMembers(ctx, fb, leaderID)
	if err != nil {
		return nil, err
	}

	return scoreMembers(ctx, members, func(ctx context.Context, uid string) (int64, error) {
		return sumShots(ctx, fb, uid)
	}, policy)
}
