package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"clubreport/model"
)

// Firestore caps "in" predicates at 10 values, so window queries over larger
// member sets are partitioned into chunks of this size.
const windowChunkSize = 10

// DefaultPageSize is the fixed page size of the member history view.
const DefaultPageSize = 3

// UnknownUserName is rendered for reports whose userId no longer resolves to
// a user document.
const UnknownUserName = "unknown user"

// ValidateReport checks a report before any remote write. The message names
// the offending field.
func ValidateReport(r model.Report) error {
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return errors.New("start time and end time are required")
	}
	if !r.StartTime.Before(r.EndTime) {
		return errors.New("start time must be before end time")
	}
	if r.Location == "" {
		return errors.New("location is required")
	}
	if r.Shots < 0 {
		return errors.New("shots must not be negative")
	}
	return nil
}

// CreateReport validates and writes a new report document. Nothing is written
// when validation fails. Comments always start empty and createdAt is set
// here, not by the caller.
func CreateReport(ctx context.Context, fb *firestore.Client, r model.Report) (string, error) {
	if err := ValidateReport(r); err != nil {
		return "", err
	}

	r.Comments = ""
	r.CreatedAt = time.Now()

	ref := fb.Collection("reports").NewDoc()
	if _, err := ref.Set(ctx, r.Map()); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}

type windowFetch func(ctx context.Context, ids []string) ([]model.Report, error)

// listWindowChunks fans the chunk queries out concurrently and joins them.
// Every chunk that succeeded contributes to the merged result even when
// another chunk fails; in that case the partial union is returned together
// with the first error seen.
func listWindowChunks(ctx context.Context, ids []string, fetch windowFetch) ([]model.Report, error) {
	chunks := chunkIDs(ids, windowChunkSize)

	var wg sync.WaitGroup
	results := make(chan []model.Report, len(chunks))
	errs := make(chan error, len(chunks))

	for _, chunk := range chunks {
		wg.Add(1)
		go func(chunk []string) {
			defer wg.Done()
			reports, err := fetch(ctx, chunk)
			if err != nil {
				errs <- err
				return
			}
			results <- reports
		}(chunk)
	}

	wg.Wait()
	close(results)
	close(errs)

	var all []model.Report
	for reports := range results {
		all = append(all, reports...)
	}
	if err := <-errs; err != nil {
		return all, err
	}
	return all, nil
}

// ListReportsByWindow returns every report owned by one of memberIDs whose
// startTime falls in [dayStart, dayEnd], both bounds inclusive.
func ListReportsByWindow(ctx context.Context, fb *firestore.Client, memberIDs []string, dayStart, dayEnd time.Time) ([]model.Report, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	return listWindowChunks(ctx, memberIDs, func(ctx context.Context, chunk []string) ([]model.Report, error) {
		iter := fb.Collection("reports").
			Where("userId", "in", chunk).
			Where("startTime", ">=", dayStart).
			Where("startTime", "<=", dayEnd).
			Documents(ctx)
		defer iter.Stop()

		var reports []model.Report
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, err
			}
			reports = append(reports, model.ReportFromDoc(doc))
		}
		return reports, nil
	})
}

// ListReportsByUser returns all of one member's reports, newest first.
func ListReportsByUser(ctx context.Context, fb *firestore.Client, userID string) ([]model.Report, error) {
	iter := fb.Collection("reports").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var reports []model.Report
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		reports = append(reports, model.ReportFromDoc(doc))
	}
	return reports, nil
}

// Paginate slices reports into fixed-size pages. Pages are 1-based; an
// out-of-range page yields an empty slice. Returns the page and the total
// page count.
func Paginate(reports []model.Report, page, size int) ([]model.Report, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (len(reports) + size - 1) / size
	if page < 1 || page > totalPages {
		return nil, totalPages
	}
	start := (page - 1) * size
	end := start + size
	if end > len(reports) {
		end = len(reports)
	}
	return reports[start:end], totalPages
}

// GetReport is a point lookup on the reports collection.
func GetReport(ctx context.Context, fb *firestore.Client, reportID string) (*model.Report, error) {
	doc, err := fb.Collection("reports").Doc(reportID).Get(ctx)
	if err != nil {
		return nil, err
	}
	report := model.ReportFromDoc(doc)
	return &report, nil
}

// UpdateReportComment rewrites the comments field of one report. Last write
// wins; no lock is taken on concurrent edits.
func UpdateReportComment(ctx context.Context, fb *firestore.Client, reportID, text string) error {
	_, err := fb.Collection("reports").Doc(reportID).Update(ctx, []firestore.Update{
		{Path: "comments", Value: text},
	})
	return err
}

// NameResolver resolves member display names for a set of uids in one batched
// read.
type NameResolver interface {
	DisplayNames(ctx context.Context, uids []string) (map[string]string, error)
}

type firestoreNameResolver struct {
	fb *firestore.Client
}

func NewNameResolver(fb *firestore.Client) NameResolver {
	return &firestoreNameResolver{fb: fb}
}

func (r *firestoreNameResolver) DisplayNames(ctx context.Context, uids []string) (map[string]string, error) {
	seen := make(map[string]struct{}, len(uids))
	refs := make([]*firestore.DocumentRef, 0, len(uids))
	for _, uid := range uids {
		if uid == "" {
			continue
		}
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		refs = append(refs, r.fb.Collection("users").Doc(uid))
	}

	docs, err := r.fb.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		user := model.UserFromDoc(doc)
		if name := user.DisplayName(); name != "" {
			names[doc.Ref.ID] = name
		}
	}
	return names, nil
}

// ReportEntry is a report joined with its owner's display name for listings.
type ReportEntry struct {
	model.Report
	MemberName string `json:"memberName"`
}

// AttachNames joins each report with its owner's display name. A report whose
// owner no longer exists stays in the listing under a placeholder name.
func AttachNames(ctx context.Context, resolver NameResolver, reports []model.Report) ([]ReportEntry, error) {
	uids := make([]string, 0, len(reports))
	for _, r := range reports {
		uids = append(uids, r.UserID)
	}

	names, err := resolver.DisplayNames(ctx, uids)
	if err != nil {
		return nil, err
	}

	entries := make([]ReportEntry, 0, len(reports))
	for _, r := range reports {
		name, ok := names[r.UserID]
		if !ok {
			name = UnknownUserName
		}
		entries = append(entries, ReportEntry{Report: r, MemberName: name})
	}
	return entries, nil
}
