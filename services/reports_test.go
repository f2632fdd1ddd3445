package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"clubreport/model"
)

func TestChunkIDs(t *testing.T) {
	ids := make([]string, 23)
	for i := range ids {
		ids[i] = fmt.Sprintf("uid-%02d", i)
	}

	chunks := chunkIDs(ids, windowChunkSize)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 10 || len(chunks[1]) != 10 || len(chunks[2]) != 3 {
		t.Fatalf("unexpected chunk sizes: %d %d %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}

	var merged []string
	for _, c := range chunks {
		merged = append(merged, c...)
	}
	if len(merged) != len(ids) {
		t.Fatalf("partitioning changed cardinality: %d != %d", len(merged), len(ids))
	}
	for i, id := range merged {
		if id != ids[i] {
			t.Fatalf("id %d lost or reordered: %s != %s", i, id, ids[i])
		}
	}
}

func TestChunkIDsSmallSet(t *testing.T) {
	chunks := chunkIDs([]string{"a", "b"}, windowChunkSize)
	if len(chunks) != 1 || len(chunks[0]) != 2 {
		t.Fatalf("expected one chunk of two, got %v", chunks)
	}
	if chunkIDs(nil, windowChunkSize) != nil {
		t.Fatal("expected no chunks for empty input")
	}
}

// The fanned-out window query must behave like one unbounded IN query: the
// union of the chunks, no lost and no duplicated records.
func TestListWindowChunksUnion(t *testing.T) {
	ids := make([]string, 25)
	for i := range ids {
		ids[i] = fmt.Sprintf("uid-%02d", i)
	}

	fetch := func(ctx context.Context, chunk []string) ([]model.Report, error) {
		var reports []model.Report
		for _, id := range chunk {
			reports = append(reports, model.Report{ID: "report-" + id, UserID: id})
		}
		return reports, nil
	}

	all, err := listWindowChunks(context.Background(), ids, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(ids) {
		t.Fatalf("expected %d reports, got %d", len(ids), len(all))
	}

	seen := make(map[string]bool)
	for _, r := range all {
		if seen[r.ID] {
			t.Fatalf("duplicate report %s", r.ID)
		}
		seen[r.ID] = true
	}
	for _, id := range ids {
		if !seen["report-"+id] {
			t.Fatalf("report for %s lost", id)
		}
	}
}

// A failing chunk must not discard the results of chunks that succeeded: the
// partial union is returned together with the error.
func TestListWindowChunksPartialFailure(t *testing.T) {
	ids := make([]string, 30)
	for i := range ids {
		ids[i] = fmt.Sprintf("uid-%02d", i)
	}

	boom := errors.New("chunk query failed")
	fetch := func(ctx context.Context, chunk []string) ([]model.Report, error) {
		if chunk[0] == "uid-10" {
			return nil, boom
		}
		var reports []model.Report
		for _, id := range chunk {
			reports = append(reports, model.Report{ID: "report-" + id, UserID: id})
		}
		return reports, nil
	}

	all, err := listWindowChunks(context.Background(), ids, fetch)
	if err == nil {
		t.Fatal("expected an error from the failing chunk")
	}
	if len(all) != 20 {
		t.Fatalf("expected the 20 reports of the successful chunks, got %d", len(all))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })
	for _, r := range all {
		if r.UserID >= "uid-10" && r.UserID <= "uid-19" {
			t.Fatalf("report %s belongs to the failed chunk", r.ID)
		}
	}
}

func TestValidateReport(t *testing.T) {
	now := time.Now()
	valid := model.Report{
		UserID:    "m1",
		StartTime: now,
		EndTime:   now.Add(2 * time.Hour),
		Location:  "Tokyo",
		Shots:     50,
	}
	if err := ValidateReport(valid); err != nil {
		t.Fatalf("valid report rejected: %v", err)
	}

	zeroShots := valid
	zeroShots.Shots = 0
	if err := ValidateReport(zeroShots); err != nil {
		t.Fatalf("zero shots should be accepted: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*model.Report)
	}{
		{"start equals end", func(r *model.Report) { r.EndTime = r.StartTime }},
		{"start after end", func(r *model.Report) { r.EndTime = r.StartTime.Add(-time.Hour) }},
		{"negative shots", func(r *model.Report) { r.Shots = -1 }},
		{"empty location", func(r *model.Report) { r.Location = "" }},
		{"missing times", func(r *model.Report) { r.StartTime = time.Time{}; r.EndTime = time.Time{} }},
	}
	for _, tc := range cases {
		r := valid
		tc.mutate(&r)
		if err := ValidateReport(r); err == nil {
			t.Fatalf("%s: expected a validation error", tc.name)
		}
	}
}

// An invalid report must be rejected before any remote call: with a nil
// client the create has to fail on validation alone, without panicking.
func TestCreateReportRejectsBeforeWrite(t *testing.T) {
	now := time.Now()
	bad := model.Report{
		UserID:    "m1",
		StartTime: now.Add(time.Hour),
		EndTime:   now,
		Location:  "Tokyo",
		Shots:     10,
	}
	if _, err := CreateReport(context.Background(), nil, bad); err == nil {
		t.Fatal("expected validation error")
	}

	bad.EndTime = now.Add(2 * time.Hour)
	bad.Shots = -5
	if _, err := CreateReport(context.Background(), nil, bad); err == nil {
		t.Fatal("expected validation error for negative shots")
	}
}

func TestPaginate(t *testing.T) {
	reports := make([]model.Report, 7)
	for i := range reports {
		reports[i] = model.Report{ID: fmt.Sprintf("r%d", i)}
	}

	page, total := Paginate(reports, 1, 3)
	if total != 3 {
		t.Fatalf("expected 3 pages, got %d", total)
	}
	if len(page) != 3 || page[0].ID != "r0" {
		t.Fatalf("unexpected first page: %v", page)
	}

	page, _ = Paginate(reports, 3, 3)
	if len(page) != 1 || page[0].ID != "r6" {
		t.Fatalf("unexpected last page: %v", page)
	}

	page, _ = Paginate(reports, 4, 3)
	if len(page) != 0 {
		t.Fatalf("out-of-range page should be empty, got %v", page)
	}

	page, total = Paginate(nil, 1, 3)
	if total != 0 || len(page) != 0 {
		t.Fatalf("empty input should yield no pages, got %d pages", total)
	}
}

type fakeNameResolver struct {
	names map[string]string
	err   error
}

func (f *fakeNameResolver) DisplayNames(ctx context.Context, uids []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

// A report whose owner no longer resolves must stay in the listing under the
// placeholder name instead of failing the whole listing.
func TestAttachNamesUnknownUser(t *testing.T) {
	resolver := &fakeNameResolver{names: map[string]string{"m1": "Yamada Taro"}}
	reports := []model.Report{
		{ID: "r1", UserID: "m1"},
		{ID: "r2", UserID: "ghost"},
	}

	entries, err := AttachNames(context.Background(), resolver, reports)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected both reports in the listing, got %d", len(entries))
	}
	if entries[0].MemberName != "Yamada Taro" {
		t.Fatalf("unexpected name: %s", entries[0].MemberName)
	}
	if entries[1].MemberName != UnknownUserName {
		t.Fatalf("expected placeholder name, got %s", entries[1].MemberName)
	}
}
