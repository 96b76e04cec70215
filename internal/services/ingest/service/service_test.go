package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"vidqa/internal/modkit/repokit"
	perr "vidqa/internal/platform/errors"
	"vidqa/internal/services/ingest/domain"
)

// fakeTx satisfies repokit.TxRunner without a database; Tx just runs fn
// against itself so binders receive a non-nil Queryer
type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (f fakeTx) Tx(_ context.Context, fn func(q repokit.Queryer) error) error   { return fn(f) }

type fakeStore struct {
	videos      map[string]domain.Metadata
	transcripts map[string]string
	items       map[string][]domain.ClassifiedMatch
	processed   map[string]bool
	failQA      bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		videos:      map[string]domain.Metadata{},
		transcripts: map[string]string{},
		items:       map[string][]domain.ClassifiedMatch{},
		processed:   map[string]bool{},
	}
}

func (f *fakeStore) UpsertVideo(_ context.Context, meta domain.Metadata, _ string) (string, error) {
	f.videos[meta.YouTubeID] = meta
	return "vid-" + meta.YouTubeID, nil
}

func (f *fakeStore) UpsertTranscript(_ context.Context, videoID string, _ []byte, fullText string) error {
	f.transcripts[videoID] = fullText
	return nil
}

// UpsertQAItem replaces a row sharing the (video, seconds) key, mirroring the
// repo's conflict target
func (f *fakeStore) UpsertQAItem(_ context.Context, videoID string, cm domain.ClassifiedMatch) error {
	if f.failQA {
		return perr.DBf("boom")
	}
	for i, old := range f.items[videoID] {
		if old.Seconds == cm.Seconds {
			f.items[videoID][i] = cm
			return nil
		}
	}
	f.items[videoID] = append(f.items[videoID], cm)
	return nil
}

func (f *fakeStore) IsProcessed(_ context.Context, youtubeID string) (bool, error) {
	return f.processed[youtubeID], nil
}

type fakeQueue struct {
	jobs   []domain.Job
	nextID int64
}

func (f *fakeQueue) Enqueue(_ context.Context, youtubeID string) (int64, error) {
	f.nextID++
	f.jobs = append(f.jobs, domain.Job{ID: f.nextID, YouTubeID: youtubeID, Status: domain.JobPending})
	return f.nextID, nil
}

func (f *fakeQueue) ClaimNext(context.Context) (*domain.Job, error) {
	for i := range f.jobs {
		if f.jobs[i].Status == domain.JobPending {
			f.jobs[i].Status = domain.JobProcessing
			j := f.jobs[i]
			return &j, nil
		}
	}
	return nil, nil
}

func (f *fakeQueue) Complete(_ context.Context, jobID int64, errText string) error {
	for i := range f.jobs {
		if f.jobs[i].ID == jobID {
			if errText == "" {
				f.jobs[i].Status = domain.JobDone
			} else {
				f.jobs[i].Status = domain.JobFailed
				f.jobs[i].LastError = errText
			}
		}
	}
	return nil
}

func (f *fakeQueue) Stats(context.Context) (domain.QueueStats, error) {
	var s domain.QueueStats
	for _, j := range f.jobs {
		switch j.Status {
		case domain.JobPending:
			s.Pending++
		case domain.JobProcessing:
			s.Processing++
		case domain.JobDone:
			s.Done++
		case domain.JobFailed:
			s.Failed++
		}
	}
	return s, nil
}

type fakeMeta struct {
	md  *domain.Metadata
	err error
}

func (f fakeMeta) Metadata(context.Context, string) (*domain.Metadata, error) { return f.md, f.err }

type fakeScripts struct {
	segs []domain.Segment
	err  error
}

func (f fakeScripts) Transcript(context.Context, string) ([]domain.Segment, error) {
	return f.segs, f.err
}

type fakePlaylist struct {
	ids []string
	err error
}

func (f fakePlaylist) PlaylistVideoIDs(context.Context, string) ([]string, error) {
	return f.ids, f.err
}

type fakeClass struct {
	cls  *domain.Classification
	err  error
	on   bool
	hits int
}

func (f *fakeClass) Enabled() bool { return f.on }

func (f *fakeClass) Classify(context.Context, string, string) (*domain.Classification, error) {
	f.hits++
	return f.cls, f.err
}

const testVideoID = "dQw4w9WgXcQ"

func testMeta() *domain.Metadata {
	return &domain.Metadata{
		YouTubeID:   testVideoID,
		Title:       "Q&A 142",
		Description: "04:20 What is grace?\n05:30 What is faith?",
	}
}

func testSegs() []domain.Segment {
	return []domain.Segment{
		{Start: 260, Duration: 30, Text: "grace is unmerited favor"},
		{Start: 330, Duration: 30, Text: "faith is trust"},
	}
}

func newService(
	t *testing.T,
	cfg Config,
	meta domain.MetadataPort,
	scripts domain.TranscriptPort,
	class domain.ClassifierPort,
	st *fakeStore,
	q *fakeQueue,
) *Service {
	t.Helper()
	s := New(
		cfg,
		meta,
		scripts,
		fakePlaylist{},
		class,
		fakeTx{},
		repokit.BindFunc[domain.StorageRepo](func(repokit.Queryer) domain.StorageRepo { return st }),
		repokit.BindFunc[domain.QueueRepo](func(repokit.Queryer) domain.QueueRepo { return q }),
	)
	s.sleep = func(context.Context, time.Duration) {}
	return s
}

func TestProcessVideoHappyPath(t *testing.T) {
	st := newFakeStore()
	s := newService(t, Config{}, fakeMeta{md: testMeta()}, fakeScripts{segs: testSegs()}, nil, st, &fakeQueue{})

	res := s.ProcessVideo(context.Background(), "https://www.youtube.com/watch?v="+testVideoID)
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.YouTubeID != testVideoID {
		t.Fatalf("youtube id = %q", res.YouTubeID)
	}
	if res.QuestionsFound != 2 || res.QuestionsSaved != 2 {
		t.Fatalf("found=%d saved=%d", res.QuestionsFound, res.QuestionsSaved)
	}
	if _, ok := st.videos[testVideoID]; !ok {
		t.Fatal("video not persisted")
	}
	items := st.items["vid-"+testVideoID]
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	if items[0].Question != "What is grace?" || items[0].Seconds != 260 {
		t.Fatalf("first item = %+v", items[0])
	}
	if !strings.Contains(st.transcripts["vid-"+testVideoID], "grace is unmerited favor") {
		t.Fatal("full text not persisted")
	}
}

func TestProcessVideoReprocessIdempotent(t *testing.T) {
	st := newFakeStore()
	s := newService(t, Config{}, fakeMeta{md: testMeta()}, fakeScripts{segs: testSegs()}, nil, st, &fakeQueue{})

	first := s.ProcessVideo(context.Background(), testVideoID)
	if !first.Success {
		t.Fatalf("first run: %+v", first)
	}
	second := s.ProcessVideo(context.Background(), testVideoID)
	if !second.Success {
		t.Fatalf("second run: %+v", second)
	}

	if first.QuestionsFound != second.QuestionsFound || first.QuestionsSaved != second.QuestionsSaved {
		t.Fatalf("counts diverged: first=%+v second=%+v", first, second)
	}

	// same rows, no duplicates at the (video, seconds) key
	items := st.items["vid-"+testVideoID]
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 after reprocess", len(items))
	}
	seen := map[int]bool{}
	for _, it := range items {
		if seen[it.Seconds] {
			t.Fatalf("duplicate row at %d seconds", it.Seconds)
		}
		seen[it.Seconds] = true
	}
	if !seen[260] || !seen[330] {
		t.Fatalf("row set changed: %+v", items)
	}
}

func TestProcessVideoBadReference(t *testing.T) {
	s := newService(t, Config{}, fakeMeta{}, fakeScripts{}, nil, newFakeStore(), &fakeQueue{})

	res := s.ProcessVideo(context.Background(), "not a video")
	if res.Success || res.Error == "" {
		t.Fatalf("expected failure, got %+v", res)
	}
}

func TestProcessVideoMetadataFailure(t *testing.T) {
	st := newFakeStore()
	s := newService(t, Config{}, fakeMeta{err: perr.Unavailablef("api down")}, fakeScripts{segs: testSegs()}, nil, st, &fakeQueue{})

	res := s.ProcessVideo(context.Background(), testVideoID)
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "failed to fetch video metadata" {
		t.Fatalf("error = %q", res.Error)
	}
	if len(st.videos) != 0 {
		t.Fatal("nothing should persist on metadata failure")
	}
}

func TestProcessVideoTranscriptFailure(t *testing.T) {
	st := newFakeStore()
	s := newService(t, Config{}, fakeMeta{md: testMeta()}, fakeScripts{err: perr.NotFoundf("no track")}, nil, st, &fakeQueue{})

	res := s.ProcessVideo(context.Background(), testVideoID)
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "failed to fetch transcript" {
		t.Fatalf("error = %q", res.Error)
	}
	if len(st.videos) != 0 {
		t.Fatal("nothing should persist on transcript failure")
	}
}

func TestProcessVideoNoMarkersWarns(t *testing.T) {
	md := testMeta()
	md.Description = "just a description, no codes here"
	st := newFakeStore()
	s := newService(t, Config{}, fakeMeta{md: md}, fakeScripts{segs: testSegs()}, nil, st, &fakeQueue{})

	res := s.ProcessVideo(context.Background(), testVideoID)
	if !res.Success {
		t.Fatalf("zero markers should still succeed, got %+v", res)
	}
	if res.QuestionsFound != 0 || res.QuestionsSaved != 0 {
		t.Fatalf("found=%d saved=%d", res.QuestionsFound, res.QuestionsSaved)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "no timestamps") {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	if _, ok := st.videos[testVideoID]; !ok {
		t.Fatal("video row should persist even without markers")
	}
}

func TestProcessVideoClassificationFailureAbsorbed(t *testing.T) {
	st := newFakeStore()
	cl := &fakeClass{on: true, err: perr.Unavailablef("model busy")}
	s := newService(t, Config{}, fakeMeta{md: testMeta()}, fakeScripts{segs: testSegs()}, cl, st, &fakeQueue{})

	res := s.ProcessVideo(context.Background(), testVideoID)
	if !res.Success {
		t.Fatalf("classification failure must not fail the run: %+v", res)
	}
	if res.QuestionsSaved != 2 {
		t.Fatalf("saved = %d", res.QuestionsSaved)
	}
	for _, it := range st.items["vid-"+testVideoID] {
		if it.Class != nil {
			t.Fatalf("expected unlabeled item, got %+v", it.Class)
		}
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestProcessVideoClassificationLabels(t *testing.T) {
	st := newFakeStore()
	cl := &fakeClass{on: true, cls: &domain.Classification{Category: "Theology", Subcategory: "Soteriology", Tags: []string{"grace"}}}
	s := newService(t, Config{}, fakeMeta{md: testMeta()}, fakeScripts{segs: testSegs()}, cl, st, &fakeQueue{})

	res := s.ProcessVideo(context.Background(), testVideoID)
	if !res.Success {
		t.Fatalf("got %+v", res)
	}
	if cl.hits != 2 {
		t.Fatalf("classifier hits = %d", cl.hits)
	}
	items := st.items["vid-"+testVideoID]
	if items[0].Class == nil || items[0].Class.Category != "Theology" {
		t.Fatalf("item not labeled: %+v", items[0])
	}
}

func TestProcessVideoSkipClassification(t *testing.T) {
	cl := &fakeClass{on: true, cls: &domain.Classification{Category: "Theology"}}
	s := newService(t, Config{SkipClassification: true}, fakeMeta{md: testMeta()}, fakeScripts{segs: testSegs()}, cl, newFakeStore(), &fakeQueue{})

	if res := s.ProcessVideo(context.Background(), testVideoID); !res.Success {
		t.Fatalf("got %+v", res)
	}
	if cl.hits != 0 {
		t.Fatalf("classifier should not be called, hits = %d", cl.hits)
	}
}

func TestProcessVideoPersistFailure(t *testing.T) {
	st := newFakeStore()
	st.failQA = true
	s := newService(t, Config{}, fakeMeta{md: testMeta()}, fakeScripts{segs: testSegs()}, nil, st, &fakeQueue{})

	res := s.ProcessVideo(context.Background(), testVideoID)
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "failed to save results" {
		t.Fatalf("error = %q", res.Error)
	}
}

func TestRunBatchCountsAndSkips(t *testing.T) {
	st := newFakeStore()
	st.processed["aaaaaaaaaaa"] = true
	s := newService(t, Config{}, fakeMeta{md: testMeta()}, fakeScripts{segs: testSegs()}, nil, st, &fakeQueue{})

	var seen []domain.ProcessResult
	stats := s.RunBatch(
		context.Background(),
		[]string{"aaaaaaaaaaa", testVideoID, "bad ref"},
		domain.BatchOptions{SkipProcessed: true},
		func(r domain.ProcessResult) { seen = append(seen, r) },
	)

	if stats.Total != 3 || stats.Skipped != 1 || stats.Processed != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.Successful != 1 || stats.Failed != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.TotalQuestions != 2 {
		t.Fatalf("total questions = %d", stats.TotalQuestions)
	}
	if len(stats.Errors) != 1 || stats.Errors[0].YouTubeID != "bad ref" {
		t.Fatalf("errors = %+v", stats.Errors)
	}
	if len(seen) != 2 {
		t.Fatalf("observed %d results", len(seen))
	}
}

func TestRunBatchLimitAndDryRun(t *testing.T) {
	st := newFakeStore()
	s := newService(t, Config{}, fakeMeta{md: testMeta()}, fakeScripts{segs: testSegs()}, nil, st, &fakeQueue{})

	stats := s.RunBatch(
		context.Background(),
		[]string{testVideoID, testVideoID, testVideoID},
		domain.BatchOptions{Limit: 2, DryRun: true},
		nil,
	)
	if stats.Processed != 2 || stats.Successful != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if len(st.videos) != 0 {
		t.Fatal("dry run must not persist")
	}
}

func TestCheckPreviewsCleanedQuestions(t *testing.T) {
	md := testMeta()
	md.Description = "04:20 Q: what is grace\n05:30 2) what is faith?"
	s := newService(t, Config{}, fakeMeta{md: md}, fakeScripts{}, nil, newFakeStore(), &fakeQueue{})

	out, err := s.Check(context.Background(), testVideoID)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if out.Title != "Q&A 142" || len(out.Markers) != 2 {
		t.Fatalf("got %+v", out)
	}
	if out.Markers[0].Question != "what is grace?" {
		t.Fatalf("question = %q", out.Markers[0].Question)
	}
	if out.Markers[0].TimeText != "4:20" || out.Markers[0].Seconds != 260 {
		t.Fatalf("marker = %+v", out.Markers[0])
	}
}

func TestQueueRunNext(t *testing.T) {
	st := newFakeStore()
	q := &fakeQueue{}
	s := newService(t, Config{}, fakeMeta{md: testMeta()}, fakeScripts{segs: testSegs()}, nil, st, q)

	if _, err := s.Enqueue(context.Background(), testVideoID); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	res, err := s.RunNext(context.Background())
	if err != nil {
		t.Fatalf("RunNext: %v", err)
	}
	if res == nil || !res.Success {
		t.Fatalf("got %+v", res)
	}
	if q.jobs[0].Status != domain.JobDone {
		t.Fatalf("job status = %s", q.jobs[0].Status)
	}

	res, err = s.RunNext(context.Background())
	if err != nil || res != nil {
		t.Fatalf("empty queue should return nil, nil; got %v %v", res, err)
	}

	stats, err := s.Stats(context.Background())
	if err != nil || stats.Done != 1 {
		t.Fatalf("stats = %+v err = %v", stats, err)
	}
}

func TestQueueRunNextRecordsFailure(t *testing.T) {
	q := &fakeQueue{}
	s := newService(t, Config{}, fakeMeta{err: perr.Unavailablef("down")}, fakeScripts{}, nil, newFakeStore(), q)

	if _, err := s.Enqueue(context.Background(), testVideoID); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	res, err := s.RunNext(context.Background())
	if err != nil {
		t.Fatalf("RunNext: %v", err)
	}
	if res.Success {
		t.Fatal("expected failed result")
	}
	if q.jobs[0].Status != domain.JobFailed || q.jobs[0].LastError == "" {
		t.Fatalf("job = %+v", q.jobs[0])
	}
}

func TestScanPlaylistQueuesUnprocessed(t *testing.T) {
	st := newFakeStore()
	st.processed["bbbbbbbbbbb"] = true
	q := &fakeQueue{}
	s := newService(t, Config{}, fakeMeta{md: testMeta()}, fakeScripts{segs: testSegs()}, nil, st, q)
	s.lists = fakePlaylist{ids: []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc"}}

	queued, err := s.ScanPlaylist(context.Background(), "PLxyz")
	if err != nil {
		t.Fatalf("ScanPlaylist: %v", err)
	}
	if queued != 2 {
		t.Fatalf("queued = %d, want 2", queued)
	}
	if len(q.jobs) != 2 || q.jobs[0].YouTubeID != "aaaaaaaaaaa" || q.jobs[1].YouTubeID != "ccccccccccc" {
		t.Fatalf("jobs = %+v", q.jobs)
	}
}
