package service

import (
	"context"
	"testing"

	"vidqa/internal/modkit/repokit"
	perr "vidqa/internal/platform/errors"
	"vidqa/internal/platform/store"
	"vidqa/internal/services/api/videos/domain"
	"vidqa/internal/services/api/videos/repo"
)

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (fakeTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (fakeTx) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return fn(fakeTx{})
}

type fakeRepo struct {
	video *repo.RowVideo
	items []repo.RowItem

	gotLimit  int
	gotOffset int
}

func (f *fakeRepo) Count(context.Context, string, string, string) (int, error) { return 1, nil }

func (f *fakeRepo) List(_ context.Context, _, _, _ string, limit, offset int) ([]repo.RowVideo, error) {
	f.gotLimit, f.gotOffset = limit, offset
	if f.video == nil {
		return nil, nil
	}
	return []repo.RowVideo{*f.video}, nil
}

func (f *fakeRepo) Get(_ context.Context, youtubeID string) (*repo.RowVideo, error) {
	if f.video == nil || f.video.YouTubeID != youtubeID {
		return nil, perr.NotFoundf("video %s not found", youtubeID)
	}
	return f.video, nil
}

func (f *fakeRepo) Items(context.Context, string) ([]repo.RowItem, error) { return f.items, nil }

func newSvc(f *fakeRepo) *Svc {
	return New(fakeTx{}, repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return f }))
}

func testRow() *repo.RowVideo {
	return &repo.RowVideo{
		ID:            "0c0ffee0-aaaa-bbbb-cccc-000000000001",
		YouTubeID:     "dQw4w9WgXcQ",
		URL:           "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Title:         "Q&A 142",
		Status:        "processed",
		Description:   "04:20 What is grace?",
		QuestionCount: 1,
	}
}

func TestListPagingDefaults(t *testing.T) {
	f := &fakeRepo{video: testRow()}
	s := newSvc(f)

	vids, total, err := s.List(context.Background(), domain.ListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(vids) != 1 {
		t.Fatalf("total=%d len=%d", total, len(vids))
	}
	if f.gotLimit != 20 || f.gotOffset != 0 {
		t.Fatalf("limit=%d offset=%d, want defaults 20/0", f.gotLimit, f.gotOffset)
	}
	if vids[0].QuestionCount != 1 || vids[0].Status != "processed" {
		t.Fatalf("video = %+v", vids[0])
	}
}

func TestListPageOffset(t *testing.T) {
	f := &fakeRepo{}
	s := newSvc(f)

	_, _, err := s.List(context.Background(), domain.ListInput{Page: 4, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if f.gotLimit != 10 || f.gotOffset != 30 {
		t.Fatalf("limit=%d offset=%d, want 10/30", f.gotLimit, f.gotOffset)
	}
}

func TestGetDetail(t *testing.T) {
	f := &fakeRepo{
		video: testRow(),
		items: []repo.RowItem{{
			TimestampText: "4:20",
			Seconds:       260,
			Question:      "What is grace?",
			Answer:        "grace is unmerited favor",
			Tags:          []string{"grace"},
		}},
	}
	s := newSvc(f)

	det, err := s.Get(context.Background(), domain.GetInput{YouTubeID: "dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if det.Description != "04:20 What is grace?" {
		t.Fatalf("description = %q", det.Description)
	}
	if len(det.Items) != 1 || det.Items[0].Seconds != 260 || det.Items[0].Tags[0] != "grace" {
		t.Fatalf("items = %+v", det.Items)
	}
}

func TestGetMissingVideo(t *testing.T) {
	s := newSvc(&fakeRepo{})

	_, err := s.Get(context.Background(), domain.GetInput{YouTubeID: "aaaaaaaaaaa"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
