package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "meetings.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func nullStr(v string) sql.NullString {
	return sql.NullString{String: v, Valid: true}
}

func TestOpenAndPing(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestSelectCandidates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	seed := []Meeting{
		{Title: "no doc", DocumentType: "none"},
		{Title: "file pending", DocumentType: "file", FilePath: nullStr("a.txt")},
		{Title: "url done", DocumentType: "url", DocumentURL: nullStr("https://x"), AISummary: nullStr("done")},
		{Title: "paste pending", DocumentType: "paste", PastedText: nullStr("notes")},
	}
	for _, m := range seed {
		if _, err := s.Insert(ctx, m); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	t.Run("pending only, newest first", func(t *testing.T) {
		got, err := s.SelectCandidates(ctx, 10, false)
		if err != nil {
			t.Fatalf("SelectCandidates: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len=%d, want 2", len(got))
		}
		if got[0].Title != "paste pending" || got[1].Title != "file pending" {
			t.Fatalf("order=[%q, %q]", got[0].Title, got[1].Title)
		}
	})

	t.Run("force includes summarized", func(t *testing.T) {
		got, err := s.SelectCandidates(ctx, 10, true)
		if err != nil {
			t.Fatalf("SelectCandidates: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len=%d, want 3", len(got))
		}
	})

	t.Run("limit", func(t *testing.T) {
		got, err := s.SelectCandidates(ctx, 1, false)
		if err != nil {
			t.Fatalf("SelectCandidates: %v", err)
		}
		if len(got) != 1 || got[0].Title != "paste pending" {
			t.Fatalf("got=%+v", got)
		}
	})

	t.Run("no limit", func(t *testing.T) {
		got, err := s.SelectCandidates(ctx, 0, true)
		if err != nil {
			t.Fatalf("SelectCandidates: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len=%d, want 3", len(got))
		}
	})
}

func TestUpdateSummary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.Insert(ctx, Meeting{Title: "m", DocumentType: "file", FilePath: nullStr("m.txt")})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := s.UpdateSummary(ctx, id, "minutes body", "- summary"); err != nil {
		t.Fatalf("UpdateSummary: %v", err)
	}
	m, err := s.GetMeeting(ctx, id)
	if err != nil {
		t.Fatalf("GetMeeting: %v", err)
	}
	if m.MinutesMD.String != "minutes body" || m.AISummary.String != "- summary" {
		t.Fatalf("meeting=%+v", m)
	}

	err = s.UpdateSummary(ctx, id+999, "x", "y")
	if err == nil || !strings.Contains(err.Error(), "no such meeting") {
		t.Fatalf("err=%v", err)
	}
}
