package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jose-valero/staff-tracker-bot/internal/infra/storage"
)

func newBoard(repo *fakeActivityRepo, gw *fakeGateway) *LeaderboardService {
	return NewLeaderboardService(repo, gw, Weights{Message: 1, ModAction: 5}, "g1")
}

func TestBuildOrdering(t *testing.T) {
	repo := newFakeActivityRepo()
	repo.records["A"] = storage.ActivityRecord{UserID: "A", Messages: 10}
	repo.records["B"] = storage.ActivityRecord{UserID: "B", Messages: 25}
	repo.records["C"] = storage.ActivityRecord{UserID: "C", Messages: 25}

	gw := newFakeGateway()
	gw.names = map[string]string{"A": "alice", "B": "bob", "C": "carol"}

	entries, err := newBoard(repo, gw).Build(context.Background(), 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}

	// B y C (25 pts) adyacentes arriba, A (10 pts) último; el orden
	// relativo entre empates no está garantizado entre corridas
	if entries[0].Points != 25 || entries[1].Points != 25 {
		t.Errorf("top two points = %d, %d, want 25, 25", entries[0].Points, entries[1].Points)
	}
	if entries[2].UserID != "A" {
		t.Errorf("last = %s, want A", entries[2].UserID)
	}
	top := map[string]bool{entries[0].UserID: true, entries[1].UserID: true}
	if !top["B"] || !top["C"] {
		t.Errorf("top two = %v, want {B, C}", top)
	}
}

func TestBuildTruncation(t *testing.T) {
	repo := newFakeActivityRepo()
	gw := newFakeGateway()
	for i := 1; i <= 15; i++ {
		id := fmt.Sprintf("u%02d", i)
		repo.records[id] = storage.ActivityRecord{UserID: id, Messages: i}
		gw.names[id] = id
	}

	entries, err := newBoard(repo, gw).Build(context.Background(), 10)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("len = %d, want 10", len(entries))
	}
	// los 10 scores más altos: 15..6
	if entries[0].Points != 15 {
		t.Errorf("entries[0].Points = %d, want 15", entries[0].Points)
	}
	if entries[9].Points != 6 {
		t.Errorf("entries[9].Points = %d, want 6", entries[9].Points)
	}
}

func TestBuildPlaceholderForLeftUser(t *testing.T) {
	repo := newFakeActivityRepo()
	repo.records["123"] = storage.ActivityRecord{UserID: "123", Messages: 1}
	gw := newFakeGateway() // sin nombre resuelto: el user ya no está

	entries, err := newBoard(repo, gw).Build(context.Background(), 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if entries[0].Name != "<Left user 123>" {
		t.Errorf("Name = %q, want placeholder", entries[0].Name)
	}
}

func TestBuildEmptyVsError(t *testing.T) {
	// vacío: (nil, nil)
	entries, err := newBoard(newFakeActivityRepo(), newFakeGateway()).Build(context.Background(), 0)
	if err != nil || entries != nil {
		t.Errorf("empty snapshot: got (%v, %v), want (nil, nil)", entries, err)
	}

	// storage caído: (nil, err) — distinguible del vacío
	repo := newFakeActivityRepo()
	repo.getAllErr = errors.New("connection refused")
	entries, err = newBoard(repo, newFakeGateway()).Build(context.Background(), 0)
	if err == nil {
		t.Error("storage error: want non-nil err")
	}
	if entries != nil {
		t.Errorf("storage error: entries = %v, want nil", entries)
	}
}

func TestRenderLines(t *testing.T) {
	lines := RenderLines([]Entry{
		{Name: "bob", Points: 30, Messages: 25, ModActions: 1},
		{Name: "<Left user 9>", Points: 10, Messages: 10},
	})
	want := []string{
		"**1. bob** — 30 pts (25 msgs, 1 actions)",
		"**2. <Left user 9>** — 10 pts (10 msgs, 0 actions)",
	}
	if len(lines) != len(want) {
		t.Fatalf("len = %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
