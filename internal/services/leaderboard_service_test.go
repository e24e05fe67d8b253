package services

import (
	"context"
	"testing"
)

func TestGetLeaderboard(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("GET", "/quizzes/5/leaderboard", 200, `[{"id":2,"quiz_id":5,"user_id":8,"score":90,"username":"bob"},{"id":1,"quiz_id":5,"user_id":7,"score":40,"username":"ada"}]`)
	board, err := NewLeaderboardService(fb.client()).GetLeaderboard(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetLeaderboard error: %v", err)
	}
	if len(board) != 2 || board[0].Username != "bob" || board[1].Score != 40 {
		t.Fatalf("unexpected leaderboard %+v", board)
	}
}

func TestGetLeaderboardEmpty(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("GET", "/quizzes/6/leaderboard", 200, `[]`)
	board, err := NewLeaderboardService(fb.client()).GetLeaderboard(context.Background(), "6")
	if err != nil {
		t.Fatalf("GetLeaderboard error: %v", err)
	}
	if len(board) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", board)
	}
}
