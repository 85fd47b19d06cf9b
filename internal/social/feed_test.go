package social

import (
	"testing"
	"time"

	"github.com/gramflow/gramflow/internal/models"
)

func TestSortForFeed(t *testing.T) {
	t100 := time.Unix(100, 0)
	t200 := time.Unix(200, 0)

	tests := []struct {
		name     string
		posts    []*models.Post
		expected []int64 // post IDs in expected order
	}{
		{
			name:     "empty input",
			posts:    []*models.Post{},
			expected: []int64{},
		},
		{
			name: "newest first",
			posts: []*models.Post{
				{ID: 1, CreatedAt: t100},
				{ID: 2, CreatedAt: t200},
			},
			expected: []int64{2, 1},
		},
		{
			name: "equal timestamps break by ascending post id",
			posts: []*models.Post{
				{ID: 9, CreatedAt: t100},
				{ID: 3, CreatedAt: t100},
				{ID: 7, CreatedAt: t100},
			},
			expected: []int64{3, 7, 9},
		},
		{
			name: "mixed timestamps and ties",
			posts: []*models.Post{
				{ID: 5, CreatedAt: t100},
				{ID: 1, CreatedAt: t200},
				{ID: 4, CreatedAt: t200},
				{ID: 2, CreatedAt: t100},
			},
			expected: []int64{1, 4, 2, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sortForFeed(tt.posts)
			if len(tt.posts) != len(tt.expected) {
				t.Fatalf("got %d posts, want %d", len(tt.posts), len(tt.expected))
			}
			for i, post := range tt.posts {
				if post.ID != tt.expected[i] {
					t.Errorf("position %d: got post %d, want %d", i, post.ID, tt.expected[i])
				}
			}
		})
	}
}

func TestSortForFeedIsDeterministic(t *testing.T) {
	build := func() []*models.Post {
		return []*models.Post{
			{ID: 3, CreatedAt: time.Unix(100, 0)},
			{ID: 1, CreatedAt: time.Unix(100, 0)},
			{ID: 2, CreatedAt: time.Unix(200, 0)},
		}
	}

	first := build()
	second := build()
	sortForFeed(first)
	sortForFeed(second)

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("ordering differs at position %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestBuildPostViews(t *testing.T) {
	authors := map[int64]models.AccountSummary{
		10: {ID: 10, Handle: "alice", DisplayName: "Alice"},
		20: {ID: 20, Handle: "bob"},
	}

	posts := []*models.Post{
		{
			ID:        2,
			AccountID: 20,
			Body:      "no images here",
			CreatedAt: time.Unix(200, 0),
		},
		{
			ID:        1,
			AccountID: 10,
			Body:      "two images",
			CreatedAt: time.Unix(100, 0),
			Images: []models.Image{
				{PostID: 1, StorageRef: "img/a.jpg", Position: 0},
				{PostID: 1, StorageRef: "img/b.jpg", Position: 1},
			},
		},
		{
			ID:        3,
			AccountID: 99, // author no longer exists
			Body:      "orphaned",
			CreatedAt: time.Unix(300, 0),
		},
	}

	views := buildPostViews(posts, authors)

	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}

	if views[0].PostID != 2 || views[0].Author.Handle != "bob" {
		t.Errorf("view 0: got post %d by %q, want post 2 by bob", views[0].PostID, views[0].Author.Handle)
	}
	if len(views[0].ImageRefs) != 0 {
		t.Errorf("view 0: got %d image refs, want 0", len(views[0].ImageRefs))
	}

	if views[1].PostID != 1 || views[1].Author.DisplayName != "Alice" {
		t.Errorf("view 1: got post %d by %q, want post 1 by Alice", views[1].PostID, views[1].Author.DisplayName)
	}
	if len(views[1].ImageRefs) != 2 || views[1].ImageRefs[0] != "img/a.jpg" || views[1].ImageRefs[1] != "img/b.jpg" {
		t.Errorf("view 1: image refs out of order: %v", views[1].ImageRefs)
	}
}
