package wordpress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// --- NewClient Tests ---

func TestNewClient_SiteHost(t *testing.T) {
	tests := []struct {
		site string
		want string
	}{
		{"example.wordpress.com", "example.wordpress.com"},
		{"https://example.wordpress.com", "example.wordpress.com"},
		{"https://example.wordpress.com/", "example.wordpress.com"},
		{" example.wordpress.com/ ", "example.wordpress.com"},
	}

	for _, tt := range tests {
		t.Run(tt.site, func(t *testing.T) {
			c, err := NewClient(tt.site)
			if err != nil {
				t.Fatalf("NewClient(%q) error = %v", tt.site, err)
			}
			if c.site != tt.want {
				t.Errorf("site = %q, want %q", c.site, tt.want)
			}
		})
	}
}

func TestNewClient_InvalidSite(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("NewClient(\"\") should fail")
	}
}

// --- ListPosts Tests ---

func TestClient_ListPosts(t *testing.T) {
	var gotPath, gotNumber, gotOffset string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotNumber = r.URL.Query().Get("number")
		gotOffset = r.URL.Query().Get("offset")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"found": 2,
			"posts": [
				{"ID": 11, "date": "2021-03-01T10:00:00+00:00", "title": "First &amp; Foremost", "URL": "https://example.wordpress.com/2021/03/01/first/", "content": "<p>one</p>"},
				{"ID": 12, "date": "2021-03-02T10:00:00+00:00", "title": "Second", "URL": "https://example.wordpress.com/2021/03/02/second/", "content": "<p>two</p>"}
			]
		}`))
	}))
	defer srv.Close()

	c, err := NewClient("example.wordpress.com", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	list, err := c.ListPosts(context.Background(), 0, 100)
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}

	if gotPath != "/sites/example.wordpress.com/posts/" {
		t.Errorf("path = %q, want /sites/example.wordpress.com/posts/", gotPath)
	}
	if gotNumber != "100" || gotOffset != "0" {
		t.Errorf("query number=%s offset=%s, want number=100 offset=0", gotNumber, gotOffset)
	}
	if list.Found != 2 {
		t.Errorf("Found = %d, want 2", list.Found)
	}
	if len(list.Posts) != 2 {
		t.Fatalf("len(Posts) = %d, want 2", len(list.Posts))
	}
	if list.Posts[0].ID != 11 {
		t.Errorf("Posts[0].ID = %d, want 11", list.Posts[0].ID)
	}
	if list.Posts[1].URL != "https://example.wordpress.com/2021/03/02/second/" {
		t.Errorf("Posts[1].URL = %q", list.Posts[1].URL)
	}
}

func TestClient_ListPosts_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unknown_blog"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := NewClient("missing.wordpress.com", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = c.ListPosts(context.Background(), 0, 100)
	if err == nil {
		t.Fatal("ListPosts() should fail on 404")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("error should carry the status, got %v", err)
	}
}

// --- GetPost Tests ---

func TestClient_GetPost(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ID": 42, "title": "Answer", "content": "<p>body</p>", "URL": "https://example.wordpress.com/2020/01/01/answer/"}`))
	}))
	defer srv.Close()

	c, err := NewClient("example.wordpress.com", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	post, err := c.GetPost(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}

	if gotPath != "/sites/example.wordpress.com/posts/42" {
		t.Errorf("path = %q, want /sites/example.wordpress.com/posts/42", gotPath)
	}
	if post.ID != 42 || post.Title != "Answer" {
		t.Errorf("post = %+v", post)
	}
}

// --- Post Tests ---

func TestPost_DecodedTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Hello World", "Hello World"},
		{"amp entity", "Cats &amp; Dogs", "Cats & Dogs"},
		{"numeric entity", "Caf&#233;", "Café"},
		{"surrounding space", "  Trimmed  ", "Trimmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Post{Title: tt.title}
			if got := p.DecodedTitle(); got != tt.want {
				t.Errorf("DecodedTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPost_Published(t *testing.T) {
	p := Post{Date: "2012-07-24T18:05:41+00:00"}
	got := p.Published()
	want := time.Date(2012, 7, 24, 18, 5, 41, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Published() = %v, want %v", got, want)
	}
}

func TestPost_Published_Empty(t *testing.T) {
	p := Post{}
	if !p.Published().IsZero() {
		t.Error("Published() should be zero for an empty date")
	}
}

func TestPost_Published_Garbage(t *testing.T) {
	p := Post{Date: "not a date"}
	if !p.Published().IsZero() {
		t.Error("Published() should be zero for an unparseable date")
	}
}
