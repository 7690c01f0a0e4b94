package listing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/jmylchreest/blogmark/pkg/wordpress"
)

// apiServer fakes the posts listing endpoint with the given total, paging
// through generated posts.
func apiServer(t *testing.T, total int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		number, _ := strconv.Atoi(r.URL.Query().Get("number"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"found": %d, "posts": [`, total)
		wrote := 0
		for i := offset; i < total && i < offset+number; i++ {
			if wrote > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"ID": %d, "title": "Post %d", "URL": "https://example.wordpress.com/post-%d/", "content": "<p>body</p>"}`, i+1, i+1, i+1)
			wrote++
		}
		fmt.Fprint(w, `]}`)
	}))
}

func newAPISourceForTest(t *testing.T, baseURL string, cfg APIConfig) *APISource {
	t.Helper()
	client, err := wordpress.NewClient("example.wordpress.com", wordpress.WithBaseURL(baseURL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return NewAPISource(client, cfg)
}

// --- APISource Tests ---

func TestAPISource_Discover_SinglePage(t *testing.T) {
	srv := apiServer(t, 2)
	defer srv.Close()

	src := newAPISourceForTest(t, srv.URL, APIConfig{})

	refs, err := src.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}
	if refs[0].ID != 1 || refs[1].ID != 2 {
		t.Errorf("refs IDs = %d, %d, want 1, 2", refs[0].ID, refs[1].ID)
	}
	if refs[0].URL != "https://example.wordpress.com/post-1/" {
		t.Errorf("refs[0].URL = %q", refs[0].URL)
	}
}

func TestAPISource_Discover_PagesThroughAll(t *testing.T) {
	srv := apiServer(t, 5)
	defer srv.Close()

	src := newAPISourceForTest(t, srv.URL, APIConfig{PerPage: 2})

	refs, err := src.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(refs) != 5 {
		t.Fatalf("got %d refs, want 5", len(refs))
	}
	for i, ref := range refs {
		if ref.ID != int64(i+1) {
			t.Errorf("refs[%d].ID = %d, want %d", i, ref.ID, i+1)
		}
	}
}

func TestAPISource_Discover_NoPosts(t *testing.T) {
	srv := apiServer(t, 0)
	defer srv.Close()

	src := newAPISourceForTest(t, srv.URL, APIConfig{})

	if _, err := src.Discover(context.Background()); err == nil {
		t.Fatal("Discover() should fail when the blog has no posts")
	}
}

func TestAPISource_Discover_Limit(t *testing.T) {
	srv := apiServer(t, 10)
	defer srv.Close()

	src := newAPISourceForTest(t, srv.URL, APIConfig{PerPage: 4, Limit: 5})

	refs, err := src.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(refs) != 5 {
		t.Errorf("got %d refs, want 5", len(refs))
	}
}

func TestAPISource_Discover_StopsOnEmptyBatch(t *testing.T) {
	// Claims 10 posts but serves only 3; the empty page must end the walk
	// rather than loop on the stale total.
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		w.Header().Set("Content-Type", "application/json")
		if offset >= 3 {
			fmt.Fprint(w, `{"found": 10, "posts": []}`)
			return
		}
		fmt.Fprint(w, `{"found": 10, "posts": [`)
		for i := offset; i < 3; i++ {
			if i > offset {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"ID": %d, "title": "Post %d", "URL": "https://example.wordpress.com/post-%d/"}`, i+1, i+1, i+1)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	src := newAPISourceForTest(t, srv.URL, APIConfig{PerPage: 3})

	refs, err := src.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(refs) != 3 {
		t.Errorf("got %d refs, want 3", len(refs))
	}
	if calls != 2 {
		t.Errorf("made %d API calls, want 2", calls)
	}
}

func TestAPISource_Discover_APIErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unknown_blog"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	src := newAPISourceForTest(t, srv.URL, APIConfig{})

	if _, err := src.Discover(context.Background()); err == nil {
		t.Fatal("Discover() should fail when the API errors")
	}
}
