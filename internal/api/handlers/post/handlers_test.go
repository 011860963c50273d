package post

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
)

// mockPostService implements posts.Service for testing. Unset funcs fail the call.
type mockPostService struct {
	listFunc       func(ctx context.Context, page posts.PageRequest) (*posts.PostPage, error)
	searchTitle    func(ctx context.Context, title string, page posts.PageRequest) (*posts.PostPage, error)
	searchUsername func(ctx context.Context, username string, page posts.PageRequest) (*posts.PostPage, error)
	getFunc        func(ctx context.Context, pid int64) (*posts.Post, error)
	createFunc     func(ctx context.Context, caller *users.User, req posts.CreatePostRequest) (*posts.Post, error)
	updateFunc     func(ctx context.Context, caller *users.User, req posts.UpdatePostRequest) (*posts.Post, error)
	deleteFunc     func(ctx context.Context, caller *users.User, pid int64) (int64, error)
	deleteManyFunc func(ctx context.Context, pids []int64) (int, error)
	getLikeFunc    func(ctx context.Context, pid, uid int64) (*bool, error)
	setLikeFunc    func(ctx context.Context, caller *users.User, pid int64, likes bool) (*posts.LikeResult, error)
	deleteLikeFunc func(ctx context.Context, caller *users.User, pid int64) (bool, error)
	countFunc      func(ctx context.Context, pid int64) (*posts.LikeCounts, error)
	likedByFunc    func(ctx context.Context, caller *users.User) ([]*posts.PostLike, error)
}

var errUnexpectedCall = errors.New("unexpected call")

func (m *mockPostService) ListPosts(ctx context.Context, page posts.PageRequest) (*posts.PostPage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, page)
	}
	return nil, errUnexpectedCall
}

func (m *mockPostService) SearchByTitle(ctx context.Context, title string, page posts.PageRequest) (*posts.PostPage, error) {
	if m.searchTitle != nil {
		return m.searchTitle(ctx, title, page)
	}
	return nil, errUnexpectedCall
}

func (m *mockPostService) SearchByUsername(ctx context.Context, username string, page posts.PageRequest) (*posts.PostPage, error) {
	if m.searchUsername != nil {
		return m.searchUsername(ctx, username, page)
	}
	return nil, errUnexpectedCall
}

func (m *mockPostService) GetPost(ctx context.Context, pid int64) (*posts.Post, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, pid)
	}
	return nil, errUnexpectedCall
}

func (m *mockPostService) CreatePost(ctx context.Context, caller *users.User, req posts.CreatePostRequest) (*posts.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, caller, req)
	}
	return nil, errUnexpectedCall
}

func (m *mockPostService) UpdatePost(ctx context.Context, caller *users.User, req posts.UpdatePostRequest) (*posts.Post, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, caller, req)
	}
	return nil, errUnexpectedCall
}

func (m *mockPostService) DeletePost(ctx context.Context, caller *users.User, pid int64) (int64, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, caller, pid)
	}
	return 0, errUnexpectedCall
}

func (m *mockPostService) DeletePosts(ctx context.Context, pids []int64) (int, error) {
	if m.deleteManyFunc != nil {
		return m.deleteManyFunc(ctx, pids)
	}
	return 0, errUnexpectedCall
}

func (m *mockPostService) GetLike(ctx context.Context, pid, uid int64) (*bool, error) {
	if m.getLikeFunc != nil {
		return m.getLikeFunc(ctx, pid, uid)
	}
	return nil, errUnexpectedCall
}

func (m *mockPostService) SetLike(ctx context.Context, caller *users.User, pid int64, likes bool) (*posts.LikeResult, error) {
	if m.setLikeFunc != nil {
		return m.setLikeFunc(ctx, caller, pid, likes)
	}
	return nil, errUnexpectedCall
}

func (m *mockPostService) DeleteLike(ctx context.Context, caller *users.User, pid int64) (bool, error) {
	if m.deleteLikeFunc != nil {
		return m.deleteLikeFunc(ctx, caller, pid)
	}
	return false, errUnexpectedCall
}

func (m *mockPostService) CountLikes(ctx context.Context, pid int64) (*posts.LikeCounts, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, pid)
	}
	return nil, errUnexpectedCall
}

func (m *mockPostService) ListLikedBy(ctx context.Context, caller *users.User) ([]*posts.PostLike, error) {
	if m.likedByFunc != nil {
		return m.likedByFunc(ctx, caller)
	}
	return nil, errUnexpectedCall
}

// fakeResolver knows a single provider
type fakeResolver struct {
	user *users.User
}

func (f *fakeResolver) ResolveCaller(ctx context.Context, provider string) (*users.User, error) {
	if provider == "" || f.user == nil || provider != f.user.Provider {
		return nil, users.ErrUnauthenticated
	}
	return f.user, nil
}

var testCaller = &users.User{UID: 7, Username: "alice", Provider: "google_alice"}

// newTestRouter wires the handlers the same way the routes package does,
// minus token verification
func newTestRouter(service posts.Service) http.Handler {
	resolver := &fakeResolver{user: testCaller}
	list := NewListHandler(service)
	get := NewGetHandler(service)
	create := NewCreateHandler(service, resolver)
	update := NewUpdateHandler(service, resolver)
	del := NewDeleteHandler(service, resolver)
	like := NewLikeHandler(service, resolver)

	r := chi.NewRouter()
	r.Get("/post", list.HandleList)
	r.Post("/post", create.HandleCreate)
	r.Delete("/post", del.HandleDeleteBatch)
	r.Get("/post/title/{title}", list.HandleSearchByTitle)
	r.Get("/post/username/{username}", list.HandleSearchByUsername)
	r.Get("/post/like", like.HandleGetLike)
	r.Post("/post/like", like.HandleSetLike)
	r.Delete("/post/like", like.HandleDeleteLike)
	r.Get("/post/like/mine", like.HandleListMine)
	r.Get("/post/{pid}", get.HandleGet)
	r.Put("/post/{pid}", update.HandleUpdate)
	r.Delete("/post/{pid}", del.HandleDelete)
	r.Get("/post/{pid}/likes", like.HandleCountLikes)
	return r
}

func do(t *testing.T, h http.Handler, method, target string, body interface{}, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req = req.WithContext(middleware.SetTestProvider(req.Context(), testCaller.Provider))
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body["error"]
}

func TestListHandler_PassesPageRequest(t *testing.T) {
	var got posts.PageRequest
	service := &mockPostService{
		listFunc: func(ctx context.Context, page posts.PageRequest) (*posts.PostPage, error) {
			got = page
			return posts.NewPostPage([]*posts.Post{{PID: 3}}, 1, page), nil
		},
	}

	w := do(t, newTestRouter(service), http.MethodGet, "/post?page=1&size=3&sort=title,asc", nil, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, posts.PageRequest{Page: 1, Size: 3, Sort: "title", Desc: false}, got)

	var page posts.PostPage
	require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
	assert.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(3), page.Content[0].PID)
}

func TestListHandler_InvalidSort(t *testing.T) {
	w := do(t, newTestRouter(&mockPostService{}), http.MethodGet, "/post?sort=contents", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decodeError(t, w))
}

func TestListHandler_Searches(t *testing.T) {
	var title, username string
	service := &mockPostService{
		searchTitle: func(ctx context.Context, v string, page posts.PageRequest) (*posts.PostPage, error) {
			title = v
			return posts.NewPostPage(nil, 0, page), nil
		},
		searchUsername: func(ctx context.Context, v string, page posts.PageRequest) (*posts.PostPage, error) {
			username = v
			return posts.NewPostPage(nil, 0, page), nil
		},
	}
	router := newTestRouter(service)

	w := do(t, router, http.MethodGet, "/post/title/hello%20world", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello world", title)

	w = do(t, router, http.MethodGet, "/post/username/ali", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ali", username)
}

func TestGetHandler(t *testing.T) {
	service := &mockPostService{
		getFunc: func(ctx context.Context, pid int64) (*posts.Post, error) {
			if pid == 1 {
				return &posts.Post{PID: 1, Title: "hello"}, nil
			}
			return nil, posts.ErrNotFound
		},
	}
	router := newTestRouter(service)

	w := do(t, router, http.MethodGet, "/post/1", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/post/2", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PostNotFound", decodeError(t, w))

	w = do(t, router, http.MethodGet, "/post/abc", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateHandler(t *testing.T) {
	service := &mockPostService{
		createFunc: func(ctx context.Context, caller *users.User, req posts.CreatePostRequest) (*posts.Post, error) {
			if req.Title == "" {
				return nil, posts.NewValidationError("title", "is required")
			}
			return &posts.Post{PID: 10, UID: caller.UID, Title: req.Title, Contents: req.Contents}, nil
		},
	}
	router := newTestRouter(service)

	w := do(t, router, http.MethodPost, "/post", posts.CreatePostRequest{Title: "t", Contents: "c"}, true)
	assert.Equal(t, http.StatusCreated, w.Code)
	var created posts.Post
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, int64(10), created.PID)
	assert.Equal(t, testCaller.UID, created.UID)

	w = do(t, router, http.MethodPost, "/post", posts.CreatePostRequest{Title: "t"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, router, http.MethodPost, "/post", posts.CreatePostRequest{}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateHandler_PathPIDWins(t *testing.T) {
	var got posts.UpdatePostRequest
	service := &mockPostService{
		updateFunc: func(ctx context.Context, caller *users.User, req posts.UpdatePostRequest) (*posts.Post, error) {
			got = req
			if req.PID == 9 {
				return nil, posts.ErrNotAuthorized
			}
			return &posts.Post{PID: req.PID, Title: req.Title}, nil
		},
	}
	router := newTestRouter(service)

	w := do(t, router, http.MethodPut, "/post/5", posts.UpdatePostRequest{PID: 99, Title: "new"}, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), got.PID)
	assert.Equal(t, "new", got.Title)

	w = do(t, router, http.MethodPut, "/post/9", posts.UpdatePostRequest{Title: "new"}, true)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NotAuthorized", decodeError(t, w))
}

func TestDeleteHandler(t *testing.T) {
	service := &mockPostService{
		deleteFunc: func(ctx context.Context, caller *users.User, pid int64) (int64, error) {
			return pid, nil
		},
		deleteManyFunc: func(ctx context.Context, pids []int64) (int, error) {
			if len(pids) == 0 {
				return 0, posts.NewValidationError("ids", "at least one id is required")
			}
			if pids[len(pids)-1] == 404 {
				return 0, posts.NewNotFoundError("post", "404")
			}
			return len(pids), nil
		},
	}
	router := newTestRouter(service)

	w := do(t, router, http.MethodDelete, "/post/4", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "4", w.Body.String())

	w = do(t, router, http.MethodDelete, "/post", posts.DeletePostsRequest{IDs: []int64{1, 2}}, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "2", w.Body.String())

	w = do(t, router, http.MethodDelete, "/post", posts.DeletePostsRequest{IDs: []int64{1, 404}}, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodDelete, "/post", posts.DeletePostsRequest{}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLikeHandler_GetLike(t *testing.T) {
	liked := true
	service := &mockPostService{
		getLikeFunc: func(ctx context.Context, pid, uid int64) (*bool, error) {
			if uid == 1 {
				return &liked, nil
			}
			return nil, nil
		},
	}
	router := newTestRouter(service)

	w := do(t, router, http.MethodGet, "/post/like?pid=1&uid=1", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "true", w.Body.String())

	w = do(t, router, http.MethodGet, "/post/like?pid=1&uid=2", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "null", w.Body.String())

	w = do(t, router, http.MethodGet, "/post/like?pid=1", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLikeHandler_SetLike(t *testing.T) {
	var gotLikes bool
	service := &mockPostService{
		setLikeFunc: func(ctx context.Context, caller *users.User, pid int64, likes bool) (*posts.LikeResult, error) {
			gotLikes = likes
			return &posts.LikeResult{Permit: true, Created: true, Likes: likes}, nil
		},
	}
	router := newTestRouter(service)

	tests := []struct {
		name          string
		target        string
		authenticated bool
		status        int
	}{
		{name: "dislike", target: "/post/like?pid=1&likes=false", authenticated: true, status: http.StatusOK},
		{name: "matching uid", target: "/post/like?pid=1&likes=true&uid=7", authenticated: true, status: http.StatusOK},
		{name: "other uid", target: "/post/like?pid=1&likes=true&uid=8", authenticated: true, status: http.StatusForbidden},
		{name: "anonymous", target: "/post/like?pid=1&likes=true", authenticated: false, status: http.StatusUnauthorized},
		{name: "bad likes", target: "/post/like?pid=1&likes=maybe", authenticated: true, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, tt.target, nil, tt.authenticated)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, "true", w.Body.String())
			}
		})
	}

	w := do(t, router, http.MethodPost, "/post/like?pid=1&likes=false", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, gotLikes)
}

func TestLikeHandler_DeleteCountAndMine(t *testing.T) {
	service := &mockPostService{
		deleteLikeFunc: func(ctx context.Context, caller *users.User, pid int64) (bool, error) {
			return true, nil
		},
		countFunc: func(ctx context.Context, pid int64) (*posts.LikeCounts, error) {
			return &posts.LikeCounts{PID: pid, Likes: 3, Dislikes: 1}, nil
		},
		likedByFunc: func(ctx context.Context, caller *users.User) ([]*posts.PostLike, error) {
			return []*posts.PostLike{{PID: 1, UID: caller.UID, Likes: true}}, nil
		},
	}
	router := newTestRouter(service)

	w := do(t, router, http.MethodDelete, "/post/like?pid=1", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "true", w.Body.String())

	w = do(t, router, http.MethodGet, "/post/1/likes", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	var counts posts.LikeCounts
	require.NoError(t, json.NewDecoder(w.Body).Decode(&counts))
	assert.Equal(t, int64(3), counts.Likes)
	assert.Equal(t, int64(1), counts.Dislikes)

	w = do(t, router, http.MethodGet, "/post/like/mine", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	var liked []*posts.PostLike
	require.NoError(t, json.NewDecoder(w.Body).Decode(&liked))
	require.Len(t, liked, 1)
	assert.Equal(t, testCaller.UID, liked[0].UID)
}

func TestHandleServiceError_HidesInternalErrors(t *testing.T) {
	service := &mockPostService{
		getFunc: func(ctx context.Context, pid int64) (*posts.Post, error) {
			return nil, errors.New("connection refused to 10.0.0.5")
		},
	}

	w := do(t, newTestRouter(service), http.MethodGet, "/post/1", nil, false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}
