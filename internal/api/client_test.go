package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sandeepkv93/lifequest/internal/model"
)

// fakeBackend wires the routes the client exercises onto a mux router and
// records what it saw.
type fakeBackend struct {
	router     *mux.Router
	lastAuth   string
	lastReqID  string
	buyCalls   int
	lastBody   map[string]any
	rewardCost int
	balance    int
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{router: mux.NewRouter(), rewardCost: 75, balance: 100}

	b.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b.lastAuth = r.Header.Get("Authorization")
			b.lastReqID = r.Header.Get("X-Request-ID")
			next.ServeHTTP(w, r)
		})
	})

	b.router.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "hunter2" {
			http.Error(w, `{"message":"bad credentials"}`, http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(model.LoginResponse{JWTToken: "tok-123"})
	}).Methods(http.MethodPost)

	b.router.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.User{ID: 7, Nickname: "ana", TotalCoins: b.balance})
	}).Methods(http.MethodGet)

	b.router.HandleFunc("/tasks/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Task{
			{ID: 1, Title: "Study chapter 3", Status: model.TaskPending, TaskXP: 30, SkillName: "Estudos"},
			{ID: 2, Title: "Old task", Status: model.TaskCompleted, TaskXP: 20},
		})
	}).Methods(http.MethodGet)

	b.router.HandleFunc("/tasks/register", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.lastBody = body
		w.WriteHeader(http.StatusCreated)
	}).Methods(http.MethodPost)

	b.router.HandleFunc("/tasks/{id}/complete", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] == "2" {
			http.Error(w, `{"message":"already completed"}`, http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPatch)

	b.router.HandleFunc("/store/rewards/{id}/buy", func(w http.ResponseWriter, r *http.Request) {
		b.buyCalls++
		if b.rewardCost > b.balance {
			http.Error(w, `{"message":"insufficient coins"}`, http.StatusPreconditionFailed)
			return
		}
		b.balance -= b.rewardCost
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)

	b.router.HandleFunc("/skills/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"skill not found"}`, http.StatusNotFound)
	}).Methods(http.MethodDelete)

	return b
}

func newTestClient(t *testing.T, token string) (*Client, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	server := httptest.NewServer(backend.router)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, func() string { return token })
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, backend
}

func TestLogin(t *testing.T) {
	client, _ := newTestClient(t, "")
	resp, err := client.Login(context.Background(), model.LoginRequest{Username: "ana", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.JWTToken != "tok-123" {
		t.Fatalf("token = %q", resp.JWTToken)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	client, _ := newTestClient(t, "")
	_, err := client.Login(context.Background(), model.LoginRequest{Username: "ana", Password: "nope"})
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestBearerAndRequestIDHeaders(t *testing.T) {
	client, backend := newTestClient(t, "tok-123")
	if _, err := client.AuthenticatedUser(context.Background()); err != nil {
		t.Fatalf("AuthenticatedUser: %v", err)
	}
	if backend.lastAuth != "Bearer tok-123" {
		t.Fatalf("Authorization header = %q", backend.lastAuth)
	}
	if backend.lastReqID == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestNoBearerHeaderWhileSignedOut(t *testing.T) {
	client, backend := newTestClient(t, "")
	_, _ = client.AuthenticatedUser(context.Background())
	if backend.lastAuth != "" {
		t.Fatalf("unexpected Authorization header %q", backend.lastAuth)
	}
}

func TestTasksByUserDecodes(t *testing.T) {
	client, _ := newTestClient(t, "tok-123")
	tasks, err := client.TasksByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("TasksByUser: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks", len(tasks))
	}
	if tasks[0].Status != model.TaskPending || tasks[0].TaskXP != 30 {
		t.Fatalf("unexpected first task: %+v", tasks[0])
	}
}

func TestRegisterTaskSendsCanonicalFields(t *testing.T) {
	client, backend := newTestClient(t, "tok-123")
	req := model.TaskCreateRequest{
		Title:      "Study chapter 3",
		Difficulty: model.DifficultyMedium,
		SkillName:  "Estudos",
		Date:       "2026-08-29",
		RepeatType: model.RepeatNone,
	}
	if err := client.RegisterTask(context.Background(), req); err != nil {
		t.Fatalf("RegisterTask: %v", err)
	}
	if backend.lastBody["difficulty"] != "medium" {
		t.Fatalf("difficulty on the wire = %v", backend.lastBody["difficulty"])
	}
	if backend.lastBody["repeatType"] != "NONE" {
		t.Fatalf("repeatType on the wire = %v", backend.lastBody["repeatType"])
	}
	if backend.lastBody["skillName"] != "Estudos" {
		t.Fatalf("skillName on the wire = %v", backend.lastBody["skillName"])
	}
}

func TestCompleteTaskConflict(t *testing.T) {
	client, _ := newTestClient(t, "tok-123")
	if err := client.CompleteTask(context.Background(), 1); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	err := client.CompleteTask(context.Background(), 2)
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestBuyRewardPreconditionFailed(t *testing.T) {
	client, backend := newTestClient(t, "tok-123")
	backend.rewardCost = 150

	err := client.BuyReward(context.Background(), 5)
	if !IsPreconditionFailed(err) {
		t.Fatalf("expected precondition failed, got %v", err)
	}
	if backend.balance != 100 {
		t.Fatalf("balance changed on rejected redemption: %d", backend.balance)
	}

	backend.rewardCost = 75
	if err := client.BuyReward(context.Background(), 5); err != nil {
		t.Fatalf("BuyReward: %v", err)
	}
	if backend.balance != 25 {
		t.Fatalf("balance after redemption = %d, want 25", backend.balance)
	}
}

func TestDeleteSkillNotFound(t *testing.T) {
	client, _ := newTestClient(t, "tok-123")
	err := client.DeleteSkill(context.Background(), 99)
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "skill not found" {
		t.Fatalf("expected server message, got %v", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("   ", nil); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
