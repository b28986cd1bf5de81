//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pawnest/pawsearch/internal/api/handlers"
	"github.com/pawnest/pawsearch/internal/cache"
	"github.com/pawnest/pawsearch/internal/domain"
	"github.com/pawnest/pawsearch/internal/metrics"
	"github.com/pawnest/pawsearch/internal/repository"
	"github.com/pawnest/pawsearch/internal/server"
	"github.com/pawnest/pawsearch/internal/service"
	"github.com/pawnest/pawsearch/internal/testutil"
)

// E2ETestEnv holds all resources needed for end-to-end tests: containers,
// the database pool, the repositories and an in-process HTTP server running
// the full search stack.
type E2ETestEnv struct {
	T          *testing.T
	Ctx        context.Context
	PostgresC  *testutil.PostgresContainer
	RedisC     *testutil.RedisContainer
	Pool       *pgxpool.Pool
	Questions  *repository.QuestionRepository
	Partners   *repository.PartnerRepository
	HealthLogs *repository.HealthLogRepository
	Analytics  *repository.AnalyticsRepository
	Server     *httptest.Server
	HTTPClient *http.Client
}

// SetupE2EEnv starts the containers and an in-process server. withRedis
// controls whether the response cache is wired in.
func SetupE2EEnv(t *testing.T, withRedis bool) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	env := &E2ETestEnv{
		T:          t,
		Ctx:        ctx,
		PostgresC:  pgC,
		Pool:       pool,
		Questions:  repository.NewQuestionRepository(pool),
		Partners:   repository.NewPartnerRepository(pool),
		HealthLogs: repository.NewHealthLogRepository(pool),
		Analytics:  repository.NewAnalyticsRepository(pool),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}

	var responseCache service.ResponseCache
	if withRedis {
		env.RedisC = testutil.NewRedisContainer(ctx, t)
		redisCache, err := cache.NewRedis(cache.Config{
			Addrs: []string{env.RedisC.Addr()},
			TTL:   time.Minute,
		}, zap.NewNop())
		if err != nil {
			t.Fatalf("failed to connect to redis: %v", err)
		}
		responseCache = redisCache
	}

	svc := service.NewSearchService(service.SearchServiceDeps{
		Questions: env.Questions,
		Partners:  env.Partners,
		Health:    env.HealthLogs,
		Analytics: env.Analytics,
		Cache:     responseCache,
		Logger:    zap.NewNop(),
		Metrics:   metrics.NewSearchMetrics(prometheus.NewRegistry()),
	})

	router := server.NewRouter(server.RouterConfig{
		Logger:        zap.NewNop(),
		SearchHandler: handlers.NewSearchHandler(svc),
	})
	env.Server = httptest.NewServer(router)

	return env
}

// Teardown stops the server and the containers.
func (env *E2ETestEnv) Teardown() {
	if env.Server != nil {
		env.Server.Close()
	}
	if env.Pool != nil {
		env.Pool.Close()
	}
	if env.RedisC != nil {
		_ = env.RedisC.Terminate(env.Ctx)
	}
	if env.PostgresC != nil {
		_ = env.PostgresC.Terminate(env.Ctx)
	}
}

// SeedQuestion inserts an active English question with the given title,
// content and tags.
func (env *E2ETestEnv) SeedQuestion(title, content string, tags ...string) *domain.Question {
	q := &domain.Question{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Category:  "health",
		Language:  "en",
		Status:    domain.QuestionStatusActive,
		Tags:      tags,
		AuthorID:  "seed-author",
		CreatedAt: time.Now().UTC(),
	}
	if err := env.Questions.CreateQuestion(env.Ctx, q); err != nil {
		env.T.Fatalf("failed to seed question: %v", err)
	}
	return q
}

// SeedPartner inserts an approved, verified partner.
func (env *E2ETestEnv) SeedPartner(name string, ptype domain.PartnerType, specializations ...string) *domain.Partner {
	p := &domain.Partner{
		ID:              uuid.NewString(),
		Name:            name,
		Type:            ptype,
		Specializations: specializations,
		Verified:        true,
		Status:          domain.PartnerStatusApproved,
		RatingAverage:   4.5,
		ReviewCount:     12,
		CreatedAt:       time.Now().UTC(),
	}
	if err := env.Partners.CreatePartner(env.Ctx, p); err != nil {
		env.T.Fatalf("failed to seed partner: %v", err)
	}
	return p
}

// SeedDogWithLog inserts a dog for ownerID with one health log entry.
func (env *E2ETestEnv) SeedDogWithLog(ownerID, notes string) *domain.Dog {
	dog := &domain.Dog{ID: uuid.NewString(), OwnerID: ownerID, Name: "Bruno", Breed: "Labrador"}
	if err := env.HealthLogs.CreateDog(env.Ctx, dog); err != nil {
		env.T.Fatalf("failed to seed dog: %v", err)
	}
	log := &domain.HealthLog{
		ID:    uuid.NewString(),
		DogID: dog.ID,
		Date:  time.Now().UTC(),
		Notes: notes,
	}
	if err := env.HealthLogs.CreateHealthLog(env.Ctx, log); err != nil {
		env.T.Fatalf("failed to seed health log: %v", err)
	}
	return dog
}

// Search POSTs the request body to /search, optionally as userID, and
// decodes the envelope's data payload.
func (env *E2ETestEnv) Search(body map[string]interface{}, userID string) (*service.SearchResponse, *http.Response) {
	payload, err := json.Marshal(body)
	if err != nil {
		env.T.Fatalf("failed to marshal search request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, env.Server.URL+"/search", bytes.NewReader(payload))
	if err != nil {
		env.T.Fatalf("failed to build search request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := env.HTTPClient.Do(req)
	if err != nil {
		env.T.Fatalf("search request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		env.T.Fatalf("failed to read search response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp
	}

	var envelope struct {
		Data service.SearchResponse `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		env.T.Fatalf("failed to decode search response %q: %v", raw, err)
	}
	return &envelope.Data, resp
}

// WaitForEventCount polls search_events until it holds want rows, failing
// after the deadline. Analytics writes are asynchronous.
func (env *E2ETestEnv) WaitForEventCount(want int, deadline time.Duration) {
	end := time.Now().Add(deadline)
	for {
		var count int
		if err := env.Pool.QueryRow(env.Ctx, "SELECT COUNT(*) FROM search_events").Scan(&count); err != nil {
			env.T.Fatalf("failed to count search events: %v", err)
		}
		if count >= want {
			return
		}
		if time.Now().After(end) {
			env.T.Fatalf("expected %d search events, still %d after %s", want, count, deadline)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// GetJSON fetches path and decodes the envelope data into out.
func (env *E2ETestEnv) GetJSON(path string, out interface{}) *http.Response {
	resp, err := env.HTTPClient.Get(env.Server.URL + path)
	if err != nil {
		env.T.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		env.T.Fatalf("failed to read %s response: %v", path, err)
	}

	if resp.StatusCode == http.StatusOK && out != nil {
		envelope := struct {
			Data interface{} `json:"data"`
		}{Data: out}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			env.T.Fatalf("failed to decode %s response %q: %v", path, raw, err)
		}
	}
	return resp
}
