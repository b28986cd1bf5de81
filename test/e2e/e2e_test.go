//go:build e2e

package e2e

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawnest/pawsearch/internal/domain"
	"github.com/pawnest/pawsearch/internal/service"
)

func TestE2E_SearchFlow(t *testing.T) {
	env := SetupE2EEnv(t, false)
	defer env.Teardown()

	vaccineQ := env.SeedQuestion("Puppy vaccination schedule", "When is the first rabies shot due?", "vaccine")
	env.SeedQuestion("Best chew toys", "Durable options for heavy chewers")
	vet := env.SeedPartner("Dr. Asha Patel", domain.PartnerTypeVet, "vaccination")

	data, resp := env.Search(map[string]interface{}{"query": "vaccination"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Equal(t, 2, data.Total)
	ids := make(map[string]bool)
	for _, r := range data.Results {
		ids[r.ID] = true
	}
	assert.True(t, ids[vaccineQ.ID])
	assert.True(t, ids[vet.ID])

	require.Contains(t, data.Aggregations, "types")
	typeCounts := make(map[string]int)
	for _, b := range data.Aggregations["types"] {
		typeCounts[b.Key] = b.Count
	}
	assert.Equal(t, 1, typeCounts["question"])
	assert.Equal(t, 1, typeCounts["partner"])

	// The analytics row lands asynchronously.
	env.WaitForEventCount(1, 5*time.Second)
}

func TestE2E_HealthLogsRequireIdentity(t *testing.T) {
	env := SetupE2EEnv(t, false)
	defer env.Teardown()

	dog := env.SeedDogWithLog("owner-1", "Vomited after eating grass, fine by evening")
	env.SeedDogWithLog("owner-2", "Vomited once at night")

	// Anonymous: the private health scope stays closed.
	anon, resp := env.Search(map[string]interface{}{"query": "vomited"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, anon.Total)

	// Identified: only the caller's own dog's logs surface.
	mine, resp := env.Search(map[string]interface{}{"query": "vomited"}, "owner-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, mine.Total)
	assert.Equal(t, service.ResultTypeHealth, mine.Results[0].Type)

	hm, ok := mine.Results[0].Metadata.(service.HealthMetadata)
	require.True(t, ok)
	assert.Equal(t, dog.ID, hm.DogID)
}

func TestE2E_SuggestionsFromHistory(t *testing.T) {
	env := SetupE2EEnv(t, false)
	defer env.Teardown()

	env.SeedQuestion("Dog vaccination cost in Mumbai", "Ballpark for the full course?", "vaccine")

	// A successful search becomes suggestion history.
	_, resp := env.Search(map[string]interface{}{"query": "vaccination cost"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env.WaitForEventCount(1, 5*time.Second)

	var payload struct {
		Suggestions []string `json:"suggestions"`
	}
	getResp := env.GetJSON("/search/suggestions?q=vaccination&language=en", &payload)
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	assert.Contains(t, payload.Suggestions, "vaccination cost")
	assert.Contains(t, payload.Suggestions, "dog vaccination schedule")
}

func TestE2E_EmptyQueryRejected(t *testing.T) {
	env := SetupE2EEnv(t, false)
	defer env.Teardown()

	_, resp := env.Search(map[string]interface{}{"query": ""}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestE2E_VoiceAndVisualNotImplemented(t *testing.T) {
	env := SetupE2EEnv(t, false)
	defer env.Teardown()

	for _, path := range []string{"/search/voice", "/search/visual"} {
		resp, err := env.HTTPClient.Post(env.Server.URL+path, "application/octet-stream", strings.NewReader("payload"))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotImplemented, resp.StatusCode, "%s: %s", path, body)
	}
}

func TestE2E_HealthEndpoint(t *testing.T) {
	env := SetupE2EEnv(t, false)
	defer env.Teardown()

	resp, err := env.HTTPClient.Get(env.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestE2E_CachedSearchWithRedis(t *testing.T) {
	env := SetupE2EEnv(t, true)
	defer env.Teardown()

	env.SeedQuestion("Tick prevention options", "Collar or spot-on treatment?", "tick")

	first, resp := env.Search(map[string]interface{}{"query": "tick prevention"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, first.Total)

	// New data after the first call; the cached response must not see it.
	env.SeedQuestion("Tick removal how-to", "Tweezers near the head, pull straight", "tick")

	second, resp := env.Search(map[string]interface{}{"query": "tick prevention"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, second.Total)

	// A different query misses the cache and sees both rows.
	fresh, resp := env.Search(map[string]interface{}{"query": "tick"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, fresh.Total)
}
