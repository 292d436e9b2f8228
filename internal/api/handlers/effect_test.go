package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type effectBody struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Spheres   map[string]int `json:"spheres"`
	MaxSphere struct {
		Sphere string `json:"sphere"`
		Rating int    `json:"rating"`
	} `json:"maxSphere"`
	Sources []string `json:"sources"`
}

func TestEffectHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	client := &http.Client{}

	body := map[string]any{
		"name":    "Heal Other",
		"spheres": map[string]int{"life": 2},
		"sources": []string{"p. 196"},
	}

	resp, err := client.Do(testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/effects"), body, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created effectBody
	testutil.AssertJSONResponse(t, resp, &created)
	assert.Equal(t, 2, created.Spheres["life"])
	assert.Equal(t, 0, created.Spheres["time"])
	assert.Len(t, created.Spheres, 9)
	assert.Equal(t, "life", created.MaxSphere.Sphere)
	assert.Equal(t, []string{"p. 196"}, created.Sources)

	// Same name again returns the stored effect
	body["spheres"] = map[string]int{"life": 4}
	resp2, err := client.Do(testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/effects"), body, token))
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var existing effectBody
	testutil.AssertJSONResponse(t, resp2, &existing)
	assert.Equal(t, created.ID, existing.ID)
	assert.Equal(t, 2, existing.Spheres["life"])
}

func TestEffectHandler_CreateRejected(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	client := &http.Client{}

	tests := []struct {
		name           string
		body           map[string]any
		token          string
		expectedStatus int
	}{
		{name: "no token", body: map[string]any{"name": "X"}, expectedStatus: http.StatusUnauthorized},
		{name: "missing name", body: map[string]any{}, token: token, expectedStatus: http.StatusBadRequest},
		{name: "rating too high", body: map[string]any{"name": "X", "spheres": map[string]int{"mind": 6}}, token: token, expectedStatus: http.StatusBadRequest},
		{name: "unknown sphere", body: map[string]any{"name": "X", "spheres": map[string]int{"dreams": 1}}, token: token, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Do(testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/effects"), tt.body, tt.token))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestEffectHandler_ListGet(t *testing.T) {
	ts := testutil.NewTestServer(t)

	flame := testutil.NewEffectBuilder().WithName("Ball of Abysmal Flame").WithSphere(domain.SphereForces, 3).Build(t, ts.DB.DB)
	testutil.NewEffectBuilder().WithName("Heal Other").WithSphere(domain.SphereLife, 2).Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		want           []string
	}{
		{name: "all", query: "", expectedStatus: http.StatusOK, want: []string{"Ball of Abysmal Flame", "Heal Other"}},
		{name: "by sphere", query: "?sphere=forces", expectedStatus: http.StatusOK, want: []string{"Ball of Abysmal Flame"}},
		{name: "by sphere and min", query: "?sphere=forces&min=4", expectedStatus: http.StatusOK, want: []string{}},
		{name: "by name", query: "?name=heal", expectedStatus: http.StatusOK, want: []string{"Heal Other"}},
		{name: "unknown sphere", query: "?sphere=dreams", expectedStatus: http.StatusBadRequest},
		{name: "bad min", query: "?sphere=life&min=9", expectedStatus: http.StatusBadRequest},
		{name: "bad limit", query: "?limit=-1", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.APIURL("/effects" + tt.query))
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.want == nil {
				return
			}

			var result struct {
				Effects []effectBody `json:"effects"`
			}
			testutil.AssertJSONResponse(t, resp, &result)
			names := []string{}
			for _, e := range result.Effects {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	resp, err := http.Get(ts.APIURL("/effects/" + flame.ID.String()))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got effectBody
	testutil.AssertJSONResponse(t, resp, &got)
	assert.Equal(t, 3, got.Spheres["forces"])

	resp, err = http.Get(ts.APIURL("/effects/" + uuid.NewString()))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Effect not found")

	resp, err = http.Get(ts.APIURL("/effects/not-a-uuid"))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestEffectHandler_UpdateDelete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	client := &http.Client{}

	effect := testutil.NewEffectBuilder().WithName("Mind Shield").Build(t, ts.DB.DB)
	url := ts.APIURL("/effects/" + effect.ID.String())

	resp, err := client.Do(testutil.CreateAuthenticatedRequest(t, "PUT", url, map[string]any{
		"name":    "Mind Shield",
		"spheres": map[string]int{"mind": 2},
	}, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated effectBody
	testutil.AssertJSONResponse(t, resp, &updated)
	assert.Equal(t, 2, updated.Spheres["mind"])

	resp, err = client.Do(testutil.CreateAuthenticatedRequest(t, "DELETE", url, nil, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp, err = client.Do(testutil.CreateAuthenticatedRequest(t, "DELETE", url, nil, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestResonanceHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	client := &http.Client{}

	resp, err := client.Do(testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/resonances"), map[string]string{"name": "Fiery"}, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	resp, err = client.Do(testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/resonances"), map[string]string{"name": "Fiery"}, token))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp, err = client.Do(testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/resonances"), map[string]string{"name": "Cold"}, ""))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)

	resp, err = http.Get(ts.APIURL("/resonances"))
	require.NoError(t, err)
	defer resp.Body.Close()
	var result struct {
		Resonances []struct {
			Name string `json:"name"`
		} `json:"resonances"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	require.Len(t, result.Resonances, 1)
	assert.Equal(t, "Fiery", result.Resonances[0].Name)
}
