//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type calculationData struct {
	ID     string    `json:"id"`
	UserID string    `json:"user_id"`
	Type   string    `json:"type"`
	Inputs []float64 `json:"inputs"`
	Result float64   `json:"result"`
}

func (a *testApp) createCalculation(t *testing.T, token string, calcType string, inputs []float64) calculationData {
	t.Helper()

	resp, parsed := a.do(t, http.MethodPost, "/api/v1/calculations", map[string]any{
		"type":   calcType,
		"inputs": inputs,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var calc calculationData
	require.NoError(t, json.Unmarshal(parsed.Data, &calc))
	return calc
}

func TestCalculationCreate(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "calc-create")
	pair := app.login(t, "calc-create")

	cases := []struct {
		calcType string
		inputs   []float64
		want     float64
	}{
		{"addition", []float64{1, 2, 3}, 6},
		{"subtraction", []float64{10, 4, 1}, 5},
		{"multiplication", []float64{2, 3, 4}, 24},
		{"division", []float64{100, 5, 2}, 10},
	}
	for _, tc := range cases {
		calc := app.createCalculation(t, pair.AccessToken, tc.calcType, tc.inputs)
		require.Equal(t, tc.want, calc.Result)
		require.Equal(t, tc.calcType, calc.Type)
		require.Equal(t, pair.User.ID, calc.UserID)
	}
}

func TestCalculationCreateRejectsBadInput(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "calc-bad")
	pair := app.login(t, "calc-bad")

	resp, _ := app.do(t, http.MethodPost, "/api/v1/calculations", map[string]any{
		"type":   "division",
		"inputs": []float64{10, 0},
	}, pair.AccessToken)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = app.do(t, http.MethodPost, "/api/v1/calculations", map[string]any{
		"type":   "addition",
		"inputs": []float64{1},
	}, pair.AccessToken)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = app.do(t, http.MethodPost, "/api/v1/calculations", map[string]any{
		"type":   "modulo",
		"inputs": []float64{10, 3},
	}, pair.AccessToken)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalculationRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp, parsed := app.do(t, http.MethodGet, "/api/v1/calculations", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Could not validate credentials", parsed.Error.Message)
}

func TestCalculationListScopedToOwner(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "owner-a")
	app.register(t, "owner-b")
	pairA := app.login(t, "owner-a")
	pairB := app.login(t, "owner-b")

	app.createCalculation(t, pairA.AccessToken, "addition", []float64{1, 1})
	app.createCalculation(t, pairA.AccessToken, "multiplication", []float64{2, 2})
	app.createCalculation(t, pairB.AccessToken, "subtraction", []float64{5, 3})

	resp, parsed := app.do(t, http.MethodGet, "/api/v1/calculations", nil, pairA.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []calculationData
	require.NoError(t, json.Unmarshal(parsed.Data, &list))
	require.Len(t, list, 2)
	for _, calc := range list {
		require.Equal(t, pairA.User.ID, calc.UserID)
	}
}

func TestCalculationGetUpdateDelete(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "calc-lifecycle")
	pair := app.login(t, "calc-lifecycle")

	created := app.createCalculation(t, pair.AccessToken, "addition", []float64{2, 3})
	require.Equal(t, 5.0, created.Result)

	resp, parsed := app.do(t, http.MethodGet, "/api/v1/calculations/"+created.ID, nil, pair.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched calculationData
	require.NoError(t, json.Unmarshal(parsed.Data, &fetched))
	require.Equal(t, created.ID, fetched.ID)

	resp, parsed = app.do(t, http.MethodPut, "/api/v1/calculations/"+created.ID, map[string]any{
		"inputs": []float64{10, 20, 30},
	}, pair.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated calculationData
	require.NoError(t, json.Unmarshal(parsed.Data, &updated))
	require.Equal(t, 60.0, updated.Result)
	require.Equal(t, "addition", updated.Type)

	resp, _ = app.do(t, http.MethodDelete, "/api/v1/calculations/"+created.ID, nil, pair.AccessToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = app.do(t, http.MethodGet, "/api/v1/calculations/"+created.ID, nil, pair.AccessToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCalculationCrossOwnerAccessDenied(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "victim")
	app.register(t, "intruder")
	victim := app.login(t, "victim")
	intruder := app.login(t, "intruder")

	created := app.createCalculation(t, victim.AccessToken, "addition", []float64{1, 2})

	resp, _ := app.do(t, http.MethodGet, "/api/v1/calculations/"+created.ID, nil, intruder.AccessToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.do(t, http.MethodPut, "/api/v1/calculations/"+created.ID, map[string]any{
		"inputs": []float64{9, 9},
	}, intruder.AccessToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.do(t, http.MethodDelete, "/api/v1/calculations/"+created.ID, nil, intruder.AccessToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner still sees the untouched record.
	resp, parsed := app.do(t, http.MethodGet, "/api/v1/calculations/"+created.ID, nil, victim.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var calc calculationData
	require.NoError(t, json.Unmarshal(parsed.Data, &calc))
	require.Equal(t, 3.0, calc.Result)
}
