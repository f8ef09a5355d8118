package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmrp "github.com/jhoicas/ppic-api/internal/application/mrp"
	"github.com/jhoicas/ppic-api/internal/domain/entity"
	apphttp "github.com/jhoicas/ppic-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ppic-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type mrpEnv struct {
	app    *fiber.App
	demand *memDemand
	runs   *memRuns
}

// newMRPApp P1 pide 100 en 20 días; hay 30 P1 y 50 M1; cada P1 lleva 2 M1.
func newMRPApp(t *testing.T, jwtSecret string, cfg appmrp.Config) *mrpEnv {
	t.Helper()
	ledger := newLedger()
	ledger.stock["Part:P1"] = decimal.NewFromInt(30)
	ledger.stock["Material:M1"] = decimal.NewFromInt(50)

	env := &mrpEnv{
		demand: &memDemand{orders: []entity.SalesOrderDemand{{
			LineID: "L1", SONumber: "SO-001", Status: "Open", DeliveryDate: today.AddDate(0, 0, 20),
			PartID: "P1", PartNumber: "PN-100", PartName: "Soporte", Quantity: decimal.NewFromInt(100),
		}}},
		runs: &memRuns{},
	}
	bom := &memBOM{lines: []entity.BOMLine{{
		ID: "B1", ParentItemID: "P1", ChildMaterialID: "M1", QuantityPerParent: decimal.NewFromInt(2),
		MaterialCode: "M-STEEL", Description: "Lámina",
	}}}

	runUC := appmrp.NewRunUseCase(env.demand, bom, ledger, fixedClock{}, cfg, nil).WithHistory(env.runs)
	env.app = fiber.New()
	apphttp.Router(env.app, apphttp.RouterDeps{
		MRP:       runUC,
		History:   appmrp.NewHistoryUseCase(env.runs),
		JWTSecret: jwtSecret,
	})
	return env
}

func postJSON(t *testing.T, app *fiber.App, path, body string, headers ...string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/mrp/run
// ──────────────────────────────────────────────────────────────────────────────

func TestMRPRun_ContratoJSON(t *testing.T) {
	env := newMRPApp(t, "", appmrp.DefaultConfig())

	resp := postJSON(t, env.app, "/api/mrp/run", `{"planningHorizonDays": 90}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)

	assert.EqualValues(t, 90, body["planningHorizon"])
	assert.NotEmpty(t, body["generatedAt"])
	assert.NotEmpty(t, body["runId"])

	gross := body["grossRequirements"].([]interface{})
	require.Len(t, gross, 1)
	g := gross[0].(map[string]interface{})
	assert.Equal(t, "P1", g["part_id"])
	assert.EqualValues(t, 100, g["required_quantity"], "cantidades como números JSON")
	assert.EqualValues(t, 30, g["available_quantity"])
	assert.EqualValues(t, 70, g["shortage_quantity"])
	assert.Equal(t, "2026-03-22", g["due_date"])
	assert.Equal(t, "Sales Order", g["source"])
	assert.Equal(t, "SO-001", g["reference_id"])

	mats := body["materialRequirements"].([]interface{})
	require.Len(t, mats, 1)
	m := mats[0].(map[string]interface{})
	assert.Equal(t, "M-STEEL", m["material_code"])
	assert.EqualValues(t, 140, m["total_required"])
	assert.EqualValues(t, 50, m["available_stock"])
	assert.EqualValues(t, 0, m["planned_orders"])
	assert.EqualValues(t, 90, m["shortage"])
	assert.EqualValues(t, 108, m["suggested_po_quantity"])
	assert.EqualValues(t, 7, m["supplier_lead_time"])
	assert.Equal(t, "2026-03-15", m["order_date"])

	summary := body["summary"].(map[string]interface{})
	assert.EqualValues(t, 1, summary["totalParts"])
	assert.EqualValues(t, 1, summary["totalMaterials"])
	assert.EqualValues(t, 1, summary["materialsWithShortage"])
	assert.EqualValues(t, 0, summary["totalPOValue"], "sin precio ni costo se usa el precio de respaldo 0")
}

func TestMRPRun_SinCuerpoUsaHorizontePorDefecto(t *testing.T) {
	env := newMRPApp(t, "", appmrp.DefaultConfig())

	resp := postJSON(t, env.app, "/api/mrp/run", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 90, decode(t, resp)["planningHorizon"])
}

func TestMRPRun_HorizonteInvalidoRetorna400(t *testing.T) {
	env := newMRPApp(t, "", appmrp.DefaultConfig())

	for _, body := range []string{
		`{"planningHorizonDays": "abc"}`,
		`{"planningHorizonDays": 30.5}`,
		`{"planningHorizonDays": 0}`,
		`{"planningHorizonDays": -10}`,
		`{"planningHorizonDays": 1000}`,
		`{planningHorizonDays`,
	} {
		resp := postJSON(t, env.app, "/api/mrp/run", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "cuerpo %s", body)
		out := decode(t, resp)
		assert.Equal(t, "VALIDATION", out["code"], "cuerpo %s", body)
		assert.NotEmpty(t, out["error"])
	}
	assert.Empty(t, env.runs.runs, "la validación ocurre antes de la corrida")
}

func TestMRPRun_ErrorDeDatosRetorna500Generico(t *testing.T) {
	env := newMRPApp(t, "", appmrp.DefaultConfig())
	env.demand.err = errors.New("pq: password authentication failed")

	resp := postJSON(t, env.app, "/api/mrp/run", `{}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.NotContains(t, body["error"], "password", "no se expone la causa")
	assert.NotContains(t, body, "grossRequirements")
}

func TestMRPRun_TimeoutRetorna500ConCodigo(t *testing.T) {
	cfg := appmrp.DefaultConfig()
	cfg.Timeout = 20 * time.Millisecond
	env := newMRPApp(t, "", cfg)
	env.demand.block = true

	resp := postJSON(t, env.app, "/api/mrp/run", `{}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "TIMEOUT", decode(t, resp)["code"])
}

func TestMRPRun_RequiereRolPlanner(t *testing.T) {
	env := newMRPApp(t, testJWTSecret, appmrp.DefaultConfig())

	resp := postJSON(t, env.app, "/api/mrp/run", `{}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, env.app, "/api/mrp/run", `{}`, "Authorization", tokenForRole(t, pkgjwt.RoleWarehouse))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = postJSON(t, env.app, "/api/mrp/run", `{}`, "Authorization", tokenForRole(t, pkgjwt.RolePlanner))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, env.runs.runs, 1)
	assert.Equal(t, testUserID, env.runs.runs[0].CreatedBy)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial y último resultado
// ──────────────────────────────────────────────────────────────────────────────

func TestMRPRuns_ListaYDetalle(t *testing.T) {
	env := newMRPApp(t, "", appmrp.DefaultConfig())
	run := decode(t, postJSON(t, env.app, "/api/mrp/run", `{}`))
	runID := run["runId"].(string)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/mrp/runs?limit=10", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode(t, resp)
	items := list["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, runID, items[0].(map[string]interface{})["id"])
	assert.Nil(t, items[0].(map[string]interface{})["result"])

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/mrp/runs/"+runID, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode(t, resp)
	assert.Equal(t, "COMPLETED", detail["status"])
	assert.NotNil(t, detail["result"])

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/mrp/runs/no-existe", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMRPLatest_SinCacheRetorna404(t *testing.T) {
	env := newMRPApp(t, "", appmrp.DefaultConfig())

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/mrp/latest?planningHorizonDays=90", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/mrp/latest?planningHorizonDays=abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_, _ = io.Copy(io.Discard, resp.Body)
}
