package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ppic-api/internal/application/inventory"
	"github.com/jhoicas/ppic-api/internal/domain/entity"
	apphttp "github.com/jhoicas/ppic-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ppic-api/pkg/jwt"
)

const (
	partUUID     = "11111111-1111-1111-1111-111111111111"
	materialUUID = "22222222-2222-2222-2222-222222222222"
)

func newInventoryApp(jwtSecret string) *fiber.App {
	ledger := newLedger()
	items := &memItems{items: map[string]*entity.ItemRef{
		partUUID:     {ID: partUUID, Type: entity.ItemTypePart, Code: "PN-100", Name: "Soporte"},
		materialUUID: {ID: materialUUID, Type: entity.ItemTypeMaterial, Code: "M-STEEL", Name: "Lámina"},
	}}
	uc := inventory.NewUseCase(memTxRunner{ledger: ledger, items: items}, ledger, items)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Inventory: uc, JWTSecret: jwtSecret})
	return app
}

func TestInventory_RegistrarYConsultarExistencia(t *testing.T) {
	app := newInventoryApp("")

	resp := postJSON(t, app, "/api/inventory/transactions",
		`{"item_id":"`+materialUUID+`","item_type":"Material","transaction_type":"Receipt","quantity":50,"unit_cost":"12.5"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	assert.EqualValues(t, 50, created["on_hand_after"])

	resp = postJSON(t, app, "/api/inventory/transactions",
		`{"item_id":"`+materialUUID+`","item_type":"Material","transaction_type":"Issue","quantity":20}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	r, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/inventory/on-hand/Material/"+materialUUID, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, r.StatusCode)
	body := decode(t, r)
	assert.EqualValues(t, 30, body["on_hand"])
	assert.Equal(t, "M-STEEL", body["item_code"])
}

func TestInventory_SalidaSinExistenciaRetorna409(t *testing.T) {
	app := newInventoryApp("")

	resp := postJSON(t, app, "/api/inventory/transactions",
		`{"item_id":"`+partUUID+`","item_type":"Part","transaction_type":"Issue","quantity":1}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode(t, resp)["code"])
}

func TestInventory_ValidacionDeCampos(t *testing.T) {
	app := newInventoryApp("")

	resp := postJSON(t, app, "/api/inventory/transactions",
		`{"item_id":"no-uuid","item_type":"Tool","transaction_type":"Receipt","quantity":1}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	details := body["details"].(map[string]interface{})
	assert.Contains(t, details, "item_id")
	assert.Contains(t, details, "item_type")
}

func TestInventory_ItemInexistenteRetorna404(t *testing.T) {
	app := newInventoryApp("")

	r, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/inventory/on-hand/Part/"+materialUUID, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, r.StatusCode)
}

func TestInventory_PlannerNoRegistraTransacciones(t *testing.T) {
	app := newInventoryApp(testJWTSecret)

	resp := postJSON(t, app, "/api/inventory/transactions",
		`{"item_id":"`+partUUID+`","item_type":"Part","transaction_type":"Receipt","quantity":1}`,
		"Authorization", tokenForRole(t, pkgjwt.RolePlanner))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = postJSON(t, app, "/api/inventory/transactions",
		`{"item_id":"`+partUUID+`","item_type":"Part","transaction_type":"Receipt","quantity":1}`,
		"Authorization", tokenForRole(t, pkgjwt.RoleWarehouse))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
