package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/storefront/internal/auth"
	"github.com/dropDatabas3/storefront/internal/cache"
	"github.com/dropDatabas3/storefront/internal/cart"
	"github.com/dropDatabas3/storefront/internal/catalog"
	"github.com/dropDatabas3/storefront/internal/email"
	admctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/admin"
	cartctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/cart"
	catctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/catalog"
	contactctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/contact"
	healthctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/health"
	onbctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/onboarding"
	pagesctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/pages"
	admsvc "github.com/dropDatabas3/storefront/internal/httpx/services/admin"
	cartsvc "github.com/dropDatabas3/storefront/internal/httpx/services/cart"
	contactsvc "github.com/dropDatabas3/storefront/internal/httpx/services/contact"
	onbsvc "github.com/dropDatabas3/storefront/internal/httpx/services/onboarding"
	"github.com/dropDatabas3/storefront/internal/onboarding"
	"github.com/dropDatabas3/storefront/internal/tenant"
	"github.com/dropDatabas3/storefront/internal/tenant/fsload"
	"github.com/dropDatabas3/storefront/internal/theme"
)

const testRevalidateSecret = "super-secreto"

// newTestHandler arma el stack completo con backends en memoria y un
// upstream de catálogo falso.
func newTestHandler(t *testing.T) (http.Handler, *fsload.Loader) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tenants"), 0o755))
	writeJSON(t, filepath.Join(dir, "tenants.json"), tenant.Registry{
		Default: "default.json",
		Tenants: map[string]tenant.RegistryEntry{
			"default":    {ID: "default", Name: "Storefront", Status: tenant.StatusActive, ConfigFile: "default.json"},
			"abc-rental": {ID: "abc-rental", Name: "ABC Rental", Status: tenant.StatusActive, ConfigFile: "abc-rental.json"},
		},
	})
	writeJSON(t, filepath.Join(dir, "tenants", "default.json"), testTenant("default", theme.Ocean))
	writeJSON(t, filepath.Join(dir, "tenants", "abc-rental.json"), testTenant("abc-rental", theme.Fire))

	loader := fsload.New(dir, fsload.WithTTL(time.Hour))

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"id":1,"title":"Mock"}],"total":1}`))
	}))
	t.Cleanup(upstream.Close)

	cacheClient := cache.NewMemory("test:", time.Minute)
	cartStore := cart.NewStore(cacheClient, time.Hour)
	issuer := auth.NewTokenIssuer("storefront", "jwt-secreto-test", time.Hour)
	otp := auth.NewOTPService(cacheClient, time.Minute, 6)
	mailer := email.NewMailer(nil)

	cartService := cartsvc.NewService(cartsvc.Deps{Store: cartStore})
	onbService := onbsvc.NewService(onbsvc.Deps{
		OTP: otp, Tokens: issuer, Profiles: onboarding.NewMemoryStore(), Mailer: mailer,
	})

	h := New(Deps{
		Loader:     loader,
		RootDomain: "mystorefront.app",
		Issuer:     issuer,

		Pages:      pagesctrl.NewController(),
		Catalog:    catctrl.NewController(catalog.New(upstream.URL, time.Second)),
		Cart:       cartctrl.NewController(cartService, "sf_session", time.Hour, false),
		OTP:        onbctrl.NewOTPController(onbService),
		Profile:    onbctrl.NewProfileController(onbService),
		Contact:    contactctrl.NewController(contactsvc.NewService(contactsvc.Deps{Mailer: mailer})),
		Revalidate: admctrl.NewRevalidateController(admsvc.NewRevalidateService(admsvc.Deps{Loader: loader, Secret: testRevalidateSecret})),
		Health:     healthctrl.NewController(cacheClient, loader),
	})
	return h, loader
}

func testTenant(id string, th theme.ID) tenant.Config {
	return tenant.Config{
		ID:    id,
		Name:  strings.ToUpper(id),
		Theme: theme.RefFromID(th),
		Content: tenant.Content{
			Hero:    tenant.Hero{Title: "Hero " + id, Subtitle: "Sub " + id, CTALabel: "Ver más"},
			About:   "About " + id,
			Contact: tenant.Contact{Email: id + "@example.com"},
		},
		Metadata: tenant.Metadata{Title: "Title " + id, Description: "Desc " + id},
	}
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o644))
}

func doReq(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHome_TemaPorSubdominioLocal(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "http://abc-rental.localhost:3000/", nil)
	req.Host = "abc-rental.localhost:3000"
	rec := doReq(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc-rental", rec.Header().Get("X-Tenant-ID"))

	body := rec.Body.String()
	require.Contains(t, body, "--sf-primary: #dc2626;") // fire inline en el head
	require.Contains(t, body, "Hero abc-rental")
	require.Contains(t, body, `data-theme="fire"`)
}

func TestHome_HostDesconocidoUsaDefault(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "http://dominio-ajeno.com/", nil)
	req.Host = "dominio-ajeno.com"
	rec := doReq(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "default", rec.Header().Get("X-Tenant-ID"))
	require.Contains(t, rec.Body.String(), "--sf-primary: #2563eb;") // ocean
}

func TestHome_HeaderPisaHostname(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "http://default.localhost:3000/", nil)
	req.Host = "default.localhost:3000"
	req.Header.Set("X-Tenant-ID", "abc-rental")
	rec := doReq(t, h, req)

	require.Equal(t, "abc-rental", rec.Header().Get("X-Tenant-ID"))
}

func TestThemeCSS(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "http://abc-rental.localhost:3000/theme.css", nil)
	req.Host = "abc-rental.localhost:3000"
	rec := doReq(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	require.Contains(t, rec.Body.String(), "--sf-primary: #dc2626;")
}

func TestRevalidate_SinSecretEs401(t *testing.T) {
	h, loader := newTestHandler(t)

	// Precalentar el cache.
	req := httptest.NewRequest(http.MethodGet, "http://abc-rental.localhost:3000/", nil)
	req.Host = "abc-rental.localhost:3000"
	doReq(t, h, req)

	bad := httptest.NewRequest(http.MethodPost, "http://x.localhost/api/revalidate?secret=incorrecto", nil)
	bad.Host = "x.localhost"
	rec := doReq(t, h, bad)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// El cache sigue sirviendo: un secret inválido no invalida nada.
	cfg := loader.Config(context.Background(), "abc-rental")
	require.Equal(t, "abc-rental", cfg.ID)
}

func TestRevalidate_ConSecretOK(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "http://x.localhost/api/revalidate?secret="+testRevalidateSecret+"&tenant=abc-rental", nil)
	req.Host = "x.localhost"
	rec := doReq(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Revalidated bool   `json:"revalidated"`
		Tenant      string `json:"tenant"`
		Now         int64  `json:"now"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Revalidated)
	require.Equal(t, "abc-rental", resp.Tenant)
	require.NotZero(t, resp.Now)
}

func TestCart_FlujoCompleto(t *testing.T) {
	h, _ := newTestHandler(t)
	host := "abc-rental.localhost:3000"

	// Agregar un ítem: setea cookie de sesión.
	add := httptest.NewRequest(http.MethodPost, "http://"+host+"/api/cart/items",
		strings.NewReader(`{"id":1,"title":"Mock","price":100,"discountPercentage":20,"quantity":2}`))
	add.Host = host
	rec := doReq(t, h, add)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == "sf_session" {
			session = c
		}
	}
	require.NotNil(t, session)

	// Mismo producto otra vez: merge, no línea nueva.
	add2 := httptest.NewRequest(http.MethodPost, "http://"+host+"/api/cart/items",
		strings.NewReader(`{"id":1,"title":"Mock","price":100,"discountPercentage":20,"quantity":3}`))
	add2.Host = host
	add2.AddCookie(session)
	rec = doReq(t, h, add2)
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot struct {
		Items []struct {
			ID       int `json:"id"`
			Quantity int `json:"quantity"`
		} `json:"items"`
		TotalItems int     `json:"totalItems"`
		TotalPrice float64 `json:"totalPrice"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	require.Len(t, snapshot.Items, 1)
	require.Equal(t, 5, snapshot.Items[0].Quantity)
	require.Equal(t, 5, snapshot.TotalItems)
	require.InDelta(t, 400.0, snapshot.TotalPrice, 1e-6) // 100×0.8×5

	// GET devuelve el mismo carrito.
	get := httptest.NewRequest(http.MethodGet, "http://"+host+"/api/cart", nil)
	get.Host = host
	get.AddCookie(session)
	rec = doReq(t, h, get)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"totalItems":5`)

	// Quantity 0 elimina la línea.
	upd := httptest.NewRequest(http.MethodPut, "http://"+host+"/api/cart/items/1",
		strings.NewReader(`{"quantity":0}`))
	upd.Host = host
	upd.AddCookie(session)
	rec = doReq(t, h, upd)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"totalItems":0`)
}

func TestCatalog_Passthrough(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "http://abc-rental.localhost:3000/api/products?limit=5", nil)
	req.Host = "abc-rental.localhost:3000"
	rec := doReq(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Mock"`)
}

func TestOnboarding_SinTokenEs401(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "http://x.localhost/api/onboarding/step", nil)
	req.Host = "x.localhost"
	rec := doReq(t, h, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOnboarding_MoveStepAdyacente(t *testing.T) {
	h, _ := newTestHandler(t)

	// Mismo issuer/secret que el harness: token válido para el grupo privado.
	token, err := auth.NewTokenIssuer("storefront", "jwt-secreto-test", time.Hour).Issue("+5491155550101")
	require.NoError(t, err)

	// Sin perfil el paso derivado es profile; otp es adyacente.
	ok := httptest.NewRequest(http.MethodPost, "http://x.localhost/api/onboarding/step",
		strings.NewReader(`{"step":"otp"}`))
	ok.Host = "x.localhost"
	ok.Header.Set("Authorization", "Bearer "+token)
	rec := doReq(t, h, ok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"step":"otp"`)

	// Un salto responde 409 sin mover nada.
	jump := httptest.NewRequest(http.MethodPost, "http://x.localhost/api/onboarding/step",
		strings.NewReader(`{"step":"insurance"}`))
	jump.Host = "x.localhost"
	jump.Header.Set("Authorization", "Bearer "+token)
	rec = doReq(t, h, jump)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doReq(t, h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ok"`)
}

func TestAPI_NotFoundEnJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "http://x.localhost/api/nada", nil)
	req.Host = "x.localhost"
	rec := doReq(t, h, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
