package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/model"
	"github.com/ridehub/ms-route/internal/repository"
	"github.com/ridehub/ms-route/internal/service"
)

const app = "msRouteApp"

func newServer(t *testing.T) (*echo.Echo, *service.Services) {
	t.Helper()
	svc := service.NewServices(repository.NewMemoryStores(), nil, nil)
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(app, nil)

	limits := criteria.DefaultLimits
	NewResource(svc.Addresses, "/api/addresses", Alerts{App: app, Entity: "msRouteAddress"}, limits).Register(e.Group("/api/addresses"))
	NewResource(svc.Wards, "/api/wards", Alerts{App: app, Entity: "msRouteWard"}, limits).Register(e.Group("/api/wards"))
	drivers := e.Group("/api/drivers")
	NewResource(svc.Drivers, "/api/drivers", Alerts{App: app, Entity: "msRouteDriver"}, limits).Register(drivers)
	NewSimpleRole(svc.SimpleDrivers, "/api/drivers", Alerts{App: app, Entity: "msRouteDriver"}).Register(drivers)
	return e, svc
}

func do(e *echo.Echo, method, target, body string, contentType ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		ct := echo.MIMEApplicationJSON
		if len(contentType) > 0 {
			ct = contentType[0]
		}
		req.Header.Set(echo.HeaderContentType, ct)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[V any](t *testing.T, rec *httptest.ResponseRecorder) V {
	t.Helper()
	var v V
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createWard(t *testing.T, e *echo.Echo) int64 {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/wards", `{"wardCode":"00004","name":"Truc Bach","createdAt":"1970-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return *decodeJSON[model.Ward](t, rec).ID
}

func addressBody(ward int64) string {
	return fmt.Sprintf(`{"streetAddress":"AAAAAAAAAA","latitude":1,"longitude":1,"createdAt":"1970-01-01T00:00:00Z","isDeleted":false,"ward":{"id":%d}}`, ward)
}

func createAddress(t *testing.T, e *echo.Echo, ward int64) int64 {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/addresses", addressBody(ward))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return *decodeJSON[model.Address](t, rec).ID
}

func count(t *testing.T, e *echo.Echo, query string) int64 {
	t.Helper()
	rec := do(e, http.MethodGet, "/api/addresses/count?"+query, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeJSON[int64](t, rec)
}

func listIDs(t *testing.T, e *echo.Echo, query string) []int64 {
	t.Helper()
	rec := do(e, http.MethodGet, "/api/addresses?"+query, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ids := []int64{}
	for _, a := range decodeJSON[[]model.Address](t, rec) {
		ids = append(ids, *a.ID)
	}
	return ids
}

func TestCreate_HeadersAndBody(t *testing.T) {
	e, _ := newServer(t)
	ward := createWard(t, e)

	rec := do(e, http.MethodPost, "/api/addresses", addressBody(ward))
	require.Equal(t, http.StatusCreated, rec.Code)
	a := decodeJSON[model.Address](t, rec)
	id := strconv.FormatInt(*a.ID, 10)

	assert.Equal(t, "/api/addresses/"+id, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "msRouteApp.msRouteAddress.created", rec.Header().Get("X-msRouteApp-alert"))
	assert.Equal(t, id, rec.Header().Get("X-msRouteApp-params"))
	assert.Equal(t, ward, a.Ward.ID)

	get := do(e, http.MethodGet, "/api/addresses/"+id, "")
	require.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, "AAAAAAAAAA", *decodeJSON[model.Address](t, get).StreetAddress)
}

func TestFilters(t *testing.T) {
	e, _ := newServer(t)
	ward := createWard(t, e)
	id := createAddress(t, e, ward)

	cases := []struct {
		query string
		found bool
	}{
		{"id.equals=" + strconv.FormatInt(id, 10), true},
		{"id.notEquals=" + strconv.FormatInt(id, 10), false},
		{"latitude.equals=1", true},
		{"latitude.equals=2", false},
		{"latitude.in=1,2", true},
		{"latitude.notIn=1,2", false},
		{"latitude.greaterThanOrEqual=1", true},
		{"latitude.greaterThan=1", false},
		{"latitude.lessThan=2", true},
		{"latitude.specified=true", true},
		{"latitude.specified=false", false},
		{"streetAddress.contains=AAAAAAAAAA", true},
		{"streetAddress.contains=aaaaa", true},
		{"streetAddress.contains=BBBBBBBBBB", false},
		{"streetAddress.doesNotContain=AAAAAAAAAA", false},
		{"streetAddress.doesNotContain=BBBBBBBBBB", true},
		{"isDeleted.equals=false", true},
		{"isDeleted.equals=true", false},
		{"createdAt.equals=1970-01-01T00:00:00Z", true},
		{"deletedAt.specified=false", true},
		{"wardId.equals=" + strconv.FormatInt(ward, 10), true},
		{"wardId.equals=999", false},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			ids := listIDs(t, e, tc.query)
			n := count(t, e, tc.query)
			if tc.found {
				assert.Equal(t, []int64{id}, ids)
				assert.Equal(t, int64(1), n)
			} else {
				assert.Empty(t, ids)
				assert.Equal(t, int64(0), n)
			}
		})
	}
}

func TestMalformedCriteria(t *testing.T) {
	e, _ := newServer(t)
	for _, q := range []string{
		"nope.equals=1",
		"latitude.contains=1",
		"latitude.equals=abc",
		"streetAddress.greaterThan=a",
		"isDeleted.equals=maybe",
		"page=-1",
		"size=0",
		"sort=nope,asc",
	} {
		t.Run(q, func(t *testing.T) {
			rec := do(e, http.MethodGet, "/api/addresses?"+q, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "error.malformedcriteria", decodeJSON[ErrorBody](t, rec).Error)
		})
	}
}

func TestCreate_Rejected(t *testing.T) {
	e, _ := newServer(t)
	ward := createWard(t, e)
	createAddress(t, e, ward)

	cases := []struct {
		name, body, key string
	}{
		{"null createdAt", fmt.Sprintf(`{"streetAddress":"x","ward":{"id":%d}}`, ward), "error.validation"},
		{"null streetAddress", fmt.Sprintf(`{"createdAt":"1970-01-01T00:00:00Z","ward":{"id":%d}}`, ward), "error.validation"},
		{"unknown ward", `{"streetAddress":"x","createdAt":"1970-01-01T00:00:00Z","ward":{"id":999}}`, "error.validation"},
		{"id set", fmt.Sprintf(`{"id":1,"streetAddress":"x","createdAt":"1970-01-01T00:00:00Z","ward":{"id":%d}}`, ward), "error.idexists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := count(t, e, "")
			rec := do(e, http.MethodPost, "/api/addresses", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.key, decodeJSON[ErrorBody](t, rec).Error)
			assert.Equal(t, tc.key, rec.Header().Get("X-msRouteApp-error"))
			assert.Equal(t, before, count(t, e, ""))
		})
	}
}

func TestUpdate_Conflicts(t *testing.T) {
	e, _ := newServer(t)
	ward := createWard(t, e)
	id := createAddress(t, e, ward)
	path := "/api/addresses/" + strconv.FormatInt(id, 10)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			rec := do(e, method, path, `{"streetAddress":"x","createdAt":"1970-01-01T00:00:00Z"}`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "error.idnull", decodeJSON[ErrorBody](t, rec).Error)

			rec = do(e, method, path, fmt.Sprintf(`{"id":%d,"streetAddress":"x"}`, id+1))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "error.idinvalid", decodeJSON[ErrorBody](t, rec).Error)

			rec = do(e, method, "/api/addresses/999", fmt.Sprintf(`{"id":999,"streetAddress":"x","createdAt":"1970-01-01T00:00:00Z","ward":{"id":%d}}`, ward))
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestPutVersusPatch(t *testing.T) {
	e, _ := newServer(t)
	ward := createWard(t, e)
	id := createAddress(t, e, ward)
	path := "/api/addresses/" + strconv.FormatInt(id, 10)

	rec := do(e, http.MethodPatch, path, fmt.Sprintf(`{"id":%d,"latitude":2}`, id), mimeMergePatchJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "msRouteApp.msRouteAddress.updated", rec.Header().Get("X-msRouteApp-alert"))
	patched := decodeJSON[model.Address](t, rec)
	assert.Equal(t, 2.0, *patched.Latitude)
	assert.Equal(t, 1.0, *patched.Longitude)
	assert.Equal(t, "AAAAAAAAAA", *patched.StreetAddress)

	rec = do(e, http.MethodPut, path, fmt.Sprintf(`{"id":%d,"streetAddress":"BBBBBBBBBB","createdAt":"1970-01-01T00:00:00Z","ward":{"id":%d}}`, id, ward))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	put := decodeJSON[model.Address](t, do(e, http.MethodGet, path, ""))
	assert.Equal(t, "BBBBBBBBBB", *put.StreetAddress)
	assert.Nil(t, put.Latitude)
	assert.Nil(t, put.Longitude)

	assert.Equal(t, int64(1), count(t, e, "streetAddress.equals=BBBBBBBBBB"))
	assert.Equal(t, int64(0), count(t, e, "latitude.equals=2"))
}

func TestUnsupportedBody(t *testing.T) {
	e, _ := newServer(t)
	rec := do(e, http.MethodPost, "/api/wards", `name=x`, echo.MIMETextPlain)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = do(e, http.MethodPost, "/api/wards", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/wards/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete(t *testing.T) {
	e, _ := newServer(t)
	id := createAddress(t, e, createWard(t, e))
	path := "/api/addresses/" + strconv.FormatInt(id, 10)

	rec := do(e, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "msRouteApp.msRouteAddress.deleted", rec.Header().Get("X-msRouteApp-alert"))

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodDelete, path, "").Code)
}

func TestList_Paging(t *testing.T) {
	e, _ := newServer(t)
	ward := createWard(t, e)
	for i := 0; i < 5; i++ {
		createAddress(t, e, ward)
	}

	rec := do(e, http.MethodGet, "/api/addresses?page=1&size=2&sort=id,desc&latitude.equals=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-Total-Count"))
	items := decodeJSON[[]model.Address](t, rec)
	require.Len(t, items, 2)
	assert.Greater(t, *items[0].ID, *items[1].ID)

	link := rec.Header().Get("Link")
	assert.Contains(t, link, `rel="next"`)
	assert.Contains(t, link, `rel="prev"`)
	assert.Contains(t, link, "page=2&size=2")
	assert.Contains(t, link, "latitude.equals=1")

	unpaged := do(e, http.MethodGet, "/api/addresses", "")
	assert.Empty(t, unpaged.Header().Get("X-Total-Count"))
	assert.Len(t, decodeJSON[[]model.Address](t, unpaged), 5)

	empty := do(e, http.MethodGet, "/api/addresses?latitude.equals=9", "")
	assert.Equal(t, "[]\n", empty.Body.String())
}

func TestSimpleDriver(t *testing.T) {
	e, svc := newServer(t)

	rec := do(e, http.MethodPost, "/api/drivers/simple", `{"name":"Nguyen Van A","gender":"MALE","licenseClass":"D","yearsExperience":5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeJSON[model.SimpleStaffRole](t, rec)
	id := strconv.FormatInt(*created.ID, 10)
	assert.Equal(t, "/api/drivers/simple/"+id, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, model.StaffActive, *created.Status)

	rec = do(e, http.MethodPut, "/api/drivers/simple/"+id, `{"name":"Nguyen Van B","licenseClass":"E"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/drivers/simple/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeJSON[model.SimpleStaffRole](t, rec)
	assert.Equal(t, "Nguyen Van B", *got.Name)
	assert.Equal(t, "E", *got.LicenseClass)

	rec = do(e, http.MethodPost, "/api/drivers/simple", `{"gender":"OTHER","name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	n, err := svc.Staff.Count(t.Context(), svc.Staff.Schema().All())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/drivers/simple/999", "").Code)
}
