package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/lock"
	"brandlink-be/internal/pkg/logger"
	"brandlink-be/internal/pkg/serverutils"
	"brandlink-be/internal/repository/memory"
	"brandlink-be/internal/repository/unitofwork"
	"brandlink-be/internal/service"
	"brandlink-be/pkg/contactevents"
	"brandlink-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

type scanSink struct{}

func (scanSink) Publish(context.Context, []byte) error { return nil }

func (scanSink) EnqueueScan(context.Context, uuid.UUID, string) error { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logger.NewNopLogger()
	factory := unitofwork.NewRepositoryFactory(db)
	cache := memory.NewDuplicateCache(time.Minute)

	workspaceService := service.NewWorkspaceService(factory, log)
	contactService := service.NewContactService(factory, scanSink{}, cache, log)
	duplicateService := service.NewDuplicateService(factory, lock.NewLocalLocker(), time.Minute, cache, contactevents.NewNatsPublisher(nil, log), log)

	guards := NewGuards(testSecret, workspaceService)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewWorkspaceController(workspaceService, guards).RegisterRoutes(api)
	NewContactController(contactService, guards).RegisterRoutes(api)
	NewDuplicateController(duplicateService, guards).RegisterRoutes(api)
	return app
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, app *fiber.App, user uuid.UUID, method, path string, body interface{}) (int, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		token, err := serverutils.SignUserToken(testSecret, user.String(), time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func createWorkspace(t *testing.T, app *fiber.App, owner uuid.UUID) uuid.UUID {
	t.Helper()
	status, res := call(t, app, owner, http.MethodPost, "/api/workspace/v1", dto.CreateWorkspaceRequest{Name: "Team"})
	require.Equal(t, http.StatusCreated, status)
	var created dto.CreateWorkspaceResponse
	require.NoError(t, json.Unmarshal(res.Data, &created))
	return created.Id
}

func createContact(t *testing.T, app *fiber.App, user, wsId uuid.UUID, f dto.ContactFields) uuid.UUID {
	t.Helper()
	status, res := call(t, app, user, http.MethodPost, "/api/workspace/v1/"+wsId.String()+"/contacts", f)
	require.Equal(t, http.StatusCreated, status)
	var created dto.CreateContactResponse
	require.NoError(t, json.Unmarshal(res.Data, &created))
	return created.Id
}

func str(s string) *string {
	return &s
}

func TestRoutes_RequireToken(t *testing.T) {
	app := newTestApp(t)
	status, _ := call(t, app, uuid.Nil, http.MethodGet, "/api/workspace/v1", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoutes_NonMemberIsForbidden(t *testing.T) {
	app := newTestApp(t)
	owner := uuid.New()
	wsId := createWorkspace(t, app, owner)

	status, res := call(t, app, uuid.New(), http.MethodGet, "/api/workspace/v1/"+wsId.String()+"/contacts", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, res.Success)

	status, _ = call(t, app, owner, http.MethodGet, "/api/workspace/v1/not-a-uuid/contacts", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRoutes_DuplicateFlow(t *testing.T) {
	app := newTestApp(t)
	owner := uuid.New()
	wsId := createWorkspace(t, app, owner)
	base := "/api/workspace/v1/" + wsId.String()

	keep := createContact(t, app, owner, wsId, dto.ContactFields{Email: str("kim@label.co"), Name: str("Kim")})
	dup := createContact(t, app, owner, wsId, dto.ContactFields{Email: str("kim@label.co"), Title: str("A&R")})

	status, res := call(t, app, owner, http.MethodGet, base+"/duplicates", nil)
	require.Equal(t, http.StatusOK, status)
	var groups []dto.DuplicateGroupResponse
	require.NoError(t, json.Unmarshal(res.Data, &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Count)

	status, _ = call(t, app, owner, http.MethodPost, base+"/duplicates/merge", dto.MergeContactsRequest{KeepId: keep, ContactIds: []uuid.UUID{keep}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, res = call(t, app, owner, http.MethodPost, base+"/duplicates/merge", dto.MergeContactsRequest{KeepId: keep, ContactIds: []uuid.UUID{keep, dup}})
	require.Equal(t, http.StatusOK, status)
	var merged dto.MergeContactsResponse
	require.NoError(t, json.Unmarshal(res.Data, &merged))
	assert.Equal(t, keep, merged.Contact.Id)
	require.NotNil(t, merged.Contact.Title)
	assert.Equal(t, "A&R", *merged.Contact.Title)

	status, _ = call(t, app, owner, http.MethodGet, base+"/contacts/"+dup.String(), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, res = call(t, app, owner, http.MethodPost, base+"/duplicates/scan", nil)
	require.Equal(t, http.StatusOK, status)
	var scan dto.ScanWorkspaceResponse
	require.NoError(t, json.Unmarshal(res.Data, &scan))
	assert.Equal(t, 0, scan.GroupCount)
}

func TestRoutes_AddMemberGrantsAccess(t *testing.T) {
	app := newTestApp(t)
	owner, guest := uuid.New(), uuid.New()
	wsId := createWorkspace(t, app, owner)

	status, _ := call(t, app, owner, http.MethodPost, "/api/workspace/v1/"+wsId.String()+"/members", dto.AddMemberRequest{UserId: guest})
	require.Equal(t, http.StatusOK, status)

	status, res := call(t, app, guest, http.MethodGet, "/api/workspace/v1", nil)
	require.Equal(t, http.StatusOK, status)
	var list []dto.WorkspaceResponse
	require.NoError(t, json.Unmarshal(res.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, wsId, list[0].Id)
}
