package bucketlist_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/andela-oeyiowuawi/Bucketlist/internal/auth"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/bucketlist"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/item"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/metrics"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/middleware"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/testdb"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketListHandler_Shared(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t,
		(*user.User)(nil),
		(*bucketlist.BucketList)(nil),
		(*item.Item)(nil),
	)

	userRepo := user.NewRepository(pgContainer.DB)
	listRepo := bucketlist.NewRepository(pgContainer.DB)
	listService := bucketlist.NewService(listRepo)
	tokens := auth.NewTokenManager("test-secret-key-for-testing", time.Hour)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	handler := bucketlist.NewHandler(listService, logger, metrics.NewMock(), nil)

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(middleware.APIVersion(1))
		r.Use(auth.Middleware(tokens, userRepo, logger))
		handler.RegisterRoutes(r)
	})

	seedUser := func(t *testing.T, email string) (*user.User, string) {
		t.Helper()
		u := &user.User{Name: "Test User", Email: email, Password: "irrelevant", Active: true}
		_, err := pgContainer.DB.NewInsert().Model(u).Exec(context.Background())
		require.NoError(t, err)
		token, err := tokens.Generate(u.ID, u.Email)
		require.NoError(t, err)
		return u, token
	}

	seedList := func(t *testing.T, ownerID int, name string) *bucketlist.BucketList {
		t.Helper()
		list := &bucketlist.BucketList{Name: name, CreatedBy: ownerID}
		_, err := pgContainer.DB.NewInsert().Model(list).Exec(context.Background())
		require.NoError(t, err)
		return list
	}

	do := func(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
		var body *bytes.Reader
		if payload != nil {
			raw, _ := json.Marshal(payload)
			body = bytes.NewReader(raw)
		} else {
			body = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/vnd.bucketlist.v1")
		if token != "" {
			req.Header.Set("Authorization", token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	cleanup := func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "items", "bucket_lists", "users")
	}

	t.Run("Index_RequiresToken", func(t *testing.T) {
		cleanup(t)

		w := do(http.MethodGet, "/bucketlists", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Not Authenticated")
	})

	t.Run("Index_EmptyState", func(t *testing.T) {
		cleanup(t)
		_, token := seedUser(t, "owner@example.com")

		w := do(http.MethodGet, "/bucketlists", token, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]string
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, "You have no bucketlist", response["message"])
	})

	t.Run("Index_ScopedToOwner", func(t *testing.T) {
		cleanup(t)
		owner, token := seedUser(t, "owner@example.com")
		other, _ := seedUser(t, "other@example.com")

		seedList(t, owner.ID, "Travel")
		seedList(t, owner.ID, "Food")
		seedList(t, owner.ID, "Books")
		seedList(t, other.ID, "Not Yours")

		w := do(http.MethodGet, "/bucketlists", token, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var lists []bucketlist.BucketList
		err := json.NewDecoder(w.Body).Decode(&lists)
		require.NoError(t, err)
		require.Len(t, lists, 3)
		for _, list := range lists {
			assert.Equal(t, owner.ID, list.CreatedBy)
		}
	})

	t.Run("Index_Pagination", func(t *testing.T) {
		cleanup(t)
		owner, token := seedUser(t, "owner@example.com")
		for i := 1; i <= 30; i++ {
			seedList(t, owner.ID, fmt.Sprintf("List %02d", i))
		}

		fetch := func(path string) []bucketlist.BucketList {
			w := do(http.MethodGet, path, token, nil)
			require.Equal(t, http.StatusOK, w.Code)
			var lists []bucketlist.BucketList
			require.NoError(t, json.NewDecoder(w.Body).Decode(&lists))
			return lists
		}

		defaultPage := fetch("/bucketlists")
		require.Len(t, defaultPage, 10)
		assert.Equal(t, "List 01", defaultPage[0].Name)
		assert.Equal(t, "List 10", defaultPage[9].Name)

		secondPage := fetch("/bucketlists?page=2")
		require.Len(t, secondPage, 10)
		assert.Equal(t, "List 11", secondPage[0].Name)
		assert.Equal(t, "List 20", secondPage[9].Name)

		smallPage := fetch("/bucketlists?limit=5")
		require.Len(t, smallPage, 5)
		assert.Equal(t, "List 05", smallPage[4].Name)

		composed := fetch("/bucketlists?page=2&limit=5")
		require.Len(t, composed, 5)
		assert.Equal(t, "List 06", composed[0].Name)
		assert.Equal(t, "List 10", composed[4].Name)
	})

	t.Run("Index_Search", func(t *testing.T) {
		cleanup(t)
		owner, token := seedUser(t, "owner@example.com")
		seedList(t, owner.ID, "Late Thirties")
		seedList(t, owner.ID, "Early Thirties")
		seedList(t, owner.ID, "Mid Twenties")

		w := do(http.MethodGet, "/bucketlists?q=Thirties", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var lists []bucketlist.BucketList
		require.NoError(t, json.NewDecoder(w.Body).Decode(&lists))
		require.Len(t, lists, 2)
		for _, list := range lists {
			assert.Contains(t, list.Name, "Thirties")
		}

		w = do(http.MethodGet, "/bucketlists?q=thirties", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		lists = nil
		require.NoError(t, json.NewDecoder(w.Body).Decode(&lists))
		assert.Len(t, lists, 2)
	})

	t.Run("Index_SearchNoMatch", func(t *testing.T) {
		cleanup(t)
		owner, token := seedUser(t, "owner@example.com")
		seedList(t, owner.ID, "Late Thirties")

		w := do(http.MethodGet, "/bucketlists?q=party", token, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "No result found")
	})

	t.Run("Create_Success", func(t *testing.T) {
		cleanup(t)
		owner, token := seedUser(t, "owner@example.com")

		w := do(http.MethodPost, "/bucketlists", token, map[string]string{"name": "Travel Goals"})

		assert.Equal(t, http.StatusCreated, w.Code)

		var created bucketlist.BucketList
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Travel Goals", created.Name)
		assert.Equal(t, owner.ID, created.CreatedBy)
	})

	t.Run("Create_BlankName", func(t *testing.T) {
		cleanup(t)
		_, token := seedUser(t, "owner@example.com")

		w := do(http.MethodPost, "/bucketlists", token, map[string]string{"name": ""})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response struct {
			Errors map[string][]string `json:"errors"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, []string{"can't be blank"}, response.Errors["name"])

		count, err := pgContainer.DB.NewSelect().Model((*bucketlist.BucketList)(nil)).Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Create_WhitespaceName", func(t *testing.T) {
		cleanup(t)
		_, token := seedUser(t, "owner@example.com")

		w := do(http.MethodPost, "/bucketlists", token, map[string]string{"name": "   "})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response struct {
			Errors map[string][]string `json:"errors"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, []string{"can't be blank"}, response.Errors["name"])

		count, err := pgContainer.DB.NewSelect().Model((*bucketlist.BucketList)(nil)).Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Show_Owned", func(t *testing.T) {
		cleanup(t)
		owner, token := seedUser(t, "owner@example.com")
		list := seedList(t, owner.ID, "Travel")

		w := do(http.MethodGet, fmt.Sprintf("/bucketlists/%d", list.ID), token, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var got bucketlist.BucketList
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, list.ID, got.ID)
		assert.Equal(t, "Travel", got.Name)
	})

	t.Run("Show_Foreign", func(t *testing.T) {
		cleanup(t)
		_, token := seedUser(t, "owner@example.com")
		other, _ := seedUser(t, "other@example.com")
		foreign := seedList(t, other.ID, "Not Yours")

		w := do(http.MethodGet, fmt.Sprintf("/bucketlists/%d", foreign.ID), token, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Update_Success", func(t *testing.T) {
		cleanup(t)
		owner, token := seedUser(t, "owner@example.com")
		list := seedList(t, owner.ID, "Old Name")

		w := do(http.MethodPut, fmt.Sprintf("/bucketlists/%d", list.ID), token, map[string]string{"name": "New Name"})

		assert.Equal(t, http.StatusOK, w.Code)

		var updated bucketlist.BucketList
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.Equal(t, "New Name", updated.Name)

		fresh := new(bucketlist.BucketList)
		err := pgContainer.DB.NewSelect().Model(fresh).Where("id = ?", list.ID).Scan(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "New Name", fresh.Name)
	})

	t.Run("Update_BlankName", func(t *testing.T) {
		cleanup(t)
		owner, token := seedUser(t, "owner@example.com")
		list := seedList(t, owner.ID, "Old Name")

		w := do(http.MethodPut, fmt.Sprintf("/bucketlists/%d", list.ID), token, map[string]string{"name": ""})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "can't be blank")
	})

	t.Run("Update_Foreign", func(t *testing.T) {
		cleanup(t)
		_, token := seedUser(t, "owner@example.com")
		other, _ := seedUser(t, "other@example.com")
		foreign := seedList(t, other.ID, "Not Yours")

		w := do(http.MethodPut, fmt.Sprintf("/bucketlists/%d", foreign.ID), token, map[string]string{"name": "Hijacked"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "can't update an invalid bucketlid")
	})

	t.Run("Update_ForeignBlankName", func(t *testing.T) {
		cleanup(t)
		_, token := seedUser(t, "owner@example.com")
		other, _ := seedUser(t, "other@example.com")
		foreign := seedList(t, other.ID, "Not Yours")

		// The record is resolved before the body is validated, so a foreign
		// or unknown id is a 404 even with an invalid payload.
		w := do(http.MethodPut, fmt.Sprintf("/bucketlists/%d", foreign.ID), token, map[string]string{"name": ""})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "can't update an invalid bucketlid")

		w = do(http.MethodPut, "/bucketlists/9999", token, map[string]string{"name": ""})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "can't update an invalid bucketlid")
	})

	t.Run("Delete_Success", func(t *testing.T) {
		cleanup(t)
		owner, token := seedUser(t, "owner@example.com")
		list := seedList(t, owner.ID, "Doomed")

		w := do(http.MethodDelete, fmt.Sprintf("/bucketlists/%d", list.ID), token, nil)

		assert.Equal(t, http.StatusNoContent, w.Code)

		count, err := pgContainer.DB.NewSelect().Model((*bucketlist.BucketList)(nil)).Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Delete_Foreign", func(t *testing.T) {
		cleanup(t)
		_, token := seedUser(t, "owner@example.com")
		other, _ := seedUser(t, "other@example.com")
		foreign := seedList(t, other.ID, "Not Yours")

		w := do(http.MethodDelete, fmt.Sprintf("/bucketlists/%d", foreign.ID), token, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "can't delete an invalid bucketlist")

		count, err := pgContainer.DB.NewSelect().Model((*bucketlist.BucketList)(nil)).Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Delete_CascadesToItems", func(t *testing.T) {
		cleanup(t)
		owner, token := seedUser(t, "owner@example.com")
		list := seedList(t, owner.ID, "Doomed")

		ctx := context.Background()
		for i := 0; i < 3; i++ {
			it := &item.Item{Name: fmt.Sprintf("Item %d", i), BucketListID: list.ID}
			_, err := pgContainer.DB.NewInsert().Model(it).Exec(ctx)
			require.NoError(t, err)
		}

		w := do(http.MethodDelete, fmt.Sprintf("/bucketlists/%d", list.ID), token, nil)

		assert.Equal(t, http.StatusNoContent, w.Code)

		itemCount, err := pgContainer.DB.NewSelect().Model((*item.Item)(nil)).Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, itemCount)
	})
}
