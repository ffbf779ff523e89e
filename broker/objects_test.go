package broker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateObject(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodPost, "/registry/objects/", http.StatusCreated, `{"data":{"oids":[42],"errors":[]}}`)

	oid, err := fb.client().CreateObject(context.Background(), ObjectDescription{
		Name:  "Article",
		URL:   "https://example.com/article",
		Extra: map[string]any{"author": "jane"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), oid)

	got := fb.last()
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"description":{"name":"Article","url":"https://example.com/article","author":"jane"}}`, got.Body)
}

func TestCreateObject_BatchError(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodPost, "/registry/objects/", http.StatusOK, `{"data":{"oids":[],"errors":[{"desc":"Duplicate URL","code":409}]}}`)

	_, err := fb.client().CreateObject(context.Background(), ObjectDescription{Name: "a", URL: "b"})
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "Duplicate URL", be.Message)
	assert.Equal(t, 409, be.Code)
}

func TestCreateObject_DescriptionTooLarge(t *testing.T) {
	fb := newFakeBroker(t)

	_, err := fb.client().CreateObject(context.Background(), ObjectDescription{
		Name: strings.Repeat("x", MaxDescriptionSize),
		URL:  "https://example.com",
	})
	require.ErrorIs(t, err, ErrDescriptionTooLarge)
	assert.Empty(t, fb.calls())
}

func TestUpdateObject(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodPut, "/registry/objects/42/", http.StatusOK, `{"data":{"oid":42}}`)

	oid, err := fb.client().UpdateObject(context.Background(), 42, ObjectDescription{Name: "Renamed", URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), oid)
	assert.JSONEq(t, `{"description":{"name":"Renamed","url":"https://example.com"}}`, fb.last().Body)

	_, err = fb.client().UpdateObject(context.Background(), -1, ObjectDescription{})
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
}

func TestGetObjects(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodGet, "/registry/objects/", http.StatusOK, `{"data":[
		{"oid":1,"description":{"name":"One","url":"https://e/1"}},
		{"id":"2","description":"{\"name\":\"Two\",\"url\":\"https://e/2\",\"tag\":\"x\"}"}
	]}`)
	fb.handle(http.MethodGet, "/registry/objects/1/", http.StatusOK, `{"data":{"oid":1,"description":{"name":"One","url":"https://e/1"},"uid":9}}`)

	objs, err := fb.client().GetObjects(context.Background())
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, int64(1), objs[0].ID)
	assert.Equal(t, "One", objs[0].Description.Name)
	assert.Equal(t, int64(2), objs[1].ID)
	assert.Equal(t, "Two", objs[1].Description.Name)
	assert.Equal(t, map[string]any{"tag": "x"}, objs[1].Description.Extra)

	obj, err := fb.client().GetObject(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "https://e/1", obj.Description.URL)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(obj.Raw, &raw))
	assert.Equal(t, float64(9), raw["uid"])
}
