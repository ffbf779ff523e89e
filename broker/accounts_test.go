package broker

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserProfile(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodGet, "/id/users/username="+testUser, http.StatusOK,
		`{"data":{"uid":"123","username":"test@vingd.com","name":"Test","verified":true}}`)

	p, err := fb.client().GetUserProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(123), p.UID)
	assert.Equal(t, testUser, p.Username)
	assert.Equal(t, map[string]any{"name": "Test", "verified": true}, p.Fields)

	uid, err := fb.client().GetUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(123), uid)
}

func TestAuthorizedGetAccountBalance(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodGet, "/fort/accounts/abc123", http.StatusOK, `{"data":{"balance":1999}}`)

	bal, err := fb.client().AuthorizedGetAccountBalance(context.Background(), "abc123")
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.RequireFromString("19.99")))

	_, err = fb.client().AuthorizedGetAccountBalance(context.Background(), "not-hex")
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
}

func TestAuthorizedCreateUser(t *testing.T) {
	t.Run("object answer", func(t *testing.T) {
		fb := newFakeBroker(t)
		fb.handle(http.MethodPost, "/id/users/", http.StatusCreated, `{"data":{"huid":"f00d","uid":77}}`)

		u, err := fb.client().AuthorizedCreateUser(context.Background(), CreateUserRequest{
			Identities:      map[string]string{"email": "buyer@example.com"},
			PrimaryIdentity: "email",
			Permissions:     []string{"purchase.object"},
		})
		require.NoError(t, err)
		assert.Equal(t, "f00d", u.HUID)
		assert.Equal(t, map[string]any{"uid": float64(77)}, u.Fields)
		assert.JSONEq(t, `{
			"identities":{"email":"buyer@example.com"},
			"primary_identity":"email",
			"delegate_permissions":["purchase.object"]
		}`, fb.last().Body)
	})

	t.Run("bare huid answer and null fields", func(t *testing.T) {
		fb := newFakeBroker(t)
		fb.handle(http.MethodPost, "/id/users/", http.StatusCreated, `{"data":"beef"}`)

		u, err := fb.client().AuthorizedCreateUser(context.Background(), CreateUserRequest{})
		require.NoError(t, err)
		assert.Equal(t, "beef", u.HUID)
		assert.JSONEq(t, `{"identities":null,"primary_identity":null,"delegate_permissions":null}`, fb.last().Body)
	})
}
