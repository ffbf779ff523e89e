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

const purchaseJSON = `{"data":{"object":"Article","huid":"abc1","purchaseid":7,"transferid":"9","context":"cart-1"}}`

func TestParseToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  Token
	}{
		{name: "plain", token: `{"oid":42,"tid":"a1b2"}`, want: Token{OID: 42, TID: "a1b2"}},
		{name: "string oid", token: `{"oid":"42","tid":"a1b2"}`, want: Token{OID: 42, TID: "a1b2"}},
		{name: "escaped", token: `{\"oid\":42,\"tid\":\"a1b2\"}`, want: Token{OID: 42, TID: "a1b2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToken(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifyPurchase(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodGet, "/objects/42/tokens/a1b2", http.StatusOK, purchaseJSON)

	p, err := fb.client().VerifyPurchase(context.Background(), `{"oid":42,"tid":"a1b2"}`)
	require.NoError(t, err)
	assert.Equal(t, &Purchase{Object: "Article", HUID: "abc1", PurchaseID: 7, TransferID: 9, Context: "cart-1"}, p)
	assert.Equal(t, http.MethodGet, fb.last().Method)
}

func TestVerifyPurchase_InvalidTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
		msg   string
	}{
		{name: "not json", token: `oid=42`, msg: "invalid token format"},
		{name: "missing oid", token: `{"tid":"a1b2"}`, msg: "invalid object identifier"},
		{name: "missing tid", token: `{"oid":42}`, msg: "missing tid"},
		{name: "empty tid", token: `{"oid":42,"tid":""}`, msg: "missing tid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBroker(t)

			_, err := fb.client().VerifyPurchase(context.Background(), tt.token)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Empty(t, fb.calls())
		})
	}
}

func TestVerifyToken_NonHexTID(t *testing.T) {
	fb := newFakeBroker(t)

	_, err := fb.client().VerifyToken(context.Background(), Token{OID: 42, TID: "../x"})
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Empty(t, fb.calls())
}

func TestVerifyToken_NegativeOID(t *testing.T) {
	fb := newFakeBroker(t)

	_, err := fb.client().VerifyToken(context.Background(), Token{OID: -5, TID: "a1b2"})
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.NotErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, fb.calls())
}

func TestCommitPurchase(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodPut, "/purchases/7", http.StatusOK, `{"data":{"ok":true}}`)

	res, err := fb.client().CommitPurchase(context.Background(), &Purchase{PurchaseID: 7, TransferID: 9})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.JSONEq(t, `{"transferid":9}`, fb.last().Body)

	_, err = fb.client().CommitPurchase(context.Background(), nil)
	require.Error(t, err)
}

func TestCommitPurchase_EmptySuccessBody(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodPut, "/purchases/7", http.StatusNoContent, "")

	res, err := fb.client().CommitPurchase(context.Background(), &Purchase{PurchaseID: 7, TransferID: 9})
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestCommitPurchase_RepeatedCommitSurfacesBrokerError(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodPut, "/purchases/7", http.StatusConflict, `{"message":"Purchase already committed","context":"Purchase"}`)

	_, err := fb.client().CommitPurchase(context.Background(), &Purchase{PurchaseID: 7, TransferID: 9})
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusConflict, be.Code)
}

func TestAuthorizedPurchaseObject(t *testing.T) {
	fb := newFakeBroker(t)
	fb.handle(http.MethodPost, "/objects/42/purchases", http.StatusCreated, `{"data":{"purchase_id":3,"transfer_id":4}}`)

	res, err := fb.client().AuthorizedPurchaseObject(context.Background(), 42, decimal.RequireFromString("1.5"), "abc1")
	require.NoError(t, err)
	assert.Equal(t, &AuthorizedPurchase{PurchaseID: 3, TransferID: 4}, res)
	assert.JSONEq(t, `{"price":150,"huid":"abc1","autocommit":true}`, fb.last().Body)
}
