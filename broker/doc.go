// Package broker is a client for the Vingd broker REST API.
//
// # Overview
//
// A Client holds the credentials of one seller account (the password is kept
// only as a SHA-1 digest) and the backend/frontend endpoints of one broker
// deployment, Production or Sandbox. Each method performs exactly one
// authenticated HTTP request and returns typed records:
//
//   - objects:   CreateObject, UpdateObject, GetObject, GetObjects
//   - orders:    CreateOrder
//   - purchases: VerifyPurchase, VerifyToken, CommitPurchase
//   - accounts:  GetUserProfile, GetUserID, GetAccountBalance
//   - transfers: GetTransfers, RewardUser
//   - vouchers:  CreateVoucher, GetActiveVouchers, GetVouchers
//   - delegates: AuthorizedCreateUser, AuthorizedPurchaseObject,
//     AuthorizedGetAccountBalance
//
// # Money
//
// The broker counts in integer cents. Amounts are exchanged with callers as
// decimal.Decimal vingds; outbound amounts are truncated to whole cents.
//
// # Errors
//
// Failures can be matched with errors.As / errors.Is:
//
//   - *Error: the broker rejected the request (Message, Context, Code).
//   - *ConnectionError: no usable answer; wraps *TransportError when the
//     request never got a response.
//   - *FormatError: an argument would not fit into the resource path.
//   - ErrInvalidToken, ErrInvalidGroupID, ErrDescriptionTooLarge: local
//     validation, no request was sent.
//
// Nothing is retried automatically.
//
// # Purchase flow
//
//	c := broker.New(user, password, broker.Sandbox)
//	oid, _ := c.CreateObject(ctx, broker.ObjectDescription{Name: "Article", URL: "https://example.com/a"})
//	order, _ := c.CreateOrder(ctx, broker.OrderRequest{ObjectID: oid, Price: decimal.RequireFromString("2.00")})
//	// send the buyer to order.URLs.Redirect; on callback:
//	purchase, _ := c.VerifyPurchase(ctx, r.URL.Query().Get("token"))
//	// deliver content, then
//	_, _ = c.CommitPurchase(ctx, purchase)
package broker
