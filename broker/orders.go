package broker

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/vingd/internal/datex"
	"github.com/dmitrijs2005/vingd/internal/netx"
	"github.com/dmitrijs2005/vingd/internal/safeformat"
	"github.com/shopspring/decimal"
)

// OrderRequest describes an order for one object. Expires accepts any
// expression datex understands; empty means DefaultOrderExpiry. LinkParams
// are appended as a query string to the returned frontend URLs.
type OrderRequest struct {
	ObjectID   int64
	Price      decimal.Decimal
	Context    string
	Expires    string
	LinkParams url.Values
}

type OrderObject struct {
	ID    int64 `json:"id"`
	Price int64 `json:"price"`
}

// Links are the frontend pages a buyer is sent to.
type Links struct {
	Redirect string `json:"redirect"`
	Popup    string `json:"popup"`
}

type Order struct {
	ID      int64       `json:"id"`
	Expires string      `json:"expires"`
	Context string      `json:"context,omitempty"`
	Object  OrderObject `json:"object"`
	URLs    Links       `json:"urls"`
}

type orderPayload struct {
	Price        int64   `json:"price"`
	OrderExpires string  `json:"order_expires"`
	Context      *string `json:"context"`
}

// CreateOrder opens an order for req.ObjectID at req.Price. Buyers pay it by
// following the returned Order's URLs.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	resource, err := safeformat.Format("/objects/{:int}/orders", req.ObjectID)
	if err != nil {
		return nil, err
	}

	dates, err := datex.FormatAll(req.Expires, DefaultOrderExpiry, datex.ISOBasic, datex.ISO)
	if err != nil {
		return nil, err
	}

	payload := orderPayload{
		Price:        ToMinorUnits(req.Price),
		OrderExpires: dates[0],
	}
	if req.Context != "" {
		payload.Context = &req.Context
	}

	data, err := c.call(ctx, http.MethodPost, resource, payload)
	if err != nil {
		return nil, err
	}
	id, err := unpackBatchResponse(data, "id")
	if err != nil {
		return nil, err
	}

	links, err := c.frontendLinks("/orders/{:int}/add/", "/popup/orders/{:int}/add/", id, req.LinkParams)
	if err != nil {
		return nil, err
	}

	return &Order{
		ID:      id,
		Expires: dates[1],
		Context: req.Context,
		Object:  OrderObject{ID: req.ObjectID, Price: payload.Price},
		URLs:    links,
	}, nil
}

// frontendLinks renders the redirect and popup page paths for arg under the
// frontend root.
func (c *Client) frontendLinks(redirectPath, popupPath string, arg any, params url.Values) (Links, error) {
	_, _, _, frontend := c.session()

	redirect, err := safeformat.Format(redirectPath, arg)
	if err != nil {
		return Links{}, err
	}
	popup, err := safeformat.Format(popupPath, arg)
	if err != nil {
		return Links{}, err
	}
	return Links{
		Redirect: netx.BuildURL(frontend+redirect, params),
		Popup:    netx.BuildURL(frontend+popup, params),
	}, nil
}
