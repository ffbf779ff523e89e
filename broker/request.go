package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/vingd/internal/common"
	"github.com/dmitrijs2005/vingd/internal/netx"
	"github.com/google/uuid"
)

// envelope is the JSON wrapper of every broker response.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message *string         `json:"message"`
	Context string          `json:"context"`
	Subcode json.RawMessage `json:"subcode"`
}

// request performs one authenticated call and decodes the "data" member of a
// successful response into out (when out is non-nil).
func (c *Client) request(ctx context.Context, method, resource string, payload, out any) error {
	data, err := c.call(ctx, method, resource, payload)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ConnectionError{Err: fmt.Errorf("decode %s %s: %w", method, resource, err)}
	}
	return nil
}

// call returns the raw "data" member of a successful response.
func (c *Client) call(ctx context.Context, method, resource string, payload any) (json.RawMessage, error) {
	key, secret, backend, _ := c.session()

	header := http.Header{}
	header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	header.Set(common.RequestIDHeaderName, reqID)

	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, resource, err)
		}
		body = b
		header.Set("Content-Type", "application/json")
	}

	log := c.logger.With("method", method, "resource", resource, "request_id", reqID)
	start := time.Now()

	resp, err := c.transport.Send(ctx, &netx.Request{
		Method:   method,
		URL:      netx.JoinPath(backend, resource),
		Header:   header,
		Body:     body,
		Username: key,
		Password: secret,
	})
	if err != nil {
		log.Warn(ctx, "broker unreachable", "error", err)
		return nil, &ConnectionError{Err: err}
	}
	log.Debug(ctx, "broker request", "status", resp.Status, "elapsed", time.Since(start))

	if resp.Status >= 200 && resp.Status < 300 && len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, nil
	}

	var env envelope
	decodeErr := json.Unmarshal(resp.Body, &env)

	if resp.Status >= 200 && resp.Status < 300 {
		if decodeErr != nil {
			log.Warn(ctx, "undecodable broker response", "error", decodeErr)
			return nil, &ConnectionError{Status: resp.Status, StatusMessage: resp.StatusMessage, Err: decodeErr}
		}
		return env.Data, nil
	}

	if decodeErr == nil && env.Message != nil {
		e := newError(*env.Message, env.Context, resp.Status)
		var sub flexInt
		if json.Unmarshal(env.Subcode, &sub) == nil {
			e.Subcode = int(sub)
		}
		log.Warn(ctx, "broker error", "status", resp.Status, "message", e.Message, "context", e.Context)
		return nil, e
	}

	log.Warn(ctx, "unexpected broker response", "status", resp.Status)
	return nil, &ConnectionError{Status: resp.Status, StatusMessage: resp.StatusMessage}
}
