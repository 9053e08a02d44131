package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"autorig/internal/domain"
)

// Client talks to a rigd instance over HTTP.
type Client struct {
	Base string
	HTTP *http.Client
}

var _ domain.HostClient = (*Client)(nil)

// NewClient returns a client for the given base URL, e.g. "http://127.0.0.1:8733".
func NewClient(base string) *Client {
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: http.DefaultClient}
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/v1/health", nil, nil)
}

func (c *Client) SceneInfo(ctx context.Context) (domain.SceneInfo, error) {
	var out domain.SceneInfo
	err := c.do(ctx, http.MethodGet, "/v1/scene", nil, &out)
	return out, err
}

func (c *Client) Status(ctx context.Context) (domain.StatusReport, error) {
	var out domain.StatusReport
	err := c.do(ctx, http.MethodGet, "/v1/status", nil, &out)
	return out, err
}

func (c *Client) Skeleton(ctx context.Context) (domain.Skeleton, error) {
	var out domain.Skeleton
	err := c.do(ctx, http.MethodGet, "/v1/skeleton", nil, &out)
	return out, err
}

func (c *Client) SetSelection(ctx context.Context, indices []int, group string, add bool) (domain.Selection, error) {
	var out domain.Selection
	in := selectionRequest{Indices: indices, Group: group, Add: add}
	err := c.do(ctx, http.MethodPut, "/v1/selection", in, &out)
	return out, err
}

func (c *Client) CurrentSelection(ctx context.Context) ([]int, []domain.Vector3, error) {
	var out selectionView
	if err := c.do(ctx, http.MethodGet, "/v1/selection", nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Indices, out.Positions, nil
}

func (c *Client) ClearSelection(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/selection", nil, nil)
}

func (c *Client) CreateJoint(ctx context.Context, slot domain.SlotName) (domain.SceneObject, error) {
	var out domain.SceneObject
	err := c.do(ctx, http.MethodPost, "/v1/joints", jointRequest{Slot: slot.String()}, &out)
	return out, err
}

func (c *Client) DeleteJoint(ctx context.Context, slot domain.SlotName) error {
	return c.do(ctx, http.MethodDelete, "/v1/joints/"+url.PathEscape(slot.String()), nil, nil)
}

func (c *Client) MirrorJoint(ctx context.Context, slot domain.SlotName) (domain.SceneObject, error) {
	var out domain.SceneObject
	err := c.do(ctx, http.MethodPost, "/v1/joints/"+url.PathEscape(slot.String())+"/mirror", nil, &out)
	return out, err
}

func (c *Client) MirrorAllJoints(ctx context.Context) ([]domain.SceneObject, error) {
	var out []domain.SceneObject
	err := c.do(ctx, http.MethodPost, "/v1/joints/mirror", nil, &out)
	return out, err
}

func (c *Client) BuildSpine(ctx context.Context) ([]domain.SceneObject, error) {
	var out []domain.SceneObject
	err := c.do(ctx, http.MethodPost, "/v1/spine", nil, &out)
	return out, err
}

func (c *Client) DeleteSpine(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/spine", nil, nil)
}

func (c *Client) ChangeSpineCount(ctx context.Context, op string, count int) (int, error) {
	var out countResponse
	err := c.do(ctx, http.MethodPost, "/v1/spine/count", countRequest{Op: op, Count: count}, &out)
	return out.Count, err
}

func (c *Client) BuildBones(ctx context.Context) (int, error) {
	var out linkedResponse
	err := c.do(ctx, http.MethodPost, "/v1/bones", nil, &out)
	return out.Linked, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		body = new(bytes.Buffer)
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return err
		}
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.Base+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.Base+path, nil)
	}
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var e errorResponse
		if jsonErr := json.NewDecoder(resp.Body).Decode(&e); jsonErr == nil && e.Error != "" {
			return fmt.Errorf("host %s %s: %s", method, path, e.Error)
		}
		return fmt.Errorf("host %s %s: %s", method, path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
