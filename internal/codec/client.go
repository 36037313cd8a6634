// Package codec talks to the inference sidecar over gRPC. Messages
// are google.protobuf.Struct so the service needs no generated stubs.
package codec

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kazifarms/hr-assistant/internal/retrieval"
)

// Full method names on the sidecar.
const (
	MethodSearch   = "/hr.inference.v1.Inference/Search"
	MethodGenerate = "/hr.inference.v1.Inference/Generate"
	MethodEmbed    = "/hr.inference.v1.Inference/Embed"
)

// ErrMalformed is returned when a reply is missing an expected field.
var ErrMalformed = errors.New("malformed sidecar reply")

// Compile-time check: Client implements retrieval.Index.
var _ retrieval.Index = (*Client)(nil)

// #region client-struct
// Client wraps the gRPC connection to the inference sidecar.
type Client struct {
	conn   grpc.ClientConnInterface
	closer func() error
}

// #endregion client-struct

// #region constructor
// NewClient connects to the inference sidecar.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, closer: conn.Close}, nil
}

// NewClientWithConn creates a Client over an injected connection.
// Used for testing without a real gRPC server.
func NewClientWithConn(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// #endregion close

func (c *Client) call(ctx context.Context, method string, req map[string]any) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// #region search
// ScoredSearch asks the sidecar for the k nearest passages with distances.
func (c *Client) ScoredSearch(ctx context.Context, query string, k int) ([]retrieval.Candidate, error) {
	results, err := c.search(ctx, query, k, true)
	if err != nil {
		return nil, err
	}
	out := make([]retrieval.Candidate, len(results))
	for i, r := range results {
		out[i] = retrieval.Candidate{Passage: passageOf(r)}
		if d, ok := r.GetFields()["distance"]; ok {
			if _, isNum := d.GetKind().(*structpb.Value_NumberValue); isNum {
				v := d.GetNumberValue()
				out[i].Distance = &v
			}
		}
	}
	return out, nil
}

// Search asks the sidecar for k passages without distances.
func (c *Client) Search(ctx context.Context, query string, k int) ([]retrieval.Passage, error) {
	results, err := c.search(ctx, query, k, false)
	if err != nil {
		return nil, err
	}
	out := make([]retrieval.Passage, len(results))
	for i, r := range results {
		out[i] = passageOf(r)
	}
	return out, nil
}

func (c *Client) search(ctx context.Context, query string, k int, scored bool) ([]*structpb.Struct, error) {
	resp, err := c.call(ctx, MethodSearch, map[string]any{
		"query_text":  query,
		"top_k":       k,
		"with_scores": scored,
	})
	if err != nil {
		return nil, fmt.Errorf("search rpc: %w", err)
	}
	list := resp.GetFields()["results"].GetListValue()
	if list == nil {
		return nil, nil
	}
	out := make([]*structpb.Struct, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		if s := v.GetStructValue(); s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func passageOf(s *structpb.Struct) retrieval.Passage {
	f := s.GetFields()
	p := retrieval.Passage{
		ID:   f["id"].GetStringValue(),
		Text: f["text"].GetStringValue(),
	}
	if meta := f["metadata"].GetStructValue(); meta != nil {
		p.Metadata = make(map[string]string, len(meta.GetFields()))
		for k, v := range meta.GetFields() {
			p.Metadata[k] = v.GetStringValue()
		}
	}
	return p
}

// #endregion search

// #region generate
// Complete sends a prompt to the sidecar's generative model.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.call(ctx, MethodGenerate, map[string]any{"prompt": prompt})
	if err != nil {
		return "", fmt.Errorf("generate rpc: %w", err)
	}
	v, ok := resp.GetFields()["text"]
	if !ok {
		return "", fmt.Errorf("generate rpc: %w: no text", ErrMalformed)
	}
	return v.GetStringValue(), nil
}

// #endregion generate

// #region embed
// Embed returns one vector per text.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	in := make([]any, len(texts))
	for i, t := range texts {
		in[i] = t
	}
	resp, err := c.call(ctx, MethodEmbed, map[string]any{"texts": in})
	if err != nil {
		return nil, fmt.Errorf("embed rpc: %w", err)
	}
	rows := resp.GetFields()["embeddings"].GetListValue().GetValues()
	if len(rows) != len(texts) {
		return nil, fmt.Errorf("embed rpc: %w: got %d vectors for %d texts", ErrMalformed, len(rows), len(texts))
	}
	out := make([][]float32, len(rows))
	for i, row := range rows {
		vals := row.GetListValue().GetValues()
		vec := make([]float32, len(vals))
		for j, v := range vals {
			vec[j] = float32(v.GetNumberValue())
		}
		out[i] = vec
	}
	return out, nil
}

// #endregion embed
