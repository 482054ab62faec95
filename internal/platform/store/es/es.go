// Package es provides an Elasticsearch client wrapper with index bootstrap,
// document reads, search, and bulk writes via the official client.
// Errors stay engine-shaped here; the store adapter maps them to perr codes
package es

import (
	"bytes"
	"context"
	"encoding/json"
	stderrs "errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

// ErrNotFound reports a document id absent from an index
var ErrNotFound = stderrs.New("es: document not found")

// StatusError is a non-2xx engine response
type StatusError struct {
	Status int
	Op     string
	Index  string
	Reason string
}

func (e *StatusError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("es: %s %s: status %d: %s", e.Op, e.Index, e.Status, e.Reason)
	}
	return fmt.Sprintf("es: %s %s: status %d", e.Op, e.Index, e.Status)
}

// Config configures the engine client and its bulk writer
type Config struct {
	Addresses []string
	Username  string
	Password  string

	// Bulk writer knobs; zero values fall back to esutil defaults
	BulkWorkers   int
	FlushBytes    int
	FlushInterval time.Duration

	// Transport overrides the HTTP transport, tests stub this
	Transport http.RoundTripper
}

// Client wraps the official client
type Client struct {
	es  *elasticsearch.Client
	cfg Config
}

// Open builds a Client; connectivity is not verified here, use Ping
func Open(cfg Config) (*Client, error) {
	ecfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	}
	if cfg.Transport != nil {
		ecfg.Transport = cfg.Transport
	}
	cl, err := elasticsearch.NewClient(ecfg)
	if err != nil {
		return nil, fmt.Errorf("es: new client: %w", err)
	}
	return &Client{es: cl, cfg: cfg}, nil
}

// Ping verifies the cluster answers at all
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return &StatusError{Status: res.StatusCode, Op: "ping", Index: "-"}
	}
	return nil
}

// EnsureIndex creates index with the given mapping body.
// A 400 means the index already exists and is not an error: every process
// races to create on boot and the first one wins
func (c *Client) EnsureIndex(ctx context.Context, index string, mapping []byte) error {
	res, err := c.es.Indices.Create(index,
		c.es.Indices.Create.WithBody(bytes.NewReader(mapping)),
		c.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusBadRequest {
		return &StatusError{Status: res.StatusCode, Op: "create index", Index: index}
	}
	return nil
}

// Get fetches one document source by id
func (c *Client) Get(ctx context.Context, index, id string) (json.RawMessage, error) {
	res, err := c.es.Get(index, id, c.es.Get.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.IsError() {
		return nil, &StatusError{Status: res.StatusCode, Op: "get", Index: index}
	}

	var out struct {
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("es: decode get %s/%s: %w", index, id, err)
	}
	return out.Source, nil
}

// MGet fetches many document sources by id, optionally projecting fields.
// Ids that are not in the index are silently dropped from the result
func (c *Client) MGet(ctx context.Context, index string, ids []string, fields ...string) ([]json.RawMessage, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	opts := []func(*esapi.MgetRequest){
		c.es.Mget.WithContext(ctx),
		c.es.Mget.WithIndex(index),
	}
	if len(fields) > 0 {
		opts = append(opts, c.es.Mget.WithSourceIncludes(fields...))
	}

	res, err := c.es.Mget(esutil.NewJSONReader(map[string]any{"ids": ids}), opts...)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, &StatusError{Status: res.StatusCode, Op: "mget", Index: index}
	}

	var out struct {
		Docs []struct {
			Found  bool            `json:"found"`
			Source json.RawMessage `json:"_source"`
		} `json:"docs"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("es: decode mget %s: %w", index, err)
	}

	srcs := make([]json.RawMessage, 0, len(out.Docs))
	for _, d := range out.Docs {
		if d.Found {
			srcs = append(srcs, d.Source)
		}
	}
	return srcs, nil
}

// Hit is one search hit
type Hit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

// Result is one page of hits plus the total match count
type Result struct {
	Total int64
	Hits  []Hit
}

// Search runs a full request body against index
func (c *Client) Search(ctx context.Context, index string, body any) (Result, error) {
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(esutil.NewJSONReader(body)),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return Result{}, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return Result{}, &StatusError{Status: res.StatusCode, Op: "search", Index: index}
	}

	var out struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []Hit `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("es: decode search %s: %w", index, err)
	}
	return Result{Total: out.Hits.Total.Value, Hits: out.Hits.Hits}, nil
}

// Doc is a document staged for a bulk write
type Doc struct {
	ID   string
	Body []byte
}

// BulkStats summarizes one bulk write.
// Reason carries the first item-level failure when Failed > 0
type BulkStats struct {
	Indexed int64
	Failed  int64
	Reason  string
}

// Bulk indexes docs into index with _id taken from each doc.
// Item-level rejections are counted in BulkStats, not returned as an error,
// so a single bad document cannot wedge the pipeline. Transport failures
// are errors and leave the batch eligible for retry
func (c *Client) Bulk(ctx context.Context, index string, docs []Doc) (BulkStats, error) {
	if len(docs) == 0 {
		return BulkStats{}, nil
	}

	workers := c.cfg.BulkWorkers
	if workers <= 0 {
		workers = 1
	}
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        c.es,
		Index:         index,
		NumWorkers:    workers,
		FlushBytes:    c.cfg.FlushBytes,
		FlushInterval: c.cfg.FlushInterval,
	})
	if err != nil {
		return BulkStats{}, fmt.Errorf("es: bulk indexer: %w", err)
	}

	var (
		mu     sync.Mutex
		reason string
	)
	note := func(r string) {
		mu.Lock()
		if reason == "" {
			reason = r
		}
		mu.Unlock()
	}

	for _, d := range docs {
		item := esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: d.ID,
			Body:       bytes.NewReader(d.Body),
			OnFailure: func(_ context.Context, _ esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					note(err.Error())
					return
				}
				note(fmt.Sprintf("status %d: %s", res.Status, res.Error.Reason))
			},
		}
		if err := bi.Add(ctx, item); err != nil {
			_ = bi.Close(ctx)
			return BulkStats{}, fmt.Errorf("es: bulk add: %w", err)
		}
	}
	if err := bi.Close(ctx); err != nil {
		return BulkStats{}, fmt.Errorf("es: bulk flush: %w", err)
	}

	st := bi.Stats()
	return BulkStats{
		Indexed: int64(st.NumIndexed),
		Failed:  int64(st.NumFailed),
		Reason:  reason,
	}, nil
}
