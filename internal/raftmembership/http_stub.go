package raftmembership

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yndnr/raftclient-go/internal/infra/tlsroots"
)

// httpStub is the default Stub implementation: it talks to a replica's
// cluster-info/query/command endpoints over HTTP, JSON-encoding the
// wire types defined in wire.go.
type httpStub struct {
	address string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func newHTTPStub(address string, client *http.Client, timeout time.Duration) *httpStub {
	baseURL := address
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &httpStub{address: address, baseURL: baseURL, client: client, timeout: timeout}
}

func (s *httpStub) do(ctx context.Context, method, path string, body, target any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("raftmembership: marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, bodyReader)
	if err != nil {
		return &ErrTransport{Address: s.address, Err: err}
	}
	req.Header.Set("User-Agent", "raftclient-go/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &ErrTransport{Address: s.address, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return &ErrTransport{Address: s.address, Err: fmt.Errorf("[%s] %s", errResp.Code, errResp.Message)}
		}
		return &ErrTransport{Address: s.address, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return &ErrTransport{Address: s.address, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

func (s *httpStub) ClusterInfo() (ClientClusterInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var out ClientClusterInfo
	if err := s.do(ctx, http.MethodGet, "/raft/cluster-info", nil, &out); err != nil {
		return ClientClusterInfo{}, err
	}
	return out, nil
}

func (s *httpStub) Query(entry LogEntry) (ClientQryResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var out ClientQryResponse
	if err := s.do(ctx, http.MethodPost, "/raft/query", entry, &out); err != nil {
		return ClientQryResponse{}, err
	}
	return out, nil
}

func (s *httpStub) Command(entry LogEntry) (ClientCmdResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var out ClientCmdResponse
	if err := s.do(ctx, http.MethodPost, "/raft/command", entry, &out); err != nil {
		return ClientCmdResponse{}, err
	}
	return out, nil
}

// HTTPPool is the process-wide Pool implementation: it caches one
// httpStub per address, so every RaftClient sharing a Pool reuses the
// same underlying *http.Client connections.
type HTTPPool struct {
	timeout time.Duration
	client  *http.Client

	mu    sync.Mutex
	stubs map[string]*httpStub
}

// NewHTTPPool creates a pool dialing with the given per-call timeout.
// If roots is non-nil, its certificate pool backs the client's TLS
// transport, letting callers reach replicas serving a private CA.
func NewHTTPPool(timeout time.Duration, roots *tlsroots.Pool) *HTTPPool {
	transport := http.DefaultTransport
	if roots != nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = roots.TLSConfig()
		transport = t
	}
	return &HTTPPool{
		timeout: timeout,
		client:  &http.Client{Timeout: timeout, Transport: transport},
		stubs:   make(map[string]*httpStub),
	}
}

// Get returns the cached stub for address, creating one on first use.
func (p *HTTPPool) Get(address string) (Stub, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.stubs[address]; ok {
		return s, nil
	}
	s := newHTTPStub(address, p.client, p.timeout)
	p.stubs[address] = s
	return s, nil
}
