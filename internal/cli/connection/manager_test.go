package connection

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yndnr/raftclient-go/internal/telemetry/logger"
)

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.Current() != nil {
		t.Error("new manager should have no current session")
	}
}

func TestManager_Connect_NoServers(t *testing.T) {
	m := NewManager()
	if err := m.Connect(nil, 1, nil, logger.Default()); err == nil {
		t.Error("expected error connecting with no seed servers")
	}
}

func TestManager_Connect_Unreachable(t *testing.T) {
	m := NewManager()
	err := m.Connect([]string{"127.0.0.1:1"}, 1, nil, logger.Default())
	if err == nil {
		t.Error("expected error connecting to an unreachable server")
	}
	if m.IsConnected() {
		t.Error("manager should not report connected after a failed Connect")
	}
}

func TestManager_Connect_Success(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/raft/cluster-info", func(w http.ResponseWriter, r *http.Request) {
		addr := strings.TrimPrefix(srv.URL, "http://")
		json.NewEncoder(w).Encode(map[string]any{
			"Members":  map[string]string{"123": addr},
			"LeaderID": 123,
		})
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	m := NewManager()
	addr := strings.TrimPrefix(srv.URL, "http://")
	if err := m.Connect([]string{addr}, 7, nil, logger.Default()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if !m.IsConnected() {
		t.Error("IsConnected() should return true after a successful Connect")
	}
	if m.Current().ServiceID != 7 {
		t.Errorf("ServiceID = %d, want 7", m.Current().ServiceID)
	}
}

func TestManager_Disconnect(t *testing.T) {
	m := NewManager()
	_ = m.Connect([]string{"127.0.0.1:1"}, 1, nil, logger.Default())
	m.Disconnect()

	if m.Current() != nil {
		t.Error("Current() should return nil after Disconnect")
	}
	if m.IsConnected() {
		t.Error("IsConnected() should return false after Disconnect")
	}
}
