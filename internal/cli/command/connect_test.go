package command

import "testing"

func TestConnectCommand(t *testing.T) {
	cmd := ConnectCommand()
	if cmd == nil {
		t.Fatal("ConnectCommand returned nil")
	}
	if cmd.Name != "connect" {
		t.Errorf("Name = %q, want %q", cmd.Name, "connect")
	}
	if cmd.Action == nil {
		t.Error("connect should have an action")
	}
}

func TestDisconnectCommand(t *testing.T) {
	cmd := DisconnectCommand()
	if cmd == nil {
		t.Fatal("DisconnectCommand returned nil")
	}
	if cmd.Name != "disconnect" {
		t.Errorf("Name = %q, want %q", cmd.Name, "disconnect")
	}
	if cmd.Action == nil {
		t.Error("disconnect should have an action")
	}
}

func TestConnectAction_Success(t *testing.T) {
	f := newFakeCluster()
	defer f.Close()

	ctx := testContext(f, f.address())
	if err := connectAction(ctx); err != nil {
		t.Errorf("connectAction() error = %v", err)
	}

	mgr := GetConnectionManager(ctx)
	if !mgr.IsConnected() {
		t.Error("expected manager to be connected after connectAction")
	}
}

func TestConnectAction_WithGlobalServersFlag(t *testing.T) {
	f := newFakeCluster()
	defer f.Close()

	// No positional argument; falls back to --servers.
	ctx := testContext(f)
	if err := connectAction(ctx); err != nil {
		t.Errorf("connectAction() with --servers error = %v", err)
	}
}

func TestConnectAction_NoServers(t *testing.T) {
	ctx := testContext(nil)
	if err := connectAction(ctx); err == nil {
		t.Error("connectAction() expected error with no servers")
	}
}

func TestDisconnectAction_NotConnected(t *testing.T) {
	ctx := testContext(nil)
	if err := disconnectAction(ctx); err != nil {
		t.Errorf("disconnectAction() error = %v", err)
	}
}

func TestDisconnectAction_Connected(t *testing.T) {
	f := newFakeCluster()
	defer f.Close()

	ctx := testContext(f, f.address())
	_ = connectAction(ctx)

	if err := disconnectAction(ctx); err != nil {
		t.Errorf("disconnectAction() error = %v", err)
	}

	mgr := GetConnectionManager(ctx)
	if mgr.IsConnected() {
		t.Error("manager should not be connected after disconnectAction")
	}
}

func TestFormatServerID(t *testing.T) {
	if got := formatServerID(0); got != "unknown" {
		t.Errorf("formatServerID(0) = %q, want %q", got, "unknown")
	}
	if got := formatServerID(42); got != "42" {
		t.Errorf("formatServerID(42) = %q, want %q", got, "42")
	}
}
