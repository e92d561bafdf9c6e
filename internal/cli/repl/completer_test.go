package repl

import "testing"

func TestNewCompleter(t *testing.T) {
	c := NewCompleter()
	if c == nil {
		t.Fatal("NewCompleter returned nil")
	}
	if len(c.commands) == 0 {
		t.Error("commands should be initialized")
	}
}

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{
			name:   "status prefix",
			prefix: "status",
			want:   []string{"status", "status leader", "status members", "status metrics"},
		},
		{
			name:   "status l prefix",
			prefix: "status l",
			want:   []string{"status leader"},
		},
		{
			name:   "config prefix",
			prefix: "config",
			want:   []string{"config", "config show", "config validate"},
		},
		{
			name:   "help prefix",
			prefix: "help",
			want:   []string{"help"},
		},
		{
			name:   "ex prefix matches exec and exit",
			prefix: "ex",
			want:   []string{"exec", "exit"},
		},
		{
			name:   "no match",
			prefix: "nonexistent",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Complete(tt.prefix)

			if tt.want == nil {
				if len(got) > 0 {
					t.Errorf("Complete(%q) = %v, want nil/empty", tt.prefix, got)
				}
				return
			}

			if len(got) != len(tt.want) {
				t.Errorf("Complete(%q) returned %d items, want %d", tt.prefix, len(got), len(tt.want))
				return
			}
			for i, g := range got {
				if g != tt.want[i] {
					t.Errorf("Complete(%q)[%d] = %q, want %q", tt.prefix, i, g, tt.want[i])
				}
			}
		})
	}
}

func TestCompleter_Commands(t *testing.T) {
	c := NewCompleter()

	essential := []string{
		"connect", "disconnect",
		"status", "status leader", "status members",
		"exec", "subscribe",
		"config",
		"help", "exit", "quit",
	}

	for _, cmd := range essential {
		found := false
		for _, known := range c.commands {
			if known == cmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("essential command %q not found in commands", cmd)
		}
	}
}
