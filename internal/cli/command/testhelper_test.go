package command

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/raftclient-go/internal/cli/connection"
)

// fakeCluster is a single-node stand-in for a Raft cluster's HTTP RPC
// surface, enough to satisfy raftclient.New's bootstrap call and answer
// queries/commands with a fixed response.
type fakeCluster struct {
	*httptest.Server

	leaderID uint64

	queryResp map[string]any
	cmdResp   map[string]any
}

// newFakeCluster starts a server that reports itself as the sole member
// and leader (id 1), unless overridden.
func newFakeCluster() *fakeCluster {
	f := &fakeCluster{
		leaderID: 1,
		queryResp: map[string]any{
			"Data":        []byte("ok"),
			"LastLogTerm": 1,
			"LastLogID":   1,
		},
		cmdResp: map[string]any{
			"Outcome":     0,
			"Data":        []byte("ok"),
			"LastLogTerm": 1,
			"LastLogID":   1,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/raft/cluster-info", func(w http.ResponseWriter, r *http.Request) {
		addr := strings.TrimPrefix(f.Server.URL, "http://")
		json.NewEncoder(w).Encode(map[string]any{
			"Members":  map[string]string{"1": addr},
			"LeaderID": f.leaderID,
		})
	})
	mux.HandleFunc("/raft/query", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.queryResp)
	})
	mux.HandleFunc("/raft/command", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.cmdResp)
	})

	f.Server = httptest.NewServer(mux)
	return f
}

func (f *fakeCluster) address() string {
	return strings.TrimPrefix(f.Server.URL, "http://")
}

// testContext builds a CLI context pre-wired with a connection manager
// and --servers pointed at the fake cluster, plus any extra args.
func testContext(f *fakeCluster, args ...string) *cli.Context {
	return makeTestContext(f, nil, args)
}

// makeTestContext builds a CLI context with the global flags plus any
// extraFlags (name -> default value), pre-populating --servers from the
// fake cluster's address and parsing args as trailing positional
// arguments.
func makeTestContext(f *fakeCluster, extraFlags map[string]any, args []string) *cli.Context {
	app := &cli.App{
		Name:  "test",
		Flags: globalFlags(),
		Metadata: map[string]any{
			"connMgr": connection.NewManager(),
		},
	}

	allFlags := append([]cli.Flag{}, app.Flags...)
	existing := make(map[string]bool)
	for _, fl := range allFlags {
		for _, name := range fl.Names() {
			existing[name] = true
		}
	}
	for name, val := range extraFlags {
		if existing[name] {
			continue
		}
		switch v := val.(type) {
		case string:
			allFlags = append(allFlags, &cli.StringFlag{Name: name, Value: v})
		case uint64:
			allFlags = append(allFlags, &cli.Uint64Flag{Name: name, Value: v})
		case bool:
			allFlags = append(allFlags, &cli.BoolFlag{Name: name, Value: v})
		case time.Duration:
			allFlags = append(allFlags, &cli.DurationFlag{Name: name, Value: v})
		case []string:
			allFlags = append(allFlags, &cli.StringSliceFlag{Name: name})
		}
		existing[name] = true
	}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, fl := range allFlags {
		fl.Apply(set)
	}

	cliArgs := []string{}
	if f != nil {
		cliArgs = append(cliArgs, "--servers", f.address())
	}
	for name, val := range extraFlags {
		switch v := val.(type) {
		case string:
			if v != "" {
				cliArgs = append(cliArgs, "--"+name, v)
			}
		case uint64:
			if v != 0 {
				cliArgs = append(cliArgs, "--"+name, fmt.Sprintf("%d", v))
			}
		case bool:
			if v {
				cliArgs = append(cliArgs, "--"+name)
			}
		case time.Duration:
			if v != 0 {
				cliArgs = append(cliArgs, "--"+name, v.String())
			}
		case []string:
			for _, s := range v {
				cliArgs = append(cliArgs, "--"+name, s)
			}
		}
	}
	cliArgs = append(cliArgs, args...)

	set.Parse(cliArgs)

	return cli.NewContext(app, set, nil)
}
