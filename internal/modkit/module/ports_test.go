package module

import (
	"testing"

	phttp "vidqa/internal/platform/net/http"
	kit "vidqa/internal/platform/testkit"
)

type pinger interface{ Ping() string }

type pingPort struct{ answer string }

func (p pingPort) Ping() string { return p.answer }

// fakeModule is just enough Module for PortsOf
type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) MountRoutes(phttp.Router) {}
func (m fakeModule) Ports() any               { return m.ports }
func (m fakeModule) Name() string             { return m.name }

func TestPortsOfDirectImplement(t *testing.T) {
	m := fakeModule{name: "queue", ports: pingPort{answer: "pong"}}

	got, ok := PortsOf[pinger](m)
	if !ok || got.Ping() != "pong" {
		t.Fatalf("PortsOf direct = %v, %v", got, ok)
	}
}

func TestPortsOfStructFieldWalk(t *testing.T) {
	type bundle struct {
		Unrelated int
		Ping      pinger
	}
	m := fakeModule{name: "queue", ports: bundle{Ping: pingPort{answer: "pong"}}}

	got, ok := PortsOf[pinger](m)
	if !ok || got.Ping() != "pong" {
		t.Fatalf("PortsOf field walk = %v, %v", got, ok)
	}
}

func TestPortsOfMisses(t *testing.T) {
	if _, ok := PortsOf[pinger](fakeModule{name: "queue"}); ok {
		t.Fatal("nil ports should not match")
	}
	if _, ok := PortsOf[pinger](fakeModule{name: "queue", ports: struct{ N int }{1}}); ok {
		t.Fatal("struct without a matching field should not match")
	}
}

func TestMustPortsOfPanics(t *testing.T) {
	kit.MustPanic(t, func() {
		_ = MustPortsOf[pinger](fakeModule{name: "queue", ports: 42})
	})
}
