package core

import (
	"testing"

	"github.com/fieldtag/peerlink/protocol"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewDispatcher()
	var gotReload, gotUpdate bool

	d.Register(protocol.TypeReload, func(f protocol.Frame) { gotReload = true })
	d.Register(protocol.TypeUpdateState, func(f protocol.Frame) { gotUpdate = true })

	if !d.Dispatch(protocol.Frame{Type: protocol.TypeReload}) {
		t.Fatal("expected RELOAD to be handled")
	}
	if !gotReload || gotUpdate {
		t.Errorf("gotReload=%v gotUpdate=%v, want true,false", gotReload, gotUpdate)
	}
}

func TestDispatcherUnregisteredTypeDropped(t *testing.T) {
	d := NewDispatcher()
	if d.Dispatch(protocol.Frame{Type: protocol.TypeKill}) {
		t.Error("Dispatch reported handling an unregistered type")
	}
}

func TestDispatcherLastRegistrationWins(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.Register(protocol.TypeIMU, func(f protocol.Frame) { calls = 1 })
	d.Register(protocol.TypeIMU, func(f protocol.Frame) { calls = 2 })

	d.Dispatch(protocol.Frame{Type: protocol.TypeIMU})

	if calls != 2 {
		t.Errorf("calls = %d, want 2 (second registration should win)", calls)
	}
}
