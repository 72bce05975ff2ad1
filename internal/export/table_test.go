package export

import (
	"testing"

	"github.com/san-kum/gofmi/internal/instance"
	"github.com/san-kum/gofmi/internal/model"
	"github.com/san-kum/gofmi/internal/models"
)

func newInstance(t *testing.T) *instance.Instance {
	t.Helper()
	in, err := instance.NewCoSimulation("decay", model.Token("Decay"), models.NewDecay(), instance.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return in
}

func TestTablePutGet(t *testing.T) {
	tbl := NewTable()
	in := newInstance(t)

	h := tbl.Put(in)
	if h == InvalidHandle {
		t.Fatal("expected a valid handle")
	}

	got, ok := tbl.Get(h)
	if !ok || got != in {
		t.Fatal("handle did not resolve to the stored instance")
	}
	if tbl.Len() != 1 {
		t.Errorf("expected 1 live instance, got %d", tbl.Len())
	}
}

func TestTableUnknownHandles(t *testing.T) {
	tbl := NewTable()

	if _, ok := tbl.Get(InvalidHandle); ok {
		t.Error("zero handle must not resolve")
	}
	if _, ok := tbl.Get(packHandle(5, 0)); ok {
		t.Error("out-of-range handle must not resolve")
	}
	if tbl.Remove(packHandle(5, 0)) {
		t.Error("removing an unknown handle must fail")
	}
}

func TestTableStaleHandleAfterReuse(t *testing.T) {
	tbl := NewTable()

	stale := tbl.Put(newInstance(t))
	if !tbl.Remove(stale) {
		t.Fatal("remove failed")
	}
	if _, ok := tbl.Get(stale); ok {
		t.Error("freed handle must not resolve")
	}
	if tbl.Remove(stale) {
		t.Error("double free must fail")
	}

	// The slot is reused; the stale handle still misses.
	fresh := tbl.Put(newInstance(t))
	if fresh == stale {
		t.Fatal("reused slot must carry a new generation")
	}
	if _, ok := tbl.Get(stale); ok {
		t.Error("stale handle resolved after slot reuse")
	}
	if _, ok := tbl.Get(fresh); !ok {
		t.Error("fresh handle did not resolve")
	}
}
