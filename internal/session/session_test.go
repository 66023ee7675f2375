package session

import (
	"testing"

	"tillfront/internal/model"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	in := Session{
		Cart: map[string]any{"p1": 2.0, "p2": 3.0},
		Products: []model.Product{
			{ID: "p1", Name: "Tea", Price: 10},
			{ID: "p2", Name: "Coffee", Price: 5},
		},
	}
	if err := fs.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := fs.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Cart) != 2 || len(out.Products) != 2 {
		t.Fatalf("unexpected session: %+v", out)
	}
	if model.ParseQuantity(out.Cart["p1"]) != 2 {
		t.Fatalf("cart entry lost: %v", out.Cart)
	}
	if out.Products[0].ID != "p1" || out.Products[0].Price != 10 {
		t.Fatalf("product lost: %+v", out.Products[0])
	}
}

func TestFileStore_LoadEmpty(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	s, err := fs.Load()
	if err != nil {
		t.Fatalf("load on fresh dir: %v", err)
	}
	if len(s.Cart) != 0 || len(s.Products) != 0 {
		t.Fatalf("expected zero session, got %+v", s)
	}
}

func TestFileStore_SaveOverwritesWholesale(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	_ = fs.Save(Session{Cart: map[string]any{"p1": 1.0, "p2": 1.0}})
	_ = fs.Save(Session{Cart: map[string]any{"p3": 4.0}})
	out, err := fs.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Cart) != 1 || model.ParseQuantity(out.Cart["p3"]) != 4 {
		t.Fatalf("save must overwrite, not merge: %+v", out.Cart)
	}
}

func TestPebbleStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ps, err := NewPebbleStore(dir)
	if err != nil {
		t.Fatalf("pebble open: %v", err)
	}
	t.Cleanup(func() { _ = ps.Close() })

	if err := ps.Save(Session{Cart: map[string]any{"p1": 2.0}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := ps.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if model.ParseQuantity(out.Cart["p1"]) != 2 {
		t.Fatalf("unexpected session: %+v", out)
	}
}

func TestPebbleStore_LoadEmpty(t *testing.T) {
	ps, err := NewPebbleStore(t.TempDir())
	if err != nil {
		t.Fatalf("pebble open: %v", err)
	}
	t.Cleanup(func() { _ = ps.Close() })
	s, err := ps.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Cart) != 0 {
		t.Fatalf("expected zero session, got %+v", s)
	}
}
