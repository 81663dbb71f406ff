package store

import (
	"bytes"
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if _, ok, err := m.Get(ctx, KeyWallet); err != nil || ok {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	want := []byte(`{"wallet":"150"}`)
	if err := m.Set(ctx, KeyWallet, want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := m.Get(ctx, KeyWallet)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch: %s", got)
	}
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	val := []byte("abc")
	_ = m.Set(ctx, KeyTheme, val)
	val[0] = 'x' // caller mutation must not leak in

	got, _, _ := m.Get(ctx, KeyTheme)
	if string(got) != "abc" {
		t.Fatalf("stored blob aliased caller memory: %s", got)
	}
	got[0] = 'y' // nor out
	again, _, _ := m.Get(ctx, KeyTheme)
	if string(again) != "abc" {
		t.Fatalf("returned blob aliased stored memory: %s", again)
	}
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	_ = m.Set(ctx, KeyRides, []byte("3"))
	_ = m.Set(ctx, KeyRides, []byte("4"))
	got, _, _ := m.Get(ctx, KeyRides)
	if string(got) != "4" {
		t.Fatalf("expected last write, got %s", got)
	}
}
