package sealmail

import (
	"bytes"
	"errors"
	"sort"
	"testing"
)

func TestMemoryKeyStore(t *testing.T) {
	store := NewMemoryKeyStore()

	if _, err := store.Load("missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}

	if err := store.Store("a", []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := store.Store("b", []byte{4, 5, 6}); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load("a")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("Load(a) = %v", got)
	}

	names, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("List() = %v", names)
	}

	if err := store.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load("a"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}

	if err := store.DeleteAll(); err != nil {
		t.Fatal(err)
	}
	names, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("List() after DeleteAll = %v", names)
	}
}

func TestMemoryKeyStore_DefensiveCopies(t *testing.T) {
	store := NewMemoryKeyStore()

	original := []byte{1, 2, 3}
	if err := store.Store("k", original); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's slice must not affect the stored value.
	original[0] = 0xff
	got, err := store.Load("k")
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1 {
		t.Error("store aliased the caller's slice")
	}

	// Mutating a loaded slice must not affect subsequent loads.
	got[1] = 0xff
	again, err := store.Load("k")
	if err != nil {
		t.Fatal(err)
	}
	if again[1] != 2 {
		t.Error("load returned an aliased slice")
	}
}
