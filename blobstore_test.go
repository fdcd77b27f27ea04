package sealmail

import (
	"bytes"
	"errors"
	"testing"
)

func TestMemoryBlobStore(t *testing.T) {
	store := NewMemoryBlobStore()

	if _, _, err := store.Get("missing"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("expected ErrBlobNotFound, got %v", err)
	}

	if err := store.Put("drafts/1", []byte("one"), map[string]string{"k": "v"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Put("drafts/2", []byte("two"), nil); err != nil {
		t.Fatal(err)
	}
	if err := store.Put("sent/1", []byte("sent"), nil); err != nil {
		t.Fatal(err)
	}

	blob, metadata, err := store.Get("drafts/1")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(blob, []byte("one")) {
		t.Errorf("blob = %q", blob)
	}
	if metadata["k"] != "v" {
		t.Errorf("metadata = %v", metadata)
	}

	paths, err := store.List("drafts/")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || paths[0] != "drafts/1" || paths[1] != "drafts/2" {
		t.Errorf("List(drafts/) = %v", paths)
	}

	if err := store.Delete("drafts/1"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := store.Get("drafts/1"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("expected ErrBlobNotFound after delete, got %v", err)
	}

	// Deleting a missing blob is not an error.
	if err := store.Delete("drafts/1"); err != nil {
		t.Errorf("repeated Delete() error = %v", err)
	}
}

func TestMemoryBlobStore_DefensiveCopies(t *testing.T) {
	store := NewMemoryBlobStore()

	blob := []byte("payload")
	metadata := map[string]string{"key-id": "k1"}
	if err := store.Put("p", blob, metadata); err != nil {
		t.Fatal(err)
	}

	blob[0] = 'X'
	metadata["key-id"] = "mutated"

	gotBlob, gotMetadata, err := store.Get("p")
	if err != nil {
		t.Fatal(err)
	}
	if gotBlob[0] != 'p' {
		t.Error("store aliased the caller's blob")
	}
	if gotMetadata["key-id"] != "k1" {
		t.Error("store aliased the caller's metadata")
	}

	gotBlob[0] = 'Y'
	gotMetadata["key-id"] = "mutated again"
	again, againMetadata, err := store.Get("p")
	if err != nil {
		t.Fatal(err)
	}
	if again[0] != 'p' || againMetadata["key-id"] != "k1" {
		t.Error("get returned aliased data")
	}
}
