package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type record struct {
	Name  string  `yaml:"name"`
	Size  float32 `yaml:"size"`
	Image Blob    `yaml:"image,omitempty"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := OpenFileStore(t.TempDir(), "standard")
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}

	if _, err := s.Get("creatures"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := s.Set("creatures", []byte("hello")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get("creatures")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("Get = %q, want hello", got)
	}

	// Overwrite replaces the blob and leaves no temp files behind
	if err := s.Set("creatures", []byte("world")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	entries, _ := os.ReadDir(s.Dir())
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}

	if err := s.Delete("creatures"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("creatures"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete("creatures"); err != nil {
		t.Errorf("deleting a missing key should succeed, got %v", err)
	}
}

func TestNamespacesAreIsolated(t *testing.T) {
	root := t.TempDir()
	app, err := OpenFileStore(root, "standard")
	if err != nil {
		t.Fatal(err)
	}
	shared, err := OpenFileStore(root, "group.aquarium")
	if err != nil {
		t.Fatal(err)
	}

	if err := app.Set("creatures", []byte("app")); err != nil {
		t.Fatal(err)
	}
	if _, err := shared.Get("creatures"); !errors.Is(err, ErrNotFound) {
		t.Errorf("shared namespace saw app key: %v", err)
	}
	if filepath.Dir(app.Dir()) != filepath.Dir(shared.Dir()) {
		t.Error("namespaces should share the same root")
	}
}

func TestInvalidKeys(t *testing.T) {
	s, err := OpenFileStore(t.TempDir(), "standard")
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../escape", "a/b", "sp ace"} {
		if err := s.Set(key, nil); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
	if _, err := OpenFileStore(t.TempDir(), "../up"); err == nil {
		t.Error("expected error for invalid namespace")
	}
}

func TestSaveLoad(t *testing.T) {
	stores := map[string]Store{
		"mem": NewMemStore(),
	}
	fs, err := OpenFileStore(t.TempDir(), "standard")
	if err != nil {
		t.Fatal(err)
	}
	stores["file"] = fs

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			in := []record{{Name: "clownfish", Size: 55}, {Name: "photo", Size: 60, Image: []byte{0x89, 'P', 'N', 'G'}}}
			if err := Save(s, "creatures", in); err != nil {
				t.Fatalf("Save: %v", err)
			}

			var out []record
			if err := Load(s, "creatures", &out); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(out) != 2 || out[0].Name != "clownfish" || out[1].Size != 60 {
				t.Errorf("unexpected decode %+v", out)
			}
			if string(out[1].Image) != string(in[1].Image) {
				t.Errorf("image bytes changed: %v", out[1].Image)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	s := NewMemStore()
	if err := s.Set("creatures", []byte("{not: [valid")); err != nil {
		t.Fatal(err)
	}
	var out []record
	err := Load(s, "creatures", &out)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestMemStoreCopies(t *testing.T) {
	s := NewMemStore()
	buf := []byte("abc")
	s.Set("k", buf)
	buf[0] = 'x'

	got, _ := s.Get("k")
	if string(got) != "abc" {
		t.Errorf("store aliased caller buffer: %q", got)
	}
	got[1] = 'y'
	again, _ := s.Get("k")
	if string(again) != "abc" {
		t.Errorf("Get returned aliased buffer: %q", again)
	}
	if keys := s.Keys(); len(keys) != 1 || keys[0] != "k" {
		t.Errorf("Keys = %v", keys)
	}
}

func TestBlobEncodesAsBinary(t *testing.T) {
	s := NewMemStore()
	if err := Save(s, "photo", record{Name: "p", Image: Blob{0, 1, 2, 255}}); err != nil {
		t.Fatal(err)
	}
	raw, _ := s.Get("photo")
	if !strings.Contains(string(raw), "!!binary") {
		t.Errorf("expected !!binary scalar, got:\n%s", raw)
	}

	var out record
	if err := Load(s, "photo", &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Image) != 4 || out.Image[3] != 255 {
		t.Errorf("blob round trip = %v", out.Image)
	}
}

func TestStoresRejectInvalidKeys(t *testing.T) {
	fs, err := OpenFileStore(t.TempDir(), "standard")
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	stores := map[string]Store{"file": fs, "mem": NewMemStore()}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", "a/b", "white space"} {
				if err := s.Set(key, []byte("x")); err == nil {
					t.Errorf("Set(%q) accepted", key)
				}
				if _, err := s.Get(key); err == nil || errors.Is(err, ErrNotFound) {
					t.Errorf("Get(%q) err = %v, want invalid key", key, err)
				}
				if err := s.Delete(key); err == nil {
					t.Errorf("Delete(%q) accepted", key)
				}
			}
		})
	}
}
