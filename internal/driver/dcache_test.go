package driver

import (
	"os"
	"path/filepath"
	"testing"

	"qasmc/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "qasmc"))
	if err != nil {
		t.Fatal(err)
	}
	p := mustUnroll(t, bellSwitch)
	doc, err := p.Document()
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey(p.Source, Options{})

	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("empty cache hit: ok=%v err=%v", ok, err)
	}
	if err := cache.Put(key, doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.QASM != doc.QASM || got.NumQubits != doc.NumQubits {
		t.Fatalf("cached document differs: %+v", got)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Fatalf("entry survived DropAll")
	}
	if _, err := os.Stat(cache.Dir()); err != nil {
		t.Fatalf("cache root must be recreated: %v", err)
	}
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("k.qasm", []byte(bellSwitch)))
	if CacheKey(file, Options{}) != CacheKey(file, Options{MaxInlineDepth: 64}) {
		t.Fatalf("default depth must produce the same key")
	}
	if CacheKey(file, Options{}) == CacheKey(file, Options{MaxInlineDepth: 3}) {
		t.Fatalf("inline depth must change the key")
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put([32]byte{}, &Document{}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get([32]byte{}); ok || err != nil {
		t.Fatalf("nil cache Get: ok=%v err=%v", ok, err)
	}
}
