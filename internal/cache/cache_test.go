package cache

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestKeyStableAndDistinct(t *testing.T) {
	k1 := Key("text-embedding-3-small", "the claim text")
	k2 := Key("text-embedding-3-small", "the claim text")
	if k1 != k2 {
		t.Error("same model and text must produce the same key")
	}

	if Key("text-embedding-3-small", "a") == Key("text-embedding-3-small", "b") {
		t.Error("different texts must produce different keys")
	}
	if Key("model-a", "same text") == Key("model-b", "same text") {
		t.Error("different models must produce different keys")
	}

	if !strings.HasPrefix(k1, "veracity:v1:") {
		t.Errorf("key missing version prefix: %s", k1)
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	vector := []float64{0.1, 0.2, 0.3}
	if err := c.Set("k", vector, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found := c.Get("k")
	if !found {
		t.Fatal("vector not found after set")
	}
	if !reflect.DeepEqual(got, vector) {
		t.Errorf("got %v, want %v", got, vector)
	}

	if _, found := c.Get("absent"); found {
		t.Error("absent key reported as found")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []float64{1}, 0)
	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []float64{1}, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired key still present")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c := NewDiskCache(filepath.Join(t.TempDir(), "vectors"), time.Hour)

	vector := []float64{0.5, -0.25, 1.0}
	if err := c.Set("k", vector, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found := c.Get("k")
	if !found {
		t.Fatal("vector not found after set")
	}
	if !reflect.DeepEqual(got, vector) {
		t.Errorf("got %v, want %v", got, vector)
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(filepath.Join(t.TempDir(), "vectors"), time.Hour)
	_ = c.Set("k", []float64{1}, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired entry still served")
	}
}

func TestDiskCacheClear(t *testing.T) {
	c := NewDiskCache(filepath.Join(t.TempDir(), "vectors"), time.Hour)
	_ = c.Set("a", []float64{1}, 0)
	_ = c.Set("b", []float64{2}, 0)
	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("cleared entry still present")
	}
}

func TestLayeredCachePromotion(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vectors")
	layered := NewLayeredCache(time.Minute, dir, time.Hour)

	vector := []float64{3.14}
	if err := layered.Set("k", vector, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Fresh layered cache over the same disk dir: memory is cold, the value
	// must come from disk and get promoted.
	second := NewLayeredCache(time.Minute, dir, time.Hour)
	got, found := second.Get("k")
	if !found {
		t.Fatal("vector not served from disk layer")
	}
	if !reflect.DeepEqual(got, vector) {
		t.Errorf("got %v, want %v", got, vector)
	}

	if _, found := second.memory.Get("k"); !found {
		t.Error("disk hit was not promoted to memory")
	}
}

func TestLayeredCacheDelete(t *testing.T) {
	layered := NewLayeredCache(time.Minute, filepath.Join(t.TempDir(), "vectors"), time.Hour)
	_ = layered.Set("k", []float64{1}, 0)
	_ = layered.Delete("k")
	if _, found := layered.Get("k"); found {
		t.Error("deleted key still present")
	}
}
