package storage

import (
	"errors"
	"sort"
	"testing"
)

// networks returns two network namespaces over one inner DB.
func networks(t *testing.T) (inner DB, mainnet, testnet *PrefixDB) {
	t.Helper()
	inner = NewMemory()
	return inner, NewPrefixDB(inner, []byte("mainnet/")), NewPrefixDB(inner, []byte("testnet/"))
}

func mustPut(t *testing.T, db DB, key, value string) {
	t.Helper()
	if err := db.Put([]byte(key), []byte(value)); err != nil {
		t.Fatalf("Put(%s): %v", key, err)
	}
}

func keysOf(t *testing.T, db DB, prefix string) []string {
	t.Helper()
	var keys []string
	err := db.ForEach([]byte(prefix), func(key, _ []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach(%q): %v", prefix, err)
	}
	sort.Strings(keys)
	return keys
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPrefixDB_GetPutDelete(t *testing.T) {
	inner, mainnet, _ := networks(t)
	mustPut(t, mainnet, "s/addr1", "snap")

	got, err := mainnet.Get([]byte("s/addr1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "snap" {
		t.Errorf("Get = %q, want %q", got, "snap")
	}
	raw, err := inner.Get([]byte("mainnet/s/addr1"))
	if err != nil || string(raw) != "snap" {
		t.Errorf("inner key = %q, %v; want stored under the namespace", raw, err)
	}

	if err := mainnet.Delete([]byte("s/addr1")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := mainnet.Has([]byte("s/addr1")); ok {
		t.Error("Has after Delete = true")
	}
	if _, err := mainnet.Get([]byte("s/addr1")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete: err = %v, want ErrNotFound", err)
	}
}

func TestPrefixDB_NetworksIsolated(t *testing.T) {
	_, mainnet, testnet := networks(t)
	mustPut(t, mainnet, "s/addr1", "main")
	mustPut(t, testnet, "s/addr1", "test")

	for _, tt := range []struct {
		db   DB
		want string
	}{
		{mainnet, "main"},
		{testnet, "test"},
	} {
		got, err := tt.db.Get([]byte("s/addr1"))
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if string(got) != tt.want {
			t.Errorf("Get = %q, want %q", got, tt.want)
		}
	}
	if ok, _ := mainnet.Has([]byte("testnet/s/addr1")); ok {
		t.Error("mainnet namespace sees a raw testnet key")
	}
}

func TestPrefixDB_ForEach(t *testing.T) {
	_, mainnet, testnet := networks(t)
	mustPut(t, mainnet, "u/addr1/o1", "1")
	mustPut(t, mainnet, "u/addr1/o2", "2")
	mustPut(t, mainnet, "s/addr1", "snap")
	mustPut(t, testnet, "u/addr1/o3", "3")

	if got, want := keysOf(t, mainnet, "u/"), []string{"u/addr1/o1", "u/addr1/o2"}; !equalStrings(got, want) {
		t.Errorf("ForEach(u/) = %v, want %v", got, want)
	}
	if got, want := keysOf(t, mainnet, ""), []string{"s/addr1", "u/addr1/o1", "u/addr1/o2"}; !equalStrings(got, want) {
		t.Errorf("ForEach() = %v, want %v", got, want)
	}
}

func TestPrefixDB_ForEachStopEarly(t *testing.T) {
	_, mainnet, _ := networks(t)
	for _, k := range []string{"a", "b", "c"} {
		mustPut(t, mainnet, "u/"+k, k)
	}
	stop := errors.New("stop")
	calls := 0
	err := mainnet.ForEach([]byte("u/"), func(_, _ []byte) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("ForEach err = %v, want stop", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPrefixDB_Batch(t *testing.T) {
	inner, mainnet, _ := networks(t)
	mustPut(t, mainnet, "u/old", "x")

	b := mainnet.NewBatch()
	if err := b.Put([]byte("u/new"), []byte("y")); err != nil {
		t.Fatalf("batch Put: %v", err)
	}
	if err := b.Delete([]byte("u/old")); err != nil {
		t.Fatalf("batch Delete: %v", err)
	}
	if err := b.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got, want := keysOf(t, inner, ""), []string{"mainnet/u/new"}; !equalStrings(got, want) {
		t.Errorf("inner keys = %v, want %v", got, want)
	}
}

func TestPrefixDB_DeleteAll(t *testing.T) {
	_, mainnet, testnet := networks(t)
	for i, k := range []string{"s/a", "s/b", "u/a/1"} {
		mustPut(t, mainnet, k, string(rune('0'+i)))
	}
	mustPut(t, testnet, "s/a", "keep")

	if err := mainnet.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if keys := keysOf(t, mainnet, ""); len(keys) != 0 {
		t.Errorf("mainnet keys after DeleteAll = %v", keys)
	}
	if got, want := keysOf(t, testnet, ""), []string{"s/a"}; !equalStrings(got, want) {
		t.Errorf("testnet keys = %v, want %v", got, want)
	}

	// Clearing an empty namespace is fine.
	if err := mainnet.DeleteAll(); err != nil {
		t.Errorf("DeleteAll on empty namespace: %v", err)
	}
}

func TestPrefixDB_CloseIsNoop(t *testing.T) {
	inner, mainnet, _ := networks(t)
	mustPut(t, mainnet, "s/a", "v")
	if err := mainnet.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := inner.Get([]byte("mainnet/s/a")); err != nil {
		t.Errorf("inner unusable after PrefixDB.Close: %v", err)
	}
}
