package assoc

import "testing"

func TestSetShadowsWithoutMutating(t *testing.T) {
	base := New[string, int]().Set("a", 1)
	shadowed := base.Set("a", 2)

	if v, _ := base.Get("a"); v != 1 {
		t.Errorf("base a = %d, want 1", v)
	}
	if v, _ := shadowed.Get("a"); v != 2 {
		t.Errorf("shadowed a = %d, want 2", v)
	}
}

func TestGetMissing(t *testing.T) {
	if _, ok := New[string, int]().Get("missing"); ok {
		t.Error("Get on empty assoc reported a hit")
	}
}

func TestIterateSkipsShadowedBindings(t *testing.T) {
	a := New[string, int]().Set("a", 1).Set("b", 2).Set("a", 3)

	seen := map[string]int{}
	a.Iterate(func(k string, v int) bool {
		seen[k] = v
		return true
	})
	if len(seen) != 2 || seen["a"] != 3 || seen["b"] != 2 {
		t.Errorf("visible bindings = %v, want a=3 b=2", seen)
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2", a.Len())
	}
}

func TestSetAllOverlays(t *testing.T) {
	base := New[string, int]().Set("a", 1).Set("b", 2)
	over := New[string, int]().Set("b", 20).Set("c", 30)

	merged := base.SetAll(over)
	for k, want := range map[string]int{"a": 1, "b": 20, "c": 30} {
		if v, _ := merged.Get(k); v != want {
			t.Errorf("merged %s = %d, want %d", k, v, want)
		}
	}
}
