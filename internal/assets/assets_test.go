package assets

import "testing"

func TestBuiltinFont(t *testing.T) {
	for _, name := range []string{"gomono", "GoMono", " goregular ", "gobold"} {
		data, ok := BuiltinFont(name)
		if !ok || len(data) == 0 {
			t.Errorf("BuiltinFont(%q) not found", name)
		}
	}
	if _, ok := BuiltinFont("Monaco.ttf"); ok {
		t.Error("BuiltinFont(Monaco.ttf) should not resolve")
	}
}
