package tree

import (
	"reflect"
	"testing"
)

func mustParse(t *testing.T, data string) *Node {
	t.Helper()
	node, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return node
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	node := mustParse(t, `{"zebra": "z", "apple": "a", "mango": {"beta": "b", "alpha": "a"}}`)

	if got := node.Keys(); !reflect.DeepEqual(got, []string{"zebra", "apple", "mango"}) {
		t.Errorf("Keys() = %v, want insertion order", got)
	}
	if got := node.Child("mango").Keys(); !reflect.DeepEqual(got, []string{"beta", "alpha"}) {
		t.Errorf("nested Keys() = %v, want insertion order", got)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	node := mustParse(t, "")
	if node.Kind() != KindObject || node.Len() != 0 {
		t.Errorf("expected empty object for empty input, got kind=%v len=%d", node.Kind(), node.Len())
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte(`{"a": }`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "flat strings",
			json: `{"a": "1", "b": "2"}`,
			want: []string{"a", "b"},
		},
		{
			name: "nested",
			json: `{"menu": {"home": "Home", "about": {"title": "About"}}, "footer": "Footer"}`,
			want: []string{"menu.home", "menu.about.title", "footer"},
		},
		{
			name: "arrays and numbers are leaves",
			json: `{"count": 3, "tags": ["a", "b"], "name": "x"}`,
			want: []string{"count", "tags", "name"},
		},
		{
			name: "empty object contributes nothing",
			json: `{"a": {}, "b": "x"}`,
			want: []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.json).Flatten()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	node := mustParse(t, `{"menu": {"home": "Home", "count": 5}, "plain": "text"}`)

	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"plain", "text", true},
		{"menu.home", "Home", true},
		{"menu.count", "", false},   // not a string
		{"menu.missing", "", false}, // absent
		{"plain.deeper", "", false}, // intermediate is not a container
		{"nope.home", "", false},
	}

	for _, tt := range tests {
		got, ok := node.Get(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Get(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSet_CreatesIntermediates(t *testing.T) {
	node := NewObject()
	node.Set("a.b.c", "deep")

	if got, ok := node.Get("a.b.c"); !ok || got != "deep" {
		t.Errorf("Get after Set = (%q, %v), want (deep, true)", got, ok)
	}
}

func TestSet_OverwritesNonContainerIntermediate(t *testing.T) {
	node := mustParse(t, `{"a": "leaf"}`)
	node.Set("a.b", "nested")

	if got, ok := node.Get("a.b"); !ok || got != "nested" {
		t.Errorf("Get(a.b) = (%q, %v), want (nested, true)", got, ok)
	}
	if _, ok := node.Get("a"); ok {
		t.Error("intermediate should no longer be a string leaf")
	}
}

func TestDelete_PrunesEmptyContainers(t *testing.T) {
	node := mustParse(t, `{"a": {"b": {"c": "x"}}, "keep": "y"}`)
	node.Delete("a.b.c")

	if node.Child("a") != nil {
		t.Error("expected empty containers pruned up to the root")
	}
	if got, ok := node.Get("keep"); !ok || got != "y" {
		t.Errorf("unrelated key lost: (%q, %v)", got, ok)
	}
}

func TestDelete_KeepsNonEmptySiblings(t *testing.T) {
	node := mustParse(t, `{"a": {"b": "x", "c": "y"}}`)
	node.Delete("a.b")

	if got, ok := node.Get("a.c"); !ok || got != "y" {
		t.Errorf("sibling lost after delete: (%q, %v)", got, ok)
	}
}

func TestFlattenSetRoundTrip(t *testing.T) {
	source := mustParse(t, `{"a": "1", "menu": {"x": "X", "y": {"z": "Z"}}}`)

	rebuilt := NewObject()
	for _, path := range source.Flatten() {
		value, ok := source.Get(path)
		if !ok {
			t.Fatalf("flattened path %q has no string value", path)
		}
		rebuilt.Set(path, value)
	}

	for _, path := range source.Flatten() {
		want, _ := source.Get(path)
		got, ok := rebuilt.Get(path)
		if !ok || got != want {
			t.Errorf("round trip lost %q: got (%q, %v), want %q", path, got, ok, want)
		}
	}
}

func TestReorderToMatchSource(t *testing.T) {
	source := mustParse(t, `{"first": "1", "second": {"a": "A", "b": "B"}, "third": "3"}`)
	target := mustParse(t, `{"third": "drei", "second": {"b": "Be", "a": "Ah", "extra": "x"}, "orphan": "o", "first": "eins"}`)

	got := ReorderToMatchSource(source, target)

	if keys := got.Keys(); !reflect.DeepEqual(keys, []string{"first", "second", "third"}) {
		t.Errorf("top-level order = %v, want source order", keys)
	}
	if keys := got.Child("second").Keys(); !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Errorf("nested order = %v, want source order without extras", keys)
	}
	if _, ok := got.Get("orphan"); ok {
		t.Error("target-only key should be dropped")
	}
	if v, _ := got.Get("second.a"); v != "Ah" {
		t.Errorf("value not carried from target, got %q", v)
	}
}

func TestEncode_StableFormat(t *testing.T) {
	node := mustParse(t, `{"b":"2","a":{"x":"1"},"n":5,"list":[1,2]}`)

	got, err := node.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := `{
  "b": "2",
  "a": {
    "x": "1"
  },
  "n": 5,
  "list": [
    1,
    2
  ]
}
`
	if string(got) != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	original := `{
  "greeting": "Hello \"you\"",
  "nested": {
    "unicode": "héllo"
  },
  "flag": true
}
`
	node := mustParse(t, original)
	got, err := node.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(got) != original {
		t.Errorf("round trip changed document:\ngot:  %q\nwant: %q", got, original)
	}
}
