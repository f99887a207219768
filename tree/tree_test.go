package tree

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	return &Document{
		Name: "kml",
		Root: &Element{
			Attributes: Attributes{
				{Name: "xmlns", Value: String("http://www.opengis.net/kml/2.2")},
				{Name: "hidden", Value: nil},
			},
			Children: Children{
				{Key: "text0", Node: &Text{Order: 1, Data: "hi"}},
				{Key: "Placemark", Node: &Element{Order: 0}},
				{Key: "Placemark--1", Node: &Element{
					Order:      2,
					Attributes: Attributes{{Name: "id", Value: String("")}},
				}},
			},
		},
	}
}

func TestDocumentJSONShape(t *testing.T) {
	b, err := json.Marshal(sampleDocument())
	require.NoError(t, err)

	expected := `{"kml":{"attributes":{"xmlns":"http://www.opengis.net/kml/2.2","hidden":null},"order":0,"children":{` +
		`"Placemark":{"attributes":{},"order":0,"children":{}},` +
		`"text0":{"order":1,"data":"hi"},` +
		`"Placemark--1":{"attributes":{"id":""},"order":2,"children":{}}}}}`
	require.Equal(t, expected, string(b))
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := sampleDocument()
	b, err := json.Marshal(doc)
	require.NoError(t, err)

	var got Document
	require.NoError(t, json.Unmarshal(b, &got))

	// Children come back in document order, which differs from the order
	// the sample was built in.
	want := sampleDocument()
	want.Root.Children = want.Root.Children.Sorted()
	if diff := cmp.Diff(*want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentUnmarshalJSON(t *testing.T) {
	t.Run("Empty object", func(t *testing.T) {
		var d Document
		require.NoError(t, json.Unmarshal([]byte(`{}`), &d))
		require.Nil(t, d.Root)
		require.Equal(t, "", d.Name)

		b, err := json.Marshal(d)
		require.NoError(t, err)
		require.Equal(t, `{}`, string(b))
	})

	t.Run("Multiple roots", func(t *testing.T) {
		var d Document
		err := json.Unmarshal([]byte(`{"a":{},"b":{}}`), &d)
		require.ErrorIs(t, err, ErrMultipleRoots)
	})

	t.Run("Not an object", func(t *testing.T) {
		var d Document
		err := json.Unmarshal([]byte(`[1,2]`), &d)
		require.Error(t, err)
		require.Contains(t, err.Error(), "document must be a JSON object")
	})

	t.Run("Children dispatch on key", func(t *testing.T) {
		var d Document
		input := `{"p":{"children":{"text3":{"order":1,"data":"x"},"textual":{"order":0},"b":{"order":2}}}}`
		require.NoError(t, json.Unmarshal([]byte(input), &d))

		require.IsType(t, &Text{}, d.Root.Children.Get("text3"))
		require.IsType(t, &Element{}, d.Root.Children.Get("textual"))
		require.IsType(t, &Element{}, d.Root.Children.Get("b"))
		require.Equal(t, []string{"textual", "text3", "b"}, d.Root.Children.Keys())
	})

	t.Run("Attribute values", func(t *testing.T) {
		var d Document
		input := `{"p":{"attributes":{"z":"1","a":2.50,"flag":null,"e":""}}}`
		require.NoError(t, json.Unmarshal([]byte(input), &d))

		want := Attributes{
			{Name: "z", Value: String("1")},
			{Name: "a", Value: String("2.50")},
			{Name: "flag", Value: nil},
			{Name: "e", Value: String("")},
		}
		require.Equal(t, want, d.Root.Attributes)
	})

	t.Run("Unsupported attribute value", func(t *testing.T) {
		var d Document
		err := json.Unmarshal([]byte(`{"p":{"attributes":{"a":true}}}`), &d)
		require.Error(t, err)
		require.Contains(t, err.Error(), `attribute "a"`)
	})
}

func TestMarkupKeptReadableInJSON(t *testing.T) {
	doc := &Document{Name: "description", Root: &Element{
		Children: Children{{Key: "text0", Node: &Text{Data: "<![CDATA[<b>&</b>]]>"}}},
	}}

	buf, err := doc.MarshalJSON()
	require.NoError(t, err)
	require.Contains(t, string(buf), `"data":"<![CDATA[<b>&</b>]]>"`)
}

func TestKeys(t *testing.T) {
	tests := []struct {
		key     string
		isText  bool
		tagName string
	}{
		{"text0", true, "text0"},
		{"text12", true, "text12"},
		{"text", false, "text"},
		{"textA", false, "textA"},
		{"Text0", false, "Text0"},
		{"Placemark", false, "Placemark"},
		{"Placemark--1", false, "Placemark"},
		{"Placemark--12", false, "Placemark"},
		{"my--tag", false, "my--tag"},
		{"--3", false, "--3"},
		{"a--b--2", false, "a--b"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.Equal(t, tt.isText, IsTextKey(tt.key))
			require.Equal(t, tt.tagName, TagName(tt.key))
		})
	}

	for _, name := range []string{"text0", "text12", "a--1", "text0--1", "a--b--2"} {
		require.True(t, IsKeyShaped(name), name)
	}
	for _, name := range []string{"text", "Text0", "Placemark", "my--tag", "--3"} {
		require.False(t, IsKeyShaped(name), name)
	}

	require.Equal(t, "text4", TextKey(4))
	require.Equal(t, "Data--2", RepeatKey("Data", 2))
}

func TestChildren(t *testing.T) {
	var c Children
	c.Set("a", &Element{Order: 1})
	c.Set("text0", &Text{Order: 0, Data: "x"})
	c.Set("a", &Element{Order: 2})

	require.Len(t, c, 2)
	require.Equal(t, 2, c.Element("a").Order)
	require.Nil(t, c.Text("a"))
	require.Equal(t, "x", c.Text("text0").Data)
	require.Equal(t, []string{"text0", "a"}, c.Keys())

	require.True(t, c.Delete("text0"))
	require.False(t, c.Delete("text0"))
	require.Nil(t, c.Get("text0"))
	require.Len(t, c, 1)
}

func TestAttributes(t *testing.T) {
	var a Attributes
	a.Set("id", String("1"))
	a.Set("visible", nil)
	a.Set("id", String("2"))

	require.Len(t, a, 2)
	v, ok := a.Get("id")
	require.True(t, ok)
	require.Equal(t, "2", *v)
	require.Equal(t, "id", a[0].Name)

	v, ok = a.Get("visible")
	require.True(t, ok)
	require.Nil(t, v)

	_, ok = a.Get("missing")
	require.False(t, ok)

	require.True(t, a.Delete("id"))
	require.Equal(t, Attributes{{Name: "visible"}}, a)
}

func TestPrune(t *testing.T) {
	doc := &Document{Name: "Folder", Root: &Element{
		Children: Children{
			{Key: "text0", Node: &Text{Order: 0, Data: "\n   \n"}},
			{Key: "name", Node: &Element{Order: 1, Children: Children{
				{Key: "text0", Node: &Text{Order: 0, Data: "\n\t"}},
				{Key: "text1", Node: &Text{Order: 1, Data: "Route"}},
			}}},
			{Key: "text1", Node: &Text{Order: 2, Data: " "}},
			{Key: "open", Node: &Element{Order: 3}},
			{Key: "text2", Node: &Text{Order: 4, Data: "\n"}},
		},
	}}

	doc.Prune()

	root := doc.Root
	require.Equal(t, []string{"name", "text1", "open"}, root.Children.Keys())
	require.Equal(t, 1, root.Children.Element("name").Order)
	require.Equal(t, 3, root.Children.Element("open").Order)

	name := root.Children.Element("name")
	require.Equal(t, []string{"text1"}, name.Children.Keys())

	doc.Renumber()
	require.Equal(t, 0, root.Children.Element("name").Order)
	require.Equal(t, 1, root.Children.Text("text1").Order)
	require.Equal(t, 2, root.Children.Element("open").Order)
	require.Equal(t, 0, name.Children.Text("text1").Order)
}

func TestIsBlank(t *testing.T) {
	require.True(t, IsBlank(""))
	require.True(t, IsBlank("\n"))
	require.True(t, IsBlank("\n   \n"))
	require.True(t, IsBlank("  \r\n\t "))
	require.False(t, IsBlank("  "))
	require.False(t, IsBlank("\n x \n"))
}

func TestDocumentYAML(t *testing.T) {
	doc := sampleDocument()

	b, err := yaml.Marshal(doc)
	require.NoError(t, err)

	var got Document
	require.NoError(t, yaml.Unmarshal(b, &got))

	want := sampleDocument()
	want.Root.Children = want.Root.Children.Sorted()
	if diff := cmp.Diff(*want, got); diff != "" {
		t.Fatalf("yaml round trip mismatch (-want +got):\n%s", diff)
	}
}
