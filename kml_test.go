package kml_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-kml"
	"github.com/KimNorgaard/go-kml/errors"
	"github.com/KimNorgaard/go-kml/tree"
)

func TestParseAndMarshal(t *testing.T) {
	input := []byte(`<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<kml xmlns="http://www.opengis.net/kml/2.2"><Document><name>Route</name>` +
		`<Placemark visible id="p1"><name>A &amp; B</name></Placemark><Placemark/></Document></kml>`)

	doc, err := kml.Parse(input)
	require.NoError(t, err)
	require.Equal(t, "kml", doc.Name)

	out, err := kml.Marshal(doc)
	require.NoError(t, err)

	expected := kml.Header +
		`<kml xmlns="http://www.opengis.net/kml/2.2"><Document><name>Route</name>` +
		`<Placemark visible id="p1"><name>A &amp; B</name></Placemark><Placemark></Placemark></Document></kml>`
	require.Equal(t, expected, string(out))
}

func TestToJSON(t *testing.T) {
	out, err := kml.ToJSON([]byte(`<p>Hello<b>x</b>World</p>`))
	require.NoError(t, err)

	expected := `{"p":{"attributes":{},"order":0,"children":{` +
		`"text0":{"order":0,"data":"Hello"},` +
		`"b":{"attributes":{},"order":1,"children":{"text0":{"order":0,"data":"x"}}},` +
		`"text1":{"order":2,"data":"World"}}}}`
	require.Equal(t, expected, string(out))
}

func TestEmptyDocument(t *testing.T) {
	doc, err := kml.Parse([]byte("<?xml version=\"1.0\"?>\n"))
	require.NoError(t, err)
	require.Nil(t, doc.Root)

	js, err := kml.ToJSON(nil)
	require.NoError(t, err)
	require.Equal(t, "{}", string(js))

	out, err := kml.Marshal(`{}`)
	require.NoError(t, err)
	require.Equal(t, kml.Header, string(out))
}

func TestMarshalInputs(t *testing.T) {
	const js = `{"kml":{"attributes":{"a":null},"order":0,"children":{"text0":{"order":0,"data":"x"}}}}`
	const expected = kml.Header + `<kml a>x</kml>`

	var generic map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &generic))

	doc, err := kml.Parse([]byte(`<kml a>x</kml>`))
	require.NoError(t, err)

	inputs := map[string]any{
		"document pointer": doc,
		"document value":   *doc,
		"string":           js,
		"bytes":            []byte(js),
		"raw message":      json.RawMessage(js),
		"generic object":   generic,
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			out, err := kml.Marshal(in)
			require.NoError(t, err)
			require.Equal(t, expected, string(out))
		})
	}
}

func TestMarshalRejectsBadInput(t *testing.T) {
	for _, in := range []any{42, 1.5, []any{1, 2}, true, nil, (*tree.Document)(nil)} {
		_, err := kml.Marshal(in)
		var target *kml.InvalidInputError
		require.ErrorAs(t, err, &target, "input %#v", in)
	}

	_, err := kml.Marshal(`{"a":{},"b":{}}`)
	require.ErrorIs(t, err, kml.ErrMultipleRoots)

	_, err = kml.Marshal(`[1, 2]`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decoding tree JSON")
}

func TestMarshalAttributeValues(t *testing.T) {
	js := `{"Data":{"attributes":{"name":"speed","unit":12.5,"flag":null,"empty":"","q":"say \"hi\""},"order":0,"children":{}}}`
	out, err := kml.Marshal(js)
	require.NoError(t, err)
	require.Equal(t, kml.Header+`<Data name="speed" unit="12.5" flag empty="" q='say "hi"'></Data>`, string(out))
}

func TestClean(t *testing.T) {
	js := `{"Folder":{"attributes":{},"order":0,"children":{` +
		`"text0":{"order":0,"data":"\n   \n"},` +
		`"name":{"attributes":{},"order":1,"children":{"text0":{"order":0,"data":"Stops"}}},` +
		`"text1":{"order":2,"data":"\n  "},` +
		`"open":{"attributes":{},"order":3,"children":{}}}}}`

	doc, err := kml.Clean(js)
	require.NoError(t, err)
	require.Equal(t, []string{"name", "open"}, doc.Root.Children.Keys())
	require.Equal(t, 1, doc.Root.Children.Element("name").Order)
	require.Equal(t, "Stops", doc.Root.Children.Element("name").Children.Text("text0").Data)

	_, err = kml.Clean(7)
	var target *kml.InvalidInputError
	require.ErrorAs(t, err, &target)
}

func TestStrict(t *testing.T) {
	input := []byte("<a>\n<b></a>")

	doc, err := kml.Parse(input)
	require.NoError(t, err)
	require.NotNil(t, doc.Root.Children.Element("b"))

	_, err = kml.Parse(input, kml.Strict())
	var perrs errors.ParseErrors
	require.ErrorAs(t, err, &perrs)
	require.Len(t, perrs, 1)
	require.Equal(t, 2, perrs[0].Line)
	require.Contains(t, err.Error(), "element <b> is closed by </a>")
}

func TestMaxDepthOption(t *testing.T) {
	_, err := kml.Parse([]byte("<a/>"), kml.MaxDepth(0))
	require.EqualError(t, err, "kml: max depth must be a positive integer")

	_, err = kml.Parse([]byte("<a><b><c></c></b></a>"), kml.MaxDepth(2))
	require.ErrorIs(t, err, kml.ErrMaxDepth)

	_, err = kml.Parse([]byte("<a><b><c></c></b></a>"), kml.MaxDepth(3))
	require.NoError(t, err)
}

func TestLiteralOptions(t *testing.T) {
	input := []byte(`<description><![CDATA[<b>x</b>]]><i>y</i></description>`)

	doc, err := kml.Parse(input)
	require.NoError(t, err)
	require.Equal(t, []string{"text0"}, doc.Root.Children.Keys())

	doc, err = kml.Parse(input, kml.ContinueAfterLiteral(), kml.StripLiteralDelimiters())
	require.NoError(t, err)
	require.Equal(t, []string{"text0", "i"}, doc.Root.Children.Keys())
	require.Equal(t, "<b>x</b>", doc.Root.Children.Text("text0").Data)

	doc, err = kml.Parse(input, kml.ContinueAfterLiteral(), kml.StopAtLiteral())
	require.NoError(t, err)
	require.Equal(t, []string{"text0"}, doc.Root.Children.Keys())
}

func TestAliasRoundTrip(t *testing.T) {
	input := []byte(`<Document><Style id="s"><LineStyle></LineStyle></Style></Document>`)

	doc, err := kml.Parse(input, kml.LegacyStyleAlias())
	require.NoError(t, err)
	require.Equal(t, []string{"kml-style"}, doc.Root.Children.Keys())

	out, err := kml.Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, kml.Header+`<Document><kml-style id="s"><LineStyle></LineStyle></kml-style></Document>`, string(out))

	out, err = kml.Marshal(doc, kml.RestoreTag("kml-style", "Style"))
	require.NoError(t, err)
	require.Equal(t, kml.Header+string(input), string(out))

	_, err = kml.Parse(input, kml.AliasTag("", "x"))
	require.Error(t, err)
	_, err = kml.Marshal(doc, kml.RestoreTag("kml-style", ""))
	require.Error(t, err)
}

func TestMinify(t *testing.T) {
	doc, err := kml.Parse([]byte("<kml>\n  <Placemark>\n    <name>A</name>\n  </Placemark>\n</kml>"))
	require.NoError(t, err)

	plain, err := kml.Marshal(doc)
	require.NoError(t, err)
	minified, err := kml.Marshal(doc, kml.Minify())
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(minified, []byte(kml.Header)))
	body := bytes.TrimPrefix(minified, []byte(kml.Header))
	require.Contains(t, string(body), "<name>A</name>")
	require.NotContains(t, string(body), "\n    ")
	require.Less(t, len(minified), len(plain))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := kml.Parse([]byte("<a><b>"), kml.WithLogger(logger))
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"level":"debug"`)
	require.Contains(t, buf.String(), "is not closed")

	buf.Reset()
	_, err = kml.Parse([]byte("<a><b>"), kml.WithLogger(logger.Level(zerolog.InfoLevel)))
	require.NoError(t, err)
	require.Empty(t, buf.String())
}

func TestKeyShapedNamesRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		keys  []string
	}{
		{`<p><text0 a="1">x</text0><b></b></p>`, []string{"text0--1", "b"}},
		{`<p><a--1>x</a--1><a>y</a><a--1--1></a--1--1></p>`, []string{"a--1--1", "a", "a--1--1--1"}},
		{`<p><text0></text0>t<text0></text0></p>`, []string{"text0--1", "text0", "text0--2"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			js, err := kml.ToJSON([]byte(tt.input))
			require.NoError(t, err)

			doc, err := kml.Parse([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.keys, doc.Root.Children.Keys())

			out, err := kml.Marshal(js)
			require.NoError(t, err)
			require.Equal(t, kml.Header+tt.input, string(out))
		})
	}
}
