package kml_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-kml"
)

func TestCheckLossless(t *testing.T) {
	input := []byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<kml>\n  <Placemark id=\"a\" visible><name>A</name></Placemark>\n</kml>\n")

	r, err := kml.Check(input)
	require.NoError(t, err)
	require.True(t, r.Lossless())
	require.Empty(t, r.Diagnostics)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, false))
	require.Equal(t, "round trip: lossless\n", buf.String())
}

func TestCheckReportsChanges(t *testing.T) {
	r, err := kml.Check([]byte(`<kml><a x='1'/><!-- gone --></kml>`))
	require.NoError(t, err)
	require.False(t, r.Lossless())

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, false))
	out := buf.String()
	require.Contains(t, out, "[-")
	require.Contains(t, out, "{+")
	require.Contains(t, out, "gone")
	require.Contains(t, out, "round trip: ")
	require.NotContains(t, out, "\x1b[")
}

func TestCheckDiagnostics(t *testing.T) {
	r, err := kml.Check([]byte(`<kml><a></kml>`), kml.Strict())
	require.NoError(t, err)
	require.Len(t, r.Diagnostics, 1)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, true))
	out := buf.String()
	require.Contains(t, out, "1 recovered problem(s):")
	require.Contains(t, out, "element <a> is closed by </kml>")
	require.Contains(t, out, "\x1b[")
}

func TestCheckRestoresAliases(t *testing.T) {
	input := []byte(`<Document><Style id="s"></Style></Document>`)

	r, err := kml.Check(input, kml.AliasTag("Style", "kml-style"))
	require.NoError(t, err)
	require.True(t, r.Lossless())

	r, err = kml.Check(input, kml.AliasTag("Style", "kml-style"), kml.RestoreTag("kml-style", "kml-style"))
	require.NoError(t, err)
	require.False(t, r.Lossless())

	// The alias matches any case; the source spelling is written back.
	for _, input := range []string{
		`<Document><Style id="s"><x/></Style></Document>`,
		`<Document><style id="s"></style></Document>`,
	} {
		r, err = kml.Check([]byte(input), kml.LegacyStyleAlias())
		require.NoError(t, err)
		require.True(t, r.Lossless(), "input %s: %v", input, r.Diffs)
	}
}

func TestCheckSelfClosingTags(t *testing.T) {
	for _, input := range []string{
		`<kml><a/><b x="1"/></kml>`,
		`<kml><a /><b x="1" /></kml>`,
		`<kml/>`,
		`<kml><description><![CDATA[x]]><br/></description></kml>`,
	} {
		r, err := kml.Check([]byte(input))
		require.NoError(t, err)
		require.True(t, r.Lossless(), "input %s: %v", input, r.Diffs)
	}

	r, err := kml.Check([]byte(`<kml><a x='1'/></kml>`))
	require.NoError(t, err)
	require.False(t, r.Lossless())
}
