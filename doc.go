/*
Package kml converts KML documents to an ordered, attributed tree and back.
The API follows the shape of the standard `encoding/json` package.

The tree, defined in package tree, keeps everything needed to write the
document back: the order of elements and text among their siblings, the
attributes of every element in source order, and text content verbatim.
Repeated tag names among siblings are keyed name, name--1, name--2 and runs
of text are keyed text0, text1 and so on. Elements whose names look like
such keys, as in <text0> or <a--1>, are always keyed with a repeat suffix
(text0--1, a--1--1), so no element is ever read back as text.

Converting markup to a tree and back:

	doc, err := kml.Parse(data)
	if err != nil {
		// handle error
	}

	out, err := kml.Marshal(doc)
	if err != nil {
		// handle error
	}
	// out starts with <?xml version="1.0" encoding="UTF-8"?>

The tree has a JSON form, {"kml":{"attributes":{},"order":0,"children":{}}},
and Marshal accepts that form as text or as a decoded map[string]any:

	js, _ := kml.ToJSON(data)
	out, _ := kml.Marshal(js)

Indentation between tags is kept as text. Clean removes it:

	doc, _ = kml.Clean(doc)

Parsing is permissive. Unclosed elements, stray closing tags and
unterminated constructs are recovered from; the Strict option turns the
recovered problems into an errors.ParseErrors error. Literal blocks such as
<![CDATA[...]]> stop parsing of their siblings by default, keeping the rest
of the parent's content as text; ContinueAfterLiteral parses on.

Check reports whether a document survives the round trip, Patch edits the
JSON form with RFC 6902 operations and ToYAML and FromYAML bridge to YAML.
ReadMarkup and ReadFile accept KML files and transcode them to UTF-8.
*/
package kml
