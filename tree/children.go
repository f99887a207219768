package tree

import (
	"strconv"
	"strings"
)

const (
	textPrefix = "text"
	repeatSep  = "--"
)

// Child is a keyed entry of an element's children.
type Child struct {
	Key  string
	Node Node
}

// Children holds the children of an element under their child keys.
type Children []Child

// IsTextKey reports whether key is a synthetic text key of the form textN.
func IsTextKey(key string) bool {
	digits, ok := strings.CutPrefix(key, textPrefix)
	return ok && isDigits(digits)
}

// TextKey returns the key of the n-th text child of an element.
func TextKey(n int) string {
	return textPrefix + strconv.Itoa(n)
}

// RepeatKey returns the key of the n-th repeat of a tag name among siblings.
// The first occurrence of a name uses the bare name; its first repeat is
// RepeatKey(name, 1).
func RepeatKey(name string, n int) string {
	return name + repeatSep + strconv.Itoa(n)
}

// TagName returns the tag name stored under key, dropping a repeat suffix.
func TagName(key string) string {
	i := strings.LastIndex(key, repeatSep)
	if i <= 0 || !isDigits(key[i+len(repeatSep):]) {
		return key
	}
	return key[:i]
}

// IsKeyShaped reports whether the tag name could be mistaken for a child key
// with a meaning of its own: a text key, or a name ending in a repeat
// suffix. Elements with such names are stored under RepeatKey(name, n),
// n >= 1, which TagName maps back to the name.
func IsKeyShaped(name string) bool {
	return IsTextKey(name) || TagName(name) != name
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Get returns the node stored under key, or nil.
func (c Children) Get(key string) Node {
	if i := c.index(key); i >= 0 {
		return c[i].Node
	}
	return nil
}

// Element returns the element stored under key, or nil.
func (c Children) Element(key string) *Element {
	el, _ := c.Get(key).(*Element)
	return el
}

// Text returns the text stored under key, or nil.
func (c Children) Text(key string) *Text {
	t, _ := c.Get(key).(*Text)
	return t
}

// Keys returns the child keys in document order.
func (c Children) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, child := range c.Sorted() {
		keys = append(keys, child.Key)
	}
	return keys
}

// Set stores n under key, replacing an existing entry in place.
func (c *Children) Set(key string, n Node) {
	if i := c.index(key); i >= 0 {
		(*c)[i].Node = n
		return
	}
	*c = append(*c, Child{Key: key, Node: n})
}

// Delete removes the entry stored under key and reports whether it existed.
func (c *Children) Delete(key string) bool {
	i := c.index(key)
	if i < 0 {
		return false
	}
	*c = append((*c)[:i:i], (*c)[i+1:]...)
	return true
}

func (c Children) index(key string) int {
	for i, child := range c {
		if child.Key == key {
			return i
		}
	}
	return -1
}
