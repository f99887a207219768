package parser

import "github.com/KimNorgaard/go-kml/tree"

// childBuilder collects the children of one element in document order,
// assigning keys and orders as they are added.
type childBuilder struct {
	children tree.Children
	keys     map[string]struct{}
	repeats  map[string]int
	texts    int
}

// addText adds a text child under the next textN key.
func (b *childBuilder) addText(data string) {
	key := tree.TextKey(b.texts)
	b.texts++
	b.add(key, &tree.Text{Order: len(b.children), Data: data})
}

// addElement adds el under name, or under name--N if name is taken. Names
// shaped like a child key always take the name--N form, so no element
// lands on a textN key.
func (b *childBuilder) addElement(name string, el *tree.Element) {
	key := name
	if tree.IsKeyShaped(name) || b.has(key) {
		if b.repeats == nil {
			b.repeats = make(map[string]int)
		}
		n := b.repeats[name]
		for {
			n++
			key = tree.RepeatKey(name, n)
			if !b.has(key) {
				break
			}
		}
		b.repeats[name] = n
	}
	el.Order = len(b.children)
	b.add(key, el)
}

func (b *childBuilder) has(key string) bool {
	_, ok := b.keys[key]
	return ok
}

func (b *childBuilder) add(key string, n tree.Node) {
	if b.keys == nil {
		b.keys = make(map[string]struct{})
	}
	b.keys[key] = struct{}{}
	b.children = append(b.children, tree.Child{Key: key, Node: n})
}
