package tree

// Attribute is a single attribute of an element. A nil Value marks a
// valueless attribute, as in <Placemark visible>, which is distinct from an
// attribute holding the empty string.
type Attribute struct {
	Name  string
	Value *string
}

// Attributes holds the attributes of an element in source order.
type Attributes []Attribute

// String returns a pointer to s, for building attribute values.
func String(s string) *string {
	return &s
}

// Get returns the value of the named attribute and whether it is present.
func (a Attributes) Get(name string) (*string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// Set stores value under name. An existing attribute keeps its position.
func (a *Attributes) Set(name string, value *string) {
	for i := range *a {
		if (*a)[i].Name == name {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attribute{Name: name, Value: value})
}

// Delete removes the named attribute and reports whether it existed.
func (a *Attributes) Delete(name string) bool {
	for i := range *a {
		if (*a)[i].Name == name {
			*a = append((*a)[:i:i], (*a)[i+1:]...)
			return true
		}
	}
	return false
}
