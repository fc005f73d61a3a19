package models

// IDList is an ordered set of document ids. Order is insertion order.
type IDList []string

func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id unless it is already present.
func (l *IDList) Add(id string) {
	if l.Contains(id) {
		return
	}
	*l = append(*l, id)
}

// Remove drops every occurrence of id and reports whether one was found.
func (l *IDList) Remove(id string) bool {
	out := (*l)[:0]
	found := false
	for _, v := range *l {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	*l = out
	return found
}

// Without returns a copy of the list minus id, leaving the receiver untouched.
func (l IDList) Without(id string) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
