package models

// Walk visits every display hint of the document and its linked documents,
// depth first, in document order. Returning false from fn stops descent
// into that hint's members.
func (d *ResourceDocument) Walk(fn func(h *DisplayHint) bool) {
	if d == nil {
		return
	}
	for _, page := range d.DisplayPages {
		walkHint(page, fn)
	}
	for _, linked := range d.LinkedDocuments {
		linked.Walk(fn)
	}
}

func walkHint(h *DisplayHint, fn func(h *DisplayHint) bool) {
	if h == nil {
		return
	}
	if !fn(h) {
		return
	}
	for _, m := range h.Members {
		walkHint(m, fn)
	}
}

// Find returns every hint matching pred, in document order.
func (d *ResourceDocument) Find(pred func(h *DisplayHint) bool) []*DisplayHint {
	var out []*DisplayHint
	d.Walk(func(h *DisplayHint) bool {
		if pred(h) {
			out = append(out, h)
		}
		return true
	})
	return out
}

// HintByID returns the hints with the given display id.
func (d *ResourceDocument) HintByID(id string) []*DisplayHint {
	return d.Find(func(h *DisplayHint) bool { return h.ID == id })
}

// HintsForProperty returns the hints bound to a data property.
func (d *ResourceDocument) HintsForProperty(name string) []*DisplayHint {
	return d.Find(func(h *DisplayHint) bool { return h.PropertyName == name })
}

// RemoveHint detaches every hint with the given id from its parent container
// or page list. Sibling order is preserved. Reports whether anything was removed.
func (d *ResourceDocument) RemoveHint(id string) bool {
	if d == nil {
		return false
	}
	removed := false
	kept := d.DisplayPages[:0]
	for _, page := range d.DisplayPages {
		if page == nil {
			kept = append(kept, page)
			continue
		}
		if page.ID == id {
			removed = true
			continue
		}
		if removeFromMembers(page, id) {
			removed = true
		}
		kept = append(kept, page)
	}
	d.DisplayPages = kept
	for _, linked := range d.LinkedDocuments {
		if linked.RemoveHint(id) {
			removed = true
		}
	}
	return removed
}

func removeFromMembers(h *DisplayHint, id string) bool {
	removed := false
	kept := h.Members[:0]
	for _, m := range h.Members {
		if m == nil {
			kept = append(kept, m)
			continue
		}
		if m.ID == id {
			removed = true
			continue
		}
		if removeFromMembers(m, id) {
			removed = true
		}
		kept = append(kept, m)
	}
	h.Members = kept
	return removed
}

// Property resolves a dotted path ("details.address.country") in the data description.
func (d *ResourceDocument) Property(path ...string) *PropertyDescription {
	if d == nil || len(path) == 0 {
		return nil
	}
	current := d.DataDescription
	var prop *PropertyDescription
	for _, name := range path {
		if current == nil {
			return nil
		}
		prop = current[name]
		if prop == nil {
			return nil
		}
		current = prop.Properties
	}
	return prop
}

// AddStyleHint appends a style hint unless it is already present.
func (h *DisplayHint) AddStyleHint(hint string) {
	for _, existing := range h.StyleHints {
		if existing == hint {
			return
		}
	}
	h.StyleHints = append(h.StyleHints, hint)
}

// SetTag sets a display tag.
func (h *DisplayHint) SetTag(key, value string) {
	if h.Tags == nil {
		h.Tags = make(map[string]string)
	}
	h.Tags[key] = value
}

// Documents returns d followed by all linked documents, depth first.
func (d *ResourceDocument) Documents() []*ResourceDocument {
	if d == nil {
		return nil
	}
	out := []*ResourceDocument{d}
	for _, linked := range d.LinkedDocuments {
		out = append(out, linked.Documents()...)
	}
	return out
}
