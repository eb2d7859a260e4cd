package models

// CartItem is one tentatively selected subject/section pair held before
// finalization.
type CartItem struct {
	SubjectCode string `json:"subject_code"`
	SectionID   string `json:"section_id"`
	SubjectName string `json:"subject_name"`
	Units       int    `json:"units"`
	SectionDay  string `json:"section_day"`
}

// Cart is the per-student selection accumulated ahead of finalization. It is
// an explicit value object scoped to the owning student's session: operations
// return a new value and the stored copy lives in Redis until finalize or
// clear.
type Cart struct {
	StudentID string     `json:"student_id"`
	Items     []CartItem `json:"items"`
}

// Contains reports whether the cart already holds the subject/section pair.
func (c Cart) Contains(subjectCode, sectionID string) bool {
	for _, item := range c.Items {
		if item.SubjectCode == subjectCode && item.SectionID == sectionID {
			return true
		}
	}
	return false
}

// HasSubject reports whether any section of the subject is in the cart.
func (c Cart) HasSubject(subjectCode string) bool {
	for _, item := range c.Items {
		if item.SubjectCode == subjectCode {
			return true
		}
	}
	return false
}

// Add returns a copy of the cart with the item appended.
func (c Cart) Add(item CartItem) Cart {
	items := make([]CartItem, 0, len(c.Items)+1)
	items = append(items, c.Items...)
	items = append(items, item)
	return Cart{StudentID: c.StudentID, Items: items}
}

// Remove returns a copy of the cart without the given subject/section pair.
func (c Cart) Remove(subjectCode, sectionID string) Cart {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.SubjectCode == subjectCode && item.SectionID == sectionID {
			continue
		}
		items = append(items, item)
	}
	return Cart{StudentID: c.StudentID, Items: items}
}

// TotalUnits sums the units across cart items.
func (c Cart) TotalUnits() int {
	total := 0
	for _, item := range c.Items {
		total += item.Units
	}
	return total
}

// Selections converts the cart into finalize-ready selections, preserving
// insertion order.
func (c Cart) Selections() []Selection {
	selections := make([]Selection, 0, len(c.Items))
	for _, item := range c.Items {
		selections = append(selections, Selection{SubjectCode: item.SubjectCode, SectionID: item.SectionID})
	}
	return selections
}
