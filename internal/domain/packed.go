package domain

// PackedUpdate describes how an item update changes the packed flag.
// It is either SetPacked or TogglePacked.
type PackedUpdate interface {
	apply(packed bool) bool
}

// SetPacked sets the packed flag to the given value.
type SetPacked bool

func (s SetPacked) apply(bool) bool { return bool(s) }

// TogglePacked flips the packed flag.
type TogglePacked struct{}

func (TogglePacked) apply(packed bool) bool { return !packed }

// ItemUpdate is a partial edit of a packing item. Nil fields are left alone.
// A nil Packed leaves the flag unchanged.
type ItemUpdate struct {
	Name     *string
	Category *Category
	Packed   PackedUpdate
}

// Apply returns item with the update applied. Suggested is never touched.
func (u ItemUpdate) Apply(item PackingItem) PackingItem {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.Packed != nil {
		item.Packed = u.Packed.apply(item.Packed)
	}
	return item
}
