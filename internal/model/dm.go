package model

// Dm is a direct-message conversation. CreatorID goes nil once the creator
// leaves; the DM itself survives. Name is fixed at creation and never
// recomputed, even when membership changes.
type Dm struct {
	DmID      int       `json:"dmId"`
	CreatorID *int      `json:"creatorId"`
	UIDs      []int     `json:"uIds"`
	Name      string    `json:"name"`
	Messages  []Message `json:"messages"`
}

// HasMember reports whether the user is the creator or a listed member.
func (d *Dm) HasMember(uID int) bool {
	if d.CreatorID != nil && *d.CreatorID == uID {
		return true
	}
	for _, id := range d.UIDs {
		if id == uID {
			return true
		}
	}
	return false
}

// IsCreator reports whether the user is the DM's creator.
func (d *Dm) IsCreator(uID int) bool {
	return d.CreatorID != nil && *d.CreatorID == uID
}
