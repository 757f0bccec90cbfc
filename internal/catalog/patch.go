package catalog

import "time"

// EventPatch is a partial update for a stored event. Nil fields are left
// untouched; set fields replace the stored value wholesale.
type EventPatch struct {
	Name          *string      `json:"name,omitempty"`
	Date          *time.Time   `json:"date,omitempty"`
	Type          *EventType   `json:"type,omitempty"`
	Status        *EventStatus `json:"status,omitempty"`
	Description   *string      `json:"description,omitempty"`
	Location      *Location    `json:"location,omitempty"`
	Collaborators *[]string    `json:"collaborators,omitempty"`
	Media         *Media       `json:"media,omitempty"`
	Awards        *[]Award     `json:"awards,omitempty"`
}

// Apply merges the patch into a copy of the event and stamps UpdatedAt.
// Identity fields (id, sequence number, slug) are never patched.
func (p EventPatch) Apply(e Event, now time.Time) Event {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Collaborators != nil {
		e.Collaborators = *p.Collaborators
	}
	if p.Media != nil {
		e.Media = *p.Media
	}
	if p.Awards != nil {
		e.Awards = *p.Awards
	}
	e.UpdatedAt = now
	return e
}
