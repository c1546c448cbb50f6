//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "encoding/json"

// Event is a campus or alumni event.
type Event struct {
	ID          FlexString `json:"id"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Location    string     `json:"location"`
	Attendees   int        `json:"attendees"`
	Organizer   string     `json:"organizer"`
}

// UnmarshalJSON accepts records keyed by either "id" or the upstream's "_id".
func (e *Event) UnmarshalJSON(b []byte) error {
	type alias Event
	var aux struct {
		alias
		MongoID FlexString `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Event(aux.alias)
	if e.ID == "" {
		e.ID = aux.MongoID
	}
	return nil
}
