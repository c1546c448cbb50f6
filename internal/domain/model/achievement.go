//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "encoding/json"

// Achievement is a recognition awarded to a student or alumnus.
type Achievement struct {
	ID          FlexString `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StudentName string     `json:"studentName"`
	Date        string     `json:"date"`
	Category    string     `json:"category"`
}

// UnmarshalJSON accepts records keyed by either "id" or the upstream's "_id".
func (a *Achievement) UnmarshalJSON(b []byte) error {
	type alias Achievement
	var aux struct {
		alias
		MongoID FlexString `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*a = Achievement(aux.alias)
	if a.ID == "" {
		a.ID = aux.MongoID
	}
	return nil
}
