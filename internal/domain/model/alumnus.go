//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "encoding/json"

// Alumnus is a graduate record as listed by the upstream API.
type Alumnus struct {
	ID             FlexString `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Department     string     `json:"department"`
	GraduationYear FlexString `json:"gradYear"`
	Company        string     `json:"company"`
	Status         string     `json:"status"`
}

// UnmarshalJSON accepts records keyed by either "id" or the upstream's "_id".
func (a *Alumnus) UnmarshalJSON(b []byte) error {
	type alias Alumnus
	var aux struct {
		alias
		MongoID FlexString `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*a = Alumnus(aux.alias)
	if a.ID == "" {
		a.ID = aux.MongoID
	}
	return nil
}
