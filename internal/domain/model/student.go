//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "encoding/json"

// Student is a student record as listed by the upstream API.
type Student struct {
	ID         FlexString `json:"id"`
	Name       string     `json:"name"`
	RollNo     string     `json:"rollno"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	LastSeen   string     `json:"lastseen"`
	Status     string     `json:"status"`
}

// UnmarshalJSON accepts records keyed by either "id" or the upstream's "_id".
func (s *Student) UnmarshalJSON(b []byte) error {
	type alias Student
	var aux struct {
		alias
		MongoID       FlexString `json:"_id"`
		LastSeenCamel string     `json:"lastSeen"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*s = Student(aux.alias)
	if s.ID == "" {
		s.ID = aux.MongoID
	}
	if s.LastSeen == "" {
		s.LastSeen = aux.LastSeenCamel
	}
	return nil
}

// IsOnline reports whether the upstream marks the student as online.
func (s Student) IsOnline() bool { return s.Status == "online" }
