package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type person struct {
	Name  string
	Email string
}

func byName(p person) string  { return p.Name }
func byEmail(p person) string { return p.Email }

func TestFilter(t *testing.T) {
	people := []person{
		{Name: "Jane Doe", Email: "jane@x.com"},
		{Name: "Sam Lee", Email: "sam@x.com"},
		{Name: "Alice Kim", Email: "alice@example.com"},
	}

	tests := []struct {
		name string
		term string
		want []person
	}{
		{name: "empty term returns all", term: "", want: people},
		{name: "name match", term: "jane", want: people[:1]},
		{name: "case-insensitive email match", term: "ALICE", want: people[2:]},
		{name: "shared substring", term: "x.com", want: people[:2]},
		{name: "no match", term: "zzz", want: []person{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(people, tt.term, byName, byEmail)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	people := []person{{Name: "Jane Doe"}, {Name: "Sam Lee"}}
	_ = Filter(people, "sam", byName)
	assert.Equal(t, "Jane Doe", people[0].Name)
	assert.Len(t, people, 2)
}
