package model

// EntityType is the closed set of entity categories the pipeline annotates.
type EntityType string

const (
	EntityPerson       EntityType = "PERSON"
	EntityOrganization EntityType = "ORGANIZATION"
	EntityLocation     EntityType = "LOCATION"
	EntityDate         EntityType = "DATE"
	EntityNumber       EntityType = "NUMBER"
	EntityPrice        EntityType = "PRICE"
)

// Valid reports whether t is one of the allow-listed types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityPerson, EntityOrganization, EntityLocation, EntityDate, EntityNumber, EntityPrice:
		return true
	}
	return false
}

// Entity is a named span classification returned by the extraction service.
// Entities sharing a Name but not a Type are the same highlighting key.
type Entity struct {
	Name string     `json:"name"`
	Type EntityType `json:"type"`
}

// FilterEntities drops entities with empty names or types outside the
// allow-list. Applied at the extractor adapter boundary so nothing
// downstream has to re-check.
func FilterEntities(entities []Entity) []Entity {
	var out []Entity
	for _, e := range entities {
		if e.Name == "" || !e.Type.Valid() {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Names returns the surface forms of entities in input order, de-duplicated.
func Names(entities []Entity) []string {
	seen := make(map[string]bool, len(entities))
	var names []string
	for _, e := range entities {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		names = append(names, e.Name)
	}
	return names
}
