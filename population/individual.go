package population

// unresolvedIndex marks an empty category-index cache slot.
const unresolvedIndex = -1

// Individual is one agent as seen by the partner-selection and migration
// engines. It is not goroutine-safe; individuals are updated sequentially
// within their partition.
//
// Properties hold the individual's current value for each named property.
// The assortivity index cache stores, per relationship type, the resolved
// axis index of the individual's property value; any property change clears
// the whole cache.
type Individual struct {
	id         uint64
	ageDays    float64
	gender     Gender
	infected   bool
	coInfected bool
	properties map[string]string
	assortIdx  [RelationshipTypeCount]int
}

// NewIndividual returns an uninfected individual with no properties.
func NewIndividual(id uint64, ageDays float64, gender Gender) *Individual {
	ind := &Individual{
		id:         id,
		ageDays:    ageDays,
		gender:     gender,
		properties: make(map[string]string),
	}
	ind.InvalidateAssortivityIndices()

	return ind
}

// ID returns the individual's stable identifier.
func (i *Individual) ID() uint64 { return i.id }

// AgeDays returns the age in days.
func (i *Individual) AgeDays() float64 { return i.ageDays }

// SetAgeDays updates the age in days.
func (i *Individual) SetAgeDays(days float64) { i.ageDays = days }

// Gender returns the individual's gender.
func (i *Individual) Gender() Gender { return i.gender }

// IsInfected reports the infection status.
func (i *Individual) IsInfected() bool { return i.infected }

// SetInfected updates the infection status.
func (i *Individual) SetInfected(v bool) { i.infected = v }

// HasCoInfection reports the co-infection status.
func (i *Individual) HasCoInfection() bool { return i.coInfected }

// SetCoInfected updates the co-infection status.
func (i *Individual) SetCoInfected(v bool) { i.coInfected = v }

// PropertyValue returns the value of the named property, if set.
func (i *Individual) PropertyValue(key string) (string, bool) {
	v, ok := i.properties[key]
	return v, ok
}

// SetProperty sets a property value and clears the assortivity cache,
// since any cached index may have been derived from the old value.
func (i *Individual) SetProperty(key, value string) {
	i.properties[key] = value
	i.InvalidateAssortivityIndices()
}

// AssortivityIndex returns the cached axis index for rel, or -1.
func (i *Individual) AssortivityIndex(rel RelationshipType) int {
	if rel < 0 || int(rel) >= RelationshipTypeCount {
		return unresolvedIndex
	}
	return i.assortIdx[rel]
}

// SetAssortivityIndex caches the axis index for rel.
func (i *Individual) SetAssortivityIndex(rel RelationshipType, index int) {
	if rel < 0 || int(rel) >= RelationshipTypeCount {
		return
	}
	i.assortIdx[rel] = index
}

// InvalidateAssortivityIndices clears every cached axis index.
func (i *Individual) InvalidateAssortivityIndices() {
	for k := range i.assortIdx {
		i.assortIdx[k] = unresolvedIndex
	}
}
