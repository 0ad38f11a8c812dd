package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/lifeline-api/models"
)

var accidents = []models.Accident{
	{ID: "1", Type: "Car Accident", Description: "two vehicles", Location: "Main St", Status: models.StatusActive, Priority: models.PriorityHigh},
	{ID: "2", Type: "Medical", Description: "cardiac arrest", Location: "Park Ave", Status: models.StatusResponded, Priority: models.PriorityCritical},
	{ID: "3", Type: "Fire", Description: "kitchen fire", Location: "Carver Rd", Status: models.StatusResolved, Priority: models.PriorityLow},
}

func ids(in []models.Accident) []string {
	var out []string
	for _, a := range in {
		out = append(out, a.ID)
	}
	return out
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	got := Accidents(accidents, Criteria{Search: "car"})
	// "Car Accident", "cardiac", "Carver Rd"
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))

	got = Accidents(accidents, Criteria{Search: "CAR ACC"})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestSentinelAllIsNoOp(t *testing.T) {
	assert.Equal(t, ids(accidents), ids(Accidents(accidents, Criteria{Status: All, Priority: All})))
	assert.Equal(t, ids(accidents), ids(Accidents(accidents, Criteria{})))
}

func TestStatusAndPriorityAreExact(t *testing.T) {
	assert.Equal(t, []string{"2"}, ids(Accidents(accidents, Criteria{Status: "responded"})))
	assert.Equal(t, []string{"3"}, ids(Accidents(accidents, Criteria{Priority: "low"})))
	assert.Empty(t, Accidents(accidents, Criteria{Status: "respond"}))
	assert.Empty(t, Accidents(accidents, Criteria{Status: "active", Priority: "critical"}))
}

func TestFilterIsIdempotent(t *testing.T) {
	c := Criteria{Search: "car", Status: All, Priority: "high"}
	once := Accidents(accidents, c)
	twice := Accidents(once, c)
	assert.Equal(t, once, twice)
}

func TestMedicalIDSearchFields(t *testing.T) {
	in := []models.MedicalID{
		{ID: "a", FullName: "Ada Lovelace", BloodType: "AB-", EmergencyContactName: "Charles"},
		{ID: "b", FullName: "Grace Hopper", BloodType: "O+", EmergencyContactName: "Vincent"},
	}
	assert.Len(t, MedicalIDs(in, Criteria{Search: "ab-"}), 1)
	assert.Len(t, MedicalIDs(in, Criteria{Search: "vinc"}), 1)
	assert.Len(t, MedicalIDs(in, Criteria{Search: "hopper", Status: "ignored"}), 1)
	assert.Empty(t, MedicalIDs(in, Criteria{Search: "1990"}))
}

func TestAmbulanceFilter(t *testing.T) {
	in := []models.Ambulance{
		{ID: "a", CallSign: "MEDIC-1", Status: models.AmbulanceAvailable},
		{ID: "b", CallSign: "MEDIC-2", Status: models.AmbulanceDispatched},
	}
	assert.Len(t, Ambulances(in, Criteria{Search: "medic"}), 2)
	assert.Len(t, Ambulances(in, Criteria{Status: "available"}), 1)
}

func TestFromQuery(t *testing.T) {
	c := FromQuery(url.Values{"search": {"car"}, "status": {"all"}})
	assert.Equal(t, Criteria{Search: "car", Status: "all"}, c)
	assert.True(t, c.Active())
	assert.False(t, Criteria{Status: All, Priority: All}.Active())
}
