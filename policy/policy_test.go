package policy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func titles(items []Item) []string {
	var out []string
	for _, i := range items {
		out = append(out, i.Title)
	}
	return out
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", Admin},
		{"Dispatcher", Dispatcher},
		{" responder ", Responder},
		{"", Responder},
		{"superuser", Responder},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.in), "ParseRole(%q)", tt.in)
	}
}

func TestIsAllowedMatchesAllowedRoles(t *testing.T) {
	for _, item := range Navigation() {
		for _, role := range []Role{Admin, Dispatcher, Responder} {
			_, inSet := item.AllowedRoles[role]
			assert.Equal(t, inSet, IsAllowed(role, item), "%s for %s", item.Title, role)
		}
	}
}

func TestUnknownRoleBehavesLikeResponder(t *testing.T) {
	for _, role := range []Role{"", "guest", "ADMINISTRATOR"} {
		assert.Equal(t, titles(VisibleItems(Responder, Navigation())), titles(VisibleItems(role, Navigation())))
		assert.Equal(t, CanViewUserCount(Responder), CanViewUserCount(role))
		assert.Equal(t, CanTransitionAccidentStatus(Responder), CanTransitionAccidentStatus(role))
	}
}

func TestVisibleItemsPreservesOrder(t *testing.T) {
	assert.Equal(t, []string{
		"Dashboard", "Active Emergencies", "Medical IDs", "Communication", "Settings",
	}, titles(VisibleItems(Responder, Navigation())))

	assert.Equal(t, []string{
		"Dashboard", "Active Emergencies", "Medical IDs", "Ambulances", "Alert Logs",
		"Communication", "Live Map", "Settings",
	}, titles(VisibleItems(Dispatcher, Navigation())))

	assert.Len(t, VisibleItems(Admin, Navigation()), len(Navigation()))
}

func TestItemForPath(t *testing.T) {
	item, ok := ItemForPath("/users")
	assert.True(t, ok)
	assert.Equal(t, "Users", item.Title)

	_, ok = ItemForPath("/nope")
	assert.False(t, ok)
}

func TestNavigationReturnsCopy(t *testing.T) {
	items := Navigation()
	items[0].Title = "changed"
	assert.Equal(t, "Dashboard", Navigation()[0].Title)
}

func TestItemMarshalJSON(t *testing.T) {
	item, _ := ItemForPath("/ambulances")
	b, err := json.Marshal(item)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"title":"Ambulances","path":"/ambulances","icon":"ambulance","allowedRoles":["admin","dispatcher"]}`, string(b))
}

func TestNamedRules(t *testing.T) {
	assert.True(t, CanViewUserCount(Admin))
	assert.False(t, CanViewUserCount(Dispatcher))
	assert.False(t, CanViewUserCount(Responder))

	assert.True(t, CanTransitionAccidentStatus(Admin))
	assert.True(t, CanTransitionAccidentStatus(Dispatcher))
	assert.False(t, CanTransitionAccidentStatus(Responder))

	assert.True(t, CanManageAmbulances(Dispatcher))
	assert.False(t, CanManageAmbulances(Responder))
}

func TestCanDeleteMedicalID(t *testing.T) {
	owner := "user-a"

	assert.True(t, CanDeleteMedicalID(Principal{ID: "user-a", Role: Responder}, owner))
	assert.False(t, CanDeleteMedicalID(Principal{ID: "user-b", Role: Responder}, owner))
	assert.False(t, CanDeleteMedicalID(Principal{ID: "user-b", Role: Dispatcher}, owner))
	assert.True(t, CanDeleteMedicalID(Principal{ID: "user-b", Role: Admin}, owner))
	assert.False(t, CanDeleteMedicalID(Principal{Role: Responder}, ""))
}
