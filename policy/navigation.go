package policy

import "encoding/json"

// Item is a navigable resource or action descriptor.
type Item struct {
	Title        string
	Path         string
	Icon         string
	AllowedRoles Roles
}

// MarshalJSON renders AllowedRoles as an ordered list.
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title        string `json:"title"`
		Path         string `json:"path"`
		Icon         string `json:"icon"`
		AllowedRoles []Role `json:"allowedRoles"`
	}{i.Title, i.Path, i.Icon, i.AllowedRoles.List()})
}

var (
	everyone   = RoleSet(Admin, Dispatcher, Responder)
	dispatch   = RoleSet(Admin, Dispatcher)
	adminsOnly = RoleSet(Admin)
)

var navigation = []Item{
	{Title: "Dashboard", Path: "/dashboard", Icon: "layout-dashboard", AllowedRoles: everyone},
	{Title: "Active Emergencies", Path: "/emergencies", Icon: "alert-triangle", AllowedRoles: everyone},
	{Title: "Medical IDs", Path: "/medical-ids", Icon: "heart", AllowedRoles: everyone},
	{Title: "Ambulances", Path: "/ambulances", Icon: "ambulance", AllowedRoles: dispatch},
	{Title: "Alert Logs", Path: "/alerts", Icon: "activity", AllowedRoles: dispatch},
	{Title: "Communication", Path: "/communication", Icon: "message-square", AllowedRoles: everyone},
	{Title: "Live Map", Path: "/map", Icon: "map-pin", AllowedRoles: dispatch},
	{Title: "Users", Path: "/users", Icon: "users", AllowedRoles: adminsOnly},
	{Title: "Settings", Path: "/settings", Icon: "settings", AllowedRoles: everyone},
}

// Navigation returns a copy of the static navigation list.
func Navigation() []Item {
	out := make([]Item, len(navigation))
	copy(out, navigation)
	return out
}

// ItemForPath looks up a navigation entry by path.
func ItemForPath(path string) (Item, bool) {
	for _, item := range navigation {
		if item.Path == path {
			return item, true
		}
	}
	return Item{}, false
}

// IsAllowed reports whether role may see item.
func IsAllowed(role Role, item Item) bool {
	return item.AllowedRoles.Has(role)
}

// VisibleItems returns the items role may see, in their original order.
func VisibleItems(role Role, items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if IsAllowed(role, item) {
			out = append(out, item)
		}
	}
	return out
}
