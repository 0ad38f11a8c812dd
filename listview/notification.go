package listview

// Variant is the visual weight of a notification
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a toast shown to the user
type Notification struct {
	Variant     Variant `json:"variant"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

// Notifier receives the notifications a view raises
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notification)

// Notify calls f(n)
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Messages holds the user facing text for one resource.
type Messages struct {
	FetchFailed   string
	Invalid       string
	Created       string
	CreateFailed  string
	UpdateFailed  string
	Deleted       string
	DeleteFailed  string
	ConfirmDelete string
}

func (m Messages) withDefaults() Messages {
	if m.FetchFailed == "" {
		m.FetchFailed = "Failed to fetch data"
	}
	if m.Invalid == "" {
		m.Invalid = "Please fill in all required fields"
	}
	if m.Created == "" {
		m.Created = "Created successfully"
	}
	if m.CreateFailed == "" {
		m.CreateFailed = "Failed to create"
	}
	if m.UpdateFailed == "" {
		m.UpdateFailed = "Failed to update"
	}
	if m.Deleted == "" {
		m.Deleted = "Deleted successfully"
	}
	if m.DeleteFailed == "" {
		m.DeleteFailed = "Failed to delete"
	}
	if m.ConfirmDelete == "" {
		m.ConfirmDelete = "Are you sure?"
	}
	return m
}

func failure(description string) Notification {
	return Notification{Variant: VariantDestructive, Title: "Error", Description: description}
}

func success(description string) Notification {
	return Notification{Variant: VariantDefault, Title: "Success", Description: description}
}
