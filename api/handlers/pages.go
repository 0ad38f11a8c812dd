package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/api"
	"github.com/linesmerrill/lifeline-api/dashboard"
	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/feed"
	"github.com/linesmerrill/lifeline-api/filter"
	"github.com/linesmerrill/lifeline-api/listview"
	"github.com/linesmerrill/lifeline-api/models"
	"github.com/linesmerrill/lifeline-api/policy"
)

// listPage drives one list screen: the live view, the create form and the
// filter the page currently shows
type listPage[T any, D listview.Validator] struct {
	sess *session
	view *listview.View[T]
	form *listview.Form[D]

	// present shapes the filtered records for the client
	present func([]T) interface{}
	// canCreate gates the create form; nil allows everyone
	canCreate func(policy.Principal) bool
	create    func(ctx context.Context, draft D) error
	actions   map[string]func(ctx context.Context, msg clientMessage)

	mu       sync.Mutex
	criteria filter.Criteria
	confirm  string
}

type formState struct {
	Open  bool        `json:"open"`
	Draft interface{} `json:"draft"`
}

type snapshot struct {
	Items         interface{}     `json:"items"`
	Filter        filter.Criteria `json:"filter"`
	Loaded        bool            `json:"loaded"`
	Loading       bool            `json:"loading"`
	Submitting    bool            `json:"submitting"`
	Form          formState       `json:"form"`
	ConfirmDelete string          `json:"confirm_delete,omitempty"`
}

func (p *listPage[T, D]) snapshot() {
	p.mu.Lock()
	c := p.criteria
	p.mu.Unlock()

	p.sess.send("snapshot", snapshot{
		Items:         p.present(p.view.Items(c)),
		Filter:        c,
		Loaded:        p.view.Loaded(),
		Loading:       p.view.Loading(),
		Submitting:    p.view.Submitting(),
		Form:          formState{Open: p.form.IsOpen(), Draft: p.form.Draft()},
		ConfirmDelete: p.confirm,
	})
}

func (p *listPage[T, D]) start(ctx context.Context) {
	if err := p.view.Refresh(ctx); err != nil {
		// the page still renders, empty, next to the error notification
		p.snapshot()
	}
}

func (p *listPage[T, D]) handle(ctx context.Context, msg clientMessage) {
	switch msg.Type {
	case "filter":
		if msg.Filter != nil {
			p.mu.Lock()
			p.criteria = *msg.Filter
			p.mu.Unlock()
		}
		p.snapshot()
	case "refresh":
		_ = p.view.Refresh(ctx)
	case "open_form":
		if p.canCreate != nil && !p.canCreate(p.sess.principal) {
			denied(p.sess, "You are not allowed to do that")
			return
		}
		p.form.Open()
		p.snapshot()
	case "close_form":
		p.form.Close()
		p.snapshot()
	case "create":
		p.submit(ctx, msg)
	default:
		action, ok := p.actions[msg.Type]
		if !ok {
			zap.S().Debugw("unknown page message", "type", msg.Type, "channel", p.sess.channel)
			return
		}
		action(ctx, msg)
	}
}

func (p *listPage[T, D]) submit(ctx context.Context, msg clientMessage) {
	if p.canCreate != nil && !p.canCreate(p.sess.principal) {
		denied(p.sess, "You are not allowed to do that")
		return
	}
	if len(msg.Draft) > 0 {
		draft := p.form.Draft()
		if err := json.Unmarshal(msg.Draft, &draft); err != nil {
			zap.S().With(err).Debugw("failed to decode draft", "channel", p.sess.channel)
			denied(p.sess, "Please fill in all required fields")
			return
		}
		p.form.Set(draft)
	}

	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	_ = p.form.Submit(func(d D) error {
		return p.view.Create(qctx, d, func(ctx context.Context) error {
			return p.create(ctx, d)
		})
	})
	p.snapshot()
}

// withQueryTimeout bounds one store action of a page
func withQueryTimeout(op func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		qctx, cancel := api.WithQueryTimeout(ctx)
		defer cancel()
		return op(qctx)
	}
}

func (p *listPage[T, D]) close() {
	p.view.Close()
}

// denied raises a destructive notification that never reached the store
func denied(sess *session, description string) {
	sess.notify(listview.Notification{Variant: listview.VariantDestructive, Title: "Error", Description: description})
}

func (s Sessions) accidentPage(sess *session) page {
	p := &listPage[models.Accident, models.AccidentDraft]{
		sess: sess,
		form: listview.NewForm(models.NewAccidentDraft),
		present: func(in []models.Accident) interface{} {
			return accidentViews(in, sess.principal)
		},
	}
	p.view = listview.New(listview.Config[models.Accident]{
		Table: databases.AccidentCollection,
		Fetch: func(ctx context.Context) ([]models.Accident, error) {
			qctx, cancel := api.WithQueryTimeout(ctx)
			defer cancel()
			return s.Accident.DB.Find(qctx, bson.M{})
		},
		Key:   func(a models.Accident) string { return a.ID },
		Match: filter.Accident,
		Messages: listview.Messages{
			FetchFailed:  "Failed to fetch emergency data",
			Created:      "Emergency report submitted successfully",
			CreateFailed: "Failed to submit emergency report",
			UpdateFailed: "Failed to update emergency status",
		},
		Notifier:         listview.NotifierFunc(sess.notify),
		Patch:            s.Patch,
		RefetchOnSuccess: s.Broker == nil,
		OnChange:         p.snapshot,
	})
	p.create = func(ctx context.Context, d models.AccidentDraft) error {
		accident := d.Accident(sess.principal.ID)
		return s.Accident.report(ctx, &accident)
	}
	p.actions = map[string]func(context.Context, clientMessage){
		"update_status": func(ctx context.Context, msg clientMessage) {
			if !policy.CanTransitionAccidentStatus(sess.principal.Role) {
				denied(sess, "You are not allowed to change emergency status")
				return
			}
			accident, ok := p.view.Get(msg.ID)
			if !ok {
				denied(sess, "Failed to update emergency status")
				return
			}
			to := models.AccidentStatus(msg.Status)
			if err := models.CheckTransition(accident.Status, to); err != nil {
				zap.S().With(err).Debugw("rejected status change", "accident_id", accident.ID)
				denied(sess, "Failed to update emergency status")
				return
			}
			_ = p.view.Update(ctx, fmt.Sprintf("Emergency status updated to %s", to), withQueryTimeout(func(ctx context.Context) error {
				return s.Accident.transition(ctx, &accident, to)
			}))
		},
		"assign_ambulance": func(ctx context.Context, msg clientMessage) {
			if !policy.CanTransitionAccidentStatus(sess.principal.Role) {
				denied(sess, "You are not allowed to assign ambulances")
				return
			}
			accident, ok := p.view.Get(msg.ID)
			if !ok || msg.AmbulanceID == "" {
				denied(sess, "Please fill in all required fields")
				return
			}
			_ = p.view.Update(ctx, "Ambulance assigned", withQueryTimeout(func(ctx context.Context) error {
				return s.Accident.assign(ctx, &accident, msg.AmbulanceID)
			}))
		},
	}
	if s.Broker != nil {
		p.view.Subscribe(s.Broker, sess.channel)
	}
	return p
}

func (s Sessions) medicalIDPage(sess *session) page {
	p := &listPage[models.MedicalID, models.MedicalIDDraft]{
		sess: sess,
		form: listview.NewForm(func() models.MedicalIDDraft { return models.MedicalIDDraft{} }),
		present: func(in []models.MedicalID) interface{} {
			return medicalIDViews(in, sess.principal, s.MedicalID.today())
		},
	}
	messages := listview.Messages{
		FetchFailed:   "Failed to fetch medical ID data",
		Created:       "Medical ID created successfully",
		CreateFailed:  "Failed to create medical ID",
		Deleted:       "Medical ID deleted successfully",
		DeleteFailed:  "Failed to delete medical ID",
		ConfirmDelete: "Are you sure you want to delete this medical ID?",
	}
	p.confirm = messages.ConfirmDelete
	p.view = listview.New(listview.Config[models.MedicalID]{
		Table: databases.MedicalIDCollection,
		Fetch: func(ctx context.Context) ([]models.MedicalID, error) {
			qctx, cancel := api.WithQueryTimeout(ctx)
			defer cancel()
			return s.MedicalID.DB.Find(qctx, bson.M{})
		},
		Key:              func(m models.MedicalID) string { return m.ID },
		Match:            filter.MedicalID,
		Messages:         messages,
		Notifier:         listview.NotifierFunc(sess.notify),
		Patch:            s.Patch,
		RefetchOnSuccess: s.Broker == nil,
		OnChange:         p.snapshot,
	})
	p.create = func(ctx context.Context, d models.MedicalIDDraft) error {
		medicalID := d.MedicalID(sess.principal.ID)
		return s.MedicalID.create(ctx, &medicalID)
	}
	p.actions = map[string]func(context.Context, clientMessage){
		"delete": func(ctx context.Context, msg clientMessage) {
			qctx, cancel := api.WithQueryTimeout(ctx)
			medicalID, err := s.MedicalID.DB.FindByID(qctx, msg.ID)
			cancel()
			if err != nil {
				zap.S().With(err).Errorw("failed to get medical ID by ID", "medical_id", msg.ID)
				denied(sess, "Failed to delete medical ID")
				return
			}
			if !policy.CanDeleteMedicalID(sess.principal, medicalID.CreatedBy) {
				denied(sess, "You can only delete medical IDs you created")
				return
			}
			confirmed := func(string) bool { return msg.Confirm }
			_ = p.view.Remove(ctx, confirmed, withQueryTimeout(func(ctx context.Context) error {
				return s.MedicalID.remove(ctx, medicalID.ID)
			}))
		},
	}
	if s.Broker != nil {
		p.view.Subscribe(s.Broker, sess.channel)
	}
	return p
}

func (s Sessions) ambulancePage(sess *session) page {
	p := &listPage[models.Ambulance, models.AmbulanceDraft]{
		sess: sess,
		form: listview.NewForm(func() models.AmbulanceDraft { return models.AmbulanceDraft{} }),
		present: func(in []models.Ambulance) interface{} {
			return nonNil(in)
		},
		canCreate: func(p policy.Principal) bool { return policy.CanManageAmbulances(p.Role) },
	}
	p.view = listview.New(listview.Config[models.Ambulance]{
		Table: databases.AmbulanceCollection,
		Fetch: func(ctx context.Context) ([]models.Ambulance, error) {
			qctx, cancel := api.WithQueryTimeout(ctx)
			defer cancel()
			return s.Ambulance.DB.Find(qctx, bson.M{})
		},
		Key:   func(a models.Ambulance) string { return a.ID },
		Match: filter.Ambulance,
		Messages: listview.Messages{
			FetchFailed:  "Failed to fetch ambulance data",
			Created:      "Ambulance registered successfully",
			CreateFailed: "Failed to register ambulance",
			UpdateFailed: "Failed to update ambulance status",
		},
		Notifier:         listview.NotifierFunc(sess.notify),
		Patch:            s.Patch,
		RefetchOnSuccess: s.Broker == nil,
		OnChange:         p.snapshot,
	})
	p.create = func(ctx context.Context, d models.AmbulanceDraft) error {
		ambulance := d.Ambulance()
		return s.Ambulance.create(ctx, &ambulance)
	}
	p.actions = map[string]func(context.Context, clientMessage){
		"update_status": func(ctx context.Context, msg clientMessage) {
			if !policy.CanManageAmbulances(sess.principal.Role) {
				denied(sess, "You are not allowed to do that")
				return
			}
			status := models.AmbulanceStatus(msg.Status)
			_ = p.view.Update(ctx, fmt.Sprintf("Ambulance status updated to %s", status), withQueryTimeout(func(ctx context.Context) error {
				return s.Ambulance.setStatus(ctx, msg.ID, status)
			}))
		},
	}
	if s.Broker != nil {
		p.view.Subscribe(s.Broker, sess.channel)
	}
	return p
}

// dashboardTables are the collections the dashboard is projected from
var dashboardTables = []string{
	databases.AccidentCollection,
	databases.AmbulanceCollection,
	databases.MedicalIDCollection,
	databases.AlertLogCollection,
	databases.ProfileCollection,
}

// dashboardPage reloads the whole aggregate whenever any of its source
// collections changes
type dashboardPage struct {
	sess   *session
	broker *feed.Broker
	loader dashboard.Loader

	mu   sync.Mutex
	subs []*feed.Subscription

	// loads are serialized so snapshots go out in order
	loadMu sync.Mutex
}

func (d *dashboardPage) start(ctx context.Context) {
	if d.broker != nil {
		d.mu.Lock()
		for _, table := range dashboardTables {
			d.subs = append(d.subs, d.broker.Subscribe(d.sess.channel, table, feed.OpAll, func(feed.Change) {
				d.reload(ctx)
			}))
		}
		d.mu.Unlock()
	}
	d.reload(ctx)
}

func (d *dashboardPage) reload(ctx context.Context) {
	d.loadMu.Lock()
	defer d.loadMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()
	d.sess.send("snapshot", d.loader.Load(qctx, d.sess.principal))
}

func (d *dashboardPage) handle(ctx context.Context, msg clientMessage) {
	if msg.Type == "refresh" {
		d.reload(ctx)
	}
}

func (d *dashboardPage) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, sub := range d.subs {
		sub.Unsubscribe()
	}
	d.subs = nil
}
