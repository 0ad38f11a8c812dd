package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/feed"
	"github.com/linesmerrill/lifeline-api/models"
	templates "github.com/linesmerrill/lifeline-api/templates/html"
)

// Scheduler runs the escalation sweep for emergencies nobody responded to
type Scheduler struct {
	cron   *cron.Cron
	ADB    databases.AccidentDatabase
	LDB    databases.AlertLogDatabase
	Broker *feed.Broker
	Mailer Mailer
	// After is how long a high or critical emergency may stay active
	// before it is escalated.
	After time.Duration

	now func() time.Time
}

// NewScheduler creates a new scheduler instance. broker and mailer may be nil.
func NewScheduler(
	aDB databases.AccidentDatabase,
	lDB databases.AlertLogDatabase,
	broker *feed.Broker,
	mailer Mailer,
	after time.Duration,
) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ADB:    aDB,
		LDB:    lDB,
		Broker: broker,
		Mailer: mailer,
		After:  after,
		now:    time.Now,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("@every 1m", s.escalationJob)
	if err != nil {
		zap.S().Errorw("failed to register escalation job", "error", err)
	}

	s.cron.Start()
	zap.S().Infow("Escalation scheduler started", "after", s.After)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Escalation scheduler stopped")
}

func (s *Scheduler) escalationJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.Escalate(ctx)
	if err != nil {
		zap.S().Errorw("escalation sweep failed", "error", err)
		return
	}
	if n > 0 {
		zap.S().Infow("escalated emergencies", "count", n)
	}
}

// Escalate raises one system alert for every active high or critical
// emergency older than After that has none yet, and returns how many were
// raised.
func (s *Scheduler) Escalate(ctx context.Context) (int, error) {
	now := s.now().UTC()
	accidents, err := s.ADB.Find(ctx, bson.M{
		"status":     models.StatusActive,
		"priority":   bson.M{"$in": []models.Priority{models.PriorityHigh, models.PriorityCritical}},
		"created_at": bson.M{"$lte": now.Add(-s.After)},
	})
	if err != nil {
		return 0, err
	}

	raised := 0
	for i := range accidents {
		a := accidents[i]
		exists, err := s.LDB.ExistsForAccident(ctx, a.ID, models.AlertSystem)
		if err != nil {
			zap.S().Errorw("failed to check existing alert", "error", err, "accident_id", a.ID)
			continue
		}
		if exists {
			continue
		}

		waited := now.Sub(a.CreatedAt).Round(time.Minute)
		alert := &models.AlertLog{
			Type:       models.AlertSystem,
			Message:    fmt.Sprintf("%s priority %s at %s has had no response for %s", a.Priority, a.Type, a.Location, waited),
			AccidentID: a.ID,
		}
		if err = s.LDB.Insert(ctx, alert); err != nil {
			zap.S().Errorw("failed to insert escalation alert", "error", err, "accident_id", a.ID)
			continue
		}
		raised++

		if s.Broker != nil {
			s.Broker.Publish(feed.NewChange(databases.AlertLogCollection, feed.OpInsert, alert.ID, alert))
		}
		if s.Mailer != nil {
			subject := fmt.Sprintf("Escalation: %s emergency unanswered", a.Priority)
			htmlContent := templates.RenderEscalationEmail(templates.Escalation{
				Subject:  subject,
				Priority: string(a.Priority),
				Type:     a.Type,
				Location: a.Location,
				Waited:   waited.String(),
				Message:  alert.Message,
			})
			if err = s.Mailer.Send(ctx, subject, alert.Message, htmlContent); err != nil {
				zap.S().Errorw("failed to send escalation email", "error", err, "accident_id", a.ID)
			}
		}
	}
	return raised, nil
}
