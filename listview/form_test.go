package listview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/lifeline-api/models"
)

func TestFormStartsClosedWithInitialDraft(t *testing.T) {
	form := NewForm(models.NewAccidentDraft)

	assert.False(t, form.IsOpen())
	assert.Equal(t, models.PriorityMedium, form.Draft().Priority)
}

func TestFormCloseKeepsDraft(t *testing.T) {
	form := NewForm(func() models.MedicalIDDraft { return models.MedicalIDDraft{} })
	form.Open()
	form.Set(models.MedicalIDDraft{FullName: "Jane Doe"})
	form.Close()

	assert.False(t, form.IsOpen())
	assert.Equal(t, "Jane Doe", form.Draft().FullName)
}

func TestFormSubmitFailureLeavesState(t *testing.T) {
	form := NewForm(func() models.AmbulanceDraft { return models.AmbulanceDraft{} })
	form.Open()
	form.Set(models.AmbulanceDraft{CallSign: "Medic 7"})

	err := form.Submit(func(models.AmbulanceDraft) error { return errors.New("nope") })

	assert.Error(t, err)
	assert.True(t, form.IsOpen())
	assert.Equal(t, "Medic 7", form.Draft().CallSign)
}
