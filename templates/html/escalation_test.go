package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEscalationEmailEscapes(t *testing.T) {
	out := RenderEscalationEmail(Escalation{
		Subject:  "Escalation: critical emergency unanswered",
		Priority: "critical",
		Type:     "<script>alert(1)</script>",
		Location: "Main & 5th",
		Waited:   "12m0s",
		Message:  "line one\nline two",
	})

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "Main &amp; 5th")
	assert.Contains(t, out, "line one<br>line two")
	assert.Contains(t, out, "#dc2626")
}

func TestRenderEscalationEmailDefaultColour(t *testing.T) {
	assert.Contains(t, RenderEscalationEmail(Escalation{Priority: "low"}), "#2563eb")
}
