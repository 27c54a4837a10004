package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurobiomark/internal/domain"
)

func TestTemplateRenderer_DemoRequest(t *testing.T) {
	r := NewTemplateRenderer()
	subject, html, text, err := r.Render("demo_request", &domain.DemoRequestEmailData{
		To:      "ops@example.com",
		Name:    "Ann <Lee>",
		Email:   "ann@x.org",
		Purpose: "line one\nline two",
		IP:      "1.2.3.4",
	})
	require.NoError(t, err)
	assert.Equal(t, "New demo request from Ann <Lee>", subject)
	assert.Contains(t, html, "Ann &lt;Lee&gt;")
	assert.Contains(t, html, "line one<br>line two")
	assert.Contains(t, text, "IP:      1.2.3.4")
	assert.Contains(t, text, "line one\nline two")
}

func TestTemplateRenderer_ContactMessage(t *testing.T) {
	r := NewTemplateRenderer()
	subject, html, text, err := r.Render("contact_message", &domain.ContactEmailData{UserEmail: "bo@x.org", Message: "<b>hi</b>"})
	require.NoError(t, err)
	assert.Equal(t, "Contact form message from bo@x.org", subject)
	assert.Contains(t, html, "&lt;b&gt;hi&lt;/b&gt;")
	assert.Contains(t, text, "<b>hi</b>")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("welcome", nil)
	require.Error(t, err)
}
