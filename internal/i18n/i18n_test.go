package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerLoadsEmbeddedLocales(t *testing.T) {
	manager, err := NewManager(LangAR)
	require.NoError(t, err)

	assert.Equal(t, LangAR, manager.DefaultLanguage())
	assert.Contains(t, manager.SupportedLanguages(), LangAR)
	assert.Contains(t, manager.SupportedLanguages(), LangEN)
}

func TestNormalizeLanguage(t *testing.T) {
	manager, err := NewManager(LangAR)
	require.NoError(t, err)

	assert.Equal(t, LangEN, manager.NormalizeLanguage("EN"))
	assert.Equal(t, LangEN, manager.NormalizeLanguage("en-US"))
	assert.Equal(t, LangAR, manager.NormalizeLanguage("ar_IQ"))
	// Unsupported languages fall back to the default.
	assert.Equal(t, LangAR, manager.NormalizeLanguage("fr"))
	assert.Equal(t, LangAR, manager.NormalizeLanguage(""))
}

func TestTranslateFallbackChain(t *testing.T) {
	manager, err := NewManager(LangAR)
	require.NoError(t, err)

	arabic := manager.Translate(LangAR, "report.unknownClient")
	english := manager.Translate(LangEN, "report.unknownClient")
	assert.NotEmpty(t, arabic)
	assert.NotEmpty(t, english)
	assert.NotEqual(t, "report.unknownClient", arabic)
	assert.NotEqual(t, "report.unknownClient", english)

	// An unknown key comes back verbatim.
	assert.Equal(t, "no.such.key", manager.Translate(LangEN, "no.such.key"))
}

func TestTranslatef(t *testing.T) {
	manager, err := NewManager(LangEN)
	require.NoError(t, err)

	message := manager.Translatef(LangEN, "activity.invoiceCreated", "INV-000042")
	assert.Contains(t, message, "INV-000042")
}
