package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18n"
)

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	t.Run("panics without an engine", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() {
			i18n.NewTranslator(nil, "en", nil)
		})
	})

	t.Run("defaults to en-US formatting", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository()
		require.NoError(t, err)
		engine, err := i18n.New(repo)
		require.NoError(t, err)

		tr := i18n.NewTranslator(engine, "en", nil)
		require.Equal(t, "$19.99", tr.FormatCurrency(19.99))
	})
}

func TestTranslatorTranslation(t *testing.T) {
	t.Parallel()

	repo, err := i18n.NewMemoryRepository(
		i18n.WithTranslations("en", map[string]any{
			"greeting": "hello {name}",
			"apples":   "one apple:::many apples",
		}),
		i18n.WithTranslations("de", map[string]any{
			"greeting": "hallo {name}",
			"apples":   "ein Apfel:::viele Äpfel",
		}),
	)
	require.NoError(t, err)
	engine, err := i18n.New(repo)
	require.NoError(t, err)

	tr := i18n.NewTranslator(engine, "de", i18n.FormatDeDE())

	t.Run("translates in the bound locale", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "hallo Ada", tr.T("greeting", i18n.M{"name": "Ada"}))
		require.Equal(t, "ein Apfel", tr.Tn("apples", 1))
		require.Equal(t, "viele Äpfel", tr.Tn("apples", 3))
	})

	t.Run("value requests cannot escape the bound locale", func(t *testing.T) {
		t.Parallel()
		got := tr.Value(i18n.Request{Locale: "en", Key: "greeting", Replacements: i18n.M{"name": "Ada"}})
		require.Equal(t, "hallo Ada", got.String())
	})

	t.Run("exposes locale and format", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "de", tr.Locale())
		require.NotNil(t, tr.Format())
		require.Equal(t, "19,99 €", tr.FormatCurrency(19.99))
		require.Equal(t, "1.234,56", tr.FormatNumber(1234.56))
	})
}
