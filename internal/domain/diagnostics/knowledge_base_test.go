package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "nao liga de manha", Normalize("  NÃO Liga de Manhã "))
	assert.Equal(t, "", Normalize("   "))
}

func TestLookup(t *testing.T) {
	t.Run("brake symptoms", func(t *testing.T) {
		s := Lookup("Chiado quando vou FREAR")
		require.NotEmpty(t, s.Causes)
		assert.Contains(t, s.Services, "Troca de pastilhas de freio")
		assert.Equal(t, 2.0, s.EstimatedHours)
	})

	t.Run("accents are ignored", func(t *testing.T) {
		s := Lookup("carro está com fumaça")
		assert.Contains(t, s.Services, "Teste de compressão")
	})

	t.Run("first match wins on overlap", func(t *testing.T) {
		// mentions both brakes and oil; brakes come first in the table
		s := Lookup("vazamento de óleo e barulho no freio")
		assert.Contains(t, s.Parts, "Pastilha de freio")
	})

	t.Run("marcha lenta is an injection symptom", func(t *testing.T) {
		s := Lookup("marcha lenta irregular")
		assert.Contains(t, s.Services, "Limpeza de bicos injetores")
	})

	t.Run("fallback", func(t *testing.T) {
		for _, in := range []string{"xyz-nonsense-input", "", "   "} {
			s := Lookup(in)
			require.NotEmpty(t, s.Causes, "input %q", in)
			assert.Equal(t, []string{"Diagnóstico mecânico", "Inspeção geral"}, s.Services)
			assert.Empty(t, s.Parts)
			assert.Equal(t, 1.0, s.EstimatedHours)
		}
	})

	t.Run("results are independent copies", func(t *testing.T) {
		s := Lookup("xyz")
		s.Services[0] = "changed"
		assert.Equal(t, "Diagnóstico mecânico", Lookup("xyz").Services[0])
	})
}
