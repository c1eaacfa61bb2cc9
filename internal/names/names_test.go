package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                "",
		"   ":             "",
		"josé":            "JOSE",
		"  João Pereira ": "JOAO PEREIRA",
		"ÇÃÕÑ":            "CAON",
		"ﬁ":               "FI", // NFKD compatibility fold
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestStripParenthetical(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "JOAO PEREIRA", StripParenthetical("JOAO PEREIRA (CAMINHAO 12)"))
	assert.Equal(t, "A B", StripParenthetical("A (x) B (y)"))
	assert.Equal(t, "SEM ANOTACAO", StripParenthetical("  SEM ANOTACAO "))
}

func TestStripDigits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SILVA ", StripDigits("SILVA 2"))
	assert.Equal(t, "AB", StripDigits("A1B22"))
}

func TestMatchKey_ParentheticalThenDigitsThenAccents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "JOSE", MatchKey("José  (turno A)3"))
	assert.Equal(t, "JOAO PEREIRA", MatchKey("João Pereira (CAMINHÃO 12)"))
}

func TestCleanDocumentName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "JOÃO PEREIRA", CleanDocumentName("João Pereira (CAMINHAO 12).pdf"))
	assert.Equal(t, "ANTONIO", CleanDocumentName("antonio.PDF"))
	assert.Equal(t, "A.B", CleanDocumentName("a.b"))
}
