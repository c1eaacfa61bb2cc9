package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const manifestPage = `DAMDFE - Documento Auxiliar de Manifesto Eletrônico de Documentos Fiscais
Modelo Série Número FL Data e Hora de Emissão
58 1 004512 1/1 14/10/2025 21:47:03
Placa RNTRC CPF Nome
FTR4B21 012345678 123.456.789-00 JOAO PEREIRA
EKX9J87 012345678
Informações complementares
DT: "7700123456" CTE: 51234 NF: 998877/998878/998879
Número: 999999`

func TestExtractFields_FullManifest(t *testing.T) {
	t.Parallel()

	got := ExtractFields([]string{manifestPage})
	assert.Equal(t, Fields{
		TripTicket:     "7700123456",
		FreightInvoice: "51234",
		ManifestNumber: "004512",
		ManifestTime:   "21:47:03",
		TrailerPlate:   "FTR4B21",
		TractorPlate:   "EKX9J87",
		InvoiceNumbers: "998877/998878/998879",
	}, got)
	assert.True(t, got.HasCore())
}

func TestExtractors_FirstPageWithMarkerWins(t *testing.T) {
	t.Parallel()

	pages := []string{
		"cabeçalho sem marcadores",
		"dt: '42' cte:'7' nf: 12",
		"DT: 99 CTE: 98 NF: 97/96",
	}
	assert.Equal(t, "42", TripTicket(pages))
	assert.Equal(t, "7", FreightInvoice(pages))
	assert.Equal(t, "12", InvoiceNumbers(pages))
}

func TestManifestNumber_HeaderBeatsLabelOnSamePage(t *testing.T) {
	t.Parallel()

	page := "Modelo Série Número\n58 1 123456\nNúmero: 654321"
	assert.Equal(t, "123456", ManifestNumber([]string{page}))
}

func TestManifestNumber_LabelFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "765432", ManifestNumber([]string{"sem cabeçalho", "NUMERO: 765432"}))
	assert.Equal(t, "", ManifestNumber([]string{"Número: 12345"}))
}

func TestManifestNumber_UnaccentedHeaderSpansLines(t *testing.T) {
	t.Parallel()

	page := "MODELO   SERIE   NUMERO   FL\n\n58 1 000777"
	assert.Equal(t, "000777", ManifestNumber([]string{page}))
}

func TestManifestTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "08:05:59", ManifestTime([]string{"Emitido 01/02/2025   08:05:59 por X"}))
	assert.Equal(t, "", ManifestTime([]string{"01/02/2025 08:05"}))
}

func TestPlates_MissingLines(t *testing.T) {
	t.Parallel()

	trailer, tractor := Plates([]string{"nada aqui", "Placa RNTRC\nABC1234"})
	assert.Equal(t, "ABC1234", trailer)
	assert.Equal(t, "", tractor)

	trailer, tractor = Plates([]string{"Placa RNTRC"})
	assert.Equal(t, "", trailer)
	assert.Equal(t, "", tractor)

	trailer, tractor = Plates([]string{"Placa sem registro\nXYZ"})
	assert.Equal(t, "", trailer)
	assert.Equal(t, "", tractor)
}

func TestExtractFields_EmptyInput(t *testing.T) {
	t.Parallel()

	got := ExtractFields(nil)
	assert.Equal(t, Fields{}, got)
	assert.False(t, got.HasCore())
	assert.Empty(t, got.Found())
}

func TestFields_Found(t *testing.T) {
	t.Parallel()

	f := Fields{ManifestNumber: "1", TractorPlate: "X"}
	assert.Equal(t, []string{"manifest_number", "tractor_plate"}, f.Found())
}
