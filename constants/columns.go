package constants

// Target schema columns written by the record assembler. The schema itself is
// read from BASE.csv at run time; columns missing from it are simply not set.
const (
	ColDate           = "DATA"
	ColTripTicket     = "DT"
	ColStatus         = "STATUS (P2)"
	ColDriver         = "MOTORISTA"
	ColFullName       = "NOME COMPLETO"
	ColEmployeeID     = "GPID"
	ColNationalID     = "CPF"
	ColDutyWindow     = "HORA ESCALA (P2)"
	ColDelayReason    = "MOTIVO ATRASO (P2)"
	ColFreightInvoice = "CTE (P2)"
	ColManifestNumber = "N MDFE (P2)"
	ColManifestTime   = "HORA MDFE (P2)"
	ColIssuedBy       = "EMITO POR (P2)"
	ColOrigin         = "ORIGEM (ESCALA)"
	ColDestination    = "DESTINO (ESCALA)"
	ColFleet          = "FROTA (P2)"
	ColTractorPlate   = "CAVALO (P2)"
	ColTrailerPlate   = "CARRETA (P2)"
	ColInvoiceNumbers = "NF (P2)"
	ColResponsible    = "RESPONSAVEL P2"
)

// Roster header labels. Lookups go through the normalized header map, so
// spelling differences in accents and case are tolerated.
const (
	RosterColDriver     = "MOTORISTA"
	RosterColName       = "NOME"
	RosterColFullName   = "NOME COMPLETO"
	RosterColDutyWindow = "ESCALA"
	RosterColFleet      = "FROTA"
	RosterColEmployeeID = "GPID"
	RosterColNationalID = "CPF"
)
