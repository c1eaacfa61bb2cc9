package extract

import (
	"regexp"
	"strings"
)

var (
	reTripTicket     = regexp.MustCompile(`(?i)DT:\s*["']?(\d+)`)
	reFreightInvoice = regexp.MustCompile(`(?i)CTE:\s*["']?(\d+)`)
	reManifestHeader = regexp.MustCompile(`(?is)Modelo\s+S[eé]rie\s+N[uú]mero.*?\n.*?(\d{6})`)
	reManifestLabel  = regexp.MustCompile(`(?i)N[uú]mero[:\s]+(\d{6})`)
	reManifestTime   = regexp.MustCompile(`\d{2}/\d{2}/\d{4}\s+(\d{2}:\d{2}:\d{2})`)
	reInvoiceNumbers = regexp.MustCompile(`(?i)NF:\s*(\d+(?:/\d+)*)`)
)

// Plate table header words; the two lines below the header hold the trailer
// and tractor plates.
const (
	plateHeaderWord    = "Placa"
	registryHeaderWord = "RNTRC"
)

// ExtractFields runs every field extractor over the pages. Each extractor
// scans pages in order and stops at its first match.
func ExtractFields(pages []string) Fields {
	trailer, tractor := Plates(pages)
	return Fields{
		TripTicket:     TripTicket(pages),
		FreightInvoice: FreightInvoice(pages),
		ManifestNumber: ManifestNumber(pages),
		ManifestTime:   ManifestTime(pages),
		TrailerPlate:   trailer,
		TractorPlate:   tractor,
		InvoiceNumbers: InvoiceNumbers(pages),
	}
}

// TripTicket returns the digits after the first "DT:" marker.
func TripTicket(pages []string) string {
	return firstSubmatch(pages, reTripTicket)
}

// FreightInvoice returns the digits after the first "CTE:" marker.
func FreightInvoice(pages []string) string {
	return firstSubmatch(pages, reFreightInvoice)
}

// ManifestNumber prefers the six digits following the "Modelo Série Número"
// header (possibly on the next line) and falls back to "Número:" on the same
// page before moving to the next page.
func ManifestNumber(pages []string) string {
	for _, p := range pages {
		if m := reManifestHeader.FindStringSubmatch(p); m != nil {
			return m[1]
		}
		if m := reManifestLabel.FindStringSubmatch(p); m != nil {
			return m[1]
		}
	}
	return ""
}

// ManifestTime returns the time part of the first "DD/MM/YYYY HH:MM:SS".
func ManifestTime(pages []string) string {
	return firstSubmatch(pages, reManifestTime)
}

// InvoiceNumbers returns the slash-joined digit runs after "NF:" verbatim.
func InvoiceNumbers(pages []string) string {
	return firstSubmatch(pages, reInvoiceNumbers)
}

// Plates finds the first line holding both plate table headers and returns
// the first token of the next line (trailer) and of the line after (tractor).
// Missing lines leave the slot empty.
func Plates(pages []string) (trailer, tractor string) {
	for _, p := range pages {
		lines := strings.Split(p, "\n")
		for i, line := range lines {
			if !strings.Contains(line, plateHeaderWord) || !strings.Contains(line, registryHeaderWord) {
				continue
			}
			if i+1 < len(lines) {
				trailer = firstToken(lines[i+1])
			}
			if i+2 < len(lines) {
				tractor = firstToken(lines[i+2])
			}
			return trailer, tractor
		}
	}
	return "", ""
}

func firstSubmatch(pages []string, re *regexp.Regexp) string {
	for _, p := range pages {
		if m := re.FindStringSubmatch(p); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func firstToken(line string) string {
	if f := strings.Fields(line); len(f) > 0 {
		return f[0]
	}
	return ""
}
