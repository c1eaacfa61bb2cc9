package record

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/manifest-reconciler/constants"
	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
	"github.com/joseph-ayodele/manifest-reconciler/internal/extract"
	"github.com/joseph-ayodele/manifest-reconciler/internal/roster"
)

// Rules are the per-folder business rules.
type Rules struct {
	Status       string   // written to the status column of every record
	KnownFolders []string // folders that set origin=folder, destination=Destination
	Destination  string
	DelayFolder  string // documents from here get DelayReason and no duty window
	DelayReason  string
}

// Assembler merges extracted fields and a matched driver into a Record.
type Assembler struct {
	schema    *Schema
	rules     Rules
	known     map[string]struct{}
	delay     string
	validator *jsonschema.Schema
	logger    *slog.Logger
}

func NewAssembler(schema *Schema, rules Rules, logger *slog.Logger) (*Assembler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if schema == nil {
		return nil, common.NewAppError(common.CodeSchema, "schema is required", common.ErrInvalidInput)
	}
	v, err := compileSchema(BuildRecordJSONSchema(schema.Columns()))
	if err != nil {
		return nil, common.SetupError(common.CodeSchema, "compile record schema", err)
	}
	known := make(map[string]struct{}, len(rules.KnownFolders))
	for _, f := range rules.KnownFolders {
		known[constants.CanonicalFolder(f)] = struct{}{}
	}
	return &Assembler{
		schema:    schema,
		rules:     rules,
		known:     known,
		delay:     constants.CanonicalFolder(rules.DelayFolder),
		validator: v,
		logger:    logger,
	}, nil
}

// Schema returns the target schema records are built against.
func (a *Assembler) Schema() *Schema { return a.schema }

// Assemble builds the output row for one matched document. Unknown folders
// leave origin and destination empty. The delay override is applied last.
func (a *Assembler) Assemble(fields extract.Fields, driver *roster.Entry, folder, reportDate, submitter string) (Record, error) {
	if driver == nil {
		return Record{}, fmt.Errorf("assemble: %w: driver is required", common.ErrInvalidInput)
	}
	folder = constants.CanonicalFolder(folder)
	r := newRecord(a.schema)

	var origin, destination string
	if _, ok := a.known[folder]; ok && folder != "" {
		origin, destination = folder, a.rules.Destination
	}

	overlay := []struct{ col, val string }{
		{constants.ColDate, reportDate},
		{constants.ColTripTicket, fields.TripTicket},
		{constants.ColStatus, a.rules.Status},
		{constants.ColDriver, driver.ShortName},
		{constants.ColFullName, driver.FullName},
		{constants.ColEmployeeID, driver.EmployeeID},
		{constants.ColNationalID, driver.NationalID},
		{constants.ColDutyWindow, driver.DutyWindow},
		{constants.ColFreightInvoice, fields.FreightInvoice},
		{constants.ColManifestNumber, fields.ManifestNumber},
		{constants.ColManifestTime, fields.ManifestTime},
		{constants.ColIssuedBy, submitter},
		{constants.ColOrigin, origin},
		{constants.ColDestination, destination},
		{constants.ColFleet, driver.Fleet},
		{constants.ColTractorPlate, fields.TractorPlate},
		{constants.ColTrailerPlate, fields.TrailerPlate},
		{constants.ColInvoiceNumbers, fields.InvoiceNumbers},
		{constants.ColResponsible, submitter},
	}
	for _, o := range overlay {
		r.set(o.col, o.val)
	}

	if a.delay != "" && folder == a.delay {
		r.set(constants.ColDelayReason, a.rules.DelayReason)
		r.set(constants.ColDutyWindow, "")
	}

	if err := validateRow(a.validator, r.Map()); err != nil {
		a.logger.Error("record.invalid", "driver", driver.ShortName, "error", err)
		return Record{}, common.NewAppError(common.CodeSchema, "record validation", fmt.Errorf("%w: %w", common.ErrValidation, err))
	}
	return r, nil
}

// ReportDate is today's date as DD/MM/YYYY, or tomorrow's when now is at or
// past cutoffHour. A cutoff of 24 disables the roll-over.
func ReportDate(now time.Time, cutoffHour int) string {
	if cutoffHour < 24 && now.Hour() >= cutoffHour {
		now = now.AddDate(0, 0, 1)
	}
	return now.Format("02/01/2006")
}

// FileLabel turns a report date into the form used in output file names.
func FileLabel(reportDate string) string {
	return strings.ReplaceAll(reportDate, "/", "-")
}
