// Package export serializes consistency findings for offline review: JSONL
// for machines, an aligned table for terminals, and an S3 destination for
// scheduled snapshots.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/heartmarshall/sapl-backend/internal/service/consistency"
)

// Record is one finding, flattened across checks.
type Record struct {
	Check      consistency.Check `json:"check"`
	ProtocolID int64             `json:"protocol_id,omitempty"`
	MatterID   int64             `json:"matter_id,omitempty"`
	Year       int               `json:"year"`
	Number     int               `json:"number"`
	Count      int               `json:"count,omitempty"`
}

// Records flattens a report in check display order.
func Records(r consistency.Report) []Record {
	out := make([]Record, 0, len(r.Duplicates)+len(r.OverLinked)+len(r.Orphans))
	for _, d := range r.Duplicates {
		out = append(out, Record{
			Check:      consistency.CheckDuplicateProtocols,
			ProtocolID: d.Protocol.ID,
			Year:       d.Protocol.Year,
			Number:     d.Protocol.Number,
			Count:      d.Count,
		})
	}
	for _, o := range r.OverLinked {
		out = append(out, Record{
			Check:      consistency.CheckOverLinkedProtocols,
			ProtocolID: o.Protocol.ID,
			Year:       o.Protocol.Year,
			Number:     o.Protocol.Number,
			Count:      o.MatterCount,
		})
	}
	for _, o := range r.Orphans {
		out = append(out, Record{
			Check:    consistency.CheckOrphanMatters,
			MatterID: o.Matter.ID,
			Year:     o.Year,
			Number:   o.ProtocolNumber,
		})
	}
	return out
}

// WriteJSONL writes one JSON object per line.
func WriteJSONL(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode %s record: %w", rec.Check, err)
		}
	}
	return nil
}

// WriteTable writes records as tab-aligned columns with a header row.
func WriteTable(w io.Writer, records []Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHECK\tPROTOCOL\tMATTER\tYEAR\tNUMBER\tCOUNT")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			rec.Check, idOrDash(rec.ProtocolID), idOrDash(rec.MatterID), rec.Year, rec.Number, countOrDash(rec.Count))
	}
	return tw.Flush()
}

func idOrDash(id int64) string {
	if id == 0 {
		return "-"
	}
	return fmt.Sprint(id)
}

func countOrDash(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprint(n)
}
