// Package accuracy compares a stored document against a freshly re-inferred copy.
package accuracy

import (
	"fmt"

	"tradeflow/internal/domain"
)

// Subject is one side of a comparison. A nil Document has every field nil.
type Subject struct {
	Document *domain.Document
	Items    []domain.DocumentItem
}

// Report is the outcome of Score. Accuracy is a percentage in [0, 100].
type Report struct {
	Accuracy            float64  `json:"accuracy"`
	UnmatchedFieldPaths []string `json:"unmatched_field_paths"`
	TotalFieldCount     int      `json:"total_field_count"`
	MatchedFieldCount   int      `json:"matched_field_count"`
}

type documentField struct {
	name  string
	value func(*domain.Document) *string
}

type itemField struct {
	name  string
	value func(*domain.DocumentItem) *string
}

var documentFields = []documentField{
	{"import_number", func(d *domain.Document) *string { return d.ImportNumber }},
	{"po_number", func(d *domain.Document) *string { return d.PONumber }},
	{"end_user_customer_name", func(d *domain.Document) *string { return d.EndUserCustomerName }},
	{"end_user_customer_number", func(d *domain.Document) *string { return d.EndUserCustomerNumber }},
	{"work_scope", func(d *domain.Document) *string { return d.WorkScope }},
	{"arc_requirement", func(d *domain.Document) *string { return d.ArcRequirement }},
	{"tsn", func(d *domain.Document) *string { return d.TSN }},
	{"csn", func(d *domain.Document) *string { return d.CSN }},
}

var itemFields = []itemField{
	{"part_number", func(i *domain.DocumentItem) *string { return i.PartNumber }},
	{"quantity_ordered", func(i *domain.DocumentItem) *string { return i.QuantityOrdered }},
	{"import_price", func(i *domain.DocumentItem) *string { return i.ImportPrice }},
	{"engine_model", func(i *domain.DocumentItem) *string { return i.EngineModel }},
	{"engine_number", func(i *domain.DocumentItem) *string { return i.EngineNumber }},
	{"serial_number", func(i *domain.DocumentItem) *string { return i.SerialNumber }},
}

// Score counts every non-nil field of original and checks it for exact equality in
// verified. Items are aligned by position; non-nil fields of items beyond the shorter
// list, on either side, are counted and never matched. With nothing to check the
// accuracy is 100.
func Score(original, verified Subject) Report {
	var t tally

	origDoc, verDoc := original.Document, verified.Document
	if origDoc == nil {
		origDoc = &domain.Document{}
	}
	if verDoc == nil {
		verDoc = &domain.Document{}
	}
	for _, f := range documentFields {
		t.compare("document."+f.name, f.value(origDoc), f.value(verDoc))
	}

	n := len(original.Items)
	if len(verified.Items) > n {
		n = len(verified.Items)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(original.Items):
			t.unmatchedItem(i, &verified.Items[i])
		case i >= len(verified.Items):
			t.unmatchedItem(i, &original.Items[i])
		default:
			for _, f := range itemFields {
				t.compare(itemPath(i, f.name), f.value(&original.Items[i]), f.value(&verified.Items[i]))
			}
		}
	}

	return t.report()
}

type tally struct {
	total     int
	matched   int
	unmatched []string
}

func (t *tally) compare(path string, want, got *string) {
	if want == nil {
		return
	}
	t.total++
	if got != nil && *got == *want {
		t.matched++
		return
	}
	t.unmatched = append(t.unmatched, path)
}

func (t *tally) unmatchedItem(i int, item *domain.DocumentItem) {
	for _, f := range itemFields {
		if f.value(item) == nil {
			continue
		}
		t.total++
		t.unmatched = append(t.unmatched, itemPath(i, f.name))
	}
}

func (t *tally) report() Report {
	r := Report{
		Accuracy:            100,
		UnmatchedFieldPaths: t.unmatched,
		TotalFieldCount:     t.total,
		MatchedFieldCount:   t.matched,
	}
	if r.UnmatchedFieldPaths == nil {
		r.UnmatchedFieldPaths = []string{}
	}
	if t.total > 0 {
		r.Accuracy = float64(t.matched) / float64(t.total) * 100
	}
	return r
}

func itemPath(i int, field string) string {
	return fmt.Sprintf("document_items[%d].%s", i, field)
}
