package accuracy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradeflow/internal/accuracy"
	"tradeflow/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestScore_VacuousIsPerfect(t *testing.T) {
	r := accuracy.Score(accuracy.Subject{}, accuracy.Subject{})

	assert.Equal(t, 100.0, r.Accuracy)
	assert.Empty(t, r.UnmatchedFieldPaths)
	assert.NotNil(t, r.UnmatchedFieldPaths)
	assert.Equal(t, 0, r.TotalFieldCount)
	assert.Equal(t, 0, r.MatchedFieldCount)
}

func TestScore_OnlyOriginalNonNilFieldsCount(t *testing.T) {
	original := accuracy.Subject{Document: &domain.Document{
		PONumber:  strPtr("PO-1"),
		WorkScope: strPtr("Overhaul"),
	}}
	verified := accuracy.Subject{Document: &domain.Document{
		PONumber:  strPtr("PO-1"),
		WorkScope: strPtr("overhaul"),
		TSN:       strPtr("123"),
	}}

	r := accuracy.Score(original, verified)
	assert.Equal(t, 2, r.TotalFieldCount)
	assert.Equal(t, 1, r.MatchedFieldCount)
	assert.Equal(t, []string{"document.work_scope"}, r.UnmatchedFieldPaths)
	assert.InDelta(t, 50.0, r.Accuracy, 1e-9)
}

func TestScore_MissingVerifiedValueIsUnmatched(t *testing.T) {
	original := accuracy.Subject{Document: &domain.Document{CSN: strPtr("88")}}

	r := accuracy.Score(original, accuracy.Subject{})
	assert.Equal(t, []string{"document.csn"}, r.UnmatchedFieldPaths)
	assert.Equal(t, 0.0, r.Accuracy)
}

func TestScore_ExtraVerifiedItemsAreUnmatched(t *testing.T) {
	original := accuracy.Subject{Items: []domain.DocumentItem{{PartNumber: strPtr("X")}}}
	verified := accuracy.Subject{Items: []domain.DocumentItem{
		{PartNumber: strPtr("X")},
		{PartNumber: strPtr("Y"), QuantityOrdered: strPtr("2")},
	}}

	r := accuracy.Score(original, verified)
	assert.Equal(t, 3, r.TotalFieldCount)
	assert.Equal(t, 1, r.MatchedFieldCount)
	assert.Equal(t, []string{
		"document_items[1].part_number",
		"document_items[1].quantity_ordered",
	}, r.UnmatchedFieldPaths)
}

func TestScore_MissingVerifiedItemsAreUnmatched(t *testing.T) {
	original := accuracy.Subject{Items: []domain.DocumentItem{
		{PartNumber: strPtr("X")},
		{SerialNumber: strPtr("SN-1")},
	}}
	verified := accuracy.Subject{Items: []domain.DocumentItem{{PartNumber: strPtr("X")}}}

	r := accuracy.Score(original, verified)
	assert.Equal(t, 2, r.TotalFieldCount)
	assert.Equal(t, 1, r.MatchedFieldCount)
	assert.Equal(t, []string{"document_items[1].serial_number"}, r.UnmatchedFieldPaths)
}

func TestScore_PositionalAlignment(t *testing.T) {
	original := accuracy.Subject{Items: []domain.DocumentItem{
		{PartNumber: strPtr("A")},
		{PartNumber: strPtr("B")},
	}}
	verified := accuracy.Subject{Items: []domain.DocumentItem{
		{PartNumber: strPtr("B")},
		{PartNumber: strPtr("A")},
	}}

	r := accuracy.Score(original, verified)
	assert.Equal(t, 2, r.TotalFieldCount)
	assert.Equal(t, 0, r.MatchedFieldCount)
	assert.Equal(t, []string{
		"document_items[0].part_number",
		"document_items[1].part_number",
	}, r.UnmatchedFieldPaths)
}

func TestScore_ExactComparison(t *testing.T) {
	original := accuracy.Subject{
		Document: &domain.Document{ImportNumber: strPtr("IMP 1")},
		Items:    []domain.DocumentItem{{ImportPrice: strPtr("10.00")}},
	}
	verified := accuracy.Subject{
		Document: &domain.Document{ImportNumber: strPtr("IMP 1 ")},
		Items:    []domain.DocumentItem{{ImportPrice: strPtr("10.00")}},
	}

	r := accuracy.Score(original, verified)
	assert.Equal(t, []string{"document.import_number"}, r.UnmatchedFieldPaths)
	assert.InDelta(t, 50.0, r.Accuracy, 1e-9)
}
