package annotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeflow/internal/annotation"
	"tradeflow/internal/domain"
)

func strPtr(s string) *string { return &s }

func ordPtr(o int) *annotation.ItemOrdinal {
	v := annotation.ItemOrdinal(o)
	return &v
}

func TestFoldPurchaseOrder_EmptyReturnsNil(t *testing.T) {
	assert.Nil(t, annotation.FoldPurchaseOrder(nil, nil))
	assert.Nil(t, annotation.FoldImport([]annotation.ImportPage{}, []string{"text"}))
	assert.Nil(t, annotation.Fold(&annotation.PageSet{DocumentType: domain.DocumentTypePurchaseOrder}, nil))
}

func TestFoldPurchaseOrder_HeaderAndItemsAcrossPages(t *testing.T) {
	pages := []annotation.POPage{
		{
			Document: annotation.PODocumentAnnotation{PONumber: strPtr("PO-1"), PODate: strPtr("2024-03-05")},
			Items: []annotation.POItemAnnotation{
				{ObjectID: ordPtr(1), PartNumber: strPtr("PN-A"), QuantityOrdered: strPtr("2")},
			},
		},
		{
			Document: annotation.PODocumentAnnotation{WorkScope: strPtr("Overhaul")},
			Items: []annotation.POItemAnnotation{
				{ObjectID: ordPtr(1), SerialNumber: strPtr("SN-9")},
				{ObjectID: ordPtr(2), PartNumber: strPtr("PN-B")},
			},
		},
	}

	res := annotation.FoldPurchaseOrder(pages, []string{"page one", "page two"})
	require.NotNil(t, res)

	doc := res.Document
	assert.Equal(t, domain.DocumentTypePurchaseOrder, doc.DocumentType)
	assert.Equal(t, domain.StringList{"page one", "page two"}, doc.PageTexts)
	assert.Equal(t, "PO-1", *doc.PONumber)
	assert.Equal(t, 0, *doc.TPONumberPage)
	assert.Equal(t, "Overhaul", *doc.WorkScope)
	assert.Equal(t, 1, *doc.TWorkScopePage)
	assert.Nil(t, doc.TSN)
	assert.Nil(t, doc.TTSNPage)

	require.Len(t, res.Items, 2)
	first := res.Items[0]
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, "PN-A", *first.PartNumber)
	assert.Equal(t, 0, *first.TPartNumberPage)
	assert.Equal(t, "SN-9", *first.SerialNumber)
	assert.Equal(t, 1, *first.TSerialNumberPage)

	second := res.Items[1]
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, "PN-B", *second.PartNumber)
	assert.Equal(t, 1, *second.TPartNumberPage)
	assert.Nil(t, second.QuantityOrdered)
}

func TestFoldPurchaseOrder_LastWriteWins(t *testing.T) {
	pages := []annotation.POPage{
		{Document: annotation.PODocumentAnnotation{PONumber: strPtr("draft")}},
		{Document: annotation.PODocumentAnnotation{}},
		{Document: annotation.PODocumentAnnotation{PONumber: strPtr("final")}},
	}

	res := annotation.FoldPurchaseOrder(pages, nil)
	require.NotNil(t, res)
	assert.Equal(t, "final", *res.Document.PONumber)
	assert.Equal(t, 2, *res.Document.TPONumberPage)
}

func TestFoldPurchaseOrder_AllNilPageIsNoOp(t *testing.T) {
	base := []annotation.POPage{
		{
			Document: annotation.PODocumentAnnotation{PONumber: strPtr("PO-7")},
			Items:    []annotation.POItemAnnotation{{ObjectID: ordPtr(1), PartNumber: strPtr("X")}},
		},
	}
	withBlank := append(append([]annotation.POPage{}, base...), annotation.POPage{
		Items: []annotation.POItemAnnotation{{}},
	})

	a := annotation.FoldPurchaseOrder(base, []string{"p0", "p1"})
	b := annotation.FoldPurchaseOrder(withBlank, []string{"p0", "p1"})
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Equal(t, a.Document, b.Document)
	assert.Equal(t, a.Items, b.Items)
}

func TestFoldPurchaseOrder_ItemsWithoutOrdinalIgnored(t *testing.T) {
	pages := []annotation.POPage{
		{Items: []annotation.POItemAnnotation{
			{PartNumber: strPtr("orphan")},
			{ObjectID: ordPtr(3), PartNumber: strPtr("kept")},
		}},
	}

	res := annotation.FoldPurchaseOrder(pages, nil)
	require.NotNil(t, res)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "kept", *res.Items[0].PartNumber)
}

func TestFoldPurchaseOrder_ItemsOrderedByOrdinal(t *testing.T) {
	pages := []annotation.POPage{
		{Items: []annotation.POItemAnnotation{
			{ObjectID: ordPtr(5), PartNumber: strPtr("five")},
			{ObjectID: ordPtr(2), PartNumber: strPtr("two")},
		}},
		{Items: []annotation.POItemAnnotation{
			{ObjectID: ordPtr(1), PartNumber: strPtr("one")},
		}},
	}

	res := annotation.FoldPurchaseOrder(pages, nil)
	require.NotNil(t, res)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "one", *res.Items[0].PartNumber)
	assert.Equal(t, "two", *res.Items[1].PartNumber)
	assert.Equal(t, "five", *res.Items[2].PartNumber)
	for i, item := range res.Items {
		assert.Equal(t, i, item.Position)
	}
}

func TestFold_PadsPageTexts(t *testing.T) {
	pages := []annotation.ImportPage{{}, {}, {}}

	res := annotation.FoldImport(pages, []string{"only"})
	require.NotNil(t, res)
	assert.Equal(t, domain.StringList{"only", "", ""}, res.Document.PageTexts)
}

func TestFold_DoesNotAliasAnnotationValues(t *testing.T) {
	number := "IM-1"
	pages := []annotation.ImportPage{
		{Document: annotation.ImportDocumentAnnotation{ImportNumber: &number}},
	}

	res := annotation.FoldImport(pages, nil)
	require.NotNil(t, res)
	number = "changed"
	assert.Equal(t, "IM-1", *res.Document.ImportNumber)
}

func TestFold_DispatchesOnDocumentType(t *testing.T) {
	set := &annotation.PageSet{
		DocumentType: domain.DocumentTypeImportDeclaration,
		ImportDeclaration: []annotation.ImportPage{
			{
				Document: annotation.ImportDocumentAnnotation{ImportNumber: strPtr("123/456")},
				Items: []annotation.ImportItemAnnotation{
					{ObjectID: ordPtr(1), PartNumber: strPtr("P"), ImportPrice: strPtr("10.5")},
				},
			},
		},
	}

	res := annotation.Fold(set, []string{"t"})
	require.NotNil(t, res)
	assert.Equal(t, domain.DocumentTypeImportDeclaration, res.Document.DocumentType)
	assert.Equal(t, "123/456", *res.Document.ImportNumber)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "10.5", *res.Items[0].ImportPrice)
	assert.Equal(t, 0, *res.Items[0].TImportPricePage)

	assert.Nil(t, annotation.Fold(&annotation.PageSet{DocumentType: "invoice"}, nil))
	assert.Nil(t, annotation.Fold(nil, nil))
}

func TestPageSet_Len(t *testing.T) {
	var nilSet *annotation.PageSet
	assert.Equal(t, 0, nilSet.Len())

	set := &annotation.PageSet{
		DocumentType:  domain.DocumentTypePurchaseOrder,
		PurchaseOrder: make([]annotation.POPage, 3),
	}
	assert.Equal(t, 3, set.Len())
}
