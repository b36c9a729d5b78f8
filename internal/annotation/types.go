// Package annotation converts page-by-page inference annotations into canonical
// documents with per-field page provenance, and regenerates page annotations from
// persisted documents for training-data export.
package annotation

import "tradeflow/internal/domain"

// ItemOrdinal correlates one logical line item across the pages of a single
// annotation sequence. It is the 1-based position of the item within its document
// at the time the sequence was produced, and is never persisted.
type ItemOrdinal int

// Page is the annotation the inference service emits for one physical page.
// Every field is nil unless its value was first seen on this page.
type Page[D, I any] struct {
	Document D   `json:"document"`
	Items    []I `json:"items"`
}

// PODocumentAnnotation holds the purchase order header fields seen on a page.
type PODocumentAnnotation struct {
	PONumber            *string `json:"PO Number"`
	PODate              *string `json:"PO Date"`
	EndUserCustomerName *string `json:"End User Customer Name"`
	WorkScope           *string `json:"Work Scope"`
	ArcRequirement      *string `json:"ARC Requirement"`
	TSN                 *string `json:"TSN"`
	CSN                 *string `json:"CSN"`
}

// POItemAnnotation holds the purchase order line item fields seen on a page.
type POItemAnnotation struct {
	ObjectID        *ItemOrdinal `json:"object_id"`
	PartNumber      *string      `json:"Part Number"`
	QuantityOrdered *string      `json:"Quantity Ordered"`
	EngineModel     *string      `json:"Engine Model"`
	EngineNumber    *string      `json:"Engine Number"`
	SerialNumber    *string      `json:"Serial Number"`
}

// ImportDocumentAnnotation holds the import declaration header fields seen on a page.
type ImportDocumentAnnotation struct {
	ImportNumber *string `json:"Import Document Number"`
	ImportDate   *string `json:"Import Date"`
}

// ImportItemAnnotation holds the import declaration line item fields seen on a page.
type ImportItemAnnotation struct {
	ObjectID        *ItemOrdinal `json:"object_id"`
	PartNumber      *string      `json:"Part Number"`
	QuantityOrdered *string      `json:"Quantity Ordered"`
	ImportPrice     *string      `json:"Import Price"`
}

type (
	POPage     = Page[PODocumentAnnotation, POItemAnnotation]
	ImportPage = Page[ImportDocumentAnnotation, ImportItemAnnotation]
)

// PageSet is a tagged annotation sequence: exactly one of PurchaseOrder or
// ImportDeclaration is populated, according to DocumentType.
type PageSet struct {
	DocumentType      domain.DocumentType `json:"document_type"`
	PurchaseOrder     []POPage            `json:"purchase_order,omitempty"`
	ImportDeclaration []ImportPage        `json:"import_declaration,omitempty"`
}

// Len returns the number of pages of the populated variant.
func (s *PageSet) Len() int {
	if s == nil {
		return 0
	}
	switch s.DocumentType {
	case domain.DocumentTypePurchaseOrder:
		return len(s.PurchaseOrder)
	case domain.DocumentTypeImportDeclaration:
		return len(s.ImportDeclaration)
	default:
		return 0
	}
}

// Result is the output of folding: a partially populated document and its items.
type Result struct {
	Document domain.Document
	Items    []domain.DocumentItem
}
