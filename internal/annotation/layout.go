package annotation

import "tradeflow/internal/domain"

// docField binds one header annotation field to its document value and provenance page.
type docField[D any] struct {
	annotation func(*D) **string
	value      func(*domain.Document) **string
	page       func(*domain.Document) **int
}

// itemField binds one line item annotation field to its item value and provenance page.
type itemField[I any] struct {
	annotation func(*I) **string
	value      func(*domain.DocumentItem) **string
	page       func(*domain.DocumentItem) **int
}

// layout describes one document type variant. Folding and regeneration are the
// same for both variants; only the field lists differ.
type layout[D, I any] struct {
	docType    domain.DocumentType
	docFields  []docField[D]
	itemFields []itemField[I]
	ordinal    func(*I) **ItemOrdinal
}

var purchaseOrderLayout = &layout[PODocumentAnnotation, POItemAnnotation]{
	docType: domain.DocumentTypePurchaseOrder,
	docFields: []docField[PODocumentAnnotation]{
		{
			annotation: func(a *PODocumentAnnotation) **string { return &a.PONumber },
			value:      func(d *domain.Document) **string { return &d.PONumber },
			page:       func(d *domain.Document) **int { return &d.TPONumberPage },
		},
		{
			annotation: func(a *PODocumentAnnotation) **string { return &a.PODate },
			value:      func(d *domain.Document) **string { return &d.PODate },
			page:       func(d *domain.Document) **int { return &d.TPODatePage },
		},
		{
			annotation: func(a *PODocumentAnnotation) **string { return &a.EndUserCustomerName },
			value:      func(d *domain.Document) **string { return &d.EndUserCustomerName },
			page:       func(d *domain.Document) **int { return &d.TEndUserCustomerNamePage },
		},
		{
			annotation: func(a *PODocumentAnnotation) **string { return &a.WorkScope },
			value:      func(d *domain.Document) **string { return &d.WorkScope },
			page:       func(d *domain.Document) **int { return &d.TWorkScopePage },
		},
		{
			annotation: func(a *PODocumentAnnotation) **string { return &a.ArcRequirement },
			value:      func(d *domain.Document) **string { return &d.ArcRequirement },
			page:       func(d *domain.Document) **int { return &d.TArcRequirementPage },
		},
		{
			annotation: func(a *PODocumentAnnotation) **string { return &a.TSN },
			value:      func(d *domain.Document) **string { return &d.TSN },
			page:       func(d *domain.Document) **int { return &d.TTSNPage },
		},
		{
			annotation: func(a *PODocumentAnnotation) **string { return &a.CSN },
			value:      func(d *domain.Document) **string { return &d.CSN },
			page:       func(d *domain.Document) **int { return &d.TCSNPage },
		},
	},
	itemFields: []itemField[POItemAnnotation]{
		{
			annotation: func(a *POItemAnnotation) **string { return &a.PartNumber },
			value:      func(i *domain.DocumentItem) **string { return &i.PartNumber },
			page:       func(i *domain.DocumentItem) **int { return &i.TPartNumberPage },
		},
		{
			annotation: func(a *POItemAnnotation) **string { return &a.QuantityOrdered },
			value:      func(i *domain.DocumentItem) **string { return &i.QuantityOrdered },
			page:       func(i *domain.DocumentItem) **int { return &i.TQuantityOrderedPage },
		},
		{
			annotation: func(a *POItemAnnotation) **string { return &a.EngineModel },
			value:      func(i *domain.DocumentItem) **string { return &i.EngineModel },
			page:       func(i *domain.DocumentItem) **int { return &i.TEngineModelPage },
		},
		{
			annotation: func(a *POItemAnnotation) **string { return &a.EngineNumber },
			value:      func(i *domain.DocumentItem) **string { return &i.EngineNumber },
			page:       func(i *domain.DocumentItem) **int { return &i.TEngineNumberPage },
		},
		{
			annotation: func(a *POItemAnnotation) **string { return &a.SerialNumber },
			value:      func(i *domain.DocumentItem) **string { return &i.SerialNumber },
			page:       func(i *domain.DocumentItem) **int { return &i.TSerialNumberPage },
		},
	},
	ordinal: func(a *POItemAnnotation) **ItemOrdinal { return &a.ObjectID },
}

var importLayout = &layout[ImportDocumentAnnotation, ImportItemAnnotation]{
	docType: domain.DocumentTypeImportDeclaration,
	docFields: []docField[ImportDocumentAnnotation]{
		{
			annotation: func(a *ImportDocumentAnnotation) **string { return &a.ImportNumber },
			value:      func(d *domain.Document) **string { return &d.ImportNumber },
			page:       func(d *domain.Document) **int { return &d.TImportNumberPage },
		},
		{
			annotation: func(a *ImportDocumentAnnotation) **string { return &a.ImportDate },
			value:      func(d *domain.Document) **string { return &d.ImportDate },
			page:       func(d *domain.Document) **int { return &d.TImportDatePage },
		},
	},
	itemFields: []itemField[ImportItemAnnotation]{
		{
			annotation: func(a *ImportItemAnnotation) **string { return &a.PartNumber },
			value:      func(i *domain.DocumentItem) **string { return &i.PartNumber },
			page:       func(i *domain.DocumentItem) **int { return &i.TPartNumberPage },
		},
		{
			annotation: func(a *ImportItemAnnotation) **string { return &a.QuantityOrdered },
			value:      func(i *domain.DocumentItem) **string { return &i.QuantityOrdered },
			page:       func(i *domain.DocumentItem) **int { return &i.TQuantityOrderedPage },
		},
		{
			annotation: func(a *ImportItemAnnotation) **string { return &a.ImportPrice },
			value:      func(i *domain.DocumentItem) **string { return &i.ImportPrice },
			page:       func(i *domain.DocumentItem) **int { return &i.TImportPricePage },
		},
	},
	ordinal: func(a *ImportItemAnnotation) **ItemOrdinal { return &a.ObjectID },
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func intPtr(i int) *int {
	return &i
}
