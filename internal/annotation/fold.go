package annotation

import (
	"sort"

	"tradeflow/internal/domain"
)

// FoldPurchaseOrder folds purchase order page annotations into a document and its
// line items. It returns nil when pages is empty.
func FoldPurchaseOrder(pages []POPage, pageTexts []string) *Result {
	return purchaseOrderLayout.fold(pages, pageTexts)
}

// FoldImport folds import declaration page annotations into a document and its
// line items. It returns nil when pages is empty.
func FoldImport(pages []ImportPage, pageTexts []string) *Result {
	return importLayout.fold(pages, pageTexts)
}

// Fold dispatches on the page set's document type. It returns nil when the set has
// no pages or carries an unknown document type.
func Fold(set *PageSet, pageTexts []string) *Result {
	if set == nil {
		return nil
	}
	switch set.DocumentType {
	case domain.DocumentTypePurchaseOrder:
		return FoldPurchaseOrder(set.PurchaseOrder, pageTexts)
	case domain.DocumentTypeImportDeclaration:
		return FoldImport(set.ImportDeclaration, pageTexts)
	default:
		return nil
	}
}

// fold walks pages in order. A non-nil annotation field overwrites the accumulated
// value and records the current page as its provenance; a nil field leaves both
// untouched. Items are keyed by ordinal and emitted in ascending ordinal order.
func (l *layout[D, I]) fold(pages []Page[D, I], pageTexts []string) *Result {
	if len(pages) == 0 {
		return nil
	}

	doc := domain.Document{
		DocumentType: l.docType,
		PageTexts:    padPageTexts(pageTexts, len(pages)),
	}
	items := make(map[ItemOrdinal]*domain.DocumentItem)

	for pageIdx := range pages {
		page := &pages[pageIdx]

		for _, f := range l.docFields {
			if v := *f.annotation(&page.Document); v != nil {
				*f.value(&doc) = cloneString(v)
				*f.page(&doc) = intPtr(pageIdx)
			}
		}

		for i := range page.Items {
			ann := &page.Items[i]
			ord := *l.ordinal(ann)
			if ord == nil {
				continue
			}
			item, ok := items[*ord]
			if !ok {
				item = &domain.DocumentItem{}
				items[*ord] = item
			}
			for _, f := range l.itemFields {
				if v := *f.annotation(ann); v != nil {
					*f.value(item) = cloneString(v)
					*f.page(item) = intPtr(pageIdx)
				}
			}
		}
	}

	ordinals := make([]ItemOrdinal, 0, len(items))
	for ord := range items {
		ordinals = append(ordinals, ord)
	}
	sort.Slice(ordinals, func(i, j int) bool { return ordinals[i] < ordinals[j] })

	out := make([]domain.DocumentItem, 0, len(ordinals))
	for pos, ord := range ordinals {
		item := *items[ord]
		item.Position = pos
		out = append(out, item)
	}

	return &Result{Document: doc, Items: out}
}

// padPageTexts returns a copy of texts extended with empty strings to at least n entries.
func padPageTexts(texts []string, n int) domain.StringList {
	size := len(texts)
	if size < n {
		size = n
	}
	out := make(domain.StringList, size)
	copy(out, texts)
	return out
}
