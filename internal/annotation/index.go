package annotation

import "tradeflow/internal/domain"

// IndexedItem is an item together with the ordinal it is given in regenerated annotations.
type IndexedItem struct {
	Ordinal ItemOrdinal
	Item    *domain.DocumentItem
}

// IndexItemsByPage buckets items by every page any of their fields was read from.
// An item appears at most once per bucket, and each bucket preserves input order.
// Ordinals are 1-based positions in items.
func IndexItemsByPage(items []domain.DocumentItem) map[int][]IndexedItem {
	buckets := make(map[int][]IndexedItem)
	for i := range items {
		entry := IndexedItem{Ordinal: ItemOrdinal(i + 1), Item: &items[i]}
		seen := make(map[int]struct{}, 6)
		for _, p := range items[i].ProvenancePages() {
			if p == nil {
				continue
			}
			if _, dup := seen[*p]; dup {
				continue
			}
			seen[*p] = struct{}{}
			buckets[*p] = append(buckets[*p], entry)
		}
	}
	return buckets
}

// RegeneratePurchaseOrder rebuilds one purchase order page annotation per entry of
// doc.PageTexts.
func RegeneratePurchaseOrder(doc *domain.Document, items []domain.DocumentItem) []POPage {
	return purchaseOrderLayout.regenerate(doc, items)
}

// RegenerateImport rebuilds one import declaration page annotation per entry of
// doc.PageTexts.
func RegenerateImport(doc *domain.Document, items []domain.DocumentItem) []ImportPage {
	return importLayout.regenerate(doc, items)
}

// Regenerate rebuilds the page set matching doc.DocumentType.
func Regenerate(doc *domain.Document, items []domain.DocumentItem) (*PageSet, error) {
	switch doc.DocumentType {
	case domain.DocumentTypePurchaseOrder:
		return &PageSet{
			DocumentType:  doc.DocumentType,
			PurchaseOrder: RegeneratePurchaseOrder(doc, items),
		}, nil
	case domain.DocumentTypeImportDeclaration:
		return &PageSet{
			DocumentType:      doc.DocumentType,
			ImportDeclaration: RegenerateImport(doc, items),
		}, nil
	default:
		return nil, domain.ErrInvalidDocumentType
	}
}

// regenerate emits, for each page, the header fields whose provenance is that page
// and one item annotation per item in the page's bucket. A page with an empty bucket
// gets a single all-nil placeholder item, which folding ignores.
func (l *layout[D, I]) regenerate(doc *domain.Document, items []domain.DocumentItem) []Page[D, I] {
	buckets := IndexItemsByPage(items)
	pages := make([]Page[D, I], len(doc.PageTexts))

	for p := range pages {
		for _, f := range l.docFields {
			if pg := *f.page(doc); pg != nil && *pg == p {
				*f.annotation(&pages[p].Document) = cloneString(*f.value(doc))
			}
		}

		bucket := buckets[p]
		if len(bucket) == 0 {
			var placeholder I
			pages[p].Items = []I{placeholder}
			continue
		}

		pages[p].Items = make([]I, 0, len(bucket))
		for _, entry := range bucket {
			var ann I
			ord := entry.Ordinal
			*l.ordinal(&ann) = &ord
			for _, f := range l.itemFields {
				if pg := *f.page(entry.Item); pg != nil && *pg == p {
					*f.annotation(&ann) = cloneString(*f.value(entry.Item))
				}
			}
			pages[p].Items = append(pages[p].Items, ann)
		}
	}
	return pages
}
