// Package rules applies a tenant's substitution tables to extracted values.
//
// Each table is consulted independently. Within a table the first rule in list order
// that matches wins; rules with a blank trigger never match.
package rules

import (
	"strings"

	"tradeflow/internal/domain"
)

// Engine resolves substitutions against one RuleSet.
type Engine struct {
	set domain.RuleSet
}

// NewEngine creates an engine over set. The set is not copied.
func NewEngine(set domain.RuleSet) *Engine {
	return &Engine{set: set}
}

// CertNum returns the display value of the first ARC rule whose appearance occurs in v.
func (e *Engine) CertNum(v string) (string, bool) {
	for _, r := range e.set.Arc {
		if r.ArcAppearance != "" && strings.Contains(v, r.ArcAppearance) {
			return r.ResultDisplay, true
		}
	}
	return "", false
}

// EngineModel returns the display value of the first engine model rule whose title
// occurs in v and whose common prefix starts v. Both conditions must hold.
func (e *Engine) EngineModel(v string) (string, bool) {
	for _, r := range e.set.EngineModel {
		if r.EngineModelTitle == "" {
			continue
		}
		if strings.Contains(v, r.EngineModelTitle) && strings.HasPrefix(v, r.CommonPrefix) {
			return r.ResultDisplay, true
		}
	}
	return "", false
}

// WorkScope returns the display value of the first work scope rule whose keywords occur in v.
func (e *Engine) WorkScope(v string) (string, bool) {
	for _, r := range e.set.WorkScope {
		if r.OverhaulKeywords != "" && strings.Contains(v, r.OverhaulKeywords) {
			return r.ResultDisplay, true
		}
	}
	return "", false
}

// ProductCode returns the product code of the first part number rule whose part number
// occurs in v.
func (e *Engine) ProductCode(v string) (string, bool) {
	for _, r := range e.set.PartNumber {
		if r.PartNumber != "" && strings.Contains(v, r.PartNumber) {
			return r.ProductCode, true
		}
	}
	return "", false
}

// ApplyRecord rewrites CertNum, EngineModel and WorkScope in place and sets ProductCode
// from Item. Item itself is never changed.
func (e *Engine) ApplyRecord(rec *domain.CsvRecord) {
	replace(&rec.CertNum, e.CertNum)
	replace(&rec.EngineModel, e.EngineModel)
	replace(&rec.WorkScope, e.WorkScope)
	if rec.Item != nil {
		if code, ok := e.ProductCode(*rec.Item); ok {
			rec.ProductCode = &code
		}
	}
}

// ApplyRecords runs ApplyRecord over every record.
func (e *Engine) ApplyRecords(recs []domain.CsvRecord) {
	for i := range recs {
		e.ApplyRecord(&recs[i])
	}
}

// ApplyDocument normalises a freshly folded document: the work scope on the header and
// the engine model on each item. Provenance pages are left untouched.
func (e *Engine) ApplyDocument(doc *domain.Document, items []domain.DocumentItem) {
	if doc != nil {
		replace(&doc.WorkScope, e.WorkScope)
	}
	for i := range items {
		replace(&items[i].EngineModel, e.EngineModel)
	}
}

func replace(field **string, resolve func(string) (string, bool)) {
	if *field == nil {
		return
	}
	if out, ok := resolve(**field); ok {
		*field = &out
	}
}
