package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringList is an ordered list of strings stored as a JSONB array.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("StringList.Scan: %w", err)
	}
	*l = out
	return nil
}

// Document is one scanned trade document's extracted header fields.
//
// Every field read by the inference service has a companion T*Page field holding the
// zero-based index into PageTexts of the page the value was read from. A nil page means
// the value has no known provenance (entered manually or never extracted).
type Document struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	TenantID     uuid.UUID      `db:"tenant_id" json:"tenant_id"`
	FileID       *uuid.UUID     `db:"file_id" json:"file_id"`
	DocumentType DocumentType   `db:"document_type" json:"document_type"`
	Name         string         `db:"name" json:"name"`
	Source       DocumentSource `db:"source" json:"source"`
	PageTexts    StringList     `db:"page_texts" json:"page_texts"`

	PONumber              *string `db:"po_number" json:"po_number"`
	PODate                *string `db:"po_date" json:"po_date"`
	ImportNumber          *string `db:"import_number" json:"import_number"`
	ImportDate            *string `db:"import_date" json:"import_date"`
	EndUserCustomerName   *string `db:"end_user_customer_name" json:"end_user_customer_name"`
	EndUserCustomerNumber *string `db:"end_user_customer_number" json:"end_user_customer_number"`
	WorkScope             *string `db:"work_scope" json:"work_scope"`
	ArcRequirement        *string `db:"arc_requirement" json:"arc_requirement"`
	TSN                   *string `db:"tsn" json:"tsn"`
	CSN                   *string `db:"csn" json:"csn"`
	CustomerName          *string `db:"customer_name" json:"customer_name"`
	COCode                *string `db:"co_code" json:"co_code"`

	TPONumberPage            *int `db:"t_po_number_page" json:"t_po_number_page"`
	TPODatePage              *int `db:"t_po_date_page" json:"t_po_date_page"`
	TImportNumberPage        *int `db:"t_import_number_page" json:"t_import_number_page"`
	TImportDatePage          *int `db:"t_import_date_page" json:"t_import_date_page"`
	TEndUserCustomerNamePage *int `db:"t_end_user_customer_name_page" json:"t_end_user_customer_name_page"`
	TWorkScopePage           *int `db:"t_work_scope_page" json:"t_work_scope_page"`
	TArcRequirementPage      *int `db:"t_arc_requirement_page" json:"t_arc_requirement_page"`
	TTSNPage                 *int `db:"t_tsn_page" json:"t_tsn_page"`
	TCSNPage                 *int `db:"t_csn_page" json:"t_csn_page"`

	ParsingStatus ParsingStatus `db:"parsing_status" json:"parsing_status"`
	ParsingError  string        `db:"parsing_error" json:"parsing_error"`
	ParsedAt      *time.Time    `db:"parsed_at" json:"parsed_at"`
	ModelUsed     string        `db:"model_used" json:"model_used"`
	PromptUsed    string        `db:"prompt_used" json:"prompt_used"`
	ReviewStatus  ReviewStatus  `db:"review_status" json:"review_status"`
	ApprovedBy    *uuid.UUID    `db:"approved_by" json:"approved_by"`
	ApprovedAt    *time.Time    `db:"approved_at" json:"approved_at"`
	Accuracy      *float64      `db:"accuracy" json:"accuracy"`
	VerifiedAt    *time.Time    `db:"verified_at" json:"verified_at"`
	CreatedBy     uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// DocumentItem is one line item of a Document. Items are always replaced as a whole set.
type DocumentItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	DocumentID uuid.UUID `db:"document_id" json:"document_id"`
	Position   int       `db:"position" json:"position"`

	PartNumber      *string `db:"part_number" json:"part_number"`
	QuantityOrdered *string `db:"quantity_ordered" json:"quantity_ordered"`
	ImportPrice     *string `db:"import_price" json:"import_price"`
	EngineModel     *string `db:"engine_model" json:"engine_model"`
	EngineNumber    *string `db:"engine_number" json:"engine_number"`
	SerialNumber    *string `db:"serial_number" json:"serial_number"`

	TPartNumberPage      *int `db:"t_part_number_page" json:"t_part_number_page"`
	TQuantityOrderedPage *int `db:"t_quantity_ordered_page" json:"t_quantity_ordered_page"`
	TImportPricePage     *int `db:"t_import_price_page" json:"t_import_price_page"`
	TEngineModelPage     *int `db:"t_engine_model_page" json:"t_engine_model_page"`
	TEngineNumberPage    *int `db:"t_engine_number_page" json:"t_engine_number_page"`
	TSerialNumberPage    *int `db:"t_serial_number_page" json:"t_serial_number_page"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProvenancePages returns the six page provenance fields of the item, nil entries included.
func (i *DocumentItem) ProvenancePages() []*int {
	return []*int{
		i.TPartNumberPage,
		i.TQuantityOrderedPage,
		i.TImportPricePage,
		i.TEngineModelPage,
		i.TEngineNumberPage,
		i.TSerialNumberPage,
	}
}

// FileMeta stores metadata about an uploaded scan.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
