package searchdb

const (
	fieldMainName        = "main_name"
	fieldTitle           = "title"
	fieldSecondaryName   = "secondary_name"
	fieldGroup           = "group"
	fieldAdditionalGroup = "additional_group"
	fieldType            = "type"
	fieldCode            = "code"
	fieldNeighborhood    = "neighborhood"
	fieldIsDeleted       = "is_deleted"
)

// textFields lists every searchable text field of a record, in CSV column order.
var textFields = []string{
	fieldMainName,
	fieldTitle,
	fieldSecondaryName,
	fieldGroup,
	fieldAdditionalGroup,
	fieldType,
	fieldCode,
	fieldNeighborhood,
}

// Record is a single street entry as stored in the search engine.
type Record struct {
	ID              string `json:"id,omitempty"`
	MainName        string `json:"main_name"`
	Title           string `json:"title"`
	SecondaryName   string `json:"secondary_name"`
	Group           string `json:"group"`
	AdditionalGroup string `json:"additional_group"`
	Type            string `json:"type"`
	Code            string `json:"code"`
	Neighborhood    string `json:"neighborhood"`
	IsDeleted       bool   `json:"is_deleted"`
}

// source returns the indexable fields of the record, without its ID.
func (r Record) source() map[string]any {
	return map[string]any{
		fieldMainName:        r.MainName,
		fieldTitle:           r.Title,
		fieldSecondaryName:   r.SecondaryName,
		fieldGroup:           r.Group,
		fieldAdditionalGroup: r.AdditionalGroup,
		fieldType:            r.Type,
		fieldCode:            r.Code,
		fieldNeighborhood:    r.Neighborhood,
		fieldIsDeleted:       r.IsDeleted,
	}
}
