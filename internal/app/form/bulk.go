package form

// bulkIDsRule bounds the ID list of bulk delete and approve requests
const bulkIDsRule = "required,min=1,max=100,dive,notblank"

// ValidateBulkIDs guards bulk requests that do not come through a gin bind
func ValidateBulkIDs(ids []string) FieldErrors {
	return checkVar("ids", ids, bulkIDsRule)
}
