package dto

// GlobalItemUpdateRequest payload de PUT /global-item-update (ferramenta de
// admin). Reescreve a identidade de um item em todo o histórico.
type GlobalItemUpdateRequest struct {
	OldID          string `json:"oldId"`
	NewID          string `json:"newId"`
	NewDisplayName string `json:"newDisplayName"`
}

// GlobalItemUpdateResponse total de transações reescritas.
type GlobalItemUpdateResponse struct {
	UpdatedCount int64 `json:"updatedCount"`
}
