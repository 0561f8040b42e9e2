package models

// Class is a homeroom group as exposed by the server of record.
type Class struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Grade string `json:"grade,omitempty"`
}

// Week identifies one teaching week within a semester and quarter.
type Week struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Semester int    `json:"semester"`
	Quarter  int    `json:"quarter"`
	Label    string `json:"label,omitempty"`
}

// Settings carries boolean toggles external to scoring.
type Settings struct {
	PromotionEnabled bool `json:"promotion_enabled"`
}
