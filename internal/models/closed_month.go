package models

// ClosedMonth marks a competency as reviewed and closed. The marker is
// bookkeeping only; it does not block further writes to the month.
type ClosedMonth struct {
	Base
	Competency string `gorm:"size:7;not null;uniqueIndex" json:"competency"`
}
