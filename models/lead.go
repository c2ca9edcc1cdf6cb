package models

import "time"

// Lead represents one contact-form submission.
//
// VehicleID and VehicleTitle are optional; when a submission references a
// listing, the title is snapshotted so the lead stays meaningful after the
// vehicle is deleted. IP and UserAgent are captured for abuse triage.
type Lead struct {
	ID int64 `json:"id"`

	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`

	VehicleID    int64  `json:"vehicle_id,omitempty"`
	VehicleTitle string `json:"vehicle_title,omitempty"`

	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Lead model.
func (l Lead) TableName() string {
	return "leads"
}
