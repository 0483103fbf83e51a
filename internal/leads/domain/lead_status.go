// Package domain holds the leasing pipeline vocabulary shared by the leads
// services, scoring and seeding.
package domain

// Lead statuses, in pipeline order.
const (
	StatusNewInquiry           = "New Inquiry"
	StatusContacted            = "Contacted"
	StatusTourScheduled        = "Tour Scheduled"
	StatusTourCompleted        = "Tour Completed"
	StatusApplicationSubmitted = "Application Submitted"
	StatusApproved             = "Approved"
	StatusLeased               = "Leased"
	StatusNotInterested        = "Not Interested"
	StatusSearchHold           = "Search Hold"
	StatusLeasedElsewhere      = "Leased Elsewhere"

	// StatusAll is the list filter value that disables status filtering.
	StatusAll = "All"
)

// Statuses lists every lead status in pipeline order.
var Statuses = []string{
	StatusNewInquiry,
	StatusContacted,
	StatusTourScheduled,
	StatusTourCompleted,
	StatusApplicationSubmitted,
	StatusApproved,
	StatusLeased,
	StatusNotInterested,
	StatusSearchHold,
	StatusLeasedElsewhere,
}

// Unit types offered by the property.
const (
	UnitStudio       = "Studio"
	UnitOneBedroom   = "1 Bedroom"
	UnitTwoBedroom   = "2 Bedroom"
	UnitThreeBedroom = "3 Bedroom"
)

// UnitTypes lists every unit type.
var UnitTypes = []string{UnitStudio, UnitOneBedroom, UnitTwoBedroom, UnitThreeBedroom}

// MoveReasons lists the reasons a prospect can give for moving.
var MoveReasons = []string{
	"Job Relocation",
	"Upsizing",
	"Downsizing",
	"First Time Renter",
	"Closer to Work",
	"Other",
}

// IsKnownStatus reports whether status is one of Statuses.
func IsKnownStatus(status string) bool {
	return contains(Statuses, status)
}

// IsKnownUnitType reports whether unitType is one of UnitTypes.
func IsKnownUnitType(unitType string) bool {
	return contains(UnitTypes, unitType)
}

// IsKnownMoveReason reports whether reason is one of MoveReasons.
func IsKnownMoveReason(reason string) bool {
	return contains(MoveReasons, reason)
}

// IsConverted reports whether a lead in status counts as a conversion.
func IsConverted(status string) bool {
	return status == StatusLeased || status == StatusApproved
}

// IsClosed reports whether the lead has left the active pipeline.
func IsClosed(status string) bool {
	switch status {
	case StatusLeased, StatusNotInterested, StatusLeasedElsewhere:
		return true
	}
	return false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
