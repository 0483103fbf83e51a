package domain

import "testing"

func TestStatusVocabulary(t *testing.T) {
	if len(Statuses) != 10 {
		t.Fatalf("expected 10 statuses, got %d", len(Statuses))
	}
	if !IsKnownStatus(StatusTourScheduled) || IsKnownStatus("Applied") || IsKnownStatus(StatusAll) {
		t.Fatal("unexpected status membership")
	}
	if !IsKnownUnitType("2 Bedroom") || IsKnownUnitType("Penthouse") {
		t.Fatal("unexpected unit type membership")
	}
	if !IsKnownMoveReason("Closer to Work") || IsKnownMoveReason("") {
		t.Fatal("unexpected move reason membership")
	}
}

func TestConversionAndClosedStatuses(t *testing.T) {
	tests := []struct {
		status    string
		converted bool
		closed    bool
	}{
		{StatusLeased, true, true},
		{StatusApproved, true, false},
		{StatusLeasedElsewhere, false, true},
		{StatusNotInterested, false, true},
		{StatusNewInquiry, false, false},
	}
	for _, tt := range tests {
		if IsConverted(tt.status) != tt.converted || IsClosed(tt.status) != tt.closed {
			t.Errorf("%s: converted=%v closed=%v", tt.status, IsConverted(tt.status), IsClosed(tt.status))
		}
	}
}
