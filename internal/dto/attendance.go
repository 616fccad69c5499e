package dto

import "gymdesk_backend/internal/models"

type CheckInRequest struct {
	MemberID string `json:"memberId" validate:"required"`
	Notes    string `json:"notes"`
}

type CheckOutRequest struct {
	AttendanceID string `json:"attendanceId" validate:"required"`
}

// BiometricEvent is one raw device event inside a sync batch. MemberRef
// is the device's member identifier (the BiometricID stored on the member).
type BiometricEvent struct {
	MemberRef string `json:"memberRef" validate:"required"`
	DeviceID  string `json:"deviceId"`
	Timestamp string `json:"timestamp" validate:"required"`
}

type BiometricSyncRequest struct {
	Events []BiometricEvent `json:"events" validate:"required,min=1,dive"`
}

// BiometricSyncResult reports per-event outcomes: one bad event never
// fails the batch.
type BiometricSyncResult struct {
	Processed int                    `json:"processed"`
	Failed    int                    `json:"failed"`
	Results   []BiometricEventResult `json:"results"`
}

type BiometricEventResult struct {
	MemberRef string `json:"memberRef"`
	Status    string `json:"status"` // processed | failed
	Reason    string `json:"reason,omitempty"`
}

type AttendanceRangeQuery struct {
	PaginationQuery
	From string `form:"from" validate:"required,datetime=2006-01-02"`
	To   string `form:"to" validate:"required,datetime=2006-01-02"`
}

type AttendanceListResponse struct {
	Records []models.Attendance `json:"records"`
	Meta    ListMeta            `json:"meta"`
}
