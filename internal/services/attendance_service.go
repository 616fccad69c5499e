package services

import (
	"errors"
	"fmt"
	"time"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/timeutil"
	"gymdesk_backend/pkg/apperrors"
)

type AttendanceService interface {
	CheckIn(req *dto.CheckInRequest) (*models.Attendance, error)
	CheckOut(req *dto.CheckOutRequest) (*models.Attendance, error)
	BiometricSync(req *dto.BiometricSyncRequest) (*dto.BiometricSyncResult, error)
	Today(q *dto.PaginationQuery) (*dto.AttendanceListResponse, error)
	Range(q *dto.AttendanceRangeQuery) (*dto.AttendanceListResponse, error)
	MemberHistory(memberID string, q *dto.PaginationQuery) (*dto.AttendanceListResponse, error)
}

type attendanceService struct {
	memberRepo     repositories.MemberRepository
	attendanceRepo repositories.AttendanceRepository
	loc            *time.Location
}

func NewAttendanceService(
	memberRepo repositories.MemberRepository,
	attendanceRepo repositories.AttendanceRepository,
	loc *time.Location,
) AttendanceService {
	return &attendanceService{
		memberRepo:     memberRepo,
		attendanceRepo: attendanceRepo,
		loc:            loc,
	}
}

// CheckIn records a front-desk check-in for the current day. The
// (member, day) unique index is what actually enforces one-per-day;
// losing the race to a concurrent check-in surfaces as a conflict, same
// as finding the row up front.
func (s *attendanceService) CheckIn(req *dto.CheckInRequest) (*models.Attendance, error) {
	member, err := s.activeMember(req.MemberID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &models.Attendance{
		MemberID:       member.ID,
		CheckInTime:    now,
		Date:           timeutil.DayStart(now, s.loc),
		AttendanceType: models.AttendanceTypeManual,
		Notes:          req.Notes,
		Status:         models.AttendanceStatusPresent,
	}

	if err := s.attendanceRepo.Create(record); err != nil {
		if errors.Is(err, repositories.ErrDuplicateCheckIn) {
			return nil, apperrors.ErrConflict(err, "attendance",
				fmt.Sprintf("Member %s is already checked in today", member.MemberID))
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Member checked in", "member_id", member.MemberID)
	return record, nil
}

// CheckOut closes the session identified by the attendance record,
// whichever day it was opened on.
func (s *attendanceService) CheckOut(req *dto.CheckOutRequest) (*models.Attendance, error) {
	record, err := s.attendanceRepo.FindByID(req.AttendanceID)
	if err != nil {
		if errors.Is(err, repositories.ErrAttendanceNotFound) {
			return nil, apperrors.NewNotFoundError("attendance", "Attendance record")
		}
		return nil, apperrors.InternalError(err)
	}

	if record.CheckOutTime != nil {
		return nil, apperrors.ErrConflict(nil, "attendance",
			"Attendance record is already checked out")
	}

	now := time.Now()
	record.CheckOutTime = &now
	record.Status = models.AttendanceStatusCheckedOut
	if err := s.attendanceRepo.Save(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Member checked out", "attendance_id", record.ID)
	return record, nil
}

// BiometricSync ingests a batch of device events. Outcomes are reported
// per event; a malformed or duplicate event never fails the batch.
func (s *attendanceService) BiometricSync(req *dto.BiometricSyncRequest) (*dto.BiometricSyncResult, error) {
	result := &dto.BiometricSyncResult{}

	for _, event := range req.Events {
		outcome := s.processBiometricEvent(&event)
		if outcome.Status == "processed" {
			result.Processed++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, outcome)
	}

	logger.Info("Biometric sync completed",
		"processed", result.Processed,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *attendanceService) processBiometricEvent(event *dto.BiometricEvent) dto.BiometricEventResult {
	fail := func(reason string) dto.BiometricEventResult {
		return dto.BiometricEventResult{MemberRef: event.MemberRef, Status: "failed", Reason: reason}
	}

	at, err := time.Parse(time.RFC3339, event.Timestamp)
	if err != nil {
		return fail("unparseable timestamp")
	}

	member, err := s.memberRepo.FindByBiometricID(event.MemberRef)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return fail("unknown biometric ID")
		}
		return fail(err.Error())
	}

	if member.MembershipStatus != models.MembershipStatusActive {
		return fail(fmt.Sprintf("membership is %s", member.MembershipStatus))
	}

	record := &models.Attendance{
		MemberID:          member.ID,
		CheckInTime:       at,
		Date:              timeutil.DayStart(at, s.loc),
		AttendanceType:    models.AttendanceTypeBiometric,
		BiometricDeviceID: event.DeviceID,
		Status:            models.AttendanceStatusPresent,
	}
	if err := s.attendanceRepo.Create(record); err != nil {
		if errors.Is(err, repositories.ErrDuplicateCheckIn) {
			return fail("already marked for this day")
		}
		return fail(err.Error())
	}

	return dto.BiometricEventResult{MemberRef: event.MemberRef, Status: "processed"}
}

func (s *attendanceService) Today(q *dto.PaginationQuery) (*dto.AttendanceListResponse, error) {
	q.Normalize()
	now := time.Now()
	return s.listRange(timeutil.DayStart(now, s.loc), timeutil.DayEnd(now, s.loc), q)
}

func (s *attendanceService) Range(q *dto.AttendanceRangeQuery) (*dto.AttendanceListResponse, error) {
	q.Normalize()

	from := parseDay(q.From, s.loc)
	to := parseDay(q.To, s.loc)
	if from == nil || to == nil || to.Before(*from) {
		return nil, apperrors.NewBadRequestError("Invalid date range")
	}

	return s.listRange(*from, timeutil.DayEnd(*to, s.loc), &q.PaginationQuery)
}

func (s *attendanceService) listRange(from, to time.Time, q *dto.PaginationQuery) (*dto.AttendanceListResponse, error) {
	records, total, err := s.attendanceRepo.FindByDateRange(from, to, q.Limit, q.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AttendanceListResponse{
		Records: records,
		Meta:    dto.ListMeta{Total: total, Page: q.Page, Limit: q.Limit},
	}, nil
}

func (s *attendanceService) MemberHistory(memberID string, q *dto.PaginationQuery) (*dto.AttendanceListResponse, error) {
	q.Normalize()

	if _, err := s.findMember(memberID); err != nil {
		return nil, err
	}

	records, total, err := s.attendanceRepo.FindByMember(memberID, q.Limit, q.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AttendanceListResponse{
		Records: records,
		Meta:    dto.ListMeta{Total: total, Page: q.Page, Limit: q.Limit},
	}, nil
}

func (s *attendanceService) findMember(id string) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, apperrors.NewNotFoundError("attendance", "Member")
		}
		return nil, apperrors.InternalError(err)
	}
	return member, nil
}

// activeMember is the check-in precondition: the member must exist and be
// Active. The rejection names the actual state so the front desk knows
// whether to renew, reactivate or turn the person away.
func (s *attendanceService) activeMember(id string) (*models.Member, error) {
	member, err := s.findMember(id)
	if err != nil {
		return nil, err
	}
	if member.MembershipStatus != models.MembershipStatusActive {
		return nil, apperrors.ErrInvalidState("attendance",
			fmt.Sprintf("Member %s cannot check in: membership is %s", member.MemberID, member.MembershipStatus))
	}
	return member, nil
}
