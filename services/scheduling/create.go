package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	serviceRepo "slotwise/database/repository/service"
	"slotwise/models"
	"slotwise/services/matching"
	"slotwise/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking allocates a service, a qualified staff member and a
// conflict-free interval for the request, committing the booking in
// PENDING. Expected failures (bad request, nobody free, a lost race) come
// back inside the result with ranked alternatives where applicable; the
// error return is reserved for infrastructure faults.
func (s *DefaultService) CreateBooking(ctx context.Context, req models.BookingRequest) (*BookingResult, error) {
	logger := utils.GetLogger()
	now := s.now()

	if violations := s.validateRequest(req); len(violations) > 0 {
		return failure(validationError(violations...), nil), nil
	}

	service, err := s.ServiceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return failure(notFoundError("service", req.ServiceID), nil), nil
		}
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}
	if !service.IsActive {
		return failure(validationError(fmt.Sprintf("service %s is not active", service.ID)), nil), nil
	}

	if violations := service.ValidateBookingTime(req.PreferredTime, now); len(violations) > 0 {
		return failure(validationError(violations...), nil), nil
	}

	roster, err := s.StaffRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff roster: %w", err)
	}

	staff, resolveErr := s.resolveStaff(ctx, *service, roster, req)
	if resolveErr != nil {
		alternatives := s.findAlternativeSlots(ctx, *service, roster, req)
		return failure(resolveErr, alternatives), nil
	}

	// Final guard and commit run as one atomic unit per staff member, so a
	// concurrent request for the same slot cannot also succeed.
	lock := s.Availability.StaffLock(staff.ID)
	lock.Lock()
	defer lock.Unlock()

	reservedStart := req.PreferredTime.Add(-time.Duration(service.BufferBeforeMin) * time.Minute)
	reservedEnd := reservedStart.Add(service.TotalDuration())

	if !staff.IsAvailable(reservedStart, service.TotalDurationMin()) {
		alternatives := s.findAlternativeSlots(ctx, *service, roster, req)
		return failure(unavailableError(fmt.Sprintf("staff %s is not available at the requested time", staff.ID)), alternatives), nil
	}
	if conflicts := s.Availability.CheckConflicts(*staff, reservedStart, reservedEnd); len(conflicts) > 0 {
		alternatives := s.findAlternativeSlots(ctx, *service, roster, req)
		return failure(conflictError("the requested slot was claimed by another booking"), alternatives), nil
	}

	booking := &models.Booking{
		ID:              uuid.New().String(),
		ServiceID:       service.ID,
		StaffID:         staff.ID,
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		StartTime:       req.PreferredTime,
		EndTime:         req.PreferredTime.Add(service.Duration()),
		BufferBeforeMin: service.BufferBeforeMin,
		BufferAfterMin:  service.BufferAfterMin,
		Status:          models.StatusPending,
		Price:           service.Price,
		Currency:        service.Currency,
		PaymentStatus:   models.PaymentPending,
		RemindersSent:   make(map[models.ReminderKind]bool),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.BookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}
	s.Availability.AddAppointment(staff.ID, reservedStart, reservedEnd)

	confirmation := s.buildConfirmation(*booking, *service, *staff)

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("serviceID", service.ID),
		zap.String("staffID", staff.ID),
		zap.Time("startTime", booking.StartTime),
	)
	return &BookingResult{Booking: booking, Confirmation: &confirmation}, nil
}

// validateRequest runs the structural tag validation and flattens field
// errors into itemized violation messages.
func (s *DefaultService) validateRequest(req models.BookingRequest) []string {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, fmt.Sprintf("field %s failed on %q", fe.Field(), fe.Tag()))
	}
	return violations
}

// resolveStaff honors an explicitly requested staff member or falls back
// to optimal assignment across the roster.
func (s *DefaultService) resolveStaff(ctx context.Context, service models.Service, roster []models.Staff, req models.BookingRequest) (*models.Staff, *Error) {
	if req.StaffID != "" {
		for i := range roster {
			if roster[i].ID != req.StaffID {
				continue
			}
			match := matching.Score(roster[i], service, matching.Options{})
			if !match.HasAllRequiredSkills {
				return nil, validationError(fmt.Sprintf("staff %s lacks required skills: %s", req.StaffID, strings.Join(match.MissingSkills, ", ")))
			}
			return &roster[i], nil
		}
		return nil, notFoundError("staff", req.StaffID)
	}

	staff := s.Availability.GetOptimalStaffAssignment(ctx, service, roster, req.PreferredTime)
	if staff == nil {
		// Distinguish a roster that can never serve this service from one
		// that is merely busy right now.
		qualified, err := s.Matching.FindQualifiedStaff(ctx, service.ID, matching.Options{RequireAllSkills: true})
		if err == nil && len(qualified) == 0 {
			return nil, unavailableError("no staff member holds the required skills for this service")
		}
		return nil, unavailableError("no qualified staff member is free at the requested time")
	}
	return staff, nil
}

// buildConfirmation generates the confirmation code and calendar deep links.
func (s *DefaultService) buildConfirmation(booking models.Booking, service models.Service, staff models.Staff) models.Confirmation {
	code := "SW-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return models.Confirmation{
		BookingID:        booking.ID,
		ConfirmationCode: code,
		Calendar:         buildCalendarLinks(booking, service.Name, staff.Name),
	}
}
