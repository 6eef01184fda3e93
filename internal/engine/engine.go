package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harborview-health/scheduler-agent/internal/booking"
	"github.com/harborview-health/scheduler-agent/internal/extract"
	"github.com/harborview-health/scheduler-agent/internal/insurance"
	"github.com/harborview-health/scheduler-agent/internal/observability/metrics"
	"github.com/harborview-health/scheduler-agent/internal/patients"
	"github.com/harborview-health/scheduler-agent/internal/schedule"
	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

// Reply is the outcome of one conversation turn.
type Reply struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	Message   string `json:"message"`
}

// Engine drives booking conversations. Turns within one session are
// serialized; turns across sessions run concurrently and contend only on the
// slot store, whose booking operation is atomic.
type Engine struct {
	extractor extract.Extractor
	patients  *patients.Resolver
	schedule  *schedule.Resolver
	bookings  *booking.Manager
	sessions  SessionStore
	metrics   *metrics.EngineMetrics
	logger    *logging.Logger
	now       func() time.Time

	locks sync.Map // session id -> *sync.Mutex
}

// New builds the engine. metrics may be nil.
func New(
	extractor extract.Extractor,
	patientResolver *patients.Resolver,
	scheduleResolver *schedule.Resolver,
	bookingManager *booking.Manager,
	sessions SessionStore,
	m *metrics.EngineMetrics,
	logger *logging.Logger,
) *Engine {
	if extractor == nil {
		panic("engine: extractor required")
	}
	if patientResolver == nil {
		panic("engine: patient resolver required")
	}
	if scheduleResolver == nil {
		panic("engine: schedule resolver required")
	}
	if bookingManager == nil {
		panic("engine: booking manager required")
	}
	if sessions == nil {
		panic("engine: session store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		extractor: extractor,
		patients:  patientResolver,
		schedule:  scheduleResolver,
		bookings:  bookingManager,
		sessions:  sessions,
		metrics:   m,
		logger:    logger.Component("engine"),
		now:       time.Now,
	}
}

func (e *Engine) sessionLock(id string) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ProcessTurn consumes one user utterance for the session and returns the
// next outbound message. Unknown session ids start a fresh conversation.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID, utterance string) (Reply, error) {
	mu := e.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		e.metrics.ObserveStoreFailure("sessions")
		return Reply{}, fmt.Errorf("engine: load session: %w", err)
	}
	if session == nil {
		session = newSession(sessionID, e.now())
	}

	started := e.now()
	entities, err := e.extractor.Extract(ctx, utterance, session.History)
	if err != nil {
		e.logger.Warn("extraction failed, treating as empty",
			"session_id", sessionID, "error", err)
		entities = extract.Entities{}
	}
	e.metrics.ObserveExtractionLatency(e.now().Sub(started).Seconds())

	before := session.State
	message := e.dispatch(ctx, session, utterance, entities)

	session.appendHistory(utterance, message)
	session.UpdatedAt = e.now()
	if err := e.sessions.Save(ctx, session); err != nil {
		e.metrics.ObserveStoreFailure("sessions")
		e.logger.Error("session save failed", "session_id", sessionID, "error", err)
	}

	outcome := "held"
	if session.State != before {
		outcome = "advanced"
	}
	e.metrics.ObserveTurn(before.String(), outcome)
	e.logger.Debug("turn processed",
		"session_id", sessionID, "from", before.String(), "to", session.State.String())

	return Reply{SessionID: sessionID, State: session.State.String(), Message: message}, nil
}

// ResetSession discards the session so the next turn starts from Greeting.
// This is the only way a conversation moves backwards.
func (e *Engine) ResetSession(ctx context.Context, sessionID string) error {
	mu := e.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	if err := e.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("engine: reset session: %w", err)
	}
	e.metrics.ObserveReset()
	e.logger.Info("session reset", "session_id", sessionID)
	return nil
}

// SessionSnapshot returns a read-only view of the session, or ok=false when
// no such session exists.
func (e *Engine) SessionSnapshot(ctx context.Context, sessionID string) (Snapshot, bool, error) {
	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("engine: load session: %w", err)
	}
	if session == nil {
		return Snapshot{}, false, nil
	}
	return session.snapshot(), true, nil
}

func (e *Engine) dispatch(ctx context.Context, s *Session, utterance string, ents extract.Entities) string {
	switch s.State {
	case StateGreeting:
		return e.handleGreeting(ctx, s, ents)
	case StateCollectingInfo, StatePatientLookup:
		return e.handleCollecting(ctx, s, ents)
	case StateNewPatientRegistration:
		return e.handleRegistration(ctx, s, utterance, ents)
	case StateDoctorSelection:
		return e.handleDoctorSelection(ctx, s, utterance, ents)
	case StateScheduling:
		return e.handleScheduling(ctx, s, utterance, ents)
	case StateInsuranceCollection:
		return e.handleInsurance(s, utterance, ents)
	case StateConfirmation:
		return e.handleConfirmation(ctx, s, utterance)
	case StateCompleted:
		return msgAlreadyCompleted()
	default:
		e.logger.Error("unknown session state", "session_id", s.ID, "state", int(s.State))
		return msgRetry()
	}
}

func (e *Engine) handleGreeting(ctx context.Context, s *Session, ents extract.Entities) string {
	if ents.FirstName == "" {
		return msgGreeting()
	}
	s.Patient.FirstName = ents.FirstName
	if ents.LastName != "" {
		s.Patient.LastName = ents.LastName
	}
	s.State = StateCollectingInfo
	if ents.DateOfBirth != "" {
		return e.handleCollecting(ctx, s, ents)
	}
	return msgAskDOB(s.Patient.FirstName)
}

func (e *Engine) handleCollecting(ctx context.Context, s *Session, ents extract.Entities) string {
	if s.Patient.FirstName == "" {
		if ents.FirstName == "" {
			return msgGreeting()
		}
		s.Patient.FirstName = ents.FirstName
	}
	if ents.LastName != "" && s.Patient.LastName == "" {
		s.Patient.LastName = ents.LastName
	}

	if s.Patient.DateOfBirth == "" {
		if ents.DateOfBirth == "" {
			return msgAskDOB(s.Patient.FirstName)
		}
		dob, ok := patients.NormalizeDOB(ents.DateOfBirth)
		if !ok {
			return msgInvalidDOB()
		}
		s.Patient.DateOfBirth = dob
	}

	return e.lookupPatient(ctx, s)
}

// lookupPatient runs the identity lookup and branches to registration or
// doctor selection. On a store failure the session stays put so the next turn
// retries the lookup.
func (e *Engine) lookupPatient(ctx context.Context, s *Session) string {
	s.State = StatePatientLookup
	_, err := e.patients.Lookup(ctx, &s.Patient)
	switch {
	case err == nil:
		s.State = StateDoctorSelection
		doctors, derr := e.schedule.Doctors(ctx)
		if derr != nil {
			return e.storeFailure(s, "schedule", derr)
		}
		return msgWelcomeBack(s.Patient.FirstName, doctors)

	case errors.Is(err, patients.ErrNotFound):
		s.State = StateNewPatientRegistration
		s.Patient.Classification = patients.ClassificationNew
		return msgRegisterIntro(s.Patient.FirstName, nextRegistrationField(s.Patient))

	default:
		s.State = StateCollectingInfo
		return e.storeFailure(s, "patients", err)
	}
}

func (e *Engine) handleRegistration(ctx context.Context, s *Session, utterance string, ents extract.Entities) string {
	if ents.LastName != "" && s.Patient.LastName == "" {
		s.Patient.LastName = ents.LastName
	}
	// A bare word while the last name is pending is the last name.
	if s.Patient.LastName == "" && ents.FirstName != "" && isBareWord(utterance) {
		s.Patient.LastName = ents.FirstName
	}
	if ents.Phone != "" && s.Patient.Phone == "" {
		phone, ok := patients.NormalizePhone(ents.Phone)
		if !ok {
			return msgInvalidPhone()
		}
		s.Patient.Phone = phone
	}
	if ents.Email != "" && s.Patient.Email == "" {
		if !patients.ValidEmail(ents.Email) {
			return msgInvalidEmail()
		}
		s.Patient.Email = ents.Email
	}

	missing := s.Patient.Missing()
	if len(missing) == 0 {
		if _, err := e.patients.Register(ctx, &s.Patient); err != nil {
			return e.storeFailure(s, "patients", err)
		}
		doctors, derr := e.schedule.Doctors(ctx)
		if derr != nil {
			s.State = StateDoctorSelection
			return e.storeFailure(s, "schedule", derr)
		}
		s.State = StateDoctorSelection
		return msgRegistered(s.Patient.FirstName, doctors)
	}

	next := missing[0]
	if next == "email address" && strings.Contains(utterance, "@") {
		return msgInvalidEmail()
	}
	return msgAskField(next)
}

func (e *Engine) handleDoctorSelection(ctx context.Context, s *Session, utterance string, ents extract.Entities) string {
	candidate := ents.Doctor
	if candidate == "" {
		candidate = utterance
	}

	doctor, err := e.schedule.MatchDoctor(ctx, candidate)
	if errors.Is(err, schedule.ErrDoctorUnknown) && ents.Doctor != "" {
		doctor, err = e.schedule.MatchDoctor(ctx, utterance)
	}
	switch {
	case err == nil:
		return e.listSlotsFor(ctx, s, doctor)
	case errors.Is(err, schedule.ErrDoctorUnknown):
		doctors, derr := e.schedule.Doctors(ctx)
		if derr != nil {
			return e.storeFailure(s, "schedule", derr)
		}
		return msgUnknownDoctor(doctors)
	default:
		return e.storeFailure(s, "schedule", err)
	}
}

// listSlotsFor targets the appointment draft at the doctor and renders the
// ordinal slot listing. Duration is fixed here from the patient
// classification.
func (e *Engine) listSlotsFor(ctx context.Context, s *Session, doctor string) string {
	slots, err := e.schedule.ListSlots(ctx, doctor)
	if err != nil {
		return e.storeFailure(s, "schedule", err)
	}
	if len(slots) == 0 {
		doctors, derr := e.schedule.Doctors(ctx)
		if derr != nil {
			return e.storeFailure(s, "schedule", derr)
		}
		return msgNoSlots(doctor, doctors)
	}

	duration := booking.DurationFor(s.Patient.Classification)
	s.Appointment = &AppointmentDraft{Doctor: doctor, DurationMinutes: duration}
	s.State = StateScheduling
	return msgSlotList(doctor, duration, slots)
}

func (e *Engine) handleScheduling(ctx context.Context, s *Session, utterance string, ents extract.Entities) string {
	if s.Appointment == nil {
		return e.handleDoctorSelection(ctx, s, utterance, ents)
	}

	choice := strings.TrimSpace(utterance)
	if ents.SlotChoice > 0 {
		choice = strconv.Itoa(ents.SlotChoice)
	}

	slot, err := e.schedule.SelectSlot(ctx, s.Appointment.Doctor, choice)
	switch {
	case err == nil:
		s.Appointment.Date = slot.Date
		s.Appointment.Time = slot.Time
		s.State = StateInsuranceCollection
		return msgSlotSelected(s.Appointment)

	case errors.Is(err, schedule.ErrOutOfRange):
		slots, lerr := e.schedule.ListSlots(ctx, s.Appointment.Doctor)
		if lerr != nil {
			return e.storeFailure(s, "schedule", lerr)
		}
		if len(slots) == 0 {
			e.metrics.ObserveSlotRaceLost()
			doctors, derr := e.schedule.Doctors(ctx)
			if derr != nil {
				return e.storeFailure(s, "schedule", derr)
			}
			return msgNoSlots(s.Appointment.Doctor, doctors)
		}
		return msgChooseInRange(len(slots))

	case errors.Is(err, schedule.ErrChoiceUnrecognized):
		// Not a slot reference at all: the user may be switching doctors.
		candidate := ents.Doctor
		if candidate == "" {
			candidate = choice
		}
		if doctor, derr := e.schedule.MatchDoctor(ctx, candidate); derr == nil {
			return e.listSlotsFor(ctx, s, doctor)
		}
		slots, lerr := e.schedule.ListSlots(ctx, s.Appointment.Doctor)
		if lerr != nil {
			return e.storeFailure(s, "schedule", lerr)
		}
		if len(slots) == 0 {
			doctors, derr := e.schedule.Doctors(ctx)
			if derr != nil {
				return e.storeFailure(s, "schedule", derr)
			}
			return msgNoSlots(s.Appointment.Doctor, doctors)
		}
		return msgChoiceUnrecognized(len(slots))

	case errors.Is(err, schedule.ErrSlotTaken):
		e.metrics.ObserveSlotRaceLost()
		slots, lerr := e.schedule.ListSlots(ctx, s.Appointment.Doctor)
		if lerr != nil {
			return e.storeFailure(s, "schedule", lerr)
		}
		if len(slots) == 0 {
			doctors, derr := e.schedule.Doctors(ctx)
			if derr != nil {
				return e.storeFailure(s, "schedule", derr)
			}
			return msgNoSlots(s.Appointment.Doctor, doctors)
		}
		return msgSlotTaken(s.Appointment.Doctor, s.Appointment.DurationMinutes, slots)

	default:
		return e.storeFailure(s, "schedule", err)
	}
}

// handleInsurance fills the next insurance field. A structured entity for the
// pending field takes priority over the raw utterance; opt-out phrases are
// detected on the raw text either way because extractors leave opted-out
// fields empty.
func (e *Engine) handleInsurance(s *Session, utterance string, ents extract.Entities) string {
	value := utterance
	switch s.Appointment.Insurance.Next() {
	case insurance.FieldCarrier:
		if ents.InsuranceCarrier != "" {
			value = ents.InsuranceCarrier
		}
	case insurance.FieldMemberID:
		if ents.MemberID != "" {
			value = ents.MemberID
		}
	case insurance.FieldGroupNumber:
		if ents.GroupNumber != "" {
			value = ents.GroupNumber
		}
	}
	insurance.Apply(&s.Appointment.Insurance, value)
	if s.Appointment.Insurance.Complete() {
		s.State = StateConfirmation
		return msgConfirmationSummary(s.Patient, s.Appointment)
	}
	return msgAskInsurance(s.Appointment.Insurance.Next())
}

func (e *Engine) handleConfirmation(ctx context.Context, s *Session, utterance string) string {
	switch {
	case isNegative(utterance):
		return msgWhatToChange()

	case isAffirmative(utterance):
		appt := e.buildAppointment(s)
		if err := e.bookings.Confirm(ctx, appt); err != nil {
			return e.storeFailure(s, "appointments", err)
		}
		s.State = StateCompleted
		e.metrics.ObserveBooking()
		return msgConfirmed(s.Patient, s.Appointment)

	default:
		return msgConfirmNeeded()
	}
}

func (e *Engine) buildAppointment(s *Session) booking.Appointment {
	var patientID int64
	if s.Patient.PatientID != nil {
		patientID = *s.Patient.PatientID
	}
	return booking.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		PatientName:     s.Patient.FullName(),
		DateOfBirth:     s.Patient.DateOfBirth,
		Phone:           s.Patient.Phone,
		Email:           s.Patient.Email,
		Doctor:          s.Appointment.Doctor,
		Date:            s.Appointment.Date,
		Time:            s.Appointment.Time,
		DurationMinutes: s.Appointment.DurationMinutes,
		PatientType:     s.Patient.Classification,
		Insurance:       s.Appointment.Insurance,
		Status:          "Confirmed",
		CreatedAt:       e.now().UTC(),
	}
}

// storeFailure logs a backing-store error and renders the retry prompt. The
// session keeps its current state so the turn can be retried verbatim.
func (e *Engine) storeFailure(s *Session, store string, err error) string {
	e.metrics.ObserveStoreFailure(store)
	e.logger.Error("store failure during turn",
		"session_id", s.ID, "store", store, "state", s.State.String(), "error", err)
	return msgRetry()
}

// nextRegistrationField names the first field still needed for registration.
func nextRegistrationField(draft patients.Draft) string {
	missing := draft.Missing()
	if len(missing) == 0 {
		return "phone number"
	}
	return missing[0]
}

var bareWordRe = regexp.MustCompile(`^[A-Za-z]+$`)

func isBareWord(utterance string) bool {
	return bareWordRe.MatchString(strings.TrimSpace(utterance))
}

var affirmatives = map[string]bool{
	"yes": true, "yeah": true, "yep": true, "yup": true, "sure": true,
	"confirm": true, "confirmed": true, "correct": true, "right": true,
	"ok": true, "okay": true, "y": true, "absolutely": true, "definitely": true,
}

var negatives = map[string]bool{
	"no": true, "nope": true, "nah": true, "cancel": true, "wait": true,
	"wrong": true, "incorrect": true, "n": true,
}

func isAffirmative(utterance string) bool {
	return anyToken(utterance, affirmatives)
}

func isNegative(utterance string) bool {
	return anyToken(utterance, negatives)
}

func anyToken(utterance string, words map[string]bool) bool {
	cleaned := strings.ToLower(strings.TrimSpace(utterance))
	for _, token := range strings.FieldsFunc(cleaned, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		if words[token] {
			return true
		}
	}
	return false
}
