package participation

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

const (
	MaxProgress    = 100.0
	PointsPerHour  = 5.0
	minutesPerHour = 60.0
)

var (
	ErrSessionNotFound = errors.New("Workout session not found")
	ErrNotActive       = errors.New("Can only leave active participations")
)

// Progress converts logged minutes into a completion percentage: five
// points per hour, capped at 100.
func Progress(totalMinutes int) float64 {
	return math.Min(MaxProgress, float64(totalMinutes)/minutesPerHour*PointsPerHour)
}

type WorkoutSession struct {
	ID                 string    `bson:"_id"                json:"id"`
	Date               time.Time `bson:"date"               json:"date"`
	Duration           int       `bson:"duration"           json:"duration"`
	CaloriesBurned     int       `bson:"caloriesBurned"     json:"caloriesBurned"`
	ExercisesCompleted []string  `bson:"exercisesCompleted" json:"exercisesCompleted"`
	Notes              string    `bson:"notes,omitempty"    json:"notes,omitempty"`
	CreatedAt          time.Time `bson:"createdAt"          json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt"          json:"updatedAt"`
}

type SessionInput struct {
	Date               time.Time
	Duration           int
	CaloriesBurned     int
	ExercisesCompleted []string
	Notes              string
}

func NewSession(in SessionInput, now time.Time) WorkoutSession {
	date := in.Date
	if date.IsZero() {
		date = now
	}
	return WorkoutSession{
		ID:                 uuid.NewString(),
		Date:               date,
		Duration:           in.Duration,
		CaloriesBurned:     in.CaloriesBurned,
		ExercisesCompleted: append([]string{}, in.ExercisesCompleted...),
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// SessionChanges is a partial session update; nil fields are left as is.
type SessionChanges struct {
	Duration           *int
	CaloriesBurned     *int
	ExercisesCompleted []string
	Notes              *string
}

func (s WorkoutSession) WithChanges(ch SessionChanges, now time.Time) WorkoutSession {
	if ch.Duration != nil {
		s.Duration = *ch.Duration
	}
	if ch.CaloriesBurned != nil {
		s.CaloriesBurned = *ch.CaloriesBurned
	}
	if ch.ExercisesCompleted != nil {
		s.ExercisesCompleted = append([]string{}, ch.ExercisesCompleted...)
	} else {
		s.ExercisesCompleted = append([]string{}, s.ExercisesCompleted...)
	}
	if ch.Notes != nil {
		s.Notes = *ch.Notes
	}
	s.UpdatedAt = now
	return s
}

type Participation struct {
	ID              string           `bson:"_id"                   json:"id"`
	ChallengeID     string           `bson:"challengeId"           json:"challengeId"`
	UserID          string           `bson:"userId"                json:"userId"`
	Status          Status           `bson:"status"                json:"status"`
	Progress        float64          `bson:"progress"              json:"progress"`
	WorkoutSessions []WorkoutSession `bson:"workoutSessions"       json:"workoutSessions"`
	JoinedAt        time.Time        `bson:"joinedAt"              json:"joinedAt"`
	CompletedAt     *time.Time       `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	UpdatedAt       time.Time        `bson:"updatedAt"             json:"updatedAt"`
}

func New(challengeID, userID string, now time.Time) Participation {
	return Participation{
		ID:              uuid.NewString(),
		ChallengeID:     challengeID,
		UserID:          userID,
		Status:          StatusActive,
		WorkoutSessions: []WorkoutSession{},
		JoinedAt:        now,
		UpdatedAt:       now,
	}
}

func (p Participation) IsActive() bool    { return p.Status == StatusActive }
func (p Participation) IsCompleted() bool { return p.Status == StatusCompleted }

// WithSession appends a session and recomputes progress.
func (p Participation) WithSession(s WorkoutSession, now time.Time) Participation {
	sessions := make([]WorkoutSession, 0, len(p.WorkoutSessions)+1)
	sessions = append(sessions, p.WorkoutSessions...)
	sessions = append(sessions, s)
	return p.withSessions(sessions, now)
}

func (p Participation) WithSessionChanged(sessionID string, ch SessionChanges, now time.Time) (Participation, WorkoutSession, error) {
	idx := p.sessionIndex(sessionID)
	if idx < 0 {
		return p, WorkoutSession{}, ErrSessionNotFound
	}
	sessions := append([]WorkoutSession{}, p.WorkoutSessions...)
	sessions[idx] = sessions[idx].WithChanges(ch, now)
	return p.withSessions(sessions, now), sessions[idx], nil
}

func (p Participation) WithoutSession(sessionID string, now time.Time) (Participation, error) {
	idx := p.sessionIndex(sessionID)
	if idx < 0 {
		return p, ErrSessionNotFound
	}
	sessions := make([]WorkoutSession, 0, len(p.WorkoutSessions)-1)
	sessions = append(sessions, p.WorkoutSessions[:idx]...)
	sessions = append(sessions, p.WorkoutSessions[idx+1:]...)
	return p.withSessions(sessions, now), nil
}

// withSessions replaces the session list and derives progress from its
// total duration. Reaching the cap completes the participation.
func (p Participation) withSessions(sessions []WorkoutSession, now time.Time) Participation {
	p.WorkoutSessions = sessions
	p.Progress = Progress(p.TotalDuration())
	if p.Progress >= MaxProgress && p.Status != StatusCompleted {
		completedAt := now
		p.Status = StatusCompleted
		p.CompletedAt = &completedAt
	}
	p.UpdatedAt = now
	return p
}

func (p Participation) Abandon(now time.Time) (Participation, error) {
	if p.Status != StatusActive {
		return p, ErrNotActive
	}
	p.Status = StatusAbandoned
	p.UpdatedAt = now
	return p, nil
}

func (p Participation) Session(sessionID string) (WorkoutSession, bool) {
	idx := p.sessionIndex(sessionID)
	if idx < 0 {
		return WorkoutSession{}, false
	}
	return p.WorkoutSessions[idx], true
}

func (p Participation) TotalDuration() int {
	total := 0
	for _, s := range p.WorkoutSessions {
		total += s.Duration
	}
	return total
}

func (p Participation) TotalCalories() int {
	total := 0
	for _, s := range p.WorkoutSessions {
		total += s.CaloriesBurned
	}
	return total
}

func (p Participation) sessionIndex(id string) int {
	for i, s := range p.WorkoutSessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}
