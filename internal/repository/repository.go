package repository

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a lookup by ID matches nothing. Callers must
// surface it; a missing record is never treated as a silent success.
var ErrNotFound = errors.New("record not found")

type Repositories struct {
	ServiceRequest ServiceRequestRepository
	Draft          DraftRepository
	User           UserRepository
	Session        SessionRepository
	Document       DocumentRepository
	Notification   NotificationRepository
	AuditLog       AuditLogRepository
}

func NewRepositories(db *sqlx.DB, redisClient *redis.Client, draftTTL time.Duration) *Repositories {
	return &Repositories{
		ServiceRequest: NewServiceRequestRepository(db),
		Draft:          NewDraftRepository(redisClient, draftTTL),
		User:           NewUserRepository(db),
		Session:        NewSessionRepository(db),
		Document:       NewDocumentRepository(db),
		Notification:   NewNotificationRepository(db),
		AuditLog:       NewAuditLogRepository(db),
	}
}
