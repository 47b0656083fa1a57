package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/octofitlabs/octofit-backend/pkg/db/types"
)

// Team holds the ordered member roster. MemberIDs never contains an id twice;
// roster mutations go through the conditional array updates in internal/teams.
type Team struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string            `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description string            `gorm:"type:text;not null;default:''" json:"description"`
	CreatedBy   uuid.UUID         `gorm:"type:uuid;column:created_by" json:"created_by"`
	MemberIDs   dbtypes.UUIDArray `gorm:"type:uuid[];column:member_ids;not null;default:ARRAY[]::uuid[]" json:"member_ids"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
