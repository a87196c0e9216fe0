package subscription

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/jmoiron/sqlx"

	"lead-capture-go/internal/broadcast"
	"lead-capture-go/pkg/model"
)

// ErrMissingUserID means the intake payload carried no messaging identity
var ErrMissingUserID = errors.New("user id missing")

// placeholder shown when a subscription has no resolvable region
const regionNotSpecified = "not specified"

// MessageSender is the messaging capability used for the confirmation
// message. Send failures never roll back persistence.
type MessageSender interface {
	SendMessage(chatID int64, text string) error
}

// Service handles the public subscription intake
type Service struct {
	db     *sqlx.DB
	log    *broadcast.Log
	sender MessageSender
}

// NewService creates a subscription service
func NewService(db *sqlx.DB, logRepo *broadcast.Log, sender MessageSender) *Service {
	return &Service{db: db, log: logRepo, sender: sender}
}

// Regions returns all regions ordered by name, for the public picker
func (s *Service) Regions() ([]model.Region, error) {
	regions := []model.Region{}
	if err := s.db.Select(&regions, `SELECT * FROM regions ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	return regions, nil
}

// Subscribe persists an intake request, keyed on the submitter's identity:
// a repeated submission updates the existing row in place, keeping its id
// and subscribe_date. On success a confirmation message goes back to the
// submitter and one admin_notify entry lands in the broadcast log; both are
// best-effort.
func (s *Service) Subscribe(req model.SubscribeRequest) error {
	if req.UserID == 0 {
		return ErrMissingUserID
	}

	regionID := CoerceRegionID(req.RegionID)
	regionName := s.resolveRegionName(regionID)

	_, err := s.db.Exec(`
		INSERT INTO subscribers (user_id, first_name, username, comment, region_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			first_name = excluded.first_name,
			username = excluded.username,
			comment = excluded.comment,
			region_id = excluded.region_id
	`, req.UserID, req.FirstName, req.Username, req.Comment, regionID)
	if err != nil {
		return fmt.Errorf("saving subscriber %d: %w", req.UserID, err)
	}

	confirmation := fmt.Sprintf("Your request has been received! Region: %s. A manager will contact you shortly.", regionName)
	if err := s.sender.SendMessage(req.UserID, confirmation); err != nil {
		log.Printf("subscription: confirmation to %d failed: %v", req.UserID, err)
	}

	adminMsg := fmt.Sprintf("New subscription!\nFrom: %s (@%s)\nID: %d\nRegion: %s\nComment: %s",
		req.FirstName, req.Username, req.UserID, regionName, req.Comment)
	if err := s.log.Append(adminMsg, model.RecipientAdminNotify, []int64{req.UserID}); err != nil {
		log.Printf("subscription: %v", err)
	}

	return nil
}

// resolveRegionName scans the current region list for a matching id.
// A dangling or absent reference renders as the placeholder.
func (s *Service) resolveRegionName(regionID *int64) string {
	if regionID == nil {
		return regionNotSpecified
	}

	regions, err := s.Regions()
	if err != nil {
		log.Printf("subscription: %v", err)
		return regionNotSpecified
	}
	for _, r := range regions {
		if r.ID == *regionID {
			return r.Name
		}
	}
	return regionNotSpecified
}

// CoerceRegionID turns the loosely typed region_id field into an id.
// Only a well-formed non-negative integer number or digit string counts;
// anything else is treated as absent rather than rejected.
func CoerceRegionID(v interface{}) *int64 {
	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		if value < 0 || value != math.Trunc(value) {
			return nil
		}
		id := int64(value)
		return &id
	case int:
		if value < 0 {
			return nil
		}
		id := int64(value)
		return &id
	case int64:
		if value < 0 {
			return nil
		}
		return &value
	case string:
		if value == "" {
			return nil
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id < 0 || value[0] == '+' || value[0] == '-' {
			return nil
		}
		return &id
	default:
		return nil
	}
}
