package subscription

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-capture-go/internal/broadcast"
	"lead-capture-go/internal/storage"
	"lead-capture-go/pkg/model"
)

type fakeSender struct {
	sent     map[int64][]string
	failNext bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: map[int64][]string{}}
}

func (f *fakeSender) SendMessage(chatID int64, text string) error {
	if f.failNext {
		f.failNext = false
		return errors.New("provider down")
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

func newTestService(t *testing.T) (*Service, *storage.Stores, *fakeSender) {
	t.Helper()
	dir := t.TempDir()
	stores, err := storage.Open(filepath.Join(dir, "primary.db"), filepath.Join(dir, "broadcast.db"))
	require.NoError(t, err)
	t.Cleanup(stores.Close)

	sender := newFakeSender()
	service := NewService(stores.Primary, broadcast.NewLog(stores.Log), sender)
	return service, stores, sender
}

func TestSubscribe_MissingUserID(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.Subscribe(model.SubscribeRequest{FirstName: "Ana"})
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestSubscribe_PersistsAndNotifies(t *testing.T) {
	service, stores, sender := newTestService(t)
	_, err := stores.Primary.Exec(`INSERT INTO regions (id, name) VALUES (1, 'North')`)
	require.NoError(t, err)

	err = service.Subscribe(model.SubscribeRequest{
		UserID:    100,
		FirstName: "Ana",
		Username:  "ana",
		Comment:   "please call",
		RegionID:  float64(1), // JSON numbers arrive as float64
	})
	require.NoError(t, err)

	var sub model.Subscriber
	require.NoError(t, stores.Primary.Get(&sub,
		`SELECT s.*, r.name AS region_name FROM subscribers s LEFT JOIN regions r ON s.region_id = r.id WHERE s.user_id = 100`))
	assert.Equal(t, "Ana", sub.FirstName)
	assert.Equal(t, "North", sub.RegionName.String)

	// Confirmation went to the submitter and mentions the region
	require.Len(t, sender.sent[100], 1)
	assert.Contains(t, sender.sent[100][0], "North")

	// One admin_notify audit entry with the submitter's identity
	var entry model.BroadcastLogEntry
	require.NoError(t, stores.Log.Get(&entry, `SELECT * FROM broadcast_log`))
	assert.Equal(t, model.RecipientAdminNotify, entry.RecipientType)
	assert.Equal(t, "100", entry.UserIDs)
	assert.Contains(t, entry.Message, "Ana")
	assert.Contains(t, entry.Message, "North")
}

func TestSubscribe_UpsertIsIdempotent(t *testing.T) {
	service, stores, _ := newTestService(t)

	require.NoError(t, service.Subscribe(model.SubscribeRequest{
		UserID: 100, FirstName: "Ana", Comment: "first try",
	}))

	// Backdate the original row so a stable subscribe_date is observable
	backdated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	_, err := stores.Primary.Exec(`UPDATE subscribers SET subscribe_date = ? WHERE user_id = 100`, backdated)
	require.NoError(t, err)

	require.NoError(t, service.Subscribe(model.SubscribeRequest{
		UserID: 100, FirstName: "Ana", Comment: "second try",
	}))

	var subs []model.Subscriber
	require.NoError(t, stores.Primary.Select(&subs, `SELECT s.*, NULL AS region_name FROM subscribers s`))
	require.Len(t, subs, 1)
	assert.Equal(t, "second try", subs[0].Comment)
	assert.True(t, subs[0].SubscribeDate.Equal(backdated), "subscribe_date must survive the upsert")
	assert.EqualValues(t, 1, subs[0].ID)
}

func TestSubscribe_SendFailureDoesNotRollBack(t *testing.T) {
	service, stores, sender := newTestService(t)
	sender.failNext = true

	require.NoError(t, service.Subscribe(model.SubscribeRequest{UserID: 100, FirstName: "Ana"}))

	var count int
	require.NoError(t, stores.Primary.Get(&count, `SELECT COUNT(*) FROM subscribers`))
	assert.Equal(t, 1, count)
}

func TestSubscribe_DanglingRegionRendersPlaceholder(t *testing.T) {
	service, stores, sender := newTestService(t)

	require.NoError(t, service.Subscribe(model.SubscribeRequest{
		UserID: 100, FirstName: "Ana", RegionID: "42",
	}))

	require.Len(t, sender.sent[100], 1)
	assert.Contains(t, sender.sent[100][0], "not specified")

	// The weak reference is stored as-is
	var regionID int64
	require.NoError(t, stores.Primary.Get(&regionID, `SELECT region_id FROM subscribers WHERE user_id = 100`))
	assert.EqualValues(t, 42, regionID)
}

func TestCoerceRegionID(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want *int64
	}{
		{"nil", nil, nil},
		{"number", float64(3), ptr(3)},
		{"zero", float64(0), ptr(0)},
		{"negative number", float64(-1), nil},
		{"fractional number", 1.5, nil},
		{"digit string", "7", ptr(7)},
		{"empty string", "", nil},
		{"signed string", "+7", nil},
		{"negative string", "-7", nil},
		{"word", "north", nil},
		{"bool", true, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CoerceRegionID(tc.in)
			if tc.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tc.want, *got)
			}
		})
	}
}

func ptr(v int64) *int64 {
	return &v
}
