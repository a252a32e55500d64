package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"wedding-planner/internal/handler/mocks"
	"wedding-planner/internal/models"
)

func TestHandleOwnerMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockGuestRegistry(ctrl)
	reg.EXPECT().List().Return([]models.Guest{
		{ID: "1", Name: "Alice", RSVP: models.RSVPYes},
		{ID: "2", Name: "Bob", RSVP: models.RSVPNo},
		{ID: "3", Name: "Cara", RSVP: models.RSVPMaybe},
	}).AnyTimes()

	c := NewController(reg, nil)
	defer c.Close()

	reply, ok := c.HandleOwnerMessage("  Stats please ")
	require.True(t, ok)
	assert.Contains(t, reply, "Total: 3")
	assert.Contains(t, reply, "Confirmed: 1")

	reply, ok = c.HandleOwnerMessage("list")
	require.True(t, ok)
	assert.Contains(t, reply, "All guests* (3)")
	assert.Contains(t, reply, "• Bob: No")

	reply, ok = c.HandleOwnerMessage("YES")
	require.True(t, ok)
	assert.Contains(t, reply, "Alice")
	assert.NotContains(t, reply, "Bob")

	reply, ok = c.HandleOwnerMessage("help")
	require.True(t, ok)
	assert.Equal(t, ownerHelp, reply)

	_, ok = c.HandleOwnerMessage("congratulations!!")
	assert.False(t, ok)
	_, ok = c.HandleOwnerMessage("   ")
	assert.False(t, ok)
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "Failed to load guests", UserMessage(&models.PersistenceFault{Op: "load"}))
	assert.Equal(t, "Guest not found", UserMessage(&models.NotFoundError{ID: "x"}))
	assert.Equal(t, "Must be one of Yes, No or Maybe", UserMessage(&models.ValidationError{Field: "rsvp", Reason: "must be one of Yes, No or Maybe"}))
	assert.Equal(t, "Still fetching the previous random guest", UserMessage(ErrRequestPending))
}

func TestGuestLinesEmpty(t *testing.T) {
	assert.Contains(t, guestLines("Guests with RSVP No", nil), "No guests found.")
}
