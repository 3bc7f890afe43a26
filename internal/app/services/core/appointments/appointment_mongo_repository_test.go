package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Malformed ids are rejected before the collection is touched, so a
// zero-value repository is enough to exercise them.
func TestMalformedAppointmentID(t *testing.T) {
	ctx := context.Background()
	repo := &AppointmentMongoRepository{}

	t.Run("find reports not found", func(t *testing.T) {
		appointment, err := repo.FindByID(ctx, "not-a-hex-id")
		require.NoError(t, err)
		assert.Nil(t, appointment)
	})

	t.Run("confirm reports no matching pending document", func(t *testing.T) {
		appointment, err := repo.ConfirmPending(ctx, "not-a-hex-id", "ref-1")
		require.NoError(t, err)
		assert.Nil(t, appointment)
	})

	t.Run("cancel reports no matching pending document", func(t *testing.T) {
		appointment, err := repo.CancelPending(ctx, "not-a-hex-id")
		require.NoError(t, err)
		assert.Nil(t, appointment)
	})
}
